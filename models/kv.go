package models

import "time"

// KVEntry is one row of the local key-value store.
type KVEntry struct {
	Key       string    `gorm:"column:name;primaryKey;size:255"`
	Value     []byte    `gorm:"not null"`
	UpdatedAt time.Time
}

func (KVEntry) TableName() string { return "kv_entries" }
