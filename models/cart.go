package models

import "time"

// CartItem is a line of the cart kept on the device. Only one line per plat.
type CartItem struct {
	ID       string    `json:"id"`
	PlatID   int       `json:"platId"`
	Nom      string    `json:"nom"`
	Prix     float64   `json:"prix"`
	Quantity int       `json:"quantity"`
	Image    string    `json:"image,omitempty"`
	AddedAt  time.Time `json:"addedAt,omitempty"`
}

func (i CartItem) Subtotal() float64 {
	return i.Prix * float64(i.Quantity)
}
