package orders

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/garghot/food-client/models"
)

type ClientOrders interface {
	ByClient(ctx context.Context, clientID string) ([]models.Commande, error)
}

// Entry is an order as the history screen shows it.
type Entry struct {
	models.Commande
	Total      float64 `json:"total"`
	StatusText string  `json:"status_text"`
}

// History returns the orders of a client, newest first.
func History(ctx context.Context, api ClientOrders, clientID string) ([]Entry, error) {
	commandes, err := api.ByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("load order history: %w", err)
	}
	return Entries(commandes), nil
}

func Entries(commandes []models.Commande) []Entry {
	entries := make([]Entry, 0, len(commandes))
	for _, c := range commandes {
		entries = append(entries, Entry{
			Commande:   c,
			Total:      c.Total(),
			StatusText: c.Statut.String(),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	return entries
}

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

// FormatDate renders a timestamp the way the history screen does, for
// example "3 mars 2024 à 14:05".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "Date inconnue"
	}
	return fmt.Sprintf("%d %s %d à %02d:%02d",
		t.Day(), frenchMonths[t.Month()-1], t.Year(), t.Hour(), t.Minute())
}
