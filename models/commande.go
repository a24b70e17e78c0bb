package models

import (
	"strconv"
	"time"
)

type CommandeStatut int

const (
	StatutOpen CommandeStatut = 0 // unpaid, doubles as the remote cart
	StatutPaid CommandeStatut = 1
)

func (s CommandeStatut) Valid() bool {
	return s == StatutOpen || s == StatutPaid
}

func (s CommandeStatut) String() string {
	if s == StatutPaid {
		return "paid"
	}
	return "unpaid"
}

// PlatCommande is one order line as the API expects it.
type PlatCommande struct {
	ID       int `json:"id"`
	Quantite int `json:"quantite"`
}

type CommandeRequest struct {
	Statut   CommandeStatut `json:"statut"`
	IDClient string         `json:"id_client"`
	Plats    []PlatCommande `json:"plats"`
}

// Commande is an order as returned by the API. Depending on the endpoint the
// identifier comes back as "id" or as "commande_id".
type Commande struct {
	ID         int            `json:"id,omitempty"`
	CommandeID int            `json:"commande_id,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
	IDClient   string         `json:"id_client"`
	Plats      []CommandePlat `json:"plats"`
	Statut     CommandeStatut `json:"statut"`
}

type CommandePlat struct {
	ID          int              `json:"id"`
	Nom         string           `json:"nom,omitempty"`
	Prix        Price            `json:"prix,omitempty"`
	Ingredients []PlatIngredient `json:"ingredients,omitempty"`
	Quantite    int              `json:"quantite"`
}

func (c Commande) Ref() string {
	if c.ID != 0 {
		return strconv.Itoa(c.ID)
	}
	if c.CommandeID != 0 {
		return strconv.Itoa(c.CommandeID)
	}
	return ""
}

func (c Commande) IsOpen() bool { return c.Statut == StatutOpen }

// Lines returns the order lines in request form.
func (c Commande) Lines() []PlatCommande {
	lines := make([]PlatCommande, 0, len(c.Plats))
	for _, p := range c.Plats {
		lines = append(lines, PlatCommande{ID: p.ID, Quantite: p.Quantite})
	}
	return lines
}

func (c Commande) Total() float64 {
	var total float64
	for _, p := range c.Plats {
		total += p.Prix.Float64() * float64(p.Quantite)
	}
	return total
}
