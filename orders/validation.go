package orders

import (
	"fmt"

	"github.com/garghot/food-client/models"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func Validate(req models.CommandeRequest) error {
	if req.IDClient == "" {
		return ValidationError{
			Field:   "id_client",
			Message: "client id is required",
		}
	}

	if !req.Statut.Valid() {
		return ValidationError{
			Field:   "statut",
			Message: "statut must be 0 or 1",
		}
	}

	return validatePlats(req.Plats)
}

func validatePlats(plats []models.PlatCommande) error {
	if len(plats) == 0 {
		return ValidationError{
			Field:   "plats",
			Message: "plats cannot be empty",
		}
	}

	seen := make(map[int]bool, len(plats))
	for i, p := range plats {
		if p.ID <= 0 {
			return ValidationError{
				Field:   fmt.Sprintf("plats[%d].id", i),
				Message: "plat id must be positive",
			}
		}
		if p.Quantite < 1 {
			return ValidationError{
				Field:   fmt.Sprintf("plats[%d].quantite", i),
				Message: "quantite must be at least 1",
			}
		}
		if seen[p.ID] {
			return ValidationError{
				Field:   fmt.Sprintf("plats[%d].id", i),
				Message: fmt.Sprintf("plat %d appears more than once", p.ID),
			}
		}
		seen[p.ID] = true
	}
	return nil
}
