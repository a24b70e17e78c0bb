package productcontroller

import (
	"context"

	"github.com/garghot/food-client/models"
)

type PlatReader interface {
	List(ctx context.Context) ([]models.Plat, error)
	Get(ctx context.Context, id int) (*models.Plat, error)
}

type PlatWriter interface {
	Create(ctx context.Context, plat models.Plat) (*models.Plat, error)
	Update(ctx context.Context, id int, plat models.Plat) (*models.Plat, error)
	Delete(ctx context.Context, id int) error
}

type PlatStore interface {
	PlatReader
	PlatWriter
}

type CategoryLister interface {
	List(ctx context.Context) ([]models.Categorie, error)
}

// PlatInput is the body of plat create and update requests.
type PlatInput struct {
	Nom         string  `json:"nom" binding:"required"`
	Description string  `json:"description"`
	Duration    int     `json:"duration" binding:"min=0"`
	CategorieID int     `json:"categorie_id" binding:"min=0"`
	Prix        float64 `json:"prix" binding:"min=0"`
	Image       string  `json:"image"`
}

func (in PlatInput) toPlat() models.Plat {
	plat := models.Plat{
		Nom:         in.Nom,
		Description: in.Description,
		Duration:    in.Duration,
		Prix:        models.Price(in.Prix),
		Image:       in.Image,
		Ingredients: []models.PlatIngredient{},
	}
	if in.CategorieID > 0 {
		plat.Categorie = &models.PlatCategorie{ID: in.CategorieID}
	}
	return plat
}
