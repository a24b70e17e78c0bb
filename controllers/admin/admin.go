package adminController

import (
	"context"
	"net/http"

	"github.com/garghot/food-client/controllers"
	"github.com/garghot/food-client/models"
	"github.com/gin-gonic/gin"
)

type PrixStore interface {
	List(ctx context.Context) ([]models.Prix, error)
	Create(ctx context.Context, p models.Prix) (*models.Prix, error)
	Update(ctx context.Context, id int, p models.Prix) (*models.Prix, error)
	Delete(ctx context.Context, id int) error
}

type IngredientStore interface {
	List(ctx context.Context) ([]models.Ingredient, error)
	Create(ctx context.Context, ing models.Ingredient) (*models.Ingredient, error)
	Update(ctx context.Context, id int, ing models.Ingredient) (*models.Ingredient, error)
	Delete(ctx context.Context, id int) error
}

type PrixInput struct {
	Montant float64 `json:"montant" binding:"min=0"`
	Date    string  `json:"date"`
	PlatID  int     `json:"platId" binding:"required,min=1"`
}

func (in PrixInput) toPrix() models.Prix {
	return models.Prix{Montant: in.Montant, Date: in.Date, PlatID: in.PlatID}
}

// GET /admin/prix
func GetAllPrix(prix PrixStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := prix.List(c.Request.Context())
		if err != nil {
			controllers.RespondError(c, err, "Failed to fetch prix")
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// POST /admin/prix
func CreatePrix(prix PrixStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input PrixInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		created, err := prix.Create(c.Request.Context(), input.toPrix())
		if err != nil {
			controllers.RespondError(c, err, "Failed to create prix")
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// PUT /admin/prix/:id
func UpdatePrix(prix PrixStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := controllers.ParamID(c, "id")
		if !ok {
			return
		}
		var input PrixInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		p := input.toPrix()
		p.ID = id
		updated, err := prix.Update(c.Request.Context(), id, p)
		if err != nil {
			controllers.RespondError(c, err, "Failed to update prix")
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// DELETE /admin/prix/:id
func DeletePrix(prix PrixStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := controllers.ParamID(c, "id")
		if !ok {
			return
		}
		if err := prix.Delete(c.Request.Context(), id); err != nil {
			controllers.RespondError(c, err, "Failed to delete prix")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Prix deleted"})
	}
}
