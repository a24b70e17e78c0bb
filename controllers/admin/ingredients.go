package adminController

import (
	"net/http"

	"github.com/garghot/food-client/controllers"
	"github.com/garghot/food-client/models"
	"github.com/gin-gonic/gin"
)

type IngredientInput struct {
	Nom      string  `json:"nom" binding:"required"`
	Quantite float64 `json:"quantite" binding:"min=0"`
	Unite    string  `json:"unite"`
	PlatID   int     `json:"platId" binding:"min=0"`
}

func (in IngredientInput) toIngredient() models.Ingredient {
	return models.Ingredient{Nom: in.Nom, Quantite: in.Quantite, Unite: in.Unite, PlatID: in.PlatID}
}

// GET /admin/ingredients
func GetAllIngredients(ingredients IngredientStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := ingredients.List(c.Request.Context())
		if err != nil {
			controllers.RespondError(c, err, "Failed to fetch ingredients")
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// POST /admin/ingredients
func CreateIngredient(ingredients IngredientStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input IngredientInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		created, err := ingredients.Create(c.Request.Context(), input.toIngredient())
		if err != nil {
			controllers.RespondError(c, err, "Failed to create ingredient")
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

// PUT /admin/ingredients/:id
func UpdateIngredient(ingredients IngredientStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := controllers.ParamID(c, "id")
		if !ok {
			return
		}
		var input IngredientInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		ing := input.toIngredient()
		ing.ID = id
		updated, err := ingredients.Update(c.Request.Context(), id, ing)
		if err != nil {
			controllers.RespondError(c, err, "Failed to update ingredient")
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}

// DELETE /admin/ingredients/:id
func DeleteIngredient(ingredients IngredientStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := controllers.ParamID(c, "id")
		if !ok {
			return
		}
		if err := ingredients.Delete(c.Request.Context(), id); err != nil {
			controllers.RespondError(c, err, "Failed to delete ingredient")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Ingredient deleted"})
	}
}
