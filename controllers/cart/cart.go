package cartControllers

import (
	"errors"
	"net/http"

	"github.com/garghot/food-client/cart"
	"github.com/garghot/food-client/catalog"
	"github.com/garghot/food-client/controllers"
	"github.com/garghot/food-client/middleware"
	"github.com/garghot/food-client/models"
	"github.com/gin-gonic/gin"
)

type CartItemInput struct {
	PlatID   int `json:"plat_id" binding:"required,min=1"`
	Quantity int `json:"quantity"`
}

// QuantityInput sets the quantity, or moves it by Delta when Quantity is 0.
type QuantityInput struct {
	Quantity int `json:"quantity"`
	Delta    int `json:"delta"`
}

func userID(c *gin.Context) (string, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	}
	return id, ok
}

// GET /user/cart
func GetUserCart(storage *cart.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}

		items, err := storage.Items(c.Request.Context(), uid)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load cart"})
			return
		}

		total := cart.Total(items)
		c.JSON(http.StatusOK, gin.H{
			"items":       items,
			"total":       total,
			"total_label": catalog.FormatPrice(total),
		})
	}
}

// POST /user/cart
func AddCartItem(storage *cart.Storage, plats cart.PlatFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		plat, err := plats.Find(c.Request.Context(), input.PlatID)
		if err != nil {
			controllers.RespondError(c, err, "Plat does not exist")
			return
		}

		item, err := storage.AddPlat(c.Request.Context(), uid, *plat, input.Quantity)
		if errors.Is(err, cart.ErrAlreadyInCart) {
			c.JSON(http.StatusConflict, gin.H{"error": "Plat already in cart", "item": item})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// PUT /user/cart/:item_id
func UpdateCartItem(storage *cart.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}

		var input QuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Quantity == 0 && input.Delta == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity or delta is required"})
			return
		}

		itemID := c.Param("item_id")
		ctx := c.Request.Context()
		var (
			item models.CartItem
			err  error
		)
		if input.Quantity != 0 {
			item, err = storage.UpdateQuantity(ctx, uid, itemID, input.Quantity)
		} else {
			item, err = storage.Increment(ctx, uid, itemID, input.Delta)
		}
		if err != nil {
			controllers.RespondError(c, err, "Failed to update cart item")
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// DELETE /user/cart/:item_id
func DeleteCartItem(storage *cart.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}

		if err := storage.Remove(c.Request.Context(), uid, c.Param("item_id")); err != nil {
			controllers.RespondError(c, err, "Cart item not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item deleted"})
	}
}

// DELETE /user/cart
func ClearUserCart(storage *cart.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}

		if err := storage.Clear(c.Request.Context(), uid); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
