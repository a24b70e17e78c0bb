package cartControllers

import (
	"context"
	"net/http"

	"github.com/garghot/food-client/cart"
	"github.com/garghot/food-client/controllers"
	"github.com/garghot/food-client/middleware"
	"github.com/garghot/food-client/models"
	"github.com/gin-gonic/gin"
)

// OrderNotifier is told when the orders of a user changed.
type OrderNotifier interface {
	Notify(ctx context.Context, userID string)
}

// POST /user/cart/checkout
func Checkout(reconciler *cart.Reconciler, notifier OrderNotifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		if middleware.Role(c) == models.RoleGuest {
			c.JSON(http.StatusForbidden, gin.H{"error": "Sign in to place an order"})
			return
		}

		result, err := reconciler.Checkout(c.Request.Context(), uid)
		if err != nil {
			controllers.RespondError(c, err, "Checkout failed")
			return
		}
		if notifier != nil {
			notifier.Notify(c.Request.Context(), uid)
		}

		status := http.StatusOK
		if result.Action == cart.ActionCreated {
			status = http.StatusCreated
		}
		c.JSON(status, result)
	}
}

// POST /user/cart/sync
func SyncCart(reconciler *cart.Reconciler) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := userID(c)
		if !ok {
			return
		}
		if middleware.Role(c) == models.RoleGuest {
			c.JSON(http.StatusOK, gin.H{"imported": 0})
			return
		}

		n, err := reconciler.Sync(c.Request.Context(), uid)
		if err != nil {
			controllers.RespondError(c, err, "Failed to sync cart")
			return
		}
		c.JSON(http.StatusOK, gin.H{"imported": n})
	}
}
