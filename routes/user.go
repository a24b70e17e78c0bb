package routes

import (
	cartControllers "github.com/garghot/food-client/controllers/cart"
	orderControllers "github.com/garghot/food-client/controllers/order"
	productControllers "github.com/garghot/food-client/controllers/product"
	userControllers "github.com/garghot/food-client/controllers/user"
	"github.com/garghot/food-client/middleware"
	"github.com/gin-gonic/gin"
)

// SetupUserRoutes registers all "/user/*" endpoints. Requires a session token.
func SetupUserRoutes(r *gin.Engine, d Deps) {
	userGroup := r.Group("/user")
	userGroup.Use(middleware.ValidateToken(d.Auth.Tokens()))
	{
		userGroup.GET("/", userControllers.GetUser)

		// browse
		userGroup.GET("/plats", productControllers.GetPlats(d.Services.Plats))
		userGroup.GET("/plats/:id", productControllers.GetPlatByID(d.Services.Plats))
		userGroup.GET("/categories", productControllers.GetCategories(d.Services.Categories))

		cartGroup := userGroup.Group("/cart")
		{
			cartGroup.GET("", cartControllers.GetUserCart(d.Carts))
			cartGroup.POST("", cartControllers.AddCartItem(d.Carts, d.Services.Plats))
			cartGroup.DELETE("", cartControllers.ClearUserCart(d.Carts))
			cartGroup.POST("/checkout", cartControllers.Checkout(d.Reconciler, d.Hub))
			cartGroup.POST("/sync", cartControllers.SyncCart(d.Reconciler))
			cartGroup.PUT("/:item_id", cartControllers.UpdateCartItem(d.Carts))
			cartGroup.DELETE("/:item_id", cartControllers.DeleteCartItem(d.Carts))
		}

		orderGroup := userGroup.Group("/orders")
		{
			orderGroup.GET("", orderControllers.GetUserOrdersHandler(d.Services.Commandes))
			orderGroup.GET("/export", orderControllers.ExportUserOrdersHandler(d.Services.Commandes))
			orderGroup.GET("/ws", d.Hub.OrderWebSocketHandler)
		}
	}
}
