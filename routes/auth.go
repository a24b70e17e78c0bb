package routes

import (
	userControllers "github.com/garghot/food-client/controllers/user"
	"github.com/garghot/food-client/middleware"
	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes registers all "/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, d Deps) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", middleware.OptionalToken(d.Auth.Tokens()), userControllers.Login(d.Auth))
		authGroup.POST("/guest", userControllers.CreateGuestUser(d.Auth))
		authGroup.POST("/logout", middleware.ValidateToken(d.Auth.Tokens()), userControllers.Logout(d.Carts))
	}
}
