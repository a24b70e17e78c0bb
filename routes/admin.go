package routes

import (
	adminController "github.com/garghot/food-client/controllers/admin"
	productControllers "github.com/garghot/food-client/controllers/product"
	"github.com/garghot/food-client/middleware"
	"github.com/gin-gonic/gin"
)

// SetupAdminRoutes registers all "/admin/*" endpoints. Requires the API key.
func SetupAdminRoutes(r *gin.Engine, d Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey(d.Config.Server.AdminAPIKey))
	{
		platAdmin := adminGroup.Group("/plats")
		{
			platAdmin.GET("", productControllers.GetPlats(d.Services.Plats))
			platAdmin.POST("", productControllers.CreatePlat(d.Services.Plats))
			platAdmin.PUT("/:id", productControllers.UpdatePlat(d.Services.Plats))
			platAdmin.DELETE("/:id", productControllers.DeletePlat(d.Services.Plats))
			platAdmin.POST("/import-excel", productControllers.ImportPlatsFromExcel(d.Services.Plats))
			platAdmin.GET("/export-excel", productControllers.ExportPlatsToExcel(d.Services.Plats))
		}

		prixAdmin := adminGroup.Group("/prix")
		{
			prixAdmin.GET("", adminController.GetAllPrix(d.Services.Prix))
			prixAdmin.POST("", adminController.CreatePrix(d.Services.Prix))
			prixAdmin.PUT("/:id", adminController.UpdatePrix(d.Services.Prix))
			prixAdmin.DELETE("/:id", adminController.DeletePrix(d.Services.Prix))
		}

		ingredientAdmin := adminGroup.Group("/ingredients")
		{
			ingredientAdmin.GET("", adminController.GetAllIngredients(d.Services.Ingredients))
			ingredientAdmin.POST("", adminController.CreateIngredient(d.Services.Ingredients))
			ingredientAdmin.PUT("/:id", adminController.UpdateIngredient(d.Services.Ingredients))
			ingredientAdmin.DELETE("/:id", adminController.DeleteIngredient(d.Services.Ingredients))
		}

		adminGroup.GET("/ventes", adminController.GetVentes(d.Services.Ventes))
		adminGroup.GET("/ventes/:id", adminController.GetVente(d.Services.Ventes))
	}
}
