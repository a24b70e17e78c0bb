package productcontroller

import (
	"net/http"

	"github.com/garghot/food-client/catalog"
	"github.com/garghot/food-client/controllers"
	"github.com/gin-gonic/gin"
)

// GET /user/categories
func GetCategories(categories CategoryLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := categories.List(c.Request.Context())
		if err != nil {
			controllers.RespondError(c, err, "Failed to fetch categories")
			return
		}
		c.JSON(http.StatusOK, catalog.CategoriesWithAll(list))
	}
}
