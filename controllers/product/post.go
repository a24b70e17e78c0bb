package productcontroller

import (
	"net/http"

	"github.com/garghot/food-client/controllers"
	"github.com/gin-gonic/gin"
)

// POST /admin/plats
func CreatePlat(plats PlatWriter) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input PlatInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		created, err := plats.Create(c.Request.Context(), input.toPlat())
		if err != nil {
			controllers.RespondError(c, err, "Failed to create plat")
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}
