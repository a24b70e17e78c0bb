package productcontroller

import (
	"net/http"

	"github.com/garghot/food-client/controllers"
	"github.com/gin-gonic/gin"
)

// PUT /admin/plats/:id
func UpdatePlat(plats PlatWriter) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := controllers.ParamID(c, "id")
		if !ok {
			return
		}

		var input PlatInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		plat := input.toPlat()
		plat.ID = id
		updated, err := plats.Update(c.Request.Context(), id, plat)
		if err != nil {
			controllers.RespondError(c, err, "Failed to update plat")
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}
