package productcontroller

import (
	"net/http"

	"github.com/garghot/food-client/controllers"
	"github.com/gin-gonic/gin"
)

// DELETE /admin/plats/:id
func DeletePlat(plats PlatWriter) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := controllers.ParamID(c, "id")
		if !ok {
			return
		}

		if err := plats.Delete(c.Request.Context(), id); err != nil {
			controllers.RespondError(c, err, "Failed to delete plat")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Plat deleted"})
	}
}
