package productcontroller

import (
	"net/http"

	"github.com/garghot/food-client/catalog"
	"github.com/garghot/food-client/controllers"
	"github.com/gin-gonic/gin"
)

// GET /user/plats/:id
func GetPlatByID(plats PlatReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := controllers.ParamID(c, "id")
		if !ok {
			return
		}

		plat, err := plats.Get(c.Request.Context(), id)
		if err != nil {
			controllers.RespondError(c, err, "Plat not found")
			return
		}
		c.JSON(http.StatusOK, catalog.Details(*plat))
	}
}
