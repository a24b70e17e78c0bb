package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/garghot/food-client/catalog"
	"github.com/garghot/food-client/controllers"
	"github.com/gin-gonic/gin"
)

// GET /user/plats?search=&category_id=
func GetPlats(plats PlatReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		search := c.Query("search")
		categoryID := 0
		if raw := c.Query("category_id"); raw != "" {
			cid, err := strconv.Atoi(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
				return
			}
			categoryID = cid
		}

		list, err := plats.List(c.Request.Context())
		if err != nil {
			controllers.RespondError(c, err, "Failed to fetch plats")
			return
		}

		filtered := catalog.Filter(list, search, categoryID)
		c.JSON(http.StatusOK, gin.H{
			"plats": filtered,
			"total": len(filtered),
		})
	}
}
