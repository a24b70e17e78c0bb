package orderControllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/garghot/food-client/controllers"
	"github.com/garghot/food-client/middleware"
	"github.com/garghot/food-client/orders"
	"github.com/gin-gonic/gin"
)

// GET /user/orders
func GetUserOrdersHandler(api orders.ClientOrders) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		entries, err := orders.History(c.Request.Context(), api, uid)
		if err != nil {
			controllers.RespondError(c, err, "Failed to fetch orders")
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"orders": entries,
			"total":  len(entries),
		})
	}
}

// GET /user/orders/export
func ExportUserOrdersHandler(api orders.ClientOrders) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := middleware.UserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		entries, err := orders.History(c.Request.Context(), api, uid)
		if err != nil {
			controllers.RespondError(c, err, "Failed to fetch orders")
			return
		}

		filename := fmt.Sprintf("commandes-%s.xlsx", time.Now().Format("20060102"))
		c.Header("Content-Disposition", "attachment; filename="+filename)
		c.Header("Content-Type", orders.XLSXContentType)
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := orders.WriteXLSX(c.Writer, entries); err != nil {
			_ = c.Error(err)
		}
	}
}
