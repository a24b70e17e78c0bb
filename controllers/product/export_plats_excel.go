package productcontroller

import (
	"net/http"

	"github.com/garghot/food-client/controllers"
	"github.com/garghot/food-client/orders"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

var platSheetHeaders = []string{
	"ID", "Nom", "Description", "Prix", "Duration", "CategorieID", "Image",
}

// GET /admin/plats/export-excel
func ExportPlatsToExcel(plats PlatReader) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := plats.List(c.Request.Context())
		if err != nil {
			controllers.RespondError(c, err, "Failed to fetch plats")
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Plats")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headerRow := sheet.AddRow()
		for _, h := range platSheetHeaders {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range list {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Nom)
			row.AddCell().SetValue(p.Description)
			row.AddCell().SetValue(p.Prix.Float64())
			row.AddCell().SetValue(p.Duration)
			row.AddCell().SetValue(p.CategorieID())
			row.AddCell().SetValue(p.Image)
		}

		c.Header("Content-Disposition", "attachment; filename=plats.xlsx")
		c.Header("Content-Type", orders.XLSXContentType)
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			_ = c.Error(err)
		}
	}
}
