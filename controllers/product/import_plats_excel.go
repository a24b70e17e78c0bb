package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

// POST /admin/plats/import-excel
//
// Rows use the export layout. A row with a known ID updates that plat, any
// other row creates one.
func ImportPlatsFromExcel(plats PlatWriter) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is required"})
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open Excel file"})
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse Excel file"})
			return
		}

		if len(xlFile.Sheets) == 0 || len(xlFile.Sheets[0].Rows) < 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Excel file is empty or missing header row"})
			return
		}

		ctx := c.Request.Context()
		createdCount, updatedCount, skippedCount := 0, 0, 0

		for _, row := range xlFile.Sheets[0].Rows[1:] {
			get := func(index int) string {
				if row != nil && index < len(row.Cells) {
					return strings.TrimSpace(row.Cells[index].Value)
				}
				return ""
			}

			input := PlatInput{
				Nom:         get(1),
				Description: get(2),
				Image:       get(6),
			}
			prix, err := strconv.ParseFloat(strings.ReplaceAll(get(3), ",", "."), 64)
			if input.Nom == "" || err != nil || prix < 0 {
				skippedCount++
				continue
			}
			input.Prix = prix
			input.Duration, _ = strconv.Atoi(get(4))
			input.CategorieID, _ = strconv.Atoi(get(5))

			plat := input.toPlat()
			if id, err := strconv.Atoi(get(0)); err == nil && id > 0 {
				plat.ID = id
				if _, err := plats.Update(ctx, id, plat); err == nil {
					updatedCount++
					continue
				}
				plat.ID = 0
			}

			if _, err := plats.Create(ctx, plat); err == nil {
				createdCount++
			} else {
				skippedCount++
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"message":       "Import completed",
			"created_count": createdCount,
			"updated_count": updatedCount,
			"skipped_count": skippedCount,
		})
	}
}
