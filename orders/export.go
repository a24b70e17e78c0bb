package orders

import (
	"fmt"
	"io"

	"github.com/tealeg/xlsx"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriteXLSX writes the order history as a spreadsheet with one row per
// order line.
func WriteXLSX(w io.Writer, entries []Entry) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Commandes")
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	headers := []string{
		"Commande", "Date", "Statut", "Plat", "Nom", "Prix", "Quantite", "Sous-total", "Total commande",
	}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().SetValue(h)
	}

	for _, e := range entries {
		date := ""
		if !e.CreatedAt.IsZero() {
			date = e.CreatedAt.Format("2006-01-02 15:04:05")
		}

		if len(e.Plats) == 0 {
			row := sheet.AddRow()
			row.AddCell().SetValue(e.Ref())
			row.AddCell().SetValue(date)
			row.AddCell().SetValue(e.StatusText)
			for i := 0; i < 5; i++ {
				row.AddCell()
			}
			row.AddCell().SetValue(e.Total)
			continue
		}

		for _, p := range e.Plats {
			row := sheet.AddRow()
			row.AddCell().SetValue(e.Ref())
			row.AddCell().SetValue(date)
			row.AddCell().SetValue(e.StatusText)
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Nom)
			row.AddCell().SetValue(p.Prix.Float64())
			row.AddCell().SetValue(p.Quantite)
			row.AddCell().SetValue(p.Prix.Float64() * float64(p.Quantite))
			row.AddCell().SetValue(e.Total)
		}
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("write spreadsheet: %w", err)
	}
	return nil
}
