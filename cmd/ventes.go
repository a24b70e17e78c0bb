package cmd

import (
	"fmt"
	"io"

	"github.com/garghot/food-client/catalog"
	adminController "github.com/garghot/food-client/controllers/admin"
	"github.com/garghot/food-client/models"
	"github.com/spf13/cobra"
)

func (c *cli) ventesCmd() *cobra.Command {
	var platID int
	var date string
	cmd := &cobra.Command{
		Use:   "ventes",
		Short: "Sales report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			var (
				list []models.Vente
				err  error
			)
			switch {
			case platID > 0:
				list, err = c.services.Ventes.ByPlat(ctx, platID)
			case date != "":
				list, err = c.services.Ventes.ByDate(ctx, date)
			default:
				list, err = c.services.Ventes.List(ctx)
			}
			if err != nil {
				return err
			}

			summary := adminController.SummarizeVentes(list)
			return c.render(cmd, summary, func(w io.Writer) {
				fmt.Fprintln(w, "PLAT\tQUANTITE\tMONTANT")
				var total float64
				for _, s := range summary {
					total += s.Montant
					fmt.Fprintf(w, "%d\t%d\t%s\n", s.PlatID, s.Quantite, catalog.FormatPrice(s.Montant))
				}
				fmt.Fprintf(w, "TOTAL\t\t%s\n", catalog.FormatPrice(total))
			})
		},
	}
	cmd.Flags().IntVar(&platID, "plat", 0, "only the sales of this plat")
	cmd.Flags().StringVar(&date, "date", "", "only the sales of this date (YYYY-MM-DD)")
	return cmd
}
