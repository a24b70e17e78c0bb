package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/garghot/food-client/catalog"
	"github.com/garghot/food-client/models"
	"github.com/spf13/cobra"
)

func (c *cli) platsCmd() *cobra.Command {
	var search string
	var category int
	cmd := &cobra.Command{
		Use:   "plats",
		Short: "List the menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := c.services.Plats.List(cmd.Context())
			if err != nil {
				return err
			}
			plats := catalog.Filter(list, search, category)
			return c.render(cmd, plats, func(w io.Writer) {
				fmt.Fprintln(w, "ID\tNOM\tCATEGORIE\tPRIX")
				for _, p := range plats {
					cat := ""
					if p.Categorie != nil {
						cat = p.Categorie.Nom
					}
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", p.ID, p.Nom, cat, catalog.FormatPrice(p.Prix.Float64()))
				}
			})
		},
	}
	cmd.Flags().StringVarP(&search, "search", "s", "", "filter by name, accents and case ignored")
	cmd.Flags().IntVar(&category, "category", models.AllCategoriesID, "filter by category id")
	return cmd
}

func (c *cli) platCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plat <id>",
		Short: "Show the details of a plat",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid plat id %q", args[0])
			}
			plat, err := c.services.Plats.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			d := catalog.Details(*plat)
			return c.render(cmd, d, func(w io.Writer) {
				fmt.Fprintf(w, "%s\t%s\n", d.Nom, d.PrixLabel)
				fmt.Fprintf(w, "Catégorie:\t%s\n", d.Categorie)
				fmt.Fprintf(w, "Durée:\t%s\n", d.Duration)
				fmt.Fprintf(w, "Description:\t%s\n", d.Description)
				for _, ing := range d.Ingredients {
					fmt.Fprintf(w, "  - %s\tx%d\n", ing.Nom, ing.Quantite)
				}
			})
		},
	}
}

func (c *cli) categoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := c.services.Categories.List(cmd.Context())
			if err != nil {
				return err
			}
			cats := catalog.CategoriesWithAll(list)
			return c.render(cmd, cats, func(w io.Writer) {
				for _, cat := range cats {
					fmt.Fprintf(w, "%d\t%s\n", cat.ID, cat.Nom)
				}
			})
		},
	}
}
