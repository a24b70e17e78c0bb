package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/garghot/food-client/catalog"
	"github.com/garghot/food-client/models"
	"github.com/garghot/food-client/orders"
	"github.com/spf13/cobra"
)

func (c *cli) ordersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "Order history",
	}
	cmd.AddCommand(c.ordersListCmd(), c.ordersShowCmd(), c.ordersExportCmd())
	return cmd
}

func (c *cli) history(cmd *cobra.Command) ([]orders.Entry, error) {
	s, err := c.session(cmd.Context())
	if err != nil {
		return nil, err
	}
	if s.IsGuest() {
		return []orders.Entry{}, nil
	}
	return orders.History(cmd.Context(), c.services.Commandes, s.UserID)
}

func (c *cli) ordersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your orders, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := c.history(cmd)
			if err != nil {
				return err
			}
			return c.render(cmd, entries, func(w io.Writer) {
				if len(entries) == 0 {
					fmt.Fprintln(w, "No orders yet")
					return
				}
				for _, e := range entries {
					printEntry(w, e)
				}
			})
		},
	}
}

func (c *cli) ordersShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <ref>",
		Short: "Show one order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.session(ctx)
			if err != nil {
				return err
			}
			commande, err := c.services.Commandes.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if commande.IDClient != s.UserID {
				return fmt.Errorf("order %s not found", args[0])
			}
			entry := orders.Entries([]models.Commande{*commande})[0]
			return c.render(cmd, entry, func(w io.Writer) {
				printEntry(w, entry)
			})
		},
	}
}

func printEntry(w io.Writer, e orders.Entry) {
	fmt.Fprintf(w, "Commande #%s\t%s\t%s\t%s\n", e.Ref(), orders.FormatDate(e.CreatedAt), e.StatusText, catalog.FormatPrice(e.Total))
	for _, p := range e.Plats {
		fmt.Fprintf(w, "  %s\tx%d\t%s\n", p.Nom, p.Quantite, catalog.FormatPrice(p.Prix.Float64()))
	}
}

func (c *cli) ordersExportCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write your order history to an xlsx file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := c.history(cmd)
			if err != nil {
				return err
			}
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			if err := orders.WriteXLSX(f, entries); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			return c.message(cmd, "%d order(s) written to %s", len(entries), path)
		},
	}
	cmd.Flags().StringVarP(&path, "file", "f", "commandes.xlsx", "output file")
	return cmd
}
