package cmd

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/garghot/food-client/cart"
	"github.com/garghot/food-client/catalog"
	"github.com/garghot/food-client/models"
	"github.com/spf13/cobra"
)

func (c *cli) cartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cart",
		Short: "Manage the local cart",
	}
	cmd.AddCommand(c.cartShowCmd(), c.cartAddCmd(), c.cartRemoveCmd(), c.cartQtyCmd(), c.cartClearCmd())
	return cmd
}

func (c *cli) printCart(cmd *cobra.Command, items []models.CartItem) error {
	total := cart.Total(items)
	view := map[string]interface{}{"items": items, "total": total}
	return c.render(cmd, view, func(w io.Writer) {
		if len(items) == 0 {
			fmt.Fprintln(w, "Your cart is empty")
			return
		}
		fmt.Fprintln(w, "ITEM\tPLAT\tNOM\tQTE\tSOUS-TOTAL")
		for _, it := range items {
			fmt.Fprintf(w, "%s\t%d\t%s\t%d\t%s\n", it.ID, it.PlatID, it.Nom, it.Quantity, catalog.FormatPrice(it.Subtotal()))
		}
		fmt.Fprintf(w, "TOTAL\t\t\t\t%s\n", catalog.FormatPrice(total))
	})
}

func (c *cli) cartShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.session(cmd.Context())
			if err != nil {
				return err
			}
			items, err := c.carts.Items(cmd.Context(), s.UserID)
			if err != nil {
				return err
			}
			return c.printCart(cmd, items)
		},
	}
}

func (c *cli) cartAddCmd() *cobra.Command {
	var qty int
	cmd := &cobra.Command{
		Use:   "add <plat-id>",
		Short: "Add a plat to the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.session(ctx)
			if err != nil {
				return err
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid plat id %q", args[0])
			}
			plat, err := c.services.Plats.Find(ctx, id)
			if err != nil {
				return err
			}
			item, err := c.carts.AddPlat(ctx, s.UserID, *plat, qty)
			if errors.Is(err, cart.ErrAlreadyInCart) {
				return fmt.Errorf("%s is already in your cart (item %s), use `cart qty` to change it", plat.Nom, item.ID)
			}
			if err != nil {
				return err
			}
			return c.message(cmd, "Added %d x %s", item.Quantity, item.Nom)
		},
	}
	cmd.Flags().IntVarP(&qty, "qty", "q", 1, "quantity")
	return cmd
}

func (c *cli) cartRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove a line from the cart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.session(cmd.Context())
			if err != nil {
				return err
			}
			if err := c.carts.Remove(cmd.Context(), s.UserID, args[0]); err != nil {
				return err
			}
			return c.message(cmd, "Removed %s", args[0])
		},
	}
}

func (c *cli) cartQtyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "qty <item-id> <quantity|+n|-n>",
		Short: "Set or change the quantity of a line",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := c.session(ctx)
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid quantity %q", args[1])
			}

			var item models.CartItem
			if args[1][0] == '+' || args[1][0] == '-' {
				item, err = c.carts.Increment(ctx, s.UserID, args[0], n)
			} else {
				item, err = c.carts.UpdateQuantity(ctx, s.UserID, args[0], n)
			}
			if err != nil {
				return err
			}
			return c.message(cmd, "%s: %d", item.Nom, item.Quantity)
		},
	}
}

func (c *cli) cartClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.session(cmd.Context())
			if err != nil {
				return err
			}
			if err := c.carts.Clear(cmd.Context(), s.UserID); err != nil {
				return err
			}
			return c.message(cmd, "Cart cleared")
		},
	}
}

func (c *cli) checkoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout",
		Short: "Send the cart as an order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := c.session(ctx)
			if err != nil {
				return err
			}
			if s.IsGuest() {
				return errors.New("sign in with `garghot login` to place an order")
			}

			res, err := c.reconciler.Checkout(ctx, s.UserID)
			if errors.Is(err, cart.ErrEmptyCart) {
				return errors.New("your cart is empty")
			}
			if err != nil {
				return err
			}
			return c.render(cmd, res, func(w io.Writer) {
				verb := "placed"
				if res.Action == cart.ActionUpdated {
					verb = "updated"
				}
				ref := ""
				if res.Commande != nil {
					ref = res.Commande.Ref()
				}
				fmt.Fprintf(w, "Order %s %s: %d plat(s), %s\n", ref, verb, len(res.Request.Plats), catalog.FormatPrice(res.Total))
				if res.Warning != "" {
					fmt.Fprintf(w, "Warning: %s\n", res.Warning)
				}
			})
		},
	}
}

func (c *cli) syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Restore the plats of your open order into the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			s, err := c.session(ctx)
			if err != nil {
				return err
			}
			if s.IsGuest() {
				return c.message(cmd, "Guests have no remote orders")
			}
			n, err := c.reconciler.Sync(ctx, s.UserID)
			if err != nil {
				return err
			}
			return c.message(cmd, "%d plat(s) restored", n)
		},
	}
}
