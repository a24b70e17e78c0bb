package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/garghot/food-client/auth"
	"github.com/spf13/cobra"
)

func (c *cli) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			guestID := ""
			if current, err := c.sessions.Load(ctx); err == nil && current.IsGuest() {
				guestID = current.UserID
			}

			res, err := c.auth.Login(ctx, email, password, guestID)
			if err != nil {
				return errors.New(auth.Message(err))
			}
			if err := c.sessions.Save(ctx, res.Session); err != nil {
				return err
			}

			return c.render(cmd, res, func(w io.Writer) {
				fmt.Fprintf(w, "Signed in as %s\n", res.Session.Email)
				if guestID != "" {
					fmt.Fprintf(w, "Guest cart: %s\n", res.MergeStatus)
				}
				if res.Imported > 0 {
					fmt.Fprintf(w, "%d plat(s) restored from your open order\n", res.Imported)
				}
			})
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	return cmd
}

func (c *cli) guestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guest",
		Short: "Continue as a guest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if current, err := c.sessions.Load(ctx); err == nil && current.IsGuest() {
				return c.message(cmd, "Already browsing as guest %s", current.UserID)
			}

			session, err := c.auth.Guest()
			if err != nil {
				return err
			}
			if err := c.sessions.Save(ctx, session); err != nil {
				return err
			}
			return c.message(cmd, "Browsing as guest %s", session.UserID)
		},
	}
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			current, err := c.sessions.Load(ctx)
			if errors.Is(err, auth.ErrNoSession) {
				return c.message(cmd, "Not signed in")
			}
			if err != nil {
				return err
			}
			if current.IsGuest() {
				if err := c.carts.Clear(ctx, current.UserID); err != nil {
					return err
				}
			}
			if err := c.sessions.Clear(ctx); err != nil {
				return err
			}
			return c.message(cmd, "Signed out")
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.session(cmd.Context())
			if err != nil {
				return err
			}
			view := map[string]interface{}{
				"user_id":    s.UserID,
				"email":      s.Email,
				"role":       s.Role,
				"expires_at": s.ExpiresAt,
			}
			return c.render(cmd, view, func(w io.Writer) {
				fmt.Fprintf(w, "User:\t%s\n", s.UserID)
				if s.Email != "" {
					fmt.Fprintf(w, "Email:\t%s\n", s.Email)
				}
				fmt.Fprintf(w, "Role:\t%s\n", s.Role)
				fmt.Fprintf(w, "Expires:\t%s\n", s.ExpiresAt.Format("2006-01-02 15:04"))
			})
		},
	}
}
