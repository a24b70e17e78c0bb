package cmd

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/garghot/food-client/api"
	"github.com/garghot/food-client/auth"
	"github.com/garghot/food-client/cart"
	"github.com/garghot/food-client/config"
	"github.com/garghot/food-client/logger"
	"github.com/garghot/food-client/models"
	"github.com/garghot/food-client/store"
	"github.com/spf13/cobra"
)

// cli holds what the commands share. It is filled in before any command runs.
type cli struct {
	cfgPath string
	output  string
	verbose bool

	cfg        *config.Config
	log        *logger.Logger
	kv         *store.Gorm
	services   *api.Services
	carts      *cart.Storage
	reconciler *cart.Reconciler
	sessions   *auth.SessionStore
	auth       *auth.Service
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "garghot",
		Short:         "Browse the Garg'Hot menu, manage your cart and place orders",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return c.close()
		},
	}

	root.PersistentFlags().StringVarP(&c.cfgPath, "config", "c", "config.yaml", "path to the YAML config file")
	root.PersistentFlags().StringVarP(&c.output, "output", "o", "text", "output format: text, json or yaml")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "log API calls to stderr")

	root.AddCommand(
		c.serveCmd(),
		c.loginCmd(),
		c.guestCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.platsCmd(),
		c.platCmd(),
		c.categoriesCmd(),
		c.cartCmd(),
		c.checkoutCmd(),
		c.syncCmd(),
		c.ordersCmd(),
		c.ventesCmd(),
	)
	return root
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func (c *cli) setup(cmd *cobra.Command) error {
	switch c.output {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q", c.output)
	}

	cfg, err := config.Load(c.cfgPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	c.log = logger.Discard()
	if c.verbose {
		c.log = logger.NewWithWriter("garghot-cli", cmd.ErrOrStderr())
	}

	kv, err := store.Open(cfg.Store.DSN)
	if err != nil {
		return err
	}
	c.kv = kv

	c.services = api.New(api.Options{
		BaseURL:  cfg.API.URL,
		Timeout:  cfg.API.Timeout,
		CacheTTL: cfg.API.CacheTTL,
		Logger:   c.log,
	})
	c.carts = cart.NewStorage(kv)
	c.reconciler = cart.NewReconciler(c.carts, c.services.Commandes, c.services.Plats, c.log)
	c.sessions = auth.NewSessionStore(kv)

	identity := auth.NewIdentityClient(cfg.Firebase.APIKey, cfg.API.Timeout)
	c.auth = auth.NewService(identity, nil, auth.NewTokens(cliSecret(cfg)), c.reconciler, c.log)
	return nil
}

func (c *cli) close() error {
	if c.kv == nil {
		return nil
	}
	err := c.kv.Close()
	c.kv = nil
	return err
}

// cliSecret signs the tokens of CLI sessions. They are never checked by the
// CLI itself, so a throwaway secret is fine when none is configured.
func cliSecret(cfg *config.Config) string {
	if cfg.Server.JWTSecret != "" {
		return cfg.Server.JWTSecret
	}
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// session returns the signed-in user, guest or not.
func (c *cli) session(ctx context.Context) (models.Session, error) {
	s, err := c.sessions.Load(ctx)
	if errors.Is(err, auth.ErrNoSession) {
		return s, errors.New("not signed in: run `garghot login` or `garghot guest` first")
	}
	return s, err
}
