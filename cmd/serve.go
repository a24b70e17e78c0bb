package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/garghot/food-client/auth"
	orderControllers "github.com/garghot/food-client/controllers/order"
	"github.com/garghot/food-client/logger"
	"github.com/garghot/food-client/routes"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func (c *cli) serveCmd() *cobra.Command {
	var port string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local HTTP server for the app",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port != "" {
				c.cfg.Server.Port = port
			}
			return c.serve(cmd.Context())
		},
	}
	cmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on (overrides PORT)")
	return cmd
}

func (c *cli) serve(parent context.Context) error {
	if err := c.cfg.Validate(); err != nil {
		return err
	}
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("✅ Starting server...")
	serverLog := logger.New("garghot-server")
	requestID := logger.GenerateRequestID()

	var verifier auth.IDTokenVerifier
	if c.cfg.Firebase.CredentialsJSON != "" {
		v, err := auth.NewFirebaseVerifier(ctx, c.cfg.Firebase.ProjectID, c.cfg.Firebase.CredentialsJSON)
		if err != nil {
			return err
		}
		verifier = v
	}

	identity := auth.NewIdentityClient(c.cfg.Firebase.APIKey, c.cfg.API.Timeout)
	authSvc := auth.NewService(identity, verifier, auth.NewTokens(c.cfg.Server.JWTSecret), c.reconciler, serverLog)
	hub := orderControllers.NewHub(c.services.Commandes, serverLog)

	gin.SetMode(gin.ReleaseMode)
	engine, err := routes.NewEngine(routes.Deps{
		Config:     c.cfg,
		Services:   c.services,
		Carts:      c.carts,
		Reconciler: c.reconciler,
		Auth:       authSvc,
		Hub:        hub,
		Log:        serverLog,
	})
	if err != nil {
		return err
	}

	go hub.Run(ctx, c.cfg.Server.OrdersPollInterval)

	srv := &http.Server{
		Addr:              ":" + c.cfg.Server.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		serverLog.Info("service_started", requestID, fmt.Sprintf("listening on :%s", c.cfg.Server.Port),
			slog.String("api_url", c.cfg.API.URL),
			slog.Bool("firebase_admin", verifier != nil))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	serverLog.Info("graceful_shutdown", requestID, "received shutdown signal")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	serverLog.Info("service_stopped", requestID, "server stopped gracefully")
	return nil
}
