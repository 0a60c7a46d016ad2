package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/upb/blog-platform/app"
	"github.com/upb/blog-platform/config"
	"github.com/upb/blog-platform/internal/observability"
	"github.com/upb/blog-platform/repositories/postgres"
	"github.com/upb/blog-platform/routes"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "blogd",
		Short:         "Blog platform API server and support knowledge base tools",
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(kbCmd())
	return rootCmd
}

// loadRuntime reads the configuration and builds the logger shared by
// server-side commands
func loadRuntime(ctx context.Context) (*config.Config, *zap.Logger, error) {
	cfg, err := config.New(ctx)
	if err != nil {
		return nil, nil, err
	}
	logger, err := observability.NewLogger(cfg.Observability)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, logger, err := loadRuntime(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			deps, err := app.NewDependencies(ctx, cfg, logger)
			if err != nil {
				logger.Error("failed to initialize dependencies", zap.Error(err))
				return err
			}

			return runServer(ctx, deps)
		},
	}
}

// runServer serves until ctx is cancelled, then drains in-flight requests
func runServer(ctx context.Context, deps *app.Dependencies) error {
	cfg := deps.Config
	logger := deps.Logger

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      routes.SetupRoutes(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			_ = deps.Close(context.Background())
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	return deps.Close(shutdownCtx)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the database tables if they do not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadRuntime(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			db, err := postgres.NewDB(cfg.Database, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.InitSchema(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
}
