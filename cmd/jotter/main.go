package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/jotter-dev/jotter/db"
	"github.com/jotter-dev/jotter/internal/api"
	"github.com/jotter-dev/jotter/internal/config"
	"github.com/jotter-dev/jotter/internal/logging"
	"github.com/jotter-dev/jotter/internal/middleware"
	"github.com/jotter-dev/jotter/internal/router"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:           "jotter",
		Short:         "GraphQL API for users, notes and todos",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			envLoaded, err := config.LoadEnvFile(v.GetString(config.KeyEnvFile))
			if err != nil {
				return err
			}

			cfg, err := config.Load(v)
			if err != nil {
				return err
			}

			logger, err := logging.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			if !envLoaded {
				logger.Warn("no env file loaded", zap.String("path", v.GetString(config.KeyEnvFile)))
			}

			return run(cmd.Context(), cfg, logger)
		},
	}

	if err := config.BindFlags(cmd.Flags(), v); err != nil {
		panic(err)
	}

	return cmd
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := db.ConnectDatabase(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		return err
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logger.Warn("closing database", zap.Error(err))
		}
	}()
	logger.Info("Connected to database")

	schema, err := api.NewSchema(store, logger)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	r := router.NewRouter(router.Dependencies{
		Schema:  schema,
		DB:      store,
		Logger:  logger,
		Metrics: middleware.NewMetrics(prometheus.NewRegistry()),
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("Failed to start server", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
