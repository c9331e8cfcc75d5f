package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mcoot/puzzle-progress/internal/api"
	"github.com/mcoot/puzzle-progress/internal/factory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Getenv); err != nil {
		slog.Error("server exited", slog.String("error", err.Error()))
		stop()
		os.Exit(1)
	}
}

// run serves the API until ctx is cancelled. Any startup, serve or
// shutdown failure is returned so main can exit non-zero.
func run(ctx context.Context, getenv func(string) string) (err error) {
	settings, err := loadSettings(getenv)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: settings.LogLevel,
	}))
	slog.SetDefault(logger)

	settings.Factory.Logger = logger

	// Create application factory
	app, err := factory.New(settings.Factory)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("failed to close storage", slog.String("error", closeErr.Error()))
			if err == nil {
				err = fmt.Errorf("close storage: %w", closeErr)
			}
		}
	}()

	router := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		ProgressService: app.ProgressService,
		AllowedOrigin:   settings.AllowedOrigin,
	})

	server := api.NewServer(router, settings.Server, logger)

	logger.Info("server starting",
		slog.String("addr", server.Addr()),
		slog.String("storage", storageName(settings.Factory.StorageType)),
	)

	if err := server.Run(ctx); err != nil {
		return err
	}

	logger.Info("server stopped")
	return nil
}

func storageName(storageType string) string {
	if storageType == "" {
		return factory.StorageTypeSQLite
	}
	return storageType
}
