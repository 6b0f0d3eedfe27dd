// Curio - Learning Resource Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/tomtom215/curio/docs" // Import generated swagger docs
	"github.com/tomtom215/curio/internal/api"
	"github.com/tomtom215/curio/internal/app"
	"github.com/tomtom215/curio/internal/catalog"
	"github.com/tomtom215/curio/internal/config"
	"github.com/tomtom215/curio/internal/database"
	"github.com/tomtom215/curio/internal/logging"
	"github.com/tomtom215/curio/internal/middleware"
	"github.com/tomtom215/curio/internal/supervisor"
	"github.com/tomtom215/curio/internal/supervisor/services"
)

//nolint:gocyclo // Main initialization function with sequential setup steps
func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	logging.Info().
		Str("version", api.Version).
		Str("environment", cfg.Server.Environment).
		Str("db_path", cfg.Database.Path).
		Bool("catalog_ingest", cfg.Catalog.Enabled).
		Msg("Starting Curio")

	if cfg.ShouldWarnAboutCORS() {
		logging.Warn().Msg("CORS allows any origin (*). Set CORS_ORIGINS before exposing Curio publicly.")
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Str("path", db.GetDatabasePath()).Msg("Database initialized successfully")

	if cfg.Database.SeedFile != "" {
		if err := seedCatalog(context.Background(), db, cfg.Database.SeedFile); err != nil {
			// Close database before fatal exit to ensure defer runs
			if closeErr := db.Close(); closeErr != nil {
				logging.Error().Err(closeErr).Msg("Error closing database")
			}
			logging.Fatal().Err(err).Str("file", cfg.Database.SeedFile).Msg("Failed to seed catalog")
		}
	}

	engine, breakers, err := app.NewEngine(cfg, db, logging.WithComponent("recommend"))
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize recommendation engine")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Suture only speaks slog; route it through zerolog.
	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	ingest, err := initCatalogIngest(ctx, cfg, db, tree)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize catalog ingest")
	}
	defer ingest.Close()

	perfMon := middleware.NewPerformanceMonitor(1000, time.Second)
	handler := api.NewHandler(engine, db, breakers, perfMon)
	router := api.NewRouter(handler, &cfg.Security)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.Timeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")
	if limiter := router.UserLimiter(); limiter != nil {
		tree.AddAPIService(services.NewSweepService("user-limiter-sweep", limiter, time.Minute))
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish...")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

// seedCatalog loads a YAML catalog file into the database.
func seedCatalog(ctx context.Context, store catalog.Store, path string) error {
	f, err := catalog.LoadFile(path)
	if err != nil {
		return err
	}
	if err := f.Validate(); err != nil {
		return err
	}
	result, err := catalog.Seed(ctx, store, f, logging.WithComponent("seed"))
	if err != nil {
		return err
	}
	logging.Info().
		Str("file", path).
		Int("profiles", result.Profiles).
		Int("resources", result.Resources).
		Msg("Catalog seeded")
	return nil
}
