// main is the entry point of the student registry.
//
// STARTUP SEQUENCE:
//  1. Load configuration from a YAML file
//  2. Initialise the logger
//  3. Open the record store and seed it on first run
//  4. Register all HTTP routes
//  5. Start the HTTP server in a separate goroutine
//  6. Block the main goroutine until an OS signal (Ctrl+C / kill) arrives
//  7. Gracefully shut down: finish in-flight requests, then exit
//
// RUNNING THE SERVER:
//
//	go run ./cmd/student-registry --config=config/local.yaml
//
// or (with the environment variable):
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/student-registry
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/student-registry/internal/config"
	"github.com/aanand-mishra/student-registry/internal/http/router"
	"github.com/aanand-mishra/student-registry/internal/metrics"
	"github.com/aanand-mishra/student-registry/internal/registry"
	"github.com/aanand-mishra/student-registry/internal/storage"
	"github.com/aanand-mishra/student-registry/internal/storage/jsonfile"
	"github.com/aanand-mishra/student-registry/internal/storage/memory"
	"github.com/aanand-mishra/student-registry/internal/storage/sqlite"
)

const version = "1.0.0"

func main() {
	// ── 1. Load Config ────────────────────────────────────────────────────
	cfg := config.MustLoad()

	// ── 2. Initialise Logger ──────────────────────────────────────────────
	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting student-registry",
		slog.String("env", cfg.Env),
		slog.String("version", version),
	)

	// ── 3. Initialise Storage ─────────────────────────────────────────────
	// The registry only sees the storage.Storage interface; the driver is
	// picked from config.
	store, closeStore, err := openStorage(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	if seeder, ok := store.(storage.Seeder); ok {
		seeded, err := seeder.Seed(context.Background(), storage.DefaultSeed())
		if err != nil {
			log.Error("failed to seed storage", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if seeded {
			log.Info("created initial data", slog.String("path", cfg.StoragePath))
		}
	}

	log.Info("storage initialised",
		slog.String("driver", cfg.StorageDriver),
		slog.String("path", cfg.StoragePath),
		slog.String("io_policy", cfg.IOPolicy))

	m := metrics.New()
	reg := registry.New(store,
		registry.WithLogger(log),
		registry.WithMetrics(m),
		registry.WithStrictIO(cfg.Strict()),
	)

	// ── 4. Register HTTP Routes ───────────────────────────────────────────
	handler := router.New(reg, router.Options{
		Logger:     log,
		Metrics:    m,
		CORSOrigin: cfg.CORSOrigin,
		StaticDir:  cfg.StaticDir,
	})

	// ── 5. Create the HTTP Server ─────────────────────────────────────────
	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: handler,

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// ── 6. Start Server in a Goroutine ────────────────────────────────────
	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		// ListenAndServe returns http.ErrServerClosed after Shutdown.
		if err := server.ListenAndServe(); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// ── 7. Wait for Shutdown Signal ───────────────────────────────────────
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		return
	}

	log.Info("server stopped gracefully")
}

// openStorage builds the configured store and a func releasing it.
func openStorage(cfg *config.Config) (storage.Storage, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverJSON:
		s, err := jsonfile.New(cfg.StoragePath)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	case config.DriverSQLite:
		s, err := sqlite.New(cfg.StoragePath)
		if err != nil {
			return nil, nil, err
		}
		return s, closer(s), nil
	case config.DriverMemory:
		return memory.New(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func closer(c io.Closer) func() {
	return func() {
		if err := c.Close(); err != nil {
			slog.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}
}

// setupLogger returns a *slog.Logger configured for the given environment.
//
// Development (dev): human-readable text output at DEBUG level.
// Production (prod): machine-readable JSON output at INFO level.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
