// Package main is the entry point for the Finance Coach API server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/finance-tracker/coach/config"
	"github.com/finance-tracker/coach/internal/infra/db"
	"github.com/finance-tracker/coach/internal/infra/dependency"
	"github.com/finance-tracker/coach/internal/integration/persistence/model"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(os.Getenv("LOG_LEVEL")),
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg := config.Load()

	slog.Info("Starting Finance Coach API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"levelStrategy", cfg.Progression.LevelStrategy,
		"eventsBackend", cfg.Events.Backend,
	)

	// The ledger cannot run without its store
	database, err := db.NewConnection(&cfg.Database)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.AutoMigrate(model.All()...); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Event delivery is best-effort; fall back to the log when the broker is down
	collaborators, closeEvents, err := dependency.NewEventCollaborators(ctx, cfg)
	if err != nil {
		slog.Warn("Event backend unavailable, logging events instead",
			"backend", cfg.Events.Backend,
			"error", err,
		)
		cfg.Events.Backend = config.EventsBackendLog
		collaborators, closeEvents, _ = dependency.NewEventCollaborators(ctx, cfg)
	}
	defer func() {
		if err := closeEvents(); err != nil {
			slog.Error("Failed to close event backend", "error", err)
		}
	}()
	collaborators.EventHealth = orDefault(collaborators.EventHealth)

	injector, err := dependency.NewInjector(cfg, database.DB(), collaborators)
	if err != nil {
		slog.Error("Failed to wire dependencies", "error", err)
		os.Exit(1)
	}

	seeded, err := injector.SeedCategories.Execute(ctx)
	if err != nil {
		slog.Error("Failed to seed categories", "error", err)
		os.Exit(1)
	}
	slog.Info("Category catalog ready", "created", seeded.Created, "existing", seeded.Existing)

	if cfg.AI.GeminiAPIKey == "" {
		slog.Warn("GEMINI_API_KEY is not set, receipt extraction is disabled")
	}

	// Setup router
	engine := injector.Router.Setup(cfg.Server.Environment)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	<-ctx.Done()
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		return
	}

	slog.Info("Server exited properly")
}

func logLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// orDefault treats the log backend as always healthy.
func orDefault(check func() bool) func() bool {
	if check != nil {
		return check
	}
	return func() bool { return true }
}
