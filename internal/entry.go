// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/verlow/clientele/internal/api"
	"github.com/verlow/clientele/internal/logic"
	"github.com/verlow/clientele/internal/mcpserver"
	"github.com/verlow/clientele/internal/snapshot"
	"github.com/verlow/clientele/internal/sse"
	"github.com/verlow/clientele/internal/store"
)

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger. MCP mode logs to stderr so
	// stdout stays a clean protocol stream.
	logOut := os.Stdout
	if app.mcp {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("backend", cfg.Data.Backend),
		slog.String("log_level", cfg.App.LogLevel.String()))

	// Initialize the snapshot provider.
	var provider snapshot.Provider
	var fsProvider *snapshot.FS
	switch cfg.Data.Backend {
	case BackendSQLite:
		db, err := snapshot.Open(cfg.Data.DBPath)
		if err != nil {
			return fmt.Errorf("init snapshot db: %w", err)
		}
		provider = db
	default:
		fsp, err := snapshot.NewFS(cfg.Data.Dir)
		if err != nil {
			return fmt.Errorf("init snapshot dir: %w", err)
		}
		provider = fsp
		fsProvider = fsp
	}
	defer provider.Close()

	// Build the model and load the snapshot.
	st := store.New()
	lg, err := logic.New(st, provider, logger)
	if err != nil {
		return fmt.Errorf("init logic: %w", err)
	}
	if err := lg.Load(ctx); err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	if app.mcp {
		logger.Info("Starting MCP server on stdio")
		return mcpserver.New(lg).ServeStdio()
	}

	// SSE broker, fed by command mutations.
	broker := sse.NewBroker(2 * time.Second)
	defer broker.Close()
	lg.SetListener(broker.PublishModelEvent)

	// Build API router.
	apiRouter := api.NewRouter(lg, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Watch the data directory for external edits (file backend only).
	if fsProvider != nil {
		g.Go(func() error {
			return snapshot.Watch(gCtx, fsProvider, logger, lg.ApplySnapshot)
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}
