package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/bitelog/bitelog/internal/config"
	"github.com/bitelog/bitelog/internal/mealtext"
	"github.com/bitelog/bitelog/internal/nutrition"
	"github.com/bitelog/bitelog/internal/purge"
	"github.com/bitelog/bitelog/internal/server"
	"github.com/bitelog/bitelog/internal/service"
	"github.com/bitelog/bitelog/internal/storage/sqlite"
	"github.com/bitelog/bitelog/pkg/logging"
)

func main() {
	logging.Setup()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize SQLite storage
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	resolver := nutrition.NewOpenFoodFacts(cfg.LookupBaseURL, cfg.LookupTimeout)
	svc := service.NewLogService(store, resolver, mealtext.NewRegexParser())

	scheduler := purge.New(store, cfg.PurgeInterval)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	// Wrap with h2c for HTTP/2 without TLS
	handler := h2c.NewHandler(server.New(svc).Handler(), &http2.Server{})

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	go func() {
		slog.Info("Server starting", "address", cfg.Addr, "lookup", cfg.LookupBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}
