package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/yaxyebile/admin/internal/app/store"
	"github.com/yaxyebile/admin/internal/infrastructure/backend"
	"github.com/yaxyebile/admin/internal/infrastructure/cartstorage"
	"github.com/yaxyebile/admin/internal/infrastructure/config"
	adminhttp "github.com/yaxyebile/admin/internal/infrastructure/http"
	"github.com/yaxyebile/admin/internal/infrastructure/http/handler"
	"github.com/yaxyebile/admin/internal/infrastructure/telemetry"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	// Initialize OpenTelemetry
	var telem *telemetry.Telemetry
	if cfg.OTLP.Enabled {
		t, err := telemetry.NewTelemetry(&cfg.OTLP)
		if err != nil {
			log.Fatalf("Failed to initialize telemetry: %v", err)
		}
		telem = t
	} else {
		telem = telemetry.NewNoOpTelemetry(&cfg.OTLP)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ensure telemetry is shutdown on exit
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := telem.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	tracer := telem.TracerProvider.Tracer("storefront-admin-api")
	meter := telem.MeterProvider.Meter("storefront-admin-api")
	logger := telem.Logger

	logger.Info("Starting storefront admin gateway")

	// Backend client for the remote store service
	client := backend.NewClient(&cfg.Backend, logger)

	// Catalog store, seeded from the backend. A failed initial load is not
	// fatal: the gateway starts with an empty cache and stays available.
	catalog := store.NewCatalogStore(client, tracer, meter, logger)
	loadCtx, loadCancel := context.WithTimeout(ctx, cfg.Backend.Timeout)
	if err := catalog.Load(loadCtx); err != nil {
		logger.Warn("Initial catalog load failed, starting with an empty cache",
			slog.String("error", err.Error()),
		)
	}
	loadCancel()

	// Cart storage backend
	storage, err := newCartStorage(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize cart storage: %v", err)
	}

	// Cart store, restored from the persisted blob
	cart := store.NewCartStore(client, storage, tracer, meter, logger)
	if err := cart.Restore(ctx); err != nil {
		logger.Warn("Cart restore failed, starting with an empty cart",
			slog.String("error", err.Error()),
		)
	}

	// Handlers
	catalogHandler := handler.NewCatalogHandler(catalog, logger)
	cartHandler := handler.NewCartHandler(cart, catalog, logger)
	authHandler := handler.NewAuthHandler(client, logger)

	// HTTP server
	server := adminhttp.NewServer(&cfg.Server, catalogHandler, cartHandler, authHandler, logger, telem)

	go func() {
		if err := server.Start(); err != nil {
			logger.Error("Server error", "error", err.Error())
			cancel()
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		logger.Info("Shutting down server...")
	case <-ctx.Done():
		logger.Info("Context cancelled, shutting down...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err.Error())
	}

	logger.Info("Server stopped")
}

func newCartStorage(cfg *config.Config) (cartstorage.Storage, error) {
	if cfg.Cart.StorageBackend == "redis" {
		return cartstorage.NewRedisStorage(cfg.Cart.RedisURL, cfg.Cart.StorageKey)
	}
	return cartstorage.NewFileStorage(cfg.Cart.FilePath), nil
}
