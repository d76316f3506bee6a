package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bkowalski1303/predictive-sales-forecast/internal/config"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/ingest"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/logging"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/queue"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/router"
	"github.com/bkowalski1303/predictive-sales-forecast/internal/store"
)

var (
	Version   = "dev"     // Injected via ldflags during build
	GitCommit = "unknown" // Injected via ldflags during build
	BuildTime = "unknown" // Injected via ldflags during build
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobal(logger)
	logger.Info("API service starting...",
		"version", Version, "commit", GitCommit, "build time", BuildTime)

	// Open the sales store
	if err := cfg.EnsureDirectories(); err != nil {
		logger.Fatal("Failed to create data directories", "error", err)
	}
	logger.Info("Opening sales store", "driver", cfg.Store.Driver, "path", cfg.Store.Path)
	salesStore, err := store.NewStore(cfg.Store)
	if err != nil {
		logger.Fatal("Failed to open sales store", "error", err)
	}
	defer func() { _ = salesStore.Close() }()

	// Wrap with the Redis series cache when enabled
	if cfg.Cache.Enabled {
		logger.Info("Connecting to Redis series cache", "addr", cfg.Cache.Addr)
		cached, err := store.NewSeriesCache(salesStore, cfg.Cache, logger)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", "error", err)
		}
		salesStore = cached
	}

	// Connect to Queue (configurable backend)
	logger.Info("Connecting to Queue", "type", cfg.Queue.Type, "url", cfg.Queue.URL)
	queueClient, err := queue.NewQueue(cfg.Queue)
	if err != nil {
		logger.Fatal("Failed to connect to Queue", "error", err)
	}
	defer func() { _ = queueClient.Close() }()
	logger.Info("Queue connection established")

	// Start the ingest consumer so queued sales land in the store
	consumer := ingest.NewConsumer(logger, queueClient, salesStore)
	if err := consumer.Start(); err != nil {
		logger.Fatal("Failed to start ingest consumer", "error", err)
	}

	// Log authentication status
	if cfg.Auth.Enabled {
		logger.Info("API key authentication enabled", "num_keys", len(cfg.Auth.APIKeys))
	} else {
		logger.Warn("API key authentication DISABLED - all requests will be allowed")
	}

	// Initialize router
	app := router.New(logger, salesStore, queueClient, *cfg)

	// Start server in goroutine
	go func() {
		addr := cfg.ListenAddress()
		logger.Info("Server listening", "address", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Stop consuming before the server drains so in-flight writes finish
	if err := consumer.Stop(); err != nil {
		logger.Error("Failed to stop ingest consumer", "error", err)
	}

	// Graceful shutdown with 10 second timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
