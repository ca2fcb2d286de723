package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"boutika/internal/analytics"
	"boutika/internal/cart"
	"boutika/internal/config"
	"boutika/internal/database"
	"boutika/internal/handler"
	"boutika/internal/repository"
	"boutika/internal/router"
	"boutika/internal/service"
	"boutika/internal/storage"
	"boutika/internal/whatsapp"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting boutika API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	analyticsRepo := repository.NewAnalyticsRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)

	// Initialize image storage with S3 and local fallback
	var uploader storage.Uploader
	mediaDir := ""

	if cfg.Storage.S3Enabled {
		uploader, err = storage.NewS3Uploader(ctx, cfg.Storage.S3Bucket, cfg.Storage.S3Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 uploader, falling back to local file storage")
			uploader = storage.NewFileUploader(cfg.Storage.LocalDir, cfg.Storage.LocalBaseURL, logger)
			mediaDir = cfg.Storage.LocalDir
		}
	} else {
		uploader = storage.NewFileUploader(cfg.Storage.LocalDir, cfg.Storage.LocalBaseURL, logger)
		mediaDir = cfg.Storage.LocalDir
		logger.Info().Msg("using local file storage for product images (S3 disabled)")
	}

	// Initialize services
	productService := service.NewProductService(productRepo, uploader, cfg.Storage.Prefix, logger)
	cartService := service.NewCartService(cartRepo, productRepo, logger)

	// Initialize analytics
	tracker := analytics.NewTracker(analyticsRepo, logger)
	aggregator := analytics.NewAggregator(analyticsRepo, cfg.Analytics.RecentWindow, logger)

	// Session carts live in process memory
	cartStore := cart.NewStore()

	// WhatsApp checkout hand-off
	builder := whatsapp.NewBuilder(cfg.WhatsApp.Phone)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Product:   handler.NewProductHandler(productService, tracker, logger),
		Cart:      handler.NewCartHandler(cartStore, productService, tracker, logger),
		UserCart:  handler.NewUserCartHandler(cartService, logger),
		Checkout:  handler.NewCheckoutHandler(builder, cartStore, productService, tracker, logger),
		Analytics: handler.NewAnalyticsHandler(tracker, aggregator, logger),
		Admin:     handler.NewAdminHandler(productService, logger),
	}

	// Initialize router
	mux := router.New(handlers, cfg.Auth.AdminAPIKey, mediaDir, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
