// Magento storefront - cart and checkout over Magento GraphQL.
// Designed for Cloud Run deployment; visitor state lives in cookies.
package main

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

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"magento-storefront/internal/checkout"
	"magento-storefront/internal/config"
	"magento-storefront/internal/handler"
	"magento-storefront/internal/magento"
	"magento-storefront/internal/metrics"
	"magento-storefront/internal/middleware"
	"magento-storefront/internal/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Local .env is optional and never read in production
	if os.Getenv("ENVIRONMENT") != "production" {
		_ = godotenv.Load()
	}

	ctx := context.Background()
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := initLogger(cfg)
	logger.Info("configuration loaded",
		slog.String("store_id", cfg.StoreID),
		slog.String("environment", cfg.Environment),
		slog.String("graphql_url", cfg.Commerce.GraphQLURL),
		slog.Bool("chrome_tls", cfg.Commerce.ChromeTLS),
	)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	commerce, err := magento.New(magento.Config{
		GraphQLURL:      cfg.Commerce.GraphQLURL,
		Timeout:         cfg.Commerce.Timeout,
		ChromeTLS:       cfg.Commerce.ChromeTLS,
		BreakerFailures: cfg.Commerce.BreakerFailures,
		BreakerCooldown: cfg.Commerce.BreakerCooldown,
		Metrics:         metrics.NewCommerce(reg),
		Logger:          logger,
	})
	if err != nil {
		return fmt.Errorf("creating magento client: %w", err)
	}

	h := handler.New(handler.Deps{
		Commerce:      commerce,
		Checkout:      checkout.New(commerce, metrics.NewCheckout(reg), logger),
		Sessions:      session.NewManager(cfg.IsProduction()),
		StorefrontURL: cfg.Commerce.StorefrontBaseURL,
		Gatherer:      reg,
		Logger:        logger,
	})

	mux := http.NewServeMux()
	h.RegisterRoutes(mux)

	// Recovery must be outermost to catch panics from logging middleware;
	// RequestID runs before Logging so log lines carry the id.
	httpHandler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logging(logger),
	)(mux)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      httpHandler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)

	go func() {
		logger.Info("server starting",
			slog.String("port", cfg.Port),
			slog.String("addr", server.Addr),
		)
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-shutdown:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			server.Close()
			return fmt.Errorf("shutdown error: %w", err)
		}
	}

	logger.Info("server stopped")
	return nil
}

// initLogger creates a structured logger configured for the environment.
// Production uses JSON format for GCP Cloud Logging compatibility.
// Development uses text format for readability.
func initLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
		// Add source location in debug mode
		AddSource: level == slog.LevelDebug,
	}

	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
