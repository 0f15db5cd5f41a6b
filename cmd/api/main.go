package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/medibook/medibook/internal/api/router"
	"github.com/medibook/medibook/internal/appointments"
	"github.com/medibook/medibook/internal/booking"
	appconfig "github.com/medibook/medibook/internal/config"
	"github.com/medibook/medibook/internal/directory"
	"github.com/medibook/medibook/internal/negotiation"
	"github.com/medibook/medibook/internal/observability/metrics"
	"github.com/medibook/medibook/pkg/logging"
)

func main() {
	// Load .env if present; real environments set variables directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting medibook API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Initialize stores
	directoryStore := directory.NewStore(directory.WithLatency(cfg.SimulatedLatency))
	appointmentStore := appointments.NewStore(appointments.WithLatency(cfg.SimulatedLatency))
	if cfg.SeedDemoData {
		directoryStore.SeedDemo()
		appointmentStore.SeedDemo(time.Now())
		logger.Info("seeded demo directory and appointments")
	}

	// Metrics
	registry := prometheus.NewRegistry()
	negotiationMetrics := metrics.NewNegotiationMetrics(registry)

	// Negotiation collaborator; the service degrades gracefully without it.
	var llm negotiation.LLMClient
	if cfg.GeminiAPIKey != "" {
		gemini, err := negotiation.NewGeminiLLMClient(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Error("failed to create gemini client", "error", err)
			os.Exit(1)
		}
		defer gemini.Close()
		llm = gemini
	} else {
		logger.Warn("GEMINI_API_KEY not set; slot suggestions will use fallback times and agentic booking is disabled")
	}

	negotiator := negotiation.NewService(llm, directoryStore, logger, negotiationMetrics, cfg.NegotiationTimeout)
	bookingService := booking.NewService(negotiator, directoryStore, appointmentStore, logger, negotiationMetrics)

	// Initialize handlers
	directoryHandler := directory.NewHandler(directoryStore, logger)
	appointmentsHandler := appointments.NewHandler(appointmentStore, directoryStore, logger)
	bookingHandler := booking.NewHandler(bookingService, logger)

	// Setup router
	r := router.New(&router.Config{
		Logger:              logger,
		DirectoryHandler:    directoryHandler,
		AppointmentsHandler: appointmentsHandler,
		BookingHandler:      bookingHandler,
		MetricsHandler:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		AuthRateLimit:       5,
		AuthBurst:           10,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
