package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flightcast-service/internal/domain/repository"
	"flightcast-service/internal/infrastructure/config"
	"flightcast-service/internal/interface/provider"
	"flightcast-service/internal/interface/render"
	fcRepo "flightcast-service/internal/interface/repository"
	"flightcast-service/internal/interface/telegram"
	"flightcast-service/internal/usecase"
	"flightcast-service/pkg/logger"
	"flightcast-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	var envFile string
	var debug bool
	pflag.StringVar(&envFile, "env-file", "", "path to an env file to load before reading configuration")
	pflag.BoolVar(&debug, "debug", false, "enable debug logging")
	pflag.Parse()

	// Create logger
	log := logger.NewLogger(debug)
	log.Info("Starting Flightcast Service")

	// Load configuration
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}
	if cfg.TelegramBotToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN not set")
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up metrics
	m := metrics.NewMetrics("flightcast")

	// Set up the flight data provider client
	flightProvider := provider.NewClient(cfg.ProviderBaseURL, cfg.ProviderDataURL, cfg.ProviderTimeout, m, log)

	// Airport reference data: provider-backed with a bounded in-process
	// cache, optionally consulting a local Postgres table first.
	var airports repository.AirportRepository = fcRepo.NewProviderAirportRepository(flightProvider)
	var airlines repository.AirlineRepository

	if cfg.PostgresDSN != "" {
		log.Info("Connecting to PostgreSQL reference data")
		gormDB, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		airlines = fcRepo.NewGormAirlineRepository(gormDB)
		airports = fcRepo.NewFallbackAirportRepository(fcRepo.NewGormAirportRepository(gormDB), airports)
	}

	cachedAirports := fcRepo.NewCachedAirportRepository(airports, cfg.AirportCacheSize, log)

	// Set up usecases
	lookup := usecase.NewFlightLookup(flightProvider, m, log)
	scanner := usecase.NewProximityScanner(flightProvider, lookup, m, log)
	formatter := usecase.NewReportFormatter(flightProvider, airlines, log)
	visualizer := usecase.NewVisualizer(cachedAirports, log)

	// Set up renderers
	mapRenderer := render.NewStaticMapRenderer(m, log)
	graphRenderer := render.NewChartRenderer(m, log)

	// Set up the Telegram transport
	bot, err := telegram.NewBot(
		cfg.TelegramBotToken,
		cfg.PollTimeout,
		lookup,
		scanner,
		formatter,
		visualizer,
		mapRenderer,
		graphRenderer,
		cfg.ArtifactDir,
		cfg.ScanRadiusMeters,
		log,
	)
	if err != nil {
		log.Fatal("Failed to create Telegram bot", "error", err)
	}

	// Start bot polling in a goroutine
	go bot.Start(ctx)

	// Set up HTTP server for metrics
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop the bot poller

	log.Info("Flightcast Service stopped")
}
