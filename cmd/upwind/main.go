package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/miriamsimone/upwind/internal/advisory"
	"github.com/miriamsimone/upwind/internal/api"
	"github.com/miriamsimone/upwind/internal/conflicts"
	"github.com/miriamsimone/upwind/internal/config"
	"github.com/miriamsimone/upwind/internal/roster"
	"github.com/miriamsimone/upwind/internal/weather"
	"github.com/miriamsimone/upwind/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to configuration file")
	flag.Parse()

	// Secrets (API keys) come from the environment; a .env file is a
	// convenience for local development.
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: no .env file loaded: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logg, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logg.Sync()

	logg.Info("Starting upwind",
		logger.Int("port", cfg.Server.Port),
		logger.String("weather_base_url", cfg.Weather.APIBaseURL),
		logger.String("advisory_model", cfg.Advisory.Model),
	)

	// Roster state is in-process only; seed the demo roster.
	store := roster.NewStore()
	roster.Seed(store)

	weatherClient := weather.NewClient(
		cfg.Weather.APIKey,
		cfg.Weather.APIBaseURL,
		cfg.WeatherTimeout(),
		cfg.Weather.MaxRetries,
		logg,
	)
	weatherService := weather.NewService(weatherClient, cfg.WeatherCacheExpiry(), logg)

	scanner := conflicts.NewScanner(weatherService, cfg.Scanner.WindowDays, logg)

	advisoryClient := advisory.NewOpenAIClient(
		cfg.Advisory.APIKey,
		cfg.Advisory.Model,
		cfg.Advisory.Temperature,
		cfg.Advisory.MaxTokens,
		logg,
	)
	advisoryService := advisory.NewService(advisoryClient, cfg.AdvisoryTimeout(), logg)

	router := api.NewRouter(store, weatherService, scanner, advisoryService, cfg, logg)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router.Routes(),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logg.Info("HTTP server listening", logger.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error("HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	logg.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error("Shutdown error", logger.Error(err))
	}
}
