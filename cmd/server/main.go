// Package main implements the entry point for the city catalog API server,
// which serves cities and their points of interest over HTTP.
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/cityinfohq/cityinfo-api/internal/config"
	"github.com/cityinfohq/cityinfo-api/internal/platform/logger"
)

func main() {
	// A missing .env file is fine; the environment can carry everything.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.Setup(logger.Config{Level: cfg.Server.LogLevel})
	if err != nil {
		log.Fatalf("Failed to set up logger: %v", err)
	}

	appLogger.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver,
		"metrics_enabled", cfg.Server.MetricsEnabled)

	app, err := newApplication(context.Background(), cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.startHTTPServer(context.Background(), app.setupRouter()); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
