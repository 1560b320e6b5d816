package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"passforge/backend/internal/config"
	"passforge/backend/internal/server"
	"passforge/backend/internal/utils"

	"go.uber.org/zap"
)

func main() {
	// Configuration is loaded before the real logger exists.
	bootstrap, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize bootstrap logger: %v", err)
	}

	// Load environment variables from multiple possible locations
	cm := config.NewConfigManager(bootstrap.Sugar(), config.WithEnvFiles(".env", "../.env", "../../.env"))
	cfg, err := cm.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := utils.NewSugaredLogger(&cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting PassForge server...")
	logger.Infow("Server config",
		"address", cfg.Address(),
		"environment", cfg.Server.Environment,
		"default_preset", cfg.Generator.DefaultPreset,
		"audit_store", cfg.Database.Enabled,
		"dictionary", cfg.Dictionary.Path,
	)

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize server: %v", err)
	}
	defer srv.Close()

	// Wait for interrupt signal to gracefully shutdown the server
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.Errorf("Server error: %v", err)
	}
}
