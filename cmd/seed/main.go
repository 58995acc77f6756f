package main

import (
	"log"
	"notary_admin_go/config"
	"notary_admin_go/db"
	"notary_admin_go/logging"
	"notary_admin_go/services"
	"time"

	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Initialize database
	if err := db.Initialize(cfg.DBPath, cfg.Environment, logger); err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := db.AutoMigrate(db.Models()...); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	if err := services.SeedDemoData(db.DB, time.Now().UTC(), logger); err != nil {
		logger.Fatal("Failed to seed demo data", zap.Error(err))
	}
	logger.Info("Demo data ready", zap.String("db", cfg.DBPath))
}
