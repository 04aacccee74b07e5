// main.go
package main

import (
	"context"
	"log"
	"time"

	"bootcamp-platform/cmd"
	"bootcamp-platform/internal/data/repository"
	"bootcamp-platform/internal/wire"
	"bootcamp-platform/pkg/database"
	"bootcamp-platform/pkg/mailer"
	"bootcamp-platform/pkg/storage"
	"bootcamp-platform/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Unique indexes back the no-duplicate invariants
	indexCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := repository.EnsureIndexes(indexCtx, db.Database()); err != nil {
		cancel()
		logger.Fatal("Failed to ensure indexes", zap.Error(err))
	}
	cancel()

	// Initialize all repositories
	repos := repository.NewRepository(db.Database(), logger)

	// File storage for cover images and project PDFs
	fileStorage, err := storage.NewCloudinaryStorage(config.Storage)
	if err != nil {
		logger.Fatal("Failed to init file storage", zap.Error(err))
	}

	// SMTP mailer for notifications
	m := mailer.NewMailer(config.Email)

	// Wire all dependencies
	app := wire.Wiring(repos, fileStorage, m, config, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
