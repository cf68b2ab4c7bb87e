// main.go
package main

import (
	"context"
	"log"

	"ticket-portal/cmd"
	"ticket-portal/internal/data/repository"
	"ticket-portal/internal/queue"
	"ticket-portal/internal/wire"
	"ticket-portal/pkg/cache"
	"ticket-portal/pkg/database"
	"ticket-portal/pkg/mailer"
	"ticket-portal/pkg/utils"

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

	// Redis is optional; rate limiting degrades to pass-through without it.
	rdb := cache.NewRedisClient(config.Redis, logger)

	// Event publisher and mailer
	publisher := queue.NewPublisher(config.AMQP.URL, logger)
	mail := mailer.New(config.Email, logger)

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(db, repos, config, mail, publisher, rdb, logger)

	// Populate the seat catalog if configured; reruns are no-ops per label.
	if config.Seats.SeedOnStart {
		if err := app.Service.Catalog.SeedSeats(context.Background()); err != nil {
			logger.Fatal("Failed to seed seat catalog", zap.Error(err))
		}
	}

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
