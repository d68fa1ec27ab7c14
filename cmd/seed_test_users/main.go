package main

import (
	"context"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/pageza/mealboard/backend/config"
	"github.com/pageza/mealboard/backend/internal/database"
	"github.com/pageza/mealboard/backend/internal/logging"
	"github.com/pageza/mealboard/backend/internal/seed"
	"github.com/pageza/mealboard/backend/internal/service"
	"github.com/pageza/mealboard/backend/internal/store"
)

// Adds the demo household members and prints a bearer token for each.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger, err := logging.New(cfg.Environment, false)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Open(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db, cfg.MigrationsDir, logger); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	if err := seed.Members(context.Background(), store.New(db)); err != nil {
		logger.Fatal("failed to seed members", zap.Error(err))
	}

	tokens := service.NewTokenService(cfg.JWTSecret)
	fmt.Printf("group %s\n\n", seed.DemoGroupID)
	for _, u := range seed.DemoUsers() {
		token, err := tokens.GenerateToken(u.ID, u.Username)
		if err != nil {
			logger.Fatal("failed to issue token", zap.String("user", u.Username), zap.Error(err))
		}
		fmt.Printf("%-6s %s  %s\n       %s\n", u.Role, u.Username, u.ID, token)
	}
}
