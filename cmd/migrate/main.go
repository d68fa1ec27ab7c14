package main

import (
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/pageza/mealboard/backend/config"
	"github.com/pageza/mealboard/backend/internal/database"
	"github.com/pageza/mealboard/backend/internal/logging"
)

func main() {
	migrationsDir := flag.String("dir", "", "Directory holding *.sql migrations (defaults to MIGRATIONS_DIR)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger, err := logging.New(cfg.Environment, false)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	if *migrationsDir != "" {
		cfg.MigrationsDir = *migrationsDir
	}

	db, err := database.Open(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db, cfg.MigrationsDir, logger); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
	logger.Info("migrations complete")
}
