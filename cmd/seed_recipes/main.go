package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/mealboard/backend/config"
	"github.com/pageza/mealboard/backend/internal/database"
	"github.com/pageza/mealboard/backend/internal/logging"
	"github.com/pageza/mealboard/backend/internal/seed"
	"github.com/pageza/mealboard/backend/internal/store"
)

// Seeds the demo recipe catalogue and this week's meal plan for the demo household.
func main() {
	ownerFlag := flag.String("owner", "", "owner of the seeded recipes (defaults to the demo group owner)")
	withPlan := flag.Bool("plan", true, "also fill this week's meal plan")
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

	owner := seed.DemoUsers()[0].ID
	if *ownerFlag != "" {
		if owner, err = uuid.Parse(*ownerFlag); err != nil {
			logger.Fatal("invalid -owner", zap.Error(err))
		}
	}

	db, err := database.Open(cfg, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db, cfg.MigrationsDir, logger); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}

	ctx := context.Background()
	st := store.New(db)
	if err := seed.Members(ctx, st); err != nil {
		logger.Fatal("failed to seed members", zap.Error(err))
	}
	recipes, err := seed.Recipes(ctx, st, owner, logger)
	if err != nil {
		logger.Fatal("failed to seed recipes", zap.Error(err))
	}
	logger.Info("recipes ready", zap.Int("count", len(recipes)))

	if !*withPlan {
		return
	}
	plan, err := seed.MealPlan(ctx, st, recipes, time.Now(), logger)
	if err != nil {
		logger.Fatal("failed to seed meal plan", zap.Error(err))
	}
	logger.Info("meal plan ready",
		zap.String("id", plan.ID.String()),
		zap.Time("week_start", plan.WeekStart),
		zap.Int("slots", len(plan.Slots)))
}
