// Package bootstrap opens the connections both binaries run on.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/mealboard/backend/config"
	"github.com/pageza/mealboard/backend/internal/database"
	"github.com/pageza/mealboard/backend/internal/spoonacular"
)

// Resources are the live connections. Redis, Gateway and Images are nil when
// not configured.
type Resources struct {
	DB      *gorm.DB
	Redis   *redis.Client
	Gateway *spoonacular.Client
	Images  *config.S3Config
}

// Close releases every open connection.
func (r *Resources) Close() {
	if r.Redis != nil {
		_ = r.Redis.Close()
	}
	if r.DB != nil {
		if sqlDB, err := r.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

// Open connects to the database, Redis when a component needs it, the
// external provider when a key is configured and S3 when a bucket is set.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Resources, error) {
	res := &Resources{}
	db, err := database.Open(cfg, log)
	if err != nil {
		return nil, err
	}
	res.DB = db

	if cfg.BudgetBackend == config.BudgetRedis || cfg.RedisURL != "" {
		client, err := database.NewRedisClient(cfg, log)
		if err != nil {
			res.Close()
			return nil, err
		}
		res.Redis = client
	}

	gateway, err := NewGateway(cfg, res.Redis, log)
	if err != nil {
		res.Close()
		return nil, err
	}
	res.Gateway = gateway

	images, err := config.NewS3Config(ctx, cfg)
	if err != nil {
		res.Close()
		return nil, fmt.Errorf("failed to configure image storage: %w", err)
	}
	res.Images = images
	return res, nil
}

// NewGateway builds the provider client with the configured budget backend.
// It returns nil, nil when no API key is configured.
func NewGateway(cfg *config.Config, redisClient *redis.Client, log *zap.Logger) (*spoonacular.Client, error) {
	if cfg.SpoonacularAPIKey == "" {
		log.Warn("SPOONACULAR_API_KEY not set, external recipes disabled")
		return nil, nil
	}

	var budget spoonacular.Budget
	switch cfg.BudgetBackend {
	case config.BudgetRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("budget backend %q requires a redis connection", cfg.BudgetBackend)
		}
		budget = spoonacular.NewRedisBudget(redisClient, cfg.ExternalQuota, cfg.ExternalWindow, "")
	case config.BudgetMemory, "":
		budget = spoonacular.NewMemoryBudget(cfg.ExternalQuota, cfg.ExternalWindow)
	default:
		return nil, fmt.Errorf("unknown budget backend %q", cfg.BudgetBackend)
	}

	return spoonacular.NewClient(spoonacular.Config{
		APIKey:    cfg.SpoonacularAPIKey,
		BaseURL:   cfg.SpoonacularBaseURL,
		CacheSize: cfg.ExternalCacheSize,
		Logger:    log,
	}, budget)
}
