package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/mealboard/backend/config"
	"github.com/pageza/mealboard/backend/internal/api"
	"github.com/pageza/mealboard/backend/internal/bootstrap"
	"github.com/pageza/mealboard/backend/internal/database"
	"github.com/pageza/mealboard/backend/internal/middleware"
	"github.com/pageza/mealboard/backend/internal/router"
	"github.com/pageza/mealboard/backend/internal/service"
	"github.com/pageza/mealboard/backend/internal/store"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	logger *zap.Logger
}

// New wires services and handlers and returns a server ready to Start.
func New(cfg *config.Config, deps *bootstrap.Resources, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	st := store.New(deps.DB)
	var gateway service.RecipeGateway
	var budget api.BudgetReporter
	if deps.Gateway != nil {
		gateway = deps.Gateway
		budget = deps.Gateway
	}

	search := service.NewSearchService(st, st, gateway, logger.Named("search"),
		service.WithLocalShareCap(cfg.SearchLocalShareCap),
		service.WithImages(deps.Images))
	recipes := service.NewRecipeService(st, gateway, deps.Images, logger.Named("recipes"))
	favorites := service.NewFavoriteService(st, logger.Named("favorites"))
	collection := service.NewCollectionService(st, gateway, deps.Images, cfg.CollectionExternalCap, logger.Named("collection"))
	plans := service.NewMealPlanService(st, logger.Named("meal_plans"))
	grocery := service.NewGroceryService(st, logger.Named("grocery"))
	tokens := service.NewTokenService(cfg.JWTSecret)

	guards := api.Guards{
		Auth:         middleware.AuthMiddleware(tokens),
		OptionalAuth: middleware.OptionalAuth(tokens),
	}
	checks := map[string]api.HealthCheck{
		"database": func(ctx context.Context) error { return database.HealthCheck(ctx, deps.DB) },
	}
	if deps.Redis != nil {
		checks["redis"] = func(ctx context.Context) error { return deps.Redis.Ping(ctx).Err() }
		if cfg.SearchRateLimit > 0 {
			limiter := middleware.NewSearchRateLimiter(deps.Redis, cfg.SearchRateLimit, cfg.SearchRateWindow, logger.Named("rate_limit"))
			guards.SearchLimit = limiter.RateLimitMiddleware()
		}
	}

	handlers := router.Handlers{
		Recipes:    api.NewRecipeHandler(search, recipes, favorites, logger.Named("api")),
		Collection: api.NewCollectionHandler(collection, budget),
		MealPlans:  api.NewMealPlanHandler(plans),
		Grocery:    api.NewGroceryHandler(grocery),
		Health:     api.NewHealthHandler(checks, logger.Named("health")),
	}

	return &Server{
		router: router.SetupRouter(handlers, guards, cfg.CORSOrigins, logger),
		http: &http.Server{
			Addr:              cfg.Addr(),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Handler exposes the routes, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	s.http.Handler = s.router
	s.logger.Info("starting server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
