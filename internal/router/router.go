package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/mealboard/backend/internal/api"
	"github.com/pageza/mealboard/backend/internal/middleware"
)

// Handlers groups the API handlers mounted under /api/v1.
type Handlers struct {
	Recipes    *api.RecipeHandler
	Collection *api.CollectionHandler
	MealPlans  *api.MealPlanHandler
	Grocery    *api.GroceryHandler
	Health     *api.HealthHandler
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers, guards api.Guards, corsOrigins []string, log *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestLogger(log),
		middleware.ErrorHandler(log),
		middleware.CORS(corsOrigins),
	)

	h.Health.RegisterRoutes(router)

	// API v1 routes
	v1 := router.Group("/api/v1")
	h.Recipes.RegisterRoutes(v1, guards)
	h.Collection.RegisterRoutes(v1, guards)
	h.MealPlans.RegisterRoutes(v1, guards)
	h.Grocery.RegisterRoutes(v1, guards)

	return router
}
