// Package api exposes the recipe, collection, meal plan and grocery list
// operations over HTTP.
package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/mealboard/backend/internal/apperr"
	"github.com/pageza/mealboard/backend/internal/middleware"
	"github.com/pageza/mealboard/backend/internal/model"
	"github.com/pageza/mealboard/backend/internal/service"
)

// Guards are the middleware handlers attach to their routes.
type Guards struct {
	// Auth rejects anonymous callers.
	Auth gin.HandlerFunc
	// OptionalAuth identifies the caller when a token is present.
	OptionalAuth gin.HandlerFunc
	// SearchLimit throttles search. Nil disables throttling.
	SearchLimit gin.HandlerFunc
}

func (g Guards) search() []gin.HandlerFunc {
	handlers := []gin.HandlerFunc{g.OptionalAuth}
	if g.SearchLimit != nil {
		handlers = append(handlers, g.SearchLimit)
	}
	return handlers
}

// respondError hands err to middleware.ErrorHandler and stops the chain.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// caller returns the authenticated user. Routes behind Guards.Auth always have one.
func caller(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		respondError(c, apperr.New(apperr.KindAccessDenied, "authentication required"))
	}
	return id, ok
}

func optionalCaller(c *gin.Context) *uuid.UUID {
	if id, ok := middleware.UserID(c); ok {
		return &id
	}
	return nil
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, apperr.Validation("invalid %s", name))
		return uuid.Nil, false
	}
	return id, true
}

func recipeIDParam(c *gin.Context) (model.RecipeID, bool) {
	id, err := model.ParseRecipeID(c.Param("id"))
	if err != nil {
		respondError(c, apperr.Wrap(apperr.KindValidationFailed, err, "invalid recipe id"))
		return model.RecipeID{}, false
	}
	return id, true
}

func intQuery(c *gin.Context, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		respondError(c, apperr.Validation("%s must be a non-negative integer", key))
		return 0, false
	}
	return n, true
}

func pageQuery(c *gin.Context) (service.PageRequest, bool) {
	number, ok := intQuery(c, "page")
	if !ok {
		return service.PageRequest{}, false
	}
	size, ok := intQuery(c, "pageSize")
	if !ok {
		return service.PageRequest{}, false
	}
	return service.PageRequest{Number: number, Size: size}.Normalize(), true
}
