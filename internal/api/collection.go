package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealboard/backend/internal/apperr"
	"github.com/pageza/mealboard/backend/internal/service"
	"github.com/pageza/mealboard/backend/internal/spoonacular"
)

// BudgetReporter reports the external provider's call budget.
type BudgetReporter interface {
	BudgetStatus(ctx context.Context) (spoonacular.BudgetStatus, error)
}

type CollectionHandler struct {
	collection service.ICollectionService
	budget     BudgetReporter
}

// NewCollectionHandler creates the collection handler. budget may be nil when
// no provider is configured.
func NewCollectionHandler(collection service.ICollectionService, budget BudgetReporter) *CollectionHandler {
	return &CollectionHandler{collection: collection, budget: budget}
}

func (h *CollectionHandler) RegisterRoutes(router *gin.RouterGroup, guards Guards) {
	router.GET("/collection", guards.Auth, h.GetCollection)
	router.GET("/external/budget", guards.Auth, h.GetBudget)
}

// GetCollection lists the recipes the caller owns or favorited.
func (h *CollectionHandler) GetCollection(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	page, ok := pageQuery(c)
	if !ok {
		return
	}
	resp, err := h.collection.Assemble(c.Request.Context(), userID, page)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetBudget reports how much of the provider quota is left.
func (h *CollectionHandler) GetBudget(c *gin.Context) {
	if h.budget == nil {
		respondError(c, apperr.New(apperr.KindUpstreamUnavailable, "no external recipe provider configured"))
		return
	}
	status, err := h.budget.BudgetStatus(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"used":      status.Used,
		"quota":     status.Quota,
		"remaining": status.Remaining(),
		"reset_at":  status.ResetAt,
	})
}
