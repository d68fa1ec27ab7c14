package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/mealboard/backend/internal/apperr"
	"github.com/pageza/mealboard/backend/internal/model"
	"github.com/pageza/mealboard/backend/internal/service"
)

type GroceryHandler struct {
	grocery service.IGroceryService
}

func NewGroceryHandler(grocery service.IGroceryService) *GroceryHandler {
	return &GroceryHandler{grocery: grocery}
}

func (h *GroceryHandler) RegisterRoutes(router *gin.RouterGroup, guards Guards) {
	groups := router.Group("/groups/:groupID/grocery-lists", guards.Auth)
	{
		groups.POST("", h.GenerateList)
		groups.GET("", h.ListLists)
	}

	lists := router.Group("/grocery-lists", guards.Auth)
	{
		lists.GET("/:id", h.GetList)
		lists.POST("/:id/items", h.AddItems)
		lists.POST("/:id/items/:itemID/toggle", h.ToggleItem)
		lists.POST("/:id/complete", h.CompleteList)
		lists.POST("/:id/archive", h.ArchiveList)
	}
}

type generateListRequest struct {
	MealPlanID      *uuid.UUID         `json:"meal_plan_id"`
	Name            string             `json:"name"`
	Ingredients     []model.Ingredient `json:"ingredients"`
	AdditionalItems []model.Ingredient `json:"additional_items"`
}

type addItemsRequest struct {
	Items []model.Ingredient `json:"items" binding:"required,min=1"`
}

// GenerateList builds a consolidated list from a meal plan or explicit ingredients.
func (h *GroceryHandler) GenerateList(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	groupID, ok := uuidParam(c, "groupID")
	if !ok {
		return
	}
	var req generateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Wrap(apperr.KindValidationFailed, err, "invalid request body"))
		return
	}

	list, err := h.grocery.Generate(c.Request.Context(), userID, service.GenerateRequest{
		GroupID:         groupID,
		MealPlanID:      req.MealPlanID,
		Name:            req.Name,
		Ingredients:     req.Ingredients,
		AdditionalItems: req.AdditionalItems,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}

func (h *GroceryHandler) ListLists(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	groupID, ok := uuidParam(c, "groupID")
	if !ok {
		return
	}
	lists, err := h.grocery.List(c.Request.Context(), userID, groupID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"grocery_lists": lists})
}

func (h *GroceryHandler) GetList(c *gin.Context) {
	h.withList(c, h.grocery.Get)
}

func (h *GroceryHandler) CompleteList(c *gin.Context) {
	h.withList(c, h.grocery.Complete)
}

func (h *GroceryHandler) ArchiveList(c *gin.Context) {
	h.withList(c, h.grocery.Archive)
}

func (h *GroceryHandler) ToggleItem(c *gin.Context) {
	itemID := c.Param("itemID")
	h.withList(c, func(ctx context.Context, userID, listID uuid.UUID) (*model.GroceryList, error) {
		return h.grocery.ToggleItem(ctx, userID, listID, itemID)
	})
}

func (h *GroceryHandler) AddItems(c *gin.Context) {
	var req addItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Wrap(apperr.KindValidationFailed, err, "invalid request body"))
		return
	}
	h.withList(c, func(ctx context.Context, userID, listID uuid.UUID) (*model.GroceryList, error) {
		return h.grocery.AddItems(ctx, userID, listID, req.Items)
	})
}

// withList resolves the caller and list id, runs op and renders the list.
func (h *GroceryHandler) withList(c *gin.Context, op func(ctx context.Context, userID, listID uuid.UUID) (*model.GroceryList, error)) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	listID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	list, err := op(c.Request.Context(), userID, listID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
