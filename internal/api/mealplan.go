package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/mealboard/backend/internal/apperr"
	"github.com/pageza/mealboard/backend/internal/model"
	"github.com/pageza/mealboard/backend/internal/service"
)

type MealPlanHandler struct {
	plans service.IMealPlanService
}

func NewMealPlanHandler(plans service.IMealPlanService) *MealPlanHandler {
	return &MealPlanHandler{plans: plans}
}

func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup, guards Guards) {
	router.POST("/groups/:groupID/meal-plans", guards.Auth, h.CreateMealPlan)

	plans := router.Group("/meal-plans", guards.Auth)
	{
		plans.GET("/:id", h.GetMealPlan)
		plans.POST("/:id/archive", h.ArchiveMealPlan)
		plans.PUT("/:id/slots/:day/:meal", h.SetSlot)
		plans.DELETE("/:id/slots/:day/:meal", h.ClearSlot)
	}
}

type createMealPlanRequest struct {
	// WeekStart is a date (2006-01-02) anywhere in the planned week.
	WeekStart string `json:"week_start" binding:"required"`
	Name      string `json:"name"`
}

func (h *MealPlanHandler) CreateMealPlan(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	groupID, ok := uuidParam(c, "groupID")
	if !ok {
		return
	}
	var req createMealPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Wrap(apperr.KindValidationFailed, err, "invalid request body"))
		return
	}
	week, err := time.Parse(time.DateOnly, req.WeekStart)
	if err != nil {
		respondError(c, apperr.Validation("week_start must be a date like 2006-01-02"))
		return
	}

	plan, err := h.plans.Create(c.Request.Context(), userID, service.CreateMealPlanRequest{
		GroupID:   groupID,
		WeekStart: week,
		Name:      req.Name,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

func (h *MealPlanHandler) GetMealPlan(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	planID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	plan, err := h.plans.Get(c.Request.Context(), userID, planID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *MealPlanHandler) ArchiveMealPlan(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	planID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.plans.Archive(c.Request.Context(), userID, planID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *MealPlanHandler) SetSlot(c *gin.Context) {
	userID, planID, day, meal, ok := slotParams(c)
	if !ok {
		return
	}
	var in service.SlotInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, apperr.Wrap(apperr.KindValidationFailed, err, "invalid request body"))
		return
	}
	plan, err := h.plans.SetSlot(c.Request.Context(), userID, planID, day, meal, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *MealPlanHandler) ClearSlot(c *gin.Context) {
	userID, planID, day, meal, ok := slotParams(c)
	if !ok {
		return
	}
	plan, err := h.plans.ClearSlot(c.Request.Context(), userID, planID, day, meal)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func slotParams(c *gin.Context) (userID, planID uuid.UUID, day model.Weekday, meal model.MealType, ok bool) {
	if userID, ok = caller(c); !ok {
		return
	}
	if planID, ok = uuidParam(c, "id"); !ok {
		return
	}
	var err error
	if day, err = model.ParseWeekday(c.Param("day")); err != nil {
		respondError(c, apperr.Wrap(apperr.KindValidationFailed, err, "invalid day"))
		return userID, planID, day, meal, false
	}
	if meal, err = model.ParseMealType(c.Param("meal")); err != nil {
		respondError(c, apperr.Wrap(apperr.KindValidationFailed, err, "invalid meal type"))
		return userID, planID, day, meal, false
	}
	return userID, planID, day, meal, true
}
