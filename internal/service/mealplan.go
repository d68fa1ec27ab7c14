package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/mealboard/backend/internal/apperr"
	"github.com/pageza/mealboard/backend/internal/model"
	"github.com/pageza/mealboard/backend/internal/store"
)

// CreateMealPlanRequest opens a plan for one week.
type CreateMealPlanRequest struct {
	GroupID   uuid.UUID `json:"group_id"`
	WeekStart time.Time `json:"week_start"`
	Name      string    `json:"name,omitempty"`
}

// SlotInput fills one grid cell. A cell needs a recipe or a free text name.
type SlotInput struct {
	RecipeID *model.RecipeID `json:"recipe_id,omitempty"`
	Name     string          `json:"name,omitempty"`
	Servings *int            `json:"servings,omitempty"`
	Notes    string          `json:"notes,omitempty"`
}

// MealPlanService manages weekly meal plans of a group.
type MealPlanService struct {
	plans   store.MealPlanStore
	members store.MembershipStore
	log     *zap.Logger
}

// NewMealPlanService creates a new MealPlanService instance
func NewMealPlanService(st *store.Store, log *zap.Logger) *MealPlanService {
	if log == nil {
		log = zap.NewNop()
	}
	return &MealPlanService{plans: st, members: st, log: log}
}

// WeekStart returns the Monday, at midnight UTC, of the week containing t.
func WeekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// Create opens the group's plan for the week containing req.WeekStart. Only
// one active plan may exist per group and week.
func (s *MealPlanService) Create(ctx context.Context, callerID uuid.UUID, req CreateMealPlanRequest) (*model.MealPlan, error) {
	if req.GroupID == uuid.Nil {
		return nil, apperr.Validation("group_id is required")
	}
	if req.WeekStart.IsZero() {
		return nil, apperr.Validation("week_start is required")
	}
	if err := requireMember(ctx, s.members, req.GroupID, callerID); err != nil {
		return nil, err
	}

	week := WeekStart(req.WeekStart)
	_, err := s.plans.ActiveMealPlan(ctx, req.GroupID, week)
	switch {
	case err == nil:
		return nil, apperr.New(apperr.KindConflict, "an active meal plan already exists for the week of %s", week.Format("2006-01-02"))
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Week of " + week.Format("Jan 2, 2006")
	}
	plan := &model.MealPlan{
		GroupID:   req.GroupID,
		WeekStart: week,
		Name:      name,
		Status:    model.MealPlanActive,
		CreatedBy: callerID,
	}
	if err := s.plans.CreateMealPlan(ctx, plan); err != nil {
		return nil, err
	}
	plan.Slots = []model.MealPlanSlot{}
	return plan, nil
}

// Get returns a plan the caller's group owns.
func (s *MealPlanService) Get(ctx context.Context, callerID, planID uuid.UUID) (*model.MealPlan, error) {
	plan, err := s.plans.GetMealPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(ctx, s.members, plan.GroupID, callerID); err != nil {
		return nil, err
	}
	return plan, nil
}

// SetSlot fills a grid cell of an active plan.
func (s *MealPlanService) SetSlot(ctx context.Context, callerID, planID uuid.UUID, day model.Weekday, meal model.MealType, in SlotInput) (*model.MealPlan, error) {
	hasRecipe := in.RecipeID != nil && !in.RecipeID.IsZero()
	if !hasRecipe && strings.TrimSpace(in.Name) == "" {
		return nil, apperr.Validation("a slot needs a recipe_id or a name")
	}
	if in.Servings != nil && *in.Servings <= 0 {
		return nil, apperr.Validation("servings must be positive")
	}
	plan, err := s.editable(ctx, callerID, planID)
	if err != nil {
		return nil, err
	}

	slot := &model.MealPlanSlot{
		MealPlanID: plan.ID,
		Day:        day,
		MealType:   meal,
		Name:       strings.TrimSpace(in.Name),
		Servings:   in.Servings,
		Notes:      strings.TrimSpace(in.Notes),
	}
	if hasRecipe {
		ref := *in.RecipeID
		slot.RecipeRef = &ref
	}
	if err := s.plans.UpsertSlot(ctx, slot); err != nil {
		return nil, err
	}
	return s.plans.GetMealPlan(ctx, plan.ID)
}

// ClearSlot empties a grid cell of an active plan.
func (s *MealPlanService) ClearSlot(ctx context.Context, callerID, planID uuid.UUID, day model.Weekday, meal model.MealType) (*model.MealPlan, error) {
	plan, err := s.editable(ctx, callerID, planID)
	if err != nil {
		return nil, err
	}
	if err := s.plans.DeleteSlot(ctx, plan.ID, day, meal); err != nil {
		return nil, err
	}
	return s.plans.GetMealPlan(ctx, plan.ID)
}

// Archive retires a plan, freeing its week for a new one.
func (s *MealPlanService) Archive(ctx context.Context, callerID, planID uuid.UUID) error {
	plan, err := s.editable(ctx, callerID, planID)
	if err != nil {
		return err
	}
	return s.plans.ArchiveMealPlan(ctx, plan.ID)
}

func (s *MealPlanService) editable(ctx context.Context, callerID, planID uuid.UUID) (*model.MealPlan, error) {
	plan, err := s.Get(ctx, callerID, planID)
	if err != nil {
		return nil, err
	}
	if plan.Status != model.MealPlanActive {
		return nil, apperr.Validation("meal plan is %s", plan.Status)
	}
	return plan, nil
}
