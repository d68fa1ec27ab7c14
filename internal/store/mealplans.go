package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/mealboard/backend/internal/model"
)

const mealPlanEntity = "meal plan"

// CreateMealPlan inserts a plan with its slots. A second active plan for the
// same group and week fails with a conflict.
func (s *Store) CreateMealPlan(ctx context.Context, plan *model.MealPlan) error {
	return translate(s.db.WithContext(ctx).Create(plan).Error, mealPlanEntity)
}

func (s *Store) GetMealPlan(ctx context.Context, id uuid.UUID) (*model.MealPlan, error) {
	var plan model.MealPlan
	err := s.db.WithContext(ctx).Preload("Slots").First(&plan, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, mealPlanEntity)
	}
	return &plan, nil
}

// ActiveMealPlan returns the group's active plan for the week starting at
// weekStart.
func (s *Store) ActiveMealPlan(ctx context.Context, groupID uuid.UUID, weekStart time.Time) (*model.MealPlan, error) {
	var plan model.MealPlan
	err := s.db.WithContext(ctx).Preload("Slots").
		Where("group_id = ? AND week_start = ? AND status = ?", groupID, weekStart, model.MealPlanActive).
		First(&plan).Error
	if err != nil {
		return nil, translate(err, mealPlanEntity)
	}
	return &plan, nil
}

// UpsertSlot fills a grid cell, replacing whatever was there.
func (s *Store) UpsertSlot(ctx context.Context, slot *model.MealPlanSlot) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "meal_plan_id"}, {Name: "day"}, {Name: "meal_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"recipe_ref", "name", "servings", "notes"}),
	}).Create(slot).Error
	if err != nil {
		return translate(err, "meal plan slot")
	}
	return s.db.WithContext(ctx).Model(&model.MealPlan{}).
		Where("id = ?", slot.MealPlanID).
		Update("updated_at", time.Now()).Error
}

// DeleteSlot clears a grid cell. Clearing an empty cell is not an error.
func (s *Store) DeleteSlot(ctx context.Context, planID uuid.UUID, day model.Weekday, meal model.MealType) error {
	err := s.db.WithContext(ctx).
		Where("meal_plan_id = ? AND day = ? AND meal_type = ?", planID, day, meal).
		Delete(&model.MealPlanSlot{}).Error
	return translate(err, "meal plan slot")
}

// ArchiveMealPlan moves a plan out of the active set, freeing its week.
func (s *Store) ArchiveMealPlan(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Model(&model.MealPlan{}).
		Where("id = ?", id).
		Update("status", model.MealPlanArchived)
	if result.Error != nil {
		return translate(result.Error, mealPlanEntity)
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, mealPlanEntity)
	}
	return nil
}
