package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Weekday is a day column of the meal plan grid, Monday first.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays lists the grid columns in order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// MealType is a row of the meal plan grid.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

// MealTypes lists the grid rows in order.
var MealTypes = []MealType{Breakfast, Lunch, Dinner, Snack}

// ParseWeekday normalizes a day name.
func ParseWeekday(s string) (Weekday, error) {
	d := Weekday(strings.ToLower(strings.TrimSpace(s)))
	for _, w := range Weekdays {
		if w == d {
			return d, nil
		}
	}
	return "", fmt.Errorf("invalid day %q", s)
}

// ParseMealType normalizes a meal name.
func ParseMealType(s string) (MealType, error) {
	m := MealType(strings.ToLower(strings.TrimSpace(s)))
	for _, mt := range MealTypes {
		if mt == m {
			return m, nil
		}
	}
	return "", fmt.Errorf("invalid meal type %q", s)
}

// MealPlanStatus is the lifecycle of a weekly plan.
type MealPlanStatus string

const (
	MealPlanActive   MealPlanStatus = "active"
	MealPlanArchived MealPlanStatus = "archived"
)

// MealPlan is a group's 7x4 grid for one week. Only one active plan may exist
// per group and week start.
type MealPlan struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	GroupID   uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_meal_plan_active_week,where:status = 'active'" json:"group_id"`
	WeekStart time.Time      `gorm:"type:date;not null;uniqueIndex:idx_meal_plan_active_week" json:"week_start"`
	Name      string         `gorm:"size:255" json:"name"`
	Status    MealPlanStatus `gorm:"size:16;not null;default:'active'" json:"status"`
	CreatedBy uuid.UUID      `gorm:"type:uuid;not null" json:"created_by"`
	Slots     []MealPlanSlot `gorm:"foreignKey:MealPlanID;constraint:OnDelete:CASCADE" json:"slots"`
}

func (MealPlan) TableName() string {
	return "meal_plans"
}

// MealPlanSlot is a filled (day, meal) cell. Empty cells have no row.
type MealPlanSlot struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	MealPlanID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_meal_plan_slot" json:"meal_plan_id"`
	Day        Weekday   `gorm:"size:16;not null;uniqueIndex:idx_meal_plan_slot" json:"day"`
	MealType   MealType  `gorm:"size:16;not null;uniqueIndex:idx_meal_plan_slot" json:"meal_type"`
	RecipeRef  *RecipeID `gorm:"type:varchar(64)" json:"recipe_id,omitempty"`
	Name       string    `gorm:"size:255" json:"name,omitempty"`
	Servings   *int      `json:"servings,omitempty"`
	Notes      string    `gorm:"type:text" json:"notes,omitempty"`
}

func (MealPlanSlot) TableName() string {
	return "meal_plan_slots"
}

// RecipeRefs returns the distinct recipe ids referenced by the plan, in grid
// order. Slots without a recipe are skipped.
func (p *MealPlan) RecipeRefs() []RecipeID {
	byCell := make(map[string]*RecipeID, len(p.Slots))
	for i := range p.Slots {
		s := &p.Slots[i]
		if s.RecipeRef != nil && !s.RecipeRef.IsZero() {
			byCell[string(s.Day)+"/"+string(s.MealType)] = s.RecipeRef
		}
	}

	seen := make(map[RecipeID]bool)
	var refs []RecipeID
	for _, day := range Weekdays {
		for _, meal := range MealTypes {
			ref, ok := byCell[string(day)+"/"+string(meal)]
			if !ok || seen[*ref] {
				continue
			}
			seen[*ref] = true
			refs = append(refs, *ref)
		}
	}
	return refs
}
