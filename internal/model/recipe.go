package model

import (
	"time"

	"github.com/google/uuid"
)

// Visibility controls who can see a local recipe.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityFamily  Visibility = "family"
	VisibilityPrivate Visibility = "private"
)

// RecipeStatus is the authoring lifecycle of a local recipe.
type RecipeStatus string

const (
	StatusDraft     RecipeStatus = "draft"
	StatusPublished RecipeStatus = "published"
	StatusArchived  RecipeStatus = "archived"
)

// DietaryFlags are the boolean diet markers carried by a recipe.
type DietaryFlags struct {
	Vegetarian  bool `json:"vegetarian"`
	Vegan       bool `json:"vegan"`
	GlutenFree  bool `json:"gluten_free"`
	DairyFree   bool `json:"dairy_free"`
	VeryHealthy bool `json:"very_healthy"`
	Cheap       bool `json:"cheap"`
}

// Ingredient is one line of a recipe. Amount and unit are kept as opaque
// strings; no unit conversion happens anywhere in the core.
type Ingredient struct {
	Name     string `json:"name"`
	Amount   string `json:"amount"`
	Unit     string `json:"unit"`
	Note     string `json:"note,omitempty"`
	Category string `json:"category"`
}

// Temperature of an instruction step, unit is "F" or "C".
type Temperature struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// InstructionStep is a single step of the flattened instruction list.
type InstructionStep struct {
	Number          int          `json:"number"`
	Text            string       `json:"text"`
	DurationMinutes *int         `json:"duration_minutes,omitempty"`
	Temperature     *Temperature `json:"temperature,omitempty"`
	Equipment       []string     `json:"equipment,omitempty"`
}

// Nutrient is a provider supplied nutrition value, passed through untouched.
type Nutrient struct {
	Amount              float64 `json:"amount"`
	Unit                string  `json:"unit"`
	PercentOfDailyNeeds float64 `json:"percent_of_daily_needs,omitempty"`
}

// Recipe is the unified view of a local or external recipe. Nothing
// downstream of the gateway ever sees provider-native fields.
type Recipe struct {
	ID           RecipeID            `json:"id"`
	Origin       Origin              `json:"origin"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Summary      string              `json:"summary"`
	PrepMinutes  int                 `json:"prep_minutes"`
	CookMinutes  int                 `json:"cook_minutes"`
	ReadyMinutes int                 `json:"ready_minutes"`
	Servings     int                 `json:"servings"`
	Image        string              `json:"image"`
	Dietary      DietaryFlags        `json:"dietary"`
	HealthScore  float64             `json:"health_score"`
	Cuisine      string              `json:"cuisine"`
	Tags         []string            `json:"tags"`
	Ingredients  []Ingredient        `json:"ingredients"`
	Instructions []InstructionStep   `json:"instructions"`
	Equipment    []string            `json:"equipment,omitempty"`
	Nutrition    map[string]Nutrient `json:"nutrition,omitempty"`
	Visibility   Visibility          `json:"visibility"`
	Status       RecipeStatus        `json:"status"`
	OwnerID      *uuid.UUID          `json:"owner_id"`
	SourceURL    string              `json:"source_url,omitempty"`
	IsFavorited  bool                `json:"is_favorited"`
	UpdatedAt    time.Time           `json:"updated_at"`
	FavoritedAt  *time.Time          `json:"favorited_at,omitempty"`
}

// Editable reports whether the recipe can be changed through the core.
// External recipes never can.
func (r *Recipe) Editable() bool {
	return r.Origin == OriginLocal && r.OwnerID != nil
}

// SortTime is the timestamp collections are ordered by.
func (r *Recipe) SortTime() time.Time {
	if r.FavoritedAt != nil {
		return *r.FavoritedAt
	}
	return r.UpdatedAt
}
