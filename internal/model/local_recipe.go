package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// LocalRecipe is a recipe authored in this system.
type LocalRecipe struct {
	ID           uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	DeletedAt    gorm.DeletedAt     `gorm:"index" json:"-"`
	UserID       uuid.UUID          `gorm:"type:uuid;not null;index" json:"user_id"`
	Title        string             `gorm:"size:255;not null" json:"title"`
	Description  string             `gorm:"type:text" json:"description"`
	Summary      string             `gorm:"type:text" json:"summary"`
	Cuisine      string             `gorm:"size:50;index" json:"cuisine"`
	ImageURL     string             `gorm:"size:512" json:"image_url"`
	PrepMinutes  *int               `json:"prep_minutes"`
	CookMinutes  *int               `json:"cook_minutes"`
	ReadyMinutes *int               `gorm:"index" json:"ready_minutes"`
	Servings     *int               `json:"servings"`
	HealthScore  *float64           `json:"health_score"`
	Vegetarian   bool               `json:"vegetarian"`
	Vegan        bool               `json:"vegan"`
	GlutenFree   bool               `json:"gluten_free"`
	DairyFree    bool               `json:"dairy_free"`
	Calories     *float64           `gorm:"type:float" json:"calories"`
	Protein      *float64           `gorm:"type:float" json:"protein"`
	Carbs        *float64           `gorm:"type:float" json:"carbs"`
	Fat          *float64           `gorm:"type:float" json:"fat"`
	Tags         JSONBStringArray   `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	Instructions InstructionSteps   `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	Visibility   Visibility         `gorm:"size:16;not null;default:'private';index" json:"visibility"`
	Status       RecipeStatus       `gorm:"size:16;not null;default:'draft';index" json:"status"`
	Ingredients  []RecipeIngredient `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"ingredients"`
	Embedding    pgvector.Vector    `gorm:"type:vector(64)" json:"-"`
}

func (LocalRecipe) TableName() string {
	return "recipes"
}

// BeforeSave assigns an id and refreshes the search embedding.
func (r *LocalRecipe) BeforeSave(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	r.Embedding = GenerateEmbedding(r.Title + " " + r.Description)
	return nil
}

// RecipeIngredient is one stored ingredient line of a local recipe.
type RecipeIngredient struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	Position int       `gorm:"not null" json:"position"`
	Name     string    `gorm:"size:255;not null" json:"name"`
	Amount   string    `gorm:"size:64" json:"amount"`
	Unit     string    `gorm:"size:64" json:"unit"`
	Note     string    `gorm:"type:text" json:"note"`
	Category string    `gorm:"size:32" json:"category"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

func (i *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// ToIngredient converts the stored row into the unified shape.
func (i RecipeIngredient) ToIngredient() Ingredient {
	return Ingredient{
		Name:     i.Name,
		Amount:   i.Amount,
		Unit:     i.Unit,
		Note:     i.Note,
		Category: i.Category,
	}
}

// ToRecipe converts the row into the unified view. Missing text defaults to ""
// and missing numbers to 0 so the result is always safe to render.
func (r *LocalRecipe) ToRecipe() Recipe {
	owner := r.UserID
	ingredients := make([]Ingredient, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		ingredients = append(ingredients, ing.ToIngredient())
	}
	tags := []string(r.Tags)
	if tags == nil {
		tags = []string{}
	}
	steps := []InstructionStep(r.Instructions)
	if steps == nil {
		steps = []InstructionStep{}
	}
	summary := strings.TrimSpace(r.Summary)
	if summary == "" {
		summary = strings.TrimSpace(r.Description)
	}

	return Recipe{
		ID:           LocalID(r.ID),
		Origin:       OriginLocal,
		Title:        r.Title,
		Description:  strings.TrimSpace(r.Description),
		Summary:      summary,
		PrepMinutes:  intOrZero(r.PrepMinutes),
		CookMinutes:  intOrZero(r.CookMinutes),
		ReadyMinutes: intOrZero(r.ReadyMinutes),
		Servings:     intOrZero(r.Servings),
		Image:        strings.TrimSpace(r.ImageURL),
		Dietary: DietaryFlags{
			Vegetarian: r.Vegetarian,
			Vegan:      r.Vegan,
			GlutenFree: r.GlutenFree,
			DairyFree:  r.DairyFree,
		},
		HealthScore:  floatOrZero(r.HealthScore),
		Cuisine:      r.Cuisine,
		Tags:         tags,
		Ingredients:  ingredients,
		Instructions: steps,
		Nutrition:    r.nutrition(),
		Visibility:   r.Visibility,
		Status:       r.Status,
		OwnerID:      &owner,
		UpdatedAt:    r.UpdatedAt,
	}
}

func (r *LocalRecipe) nutrition() map[string]Nutrient {
	out := map[string]Nutrient{}
	add := func(key string, v *float64, unit string) {
		if v != nil {
			out[key] = Nutrient{Amount: *v, Unit: unit}
		}
	}
	add("calories", r.Calories, "kcal")
	add("protein", r.Protein, "g")
	add("carbohydrates", r.Carbs, "g")
	add("fat", r.Fat, "g")
	if len(out) == 0 {
		return nil
	}
	return out
}

func intOrZero(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
