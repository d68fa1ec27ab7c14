package testhelpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/mealboard/backend/internal/model"
	"github.com/pageza/mealboard/backend/internal/types"
)

// RecipeOption customizes a fixture recipe.
type RecipeOption func(*model.LocalRecipe)

func WithVisibility(v model.Visibility) RecipeOption {
	return func(r *model.LocalRecipe) { r.Visibility = v }
}

func WithStatus(s model.RecipeStatus) RecipeOption {
	return func(r *model.LocalRecipe) { r.Status = s }
}

func WithReadyMinutes(n int) RecipeOption {
	return func(r *model.LocalRecipe) { r.ReadyMinutes = &n }
}

func WithCuisine(c string) RecipeOption {
	return func(r *model.LocalRecipe) { r.Cuisine = c }
}

func WithTags(tags ...string) RecipeOption {
	return func(r *model.LocalRecipe) { r.Tags = tags }
}

func WithIngredients(ings ...model.RecipeIngredient) RecipeOption {
	return func(r *model.LocalRecipe) { r.Ingredients = ings }
}

func WithUpdatedAt(ts time.Time) RecipeOption {
	return func(r *model.LocalRecipe) { r.UpdatedAt = ts }
}

// CreateRecipe inserts a published public recipe owned by owner.
func CreateRecipe(t *testing.T, db *gorm.DB, owner uuid.UUID, title string, opts ...RecipeOption) *model.LocalRecipe {
	t.Helper()
	recipe := &model.LocalRecipe{
		UserID:      owner,
		Title:       title,
		Description: "A test recipe for " + title,
		Visibility:  model.VisibilityPublic,
		Status:      model.StatusPublished,
	}
	for _, opt := range opts {
		opt(recipe)
	}
	for i := range recipe.Ingredients {
		recipe.Ingredients[i].Position = i
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("failed to create test recipe: %v", err)
	}
	return recipe
}

// Ingredient builds a stored ingredient line.
func Ingredient(name, amount, unit string) model.RecipeIngredient {
	return model.RecipeIngredient{Name: name, Amount: amount, Unit: unit}
}

// AddMember records userID as a member of groupID.
func AddMember(t *testing.T, db *gorm.DB, groupID, userID uuid.UUID) {
	t.Helper()
	if err := db.Create(&model.GroupMember{GroupID: groupID, UserID: userID, Role: "member"}).Error; err != nil {
		t.Fatalf("failed to add group member: %v", err)
	}
}

// SignToken issues an HS256 bearer token for userID.
func SignToken(t *testing.T, secret string, userID uuid.UUID) string {
	t.Helper()
	claims := &types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return token
}
