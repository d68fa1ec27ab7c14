// Package store persists recipes, favorites, meal plans, grocery lists and
// group membership with gorm. Postgres is used in production and SQLite in
// tests; dialect differences are confined to this package.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/mealboard/backend/internal/model"
)

// LocalQuery selects published local recipes visible to a caller.
type LocalQuery struct {
	Text          string
	Cuisine       string
	Diet          string
	MaxReadyTime  int
	Sort          string
	SortDirection string
	// CallerID widens visibility to the caller's own recipes and, with
	// IncludeFamily, to family recipes of people sharing a group with them.
	CallerID      *uuid.UUID
	IncludeFamily bool
	Offset        int
	Limit         int
}

// RecipeStore is the recipe relation.
type RecipeStore interface {
	CreateRecipe(ctx context.Context, recipe *model.LocalRecipe) error
	GetRecipe(ctx context.Context, id uuid.UUID) (*model.LocalRecipe, error)
	GetRecipes(ctx context.Context, ids []uuid.UUID) ([]model.LocalRecipe, error)
	ListOwnedRecipes(ctx context.Context, userID uuid.UUID, status model.RecipeStatus) ([]model.LocalRecipe, error)
	SearchRecipes(ctx context.Context, q LocalQuery) ([]model.LocalRecipe, int64, error)
	IngredientsFor(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]model.Ingredient, error)
	UpdateRecipe(ctx context.Context, recipe *model.LocalRecipe) error
	DeleteRecipe(ctx context.Context, id uuid.UUID) error
}

// FavoriteStore is the favorites relation, unique per (user, recipe).
type FavoriteStore interface {
	AddFavorite(ctx context.Context, userID uuid.UUID, ref model.RecipeID) (*model.RecipeFavorite, error)
	RemoveFavorite(ctx context.Context, userID uuid.UUID, ref model.RecipeID) (bool, error)
	IsFavorite(ctx context.Context, userID uuid.UUID, ref model.RecipeID) (bool, error)
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]model.RecipeFavorite, error)
	FavoritedSet(ctx context.Context, userID uuid.UUID, refs []model.RecipeID) (map[model.RecipeID]bool, error)
}

// MealPlanStore is the meal plan relation.
type MealPlanStore interface {
	CreateMealPlan(ctx context.Context, plan *model.MealPlan) error
	GetMealPlan(ctx context.Context, id uuid.UUID) (*model.MealPlan, error)
	ActiveMealPlan(ctx context.Context, groupID uuid.UUID, weekStart time.Time) (*model.MealPlan, error)
	UpsertSlot(ctx context.Context, slot *model.MealPlanSlot) error
	DeleteSlot(ctx context.Context, planID uuid.UUID, day model.Weekday, meal model.MealType) error
	ArchiveMealPlan(ctx context.Context, id uuid.UUID) error
}

// GroceryListStore is the grocery list relation.
type GroceryListStore interface {
	CreateGroceryList(ctx context.Context, list *model.GroceryList) error
	GetGroceryList(ctx context.Context, id uuid.UUID) (*model.GroceryList, error)
	SaveGroceryList(ctx context.Context, list *model.GroceryList) error
	ListGroceryLists(ctx context.Context, groupID uuid.UUID) ([]model.GroceryList, error)
}

// MembershipStore answers group membership questions. It is read-only.
type MembershipStore interface {
	IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
	SharesGroup(ctx context.Context, a, b uuid.UUID) (bool, error)
}

// Store implements every relation interface on one gorm connection.
type Store struct {
	db *gorm.DB
}

// New wraps a gorm connection.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying connection for migrations and tests.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) isPostgres() bool {
	return s.db.Dialector.Name() == "postgres"
}

var (
	_ RecipeStore      = (*Store)(nil)
	_ FavoriteStore    = (*Store)(nil)
	_ MealPlanStore    = (*Store)(nil)
	_ GroceryListStore = (*Store)(nil)
	_ MembershipStore  = (*Store)(nil)
)
