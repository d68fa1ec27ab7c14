// Package service implements the recipe, collection, favorite, meal plan and
// grocery list operations on top of the store and the external gateway.
package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/mealboard/backend/internal/model"
	"github.com/pageza/mealboard/backend/internal/spoonacular"
	"github.com/pageza/mealboard/backend/internal/types"
)

// RecipeGateway is the slice of the external provider client the services use.
type RecipeGateway interface {
	Search(ctx context.Context, q spoonacular.SearchQuery, page spoonacular.Page) (*spoonacular.SearchResult, error)
	FetchByID(ctx context.Context, externalID int, includeNutrition bool) (*model.Recipe, error)
	BudgetStatus(ctx context.Context) (spoonacular.BudgetStatus, error)
}

// ImageResolver turns a stored image reference into a loadable URL.
type ImageResolver interface {
	ResolveImage(ctx context.Context, ref string) (string, error)
}

// ISearchService defines the unified search operation
type ISearchService interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
}

// IRecipeService defines single recipe lookup
type IRecipeService interface {
	Get(ctx context.Context, callerID *uuid.UUID, id model.RecipeID) (*model.Recipe, error)
}

// ICollectionService defines the collection view
type ICollectionService interface {
	Assemble(ctx context.Context, callerID uuid.UUID, page PageRequest) (*CollectionResponse, error)
}

// IFavoriteService defines favorite operations
type IFavoriteService interface {
	Favorite(ctx context.Context, userID uuid.UUID, id model.RecipeID) error
	Unfavorite(ctx context.Context, userID uuid.UUID, id model.RecipeID) error
	Toggle(ctx context.Context, userID uuid.UUID, id model.RecipeID) (bool, error)
}

// IMealPlanService defines meal plan operations
type IMealPlanService interface {
	Create(ctx context.Context, callerID uuid.UUID, req CreateMealPlanRequest) (*model.MealPlan, error)
	Get(ctx context.Context, callerID, planID uuid.UUID) (*model.MealPlan, error)
	SetSlot(ctx context.Context, callerID, planID uuid.UUID, day model.Weekday, meal model.MealType, in SlotInput) (*model.MealPlan, error)
	ClearSlot(ctx context.Context, callerID, planID uuid.UUID, day model.Weekday, meal model.MealType) (*model.MealPlan, error)
	Archive(ctx context.Context, callerID, planID uuid.UUID) error
}

// IGroceryService defines grocery list operations
type IGroceryService interface {
	Generate(ctx context.Context, callerID uuid.UUID, req GenerateRequest) (*model.GroceryList, error)
	Get(ctx context.Context, callerID, listID uuid.UUID) (*model.GroceryList, error)
	List(ctx context.Context, callerID, groupID uuid.UUID) ([]model.GroceryList, error)
	ToggleItem(ctx context.Context, callerID, listID uuid.UUID, itemID string) (*model.GroceryList, error)
	AddItems(ctx context.Context, callerID, listID uuid.UUID, items []model.Ingredient) (*model.GroceryList, error)
	Complete(ctx context.Context, callerID, listID uuid.UUID) (*model.GroceryList, error)
	Archive(ctx context.Context, callerID, listID uuid.UUID) (*model.GroceryList, error)
}

// ITokenService validates and issues bearer tokens
type ITokenService interface {
	ValidateToken(token string) (*types.TokenClaims, error)
	GenerateToken(userID uuid.UUID, username string) (string, error)
}
