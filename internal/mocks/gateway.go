package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealboard/backend/internal/model"
	"github.com/pageza/mealboard/backend/internal/spoonacular"
)

// MockRecipeGateway is a mock implementation of the external recipe gateway
type MockRecipeGateway struct {
	mock.Mock
}

// Search mocks the Search method
func (m *MockRecipeGateway) Search(ctx context.Context, q spoonacular.SearchQuery, page spoonacular.Page) (*spoonacular.SearchResult, error) {
	args := m.Called(ctx, q, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*spoonacular.SearchResult), args.Error(1)
}

// FetchByID mocks the FetchByID method
func (m *MockRecipeGateway) FetchByID(ctx context.Context, externalID int, includeNutrition bool) (*model.Recipe, error) {
	args := m.Called(ctx, externalID, includeNutrition)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

// BudgetStatus mocks the BudgetStatus method
func (m *MockRecipeGateway) BudgetStatus(ctx context.Context) (spoonacular.BudgetStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(spoonacular.BudgetStatus), args.Error(1)
}

// ExternalRecipe builds a normalized provider recipe for tests.
func ExternalRecipe(id int, title string) *model.Recipe {
	return &model.Recipe{
		ID:           model.ExternalID(id),
		Origin:       model.OriginExternal,
		Title:        title,
		Tags:         []string{},
		Ingredients:  []model.Ingredient{},
		Instructions: []model.InstructionStep{},
		Visibility:   model.VisibilityPublic,
		Status:       model.StatusPublished,
	}
}
