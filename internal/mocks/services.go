package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/mealboard/backend/internal/model"
	"github.com/pageza/mealboard/backend/internal/service"
	"github.com/pageza/mealboard/backend/internal/types"
)

// MockSearchService is a mock implementation of the search service
type MockSearchService struct {
	mock.Mock
}

func (m *MockSearchService) Search(ctx context.Context, req service.SearchRequest) (*service.SearchResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SearchResponse), args.Error(1)
}

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

func (m *MockRecipeService) Get(ctx context.Context, callerID *uuid.UUID, id model.RecipeID) (*model.Recipe, error) {
	args := m.Called(ctx, callerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

// MockCollectionService is a mock implementation of the collection service
type MockCollectionService struct {
	mock.Mock
}

func (m *MockCollectionService) Assemble(ctx context.Context, callerID uuid.UUID, page service.PageRequest) (*service.CollectionResponse, error) {
	args := m.Called(ctx, callerID, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CollectionResponse), args.Error(1)
}

// MockFavoriteService is a mock implementation of the favorite service
type MockFavoriteService struct {
	mock.Mock
}

func (m *MockFavoriteService) Favorite(ctx context.Context, userID uuid.UUID, id model.RecipeID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockFavoriteService) Unfavorite(ctx context.Context, userID uuid.UUID, id model.RecipeID) error {
	return m.Called(ctx, userID, id).Error(0)
}

func (m *MockFavoriteService) Toggle(ctx context.Context, userID uuid.UUID, id model.RecipeID) (bool, error) {
	args := m.Called(ctx, userID, id)
	return args.Bool(0), args.Error(1)
}

// MockGroceryService is a mock implementation of the grocery service
type MockGroceryService struct {
	mock.Mock
}

func (m *MockGroceryService) list(args mock.Arguments) (*model.GroceryList, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.GroceryList), args.Error(1)
}

func (m *MockGroceryService) Generate(ctx context.Context, callerID uuid.UUID, req service.GenerateRequest) (*model.GroceryList, error) {
	return m.list(m.Called(ctx, callerID, req))
}

func (m *MockGroceryService) Get(ctx context.Context, callerID, listID uuid.UUID) (*model.GroceryList, error) {
	return m.list(m.Called(ctx, callerID, listID))
}

func (m *MockGroceryService) List(ctx context.Context, callerID, groupID uuid.UUID) ([]model.GroceryList, error) {
	args := m.Called(ctx, callerID, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.GroceryList), args.Error(1)
}

func (m *MockGroceryService) ToggleItem(ctx context.Context, callerID, listID uuid.UUID, itemID string) (*model.GroceryList, error) {
	return m.list(m.Called(ctx, callerID, listID, itemID))
}

func (m *MockGroceryService) AddItems(ctx context.Context, callerID, listID uuid.UUID, items []model.Ingredient) (*model.GroceryList, error) {
	return m.list(m.Called(ctx, callerID, listID, items))
}

func (m *MockGroceryService) Complete(ctx context.Context, callerID, listID uuid.UUID) (*model.GroceryList, error) {
	return m.list(m.Called(ctx, callerID, listID))
}

func (m *MockGroceryService) Archive(ctx context.Context, callerID, listID uuid.UUID) (*model.GroceryList, error) {
	return m.list(m.Called(ctx, callerID, listID))
}

// MockMealPlanService is a mock implementation of the meal plan service
type MockMealPlanService struct {
	mock.Mock
}

func (m *MockMealPlanService) plan(args mock.Arguments) (*model.MealPlan, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MealPlan), args.Error(1)
}

func (m *MockMealPlanService) Create(ctx context.Context, callerID uuid.UUID, req service.CreateMealPlanRequest) (*model.MealPlan, error) {
	return m.plan(m.Called(ctx, callerID, req))
}

func (m *MockMealPlanService) Get(ctx context.Context, callerID, planID uuid.UUID) (*model.MealPlan, error) {
	return m.plan(m.Called(ctx, callerID, planID))
}

func (m *MockMealPlanService) SetSlot(ctx context.Context, callerID, planID uuid.UUID, day model.Weekday, meal model.MealType, in service.SlotInput) (*model.MealPlan, error) {
	return m.plan(m.Called(ctx, callerID, planID, day, meal, in))
}

func (m *MockMealPlanService) ClearSlot(ctx context.Context, callerID, planID uuid.UUID, day model.Weekday, meal model.MealType) (*model.MealPlan, error) {
	return m.plan(m.Called(ctx, callerID, planID, day, meal))
}

func (m *MockMealPlanService) Archive(ctx context.Context, callerID, planID uuid.UUID) error {
	return m.Called(ctx, callerID, planID).Error(0)
}

// MockTokenService is a mock implementation of the token service
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

func (m *MockTokenService) GenerateToken(userID uuid.UUID, username string) (string, error) {
	args := m.Called(userID, username)
	return args.String(0), args.Error(1)
}

var (
	_ service.ISearchService     = (*MockSearchService)(nil)
	_ service.IRecipeService     = (*MockRecipeService)(nil)
	_ service.ICollectionService = (*MockCollectionService)(nil)
	_ service.IFavoriteService   = (*MockFavoriteService)(nil)
	_ service.IGroceryService    = (*MockGroceryService)(nil)
	_ service.IMealPlanService   = (*MockMealPlanService)(nil)
	_ service.ITokenService      = (*MockTokenService)(nil)
	_ service.RecipeGateway      = (*MockRecipeGateway)(nil)
)
