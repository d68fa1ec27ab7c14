package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealboard/backend/internal/apperr"
	"github.com/pageza/mealboard/backend/internal/model"
	"github.com/pageza/mealboard/backend/internal/service"
	"github.com/pageza/mealboard/backend/internal/store"
	"github.com/pageza/mealboard/backend/internal/testhelpers"
)

type groceryFixture struct {
	st     *store.Store
	svc    *service.GroceryService
	plans  *service.MealPlanService
	caller uuid.UUID
	group  uuid.UUID
}

func newGroceryFixture(t *testing.T) *groceryFixture {
	t.Helper()
	st := store.New(testhelpers.NewSQLiteDB(t))
	f := &groceryFixture{
		st:     st,
		svc:    service.NewGroceryService(st, nil),
		plans:  service.NewMealPlanService(st, nil),
		caller: uuid.New(),
		group:  uuid.New(),
	}
	testhelpers.AddMember(t, st.DB(), f.group, f.caller)
	return f
}

func (f *groceryFixture) plan(t *testing.T, slots map[model.Weekday]*model.LocalRecipe) *model.MealPlan {
	t.Helper()
	ctx := context.Background()
	plan, err := f.plans.Create(ctx, f.caller, service.CreateMealPlanRequest{
		GroupID:   f.group,
		WeekStart: time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	for day, recipe := range slots {
		ref := model.LocalID(recipe.ID)
		_, err := f.plans.SetSlot(ctx, f.caller, plan.ID, day, model.Dinner, service.SlotInput{RecipeID: &ref})
		require.NoError(t, err)
	}
	return plan
}

func itemByName(t *testing.T, list *model.GroceryList, name string) model.GroceryItem {
	t.Helper()
	for _, it := range list.Items {
		if it.Name == name {
			return it
		}
	}
	t.Fatalf("item %q not on list", name)
	return model.GroceryItem{}
}

func TestGenerateFromMealPlan(t *testing.T) {
	f := newGroceryFixture(t)
	owner := uuid.New()
	r1 := testhelpers.CreateRecipe(t, f.st.DB(), owner, "R1", testhelpers.WithIngredients(
		testhelpers.Ingredient("flour", "2", "cups"),
		testhelpers.Ingredient("onion", "1", ""),
	))
	r2 := testhelpers.CreateRecipe(t, f.st.DB(), owner, "R2", testhelpers.WithIngredients(
		testhelpers.Ingredient("onion", "1", ""),
		testhelpers.Ingredient("eggs", "3", ""),
	))
	plan := f.plan(t, map[model.Weekday]*model.LocalRecipe{model.Monday: r1, model.Tuesday: r2})

	list, err := f.svc.Generate(context.Background(), f.caller, service.GenerateRequest{
		GroupID:    f.group,
		MealPlanID: &plan.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, model.GroceryListActive, list.Status)
	require.Len(t, list.Items, 3)
	assert.Empty(t, list.AdditionalItems)
	assert.Equal(t, &plan.ID, list.MealPlanID)

	flour := itemByName(t, list, "flour")
	assert.Equal(t, "2", flour.Amount)
	assert.Equal(t, "cups", flour.Unit)
	assert.Equal(t, []model.RecipeID{model.LocalID(r1.ID)}, flour.Sources)

	onion := itemByName(t, list, "onion")
	assert.Equal(t, []model.RecipeID{model.LocalID(r1.ID), model.LocalID(r2.ID)}, onion.Sources)
	assert.Equal(t, model.CategoryProduce, onion.Category)

	eggs := itemByName(t, list, "eggs")
	assert.Equal(t, []model.RecipeID{model.LocalID(r2.ID)}, eggs.Sources)

	for _, it := range list.Items {
		assert.False(t, it.Checked)
	}

	stored, err := f.svc.Get(context.Background(), f.caller, list.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 3)
}

func TestGenerateConsolidatesNameVariants(t *testing.T) {
	f := newGroceryFixture(t)
	owner := uuid.New()
	a := testhelpers.CreateRecipe(t, f.st.DB(), owner, "A", testhelpers.WithIngredients(
		testhelpers.Ingredient("Onion", "1", "")))
	b := testhelpers.CreateRecipe(t, f.st.DB(), owner, "B", testhelpers.WithIngredients(
		testhelpers.Ingredient("onion ", "2", "large")))
	plan := f.plan(t, map[model.Weekday]*model.LocalRecipe{model.Monday: a, model.Wednesday: b})

	list, err := f.svc.Generate(context.Background(), f.caller, service.GenerateRequest{GroupID: f.group, MealPlanID: &plan.ID})
	require.NoError(t, err)

	require.Len(t, list.Items, 1)
	assert.Equal(t, "Onion", list.Items[0].Name)
	assert.Equal(t, "1", list.Items[0].Amount)
	assert.Empty(t, list.Items[0].Unit)
	assert.Len(t, list.Items[0].Sources, 2)
}

func TestGenerateSkipsExternalRecipesAndFreeTextSlots(t *testing.T) {
	f := newGroceryFixture(t)
	ctx := context.Background()
	r := testhelpers.CreateRecipe(t, f.st.DB(), uuid.New(), "Local", testhelpers.WithIngredients(
		testhelpers.Ingredient("rice", "1", "cup")))
	plan := f.plan(t, map[model.Weekday]*model.LocalRecipe{model.Friday: r})

	ext := model.ExternalID(12)
	_, err := f.plans.SetSlot(ctx, f.caller, plan.ID, model.Saturday, model.Lunch, service.SlotInput{RecipeID: &ext})
	require.NoError(t, err)
	_, err = f.plans.SetSlot(ctx, f.caller, plan.ID, model.Sunday, model.Lunch, service.SlotInput{Name: "Eat out"})
	require.NoError(t, err)

	list, err := f.svc.Generate(ctx, f.caller, service.GenerateRequest{GroupID: f.group, MealPlanID: &plan.ID})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "rice", list.Items[0].Name)
	assert.Equal(t, model.CategoryPantry, list.Items[0].Category)
}

func TestGenerateFromExplicitIngredients(t *testing.T) {
	f := newGroceryFixture(t)
	list, err := f.svc.Generate(context.Background(), f.caller, service.GenerateRequest{
		GroupID: f.group,
		Name:    "Party",
		Ingredients: []model.Ingredient{
			{Name: "Whole Milk", Amount: "1", Unit: "gallon"},
			{Name: "whole milk", Amount: "2", Unit: "quarts"},
			{Name: "Chips", Category: "pantry"},
		},
		AdditionalItems: []model.Ingredient{{Name: "paper towels"}},
	})
	require.NoError(t, err)

	require.Len(t, list.Items, 2)
	assert.Equal(t, "Whole Milk", list.Items[0].Name)
	assert.Equal(t, model.CategoryDairy, list.Items[0].Category)
	assert.Empty(t, list.Items[0].Sources)
	require.Len(t, list.AdditionalItems, 1)
	assert.Equal(t, model.CategoryPantry, list.AdditionalItems[0].Category)
	assert.Nil(t, list.MealPlanID)
}

func TestGenerateFailures(t *testing.T) {
	f := newGroceryFixture(t)
	ctx := context.Background()

	missing := uuid.New()
	_, err := f.svc.Generate(ctx, f.caller, service.GenerateRequest{GroupID: f.group, MealPlanID: &missing})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	plan := f.plan(t, nil)
	otherGroup := uuid.New()
	testhelpers.AddMember(t, f.st.DB(), otherGroup, f.caller)
	_, err = f.svc.Generate(ctx, f.caller, service.GenerateRequest{GroupID: otherGroup, MealPlanID: &plan.ID})
	assert.ErrorIs(t, err, apperr.ErrValidationFailed)

	_, err = f.svc.Generate(ctx, uuid.New(), service.GenerateRequest{GroupID: f.group, MealPlanID: &plan.ID})
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)

	_, err = f.svc.Generate(ctx, f.caller, service.GenerateRequest{GroupID: f.group})
	assert.ErrorIs(t, err, apperr.ErrValidationFailed)
}

func TestCheckingLastItemCompletesList(t *testing.T) {
	f := newGroceryFixture(t)
	ctx := context.Background()
	list, err := f.svc.Generate(ctx, f.caller, service.GenerateRequest{
		GroupID:         f.group,
		Ingredients:     []model.Ingredient{{Name: "rice"}},
		AdditionalItems: []model.Ingredient{{Name: "soap"}},
	})
	require.NoError(t, err)

	list, err = f.svc.ToggleItem(ctx, f.caller, list.ID, list.Items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, model.GroceryListActive, list.Status)
	assert.Nil(t, list.CompletedAt)

	list, err = f.svc.ToggleItem(ctx, f.caller, list.ID, list.AdditionalItems[0].ID)
	require.NoError(t, err)
	assert.Equal(t, model.GroceryListCompleted, list.Status)
	require.NotNil(t, list.CompletedAt)
}

func TestGroceryListLifecycle(t *testing.T) {
	f := newGroceryFixture(t)
	ctx := context.Background()
	list, err := f.svc.Generate(ctx, f.caller, service.GenerateRequest{
		GroupID:     f.group,
		Ingredients: []model.Ingredient{{Name: "bread"}, {Name: "butter"}},
	})
	require.NoError(t, err)
	itemID := list.Items[0].ID

	list, err = f.svc.ToggleItem(ctx, f.caller, list.ID, itemID)
	require.NoError(t, err)
	assert.True(t, list.FindItem(itemID).Checked)

	list, err = f.svc.ToggleItem(ctx, f.caller, list.ID, itemID)
	require.NoError(t, err)
	assert.False(t, list.FindItem(itemID).Checked)

	_, err = f.svc.ToggleItem(ctx, f.caller, list.ID, "nope")
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	list, err = f.svc.AddItems(ctx, f.caller, list.ID, []model.Ingredient{{Name: "coffee"}, {Name: "Coffee"}})
	require.NoError(t, err)
	require.Len(t, list.AdditionalItems, 1)
	assert.Equal(t, model.CategoryBeverages, list.AdditionalItems[0].Category)

	list, err = f.svc.Complete(ctx, f.caller, list.ID)
	require.NoError(t, err)
	assert.Equal(t, model.GroceryListCompleted, list.Status)
	require.NotNil(t, list.CompletedAt)

	_, err = f.svc.ToggleItem(ctx, f.caller, list.ID, itemID)
	assert.ErrorIs(t, err, apperr.ErrValidationFailed)
	_, err = f.svc.Complete(ctx, f.caller, list.ID)
	assert.ErrorIs(t, err, apperr.ErrValidationFailed)

	list, err = f.svc.Archive(ctx, f.caller, list.ID)
	require.NoError(t, err)
	assert.Equal(t, model.GroceryListArchived, list.Status)

	_, err = f.svc.Archive(ctx, f.caller, list.ID)
	assert.ErrorIs(t, err, apperr.ErrValidationFailed)
	_, err = f.svc.AddItems(ctx, f.caller, list.ID, []model.Ingredient{{Name: "tea"}})
	assert.ErrorIs(t, err, apperr.ErrValidationFailed)

	_, err = f.svc.Get(ctx, uuid.New(), list.ID)
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)

	lists, err := f.svc.List(ctx, f.caller, f.group)
	require.NoError(t, err)
	assert.Len(t, lists, 1)
}
