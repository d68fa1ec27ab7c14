package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/mealboard/backend/internal/model"
	"github.com/pageza/mealboard/backend/internal/service"
	"github.com/pageza/mealboard/backend/internal/store"
	"github.com/pageza/mealboard/backend/internal/testhelpers"
)

func TestSeedIsIdempotent(t *testing.T) {
	st := store.New(testhelpers.NewSQLiteDB(t))
	ctx := context.Background()
	owner := DemoUsers()[0].ID
	now := time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC)

	for run := 0; run < 2; run++ {
		require.NoError(t, Members(ctx, st))
		recipes, err := Recipes(ctx, st, owner, zap.NewNop())
		require.NoError(t, err)
		assert.Len(t, recipes, len(catalogue()))

		plan, err := MealPlan(ctx, st, recipes, now, zap.NewNop())
		require.NoError(t, err)
		assert.Len(t, plan.Slots, 4)
		assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), plan.WeekStart.UTC())
	}

	owned, err := st.ListOwnedRecipes(ctx, owner, "")
	require.NoError(t, err)
	assert.Len(t, owned, len(catalogue()))

	for _, u := range DemoUsers() {
		member, err := st.IsMember(ctx, DemoGroupID, u.ID)
		require.NoError(t, err)
		assert.True(t, member, u.Username)
	}
}

func TestSeededPlanProducesGroceryList(t *testing.T) {
	st := store.New(testhelpers.NewSQLiteDB(t))
	ctx := context.Background()
	require.NoError(t, Members(ctx, st))
	recipes, err := Recipes(ctx, st, DemoUsers()[0].ID, zap.NewNop())
	require.NoError(t, err)
	plan, err := MealPlan(ctx, st, recipes, time.Now(), zap.NewNop())
	require.NoError(t, err)

	list, err := service.NewGroceryService(st, nil).Generate(ctx, DemoUsers()[1].ID, service.GenerateRequest{
		GroupID:    DemoGroupID,
		MealPlanID: &plan.ID,
	})
	require.NoError(t, err)

	var garlic *model.GroceryItem
	for i := range list.Items {
		if list.Items[i].Name == "garlic" {
			garlic = &list.Items[i]
		}
	}
	require.NotNil(t, garlic)
	assert.Equal(t, "3", garlic.Amount)
	assert.Len(t, garlic.Sources, 3)
	assert.Equal(t, model.GroceryCategory("produce"), garlic.Category)
}

func TestDemoIDsAreStable(t *testing.T) {
	assert.Equal(t, DemoUsers()[0].ID, demoID("user:alex"))
	assert.NotEqual(t, DemoUsers()[0].ID, DemoUsers()[1].ID)
}
