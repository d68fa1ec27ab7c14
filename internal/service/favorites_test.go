package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealboard/backend/internal/apperr"
	"github.com/pageza/mealboard/backend/internal/model"
	"github.com/pageza/mealboard/backend/internal/service"
	"github.com/pageza/mealboard/backend/internal/store"
	"github.com/pageza/mealboard/backend/internal/testhelpers"
)

func countFavorites(t *testing.T, st *store.Store, user uuid.UUID) int {
	t.Helper()
	favs, err := st.ListFavorites(context.Background(), user)
	require.NoError(t, err)
	return len(favs)
}

func TestToggleFavoriteIsIdempotent(t *testing.T) {
	st := store.New(testhelpers.NewSQLiteDB(t))
	svc := service.NewFavoriteService(st, nil)
	ctx := context.Background()
	user := uuid.New()
	recipe := testhelpers.CreateRecipe(t, st.DB(), uuid.New(), "Soup")
	id := model.LocalID(recipe.ID)

	on, err := svc.Toggle(ctx, user, id)
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, 1, countFavorites(t, st, user))

	off, err := svc.Toggle(ctx, user, id)
	require.NoError(t, err)
	assert.False(t, off)
	assert.Equal(t, 0, countFavorites(t, st, user))
}

func TestFavoriteTwiceKeepsOneRow(t *testing.T) {
	st := store.New(testhelpers.NewSQLiteDB(t))
	svc := service.NewFavoriteService(st, nil)
	ctx := context.Background()
	user := uuid.New()
	id := model.ExternalID(715538)

	require.NoError(t, svc.Favorite(ctx, user, id))
	require.NoError(t, svc.Favorite(ctx, user, id))
	assert.Equal(t, 1, countFavorites(t, st, user))

	require.NoError(t, svc.Unfavorite(ctx, user, id))
	require.NoError(t, svc.Unfavorite(ctx, user, id))
	assert.Equal(t, 0, countFavorites(t, st, user))
}

func TestFavoriteChecksLocalTargets(t *testing.T) {
	st := store.New(testhelpers.NewSQLiteDB(t))
	svc := service.NewFavoriteService(st, nil)
	ctx := context.Background()
	user, owner := uuid.New(), uuid.New()

	err := svc.Favorite(ctx, user, model.LocalID(uuid.New()))
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	private := testhelpers.CreateRecipe(t, st.DB(), owner, "Private", testhelpers.WithVisibility(model.VisibilityPrivate))
	err = svc.Favorite(ctx, user, model.LocalID(private.ID))
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)

	family := testhelpers.CreateRecipe(t, st.DB(), owner, "Family", testhelpers.WithVisibility(model.VisibilityFamily))
	err = svc.Favorite(ctx, user, model.LocalID(family.ID))
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)

	group := uuid.New()
	testhelpers.AddMember(t, st.DB(), group, owner)
	testhelpers.AddMember(t, st.DB(), group, user)
	assert.NoError(t, svc.Favorite(ctx, user, model.LocalID(family.ID)))

	assert.ErrorIs(t, svc.Favorite(ctx, user, model.RecipeID{}), apperr.ErrValidationFailed)
}
