package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/mealboard/backend/internal/apperr"
	"github.com/pageza/mealboard/backend/internal/model"
	"github.com/pageza/mealboard/backend/internal/store"
)

// FavoriteService manages a user's favorites across both origins.
type FavoriteService struct {
	recipes   store.RecipeStore
	favorites store.FavoriteStore
	members   store.MembershipStore
	log       *zap.Logger
}

// NewFavoriteService creates a new FavoriteService instance
func NewFavoriteService(st *store.Store, log *zap.Logger) *FavoriteService {
	if log == nil {
		log = zap.NewNop()
	}
	return &FavoriteService{recipes: st, favorites: st, members: st, log: log}
}

// Favorite bookmarks the recipe. Favoriting twice is a no-op. External ids
// are accepted without asking the provider.
func (s *FavoriteService) Favorite(ctx context.Context, userID uuid.UUID, id model.RecipeID) error {
	if err := s.checkTarget(ctx, userID, id); err != nil {
		return err
	}
	exists, err := s.favorites.IsFavorite(ctx, userID, id)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	_, err = s.favorites.AddFavorite(ctx, userID, id)
	if errors.Is(err, apperr.ErrConflict) {
		// A concurrent request won the insert.
		return nil
	}
	return err
}

// Unfavorite removes the bookmark if present.
func (s *FavoriteService) Unfavorite(ctx context.Context, userID uuid.UUID, id model.RecipeID) error {
	if id.IsZero() {
		return apperr.Validation("recipe id is required")
	}
	_, err := s.favorites.RemoveFavorite(ctx, userID, id)
	return err
}

// Toggle flips the favorite state and returns the new one.
func (s *FavoriteService) Toggle(ctx context.Context, userID uuid.UUID, id model.RecipeID) (bool, error) {
	exists, err := s.favorites.IsFavorite(ctx, userID, id)
	if err != nil {
		return false, err
	}
	if exists {
		return false, s.Unfavorite(ctx, userID, id)
	}
	if err := s.Favorite(ctx, userID, id); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FavoriteService) checkTarget(ctx context.Context, userID uuid.UUID, id model.RecipeID) error {
	switch {
	case id.IsZero():
		return apperr.Validation("recipe id is required")
	case id.IsExternal():
		if _, err := id.ExternalNumber(); err != nil {
			return apperr.Validation("invalid external recipe id %q", id)
		}
		return nil
	}
	localID, err := id.UUID()
	if err != nil {
		return apperr.Validation("invalid local recipe id %q", id)
	}
	row, err := s.recipes.GetRecipe(ctx, localID)
	if err != nil {
		return err
	}
	return checkVisible(ctx, s.members, row, &userID)
}
