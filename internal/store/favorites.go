package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/mealboard/backend/internal/model"
)

const favoriteEntity = "favorite"

// AddFavorite inserts a favorite row. A second insert for the same user and
// recipe fails with a conflict.
func (s *Store) AddFavorite(ctx context.Context, userID uuid.UUID, ref model.RecipeID) (*model.RecipeFavorite, error) {
	fav := &model.RecipeFavorite{UserID: userID, RecipeRef: ref}
	if err := s.db.WithContext(ctx).Create(fav).Error; err != nil {
		return nil, translate(err, favoriteEntity)
	}
	return fav, nil
}

// RemoveFavorite deletes the favorite row and reports whether one existed.
func (s *Store) RemoveFavorite(ctx context.Context, userID uuid.UUID, ref model.RecipeID) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_ref = ?", userID, ref.String()).
		Delete(&model.RecipeFavorite{})
	if result.Error != nil {
		return false, translate(result.Error, favoriteEntity)
	}
	return result.RowsAffected > 0, nil
}

func (s *Store) IsFavorite(ctx context.Context, userID uuid.UUID, ref model.RecipeID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.RecipeFavorite{}).
		Where("user_id = ? AND recipe_ref = ?", userID, ref.String()).
		Count(&count).Error
	if err != nil {
		return false, translate(err, favoriteEntity)
	}
	return count > 0, nil
}

// ListFavorites returns the user's favorites, most recent first.
func (s *Store) ListFavorites(ctx context.Context, userID uuid.UUID) ([]model.RecipeFavorite, error) {
	var favs []model.RecipeFavorite
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id").
		Find(&favs).Error
	if err != nil {
		return nil, translate(err, favoriteEntity)
	}
	return favs, nil
}

// FavoritedSet reports which of refs the user has favorited.
func (s *Store) FavoritedSet(ctx context.Context, userID uuid.UUID, refs []model.RecipeID) (map[model.RecipeID]bool, error) {
	out := make(map[model.RecipeID]bool, len(refs))
	if len(refs) == 0 {
		return out, nil
	}
	keys := make([]string, 0, len(refs))
	for _, ref := range refs {
		keys = append(keys, ref.String())
	}
	var favs []model.RecipeFavorite
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_ref IN ?", userID, keys).
		Find(&favs).Error
	if err != nil {
		return nil, translate(err, favoriteEntity)
	}
	for _, f := range favs {
		out[f.RecipeRef] = true
	}
	return out, nil
}
