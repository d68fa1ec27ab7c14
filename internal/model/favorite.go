package model

import (
	"time"

	"github.com/google/uuid"
)

// RecipeFavorite bookmarks a recipe of either origin for a user. External
// recipes are referenced by id only and never copied into the recipes table.
type RecipeFavorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_recipe" json:"user_id"`
	RecipeRef RecipeID  `gorm:"type:varchar(64);not null;uniqueIndex:idx_favorite_user_recipe" json:"recipe_id"`
}

func (RecipeFavorite) TableName() string {
	return "recipe_favorites"
}
