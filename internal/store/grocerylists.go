package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/mealboard/backend/internal/model"
)

const groceryListEntity = "grocery list"

func (s *Store) CreateGroceryList(ctx context.Context, list *model.GroceryList) error {
	return translate(s.db.WithContext(ctx).Create(list).Error, groceryListEntity)
}

func (s *Store) GetGroceryList(ctx context.Context, id uuid.UUID) (*model.GroceryList, error) {
	var list model.GroceryList
	if err := s.db.WithContext(ctx).First(&list, "id = ?", id).Error; err != nil {
		return nil, translate(err, groceryListEntity)
	}
	return &list, nil
}

// SaveGroceryList writes every column of an existing list.
func (s *Store) SaveGroceryList(ctx context.Context, list *model.GroceryList) error {
	return translate(s.db.WithContext(ctx).Save(list).Error, groceryListEntity)
}

// ListGroceryLists returns a group's lists, newest first.
func (s *Store) ListGroceryLists(ctx context.Context, groupID uuid.UUID) ([]model.GroceryList, error) {
	var lists []model.GroceryList
	err := s.db.WithContext(ctx).
		Where("group_id = ?", groupID).
		Order("created_at DESC").
		Find(&lists).Error
	if err != nil {
		return nil, translate(err, groceryListEntity)
	}
	return lists, nil
}
