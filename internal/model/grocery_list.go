package model

import (
	"time"

	"github.com/google/uuid"
)

// GroceryCategory is the fixed shopping taxonomy.
type GroceryCategory string

const (
	CategoryProduce   GroceryCategory = "produce"
	CategoryDairy     GroceryCategory = "dairy"
	CategoryMeat      GroceryCategory = "meat"
	CategoryBakery    GroceryCategory = "bakery"
	CategoryFrozen    GroceryCategory = "frozen"
	CategoryBeverages GroceryCategory = "beverages"
	CategoryPantry    GroceryCategory = "pantry"
)

// GroceryListStatus moves active -> completed -> archived.
type GroceryListStatus string

const (
	GroceryListActive    GroceryListStatus = "active"
	GroceryListCompleted GroceryListStatus = "completed"
	GroceryListArchived  GroceryListStatus = "archived"
)

// GroceryItem is a consolidated shopping line. Sources lists the recipes that
// contributed it, in first-seen order.
type GroceryItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Amount   string          `json:"amount"`
	Unit     string          `json:"unit"`
	Category GroceryCategory `json:"category"`
	Checked  bool            `json:"checked"`
	Sources  []RecipeID      `json:"sources"`
}

// GroceryList is a shopping list owned by a group.
type GroceryList struct {
	ID              uuid.UUID         `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	GroupID         uuid.UUID         `gorm:"type:uuid;not null;index" json:"group_id"`
	MealPlanID      *uuid.UUID        `gorm:"type:uuid;index" json:"meal_plan_id,omitempty"`
	Name            string            `gorm:"size:255" json:"name"`
	Status          GroceryListStatus `gorm:"size:16;not null;default:'active'" json:"status"`
	Items           GroceryItems      `gorm:"type:jsonb;not null;default:'[]'" json:"items"`
	AdditionalItems GroceryItems      `gorm:"type:jsonb;not null;default:'[]'" json:"additional_items"`
	CreatedBy       uuid.UUID         `gorm:"type:uuid;not null" json:"created_by"`
	CompletedAt     *time.Time        `json:"completed_at,omitempty"`
}

func (GroceryList) TableName() string {
	return "grocery_lists"
}

// FindItem returns the item with the given id from either item set.
func (l *GroceryList) FindItem(id string) *GroceryItem {
	for i := range l.Items {
		if l.Items[i].ID == id {
			return &l.Items[i]
		}
	}
	for i := range l.AdditionalItems {
		if l.AdditionalItems[i].ID == id {
			return &l.AdditionalItems[i]
		}
	}
	return nil
}

// AllChecked reports whether every item on the list is checked.
func (l *GroceryList) AllChecked() bool {
	total := 0
	for _, set := range []GroceryItems{l.Items, l.AdditionalItems} {
		for _, it := range set {
			total++
			if !it.Checked {
				return false
			}
		}
	}
	return total > 0
}
