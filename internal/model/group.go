package model

import (
	"time"

	"github.com/google/uuid"
)

// GroupMember links a user to a household group. The core only reads it.
type GroupMember struct {
	GroupID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"group_id"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey;index" json:"user_id"`
	Role      string    `gorm:"size:16;not null;default:'member'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (GroupMember) TableName() string {
	return "group_members"
}
