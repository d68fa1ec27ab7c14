package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/pageza/mealboard/backend/internal/model"
)

func (s *Store) IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.GroupMember{}).
		Where("group_id = ? AND user_id = ?", groupID, userID).
		Count(&count).Error
	if err != nil {
		return false, translate(err, "group membership")
	}
	return count > 0, nil
}

// AddMember records a membership. Group management lives elsewhere; this is
// used by seeding tools and tests.
func (s *Store) AddMember(ctx context.Context, groupID, userID uuid.UUID, role string) error {
	if role == "" {
		role = "member"
	}
	m := &model.GroupMember{GroupID: groupID, UserID: userID, Role: role}
	return translate(s.db.WithContext(ctx).Create(m).Error, "group membership")
}

// SharesGroup reports whether two users belong to at least one common group.
func (s *Store) SharesGroup(ctx context.Context, a, b uuid.UUID) (bool, error) {
	if a == b {
		return true, nil
	}
	var count int64
	err := s.db.WithContext(ctx).Table("group_members AS mine").
		Joins("JOIN group_members AS theirs ON theirs.group_id = mine.group_id").
		Where("mine.user_id = ? AND theirs.user_id = ?", a, b).
		Count(&count).Error
	if err != nil {
		return false, translate(err, "group membership")
	}
	return count > 0, nil
}
