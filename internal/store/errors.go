package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/pageza/mealboard/backend/internal/apperr"
)

const pqUniqueViolation = "23505"

// isUniqueViolation recognizes duplicate key errors from either dialect.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pqUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// translate maps a gorm error onto the core taxonomy.
func translate(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(entity)
	}
	if isUniqueViolation(err) {
		return apperr.Wrap(apperr.KindConflict, err, entity+" already exists")
	}
	return fmt.Errorf("%s: %w", entity, err)
}
