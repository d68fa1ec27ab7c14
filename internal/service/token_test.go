package service_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealboard/backend/internal/service"
	"github.com/pageza/mealboard/backend/internal/testhelpers"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := service.NewTokenService("test-secret")
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "cook")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "cook", claims.Username)
}

func TestTokenRejectsForeignSignature(t *testing.T) {
	svc := service.NewTokenService("test-secret")
	token := testhelpers.SignToken(t, "other-secret", uuid.New())

	_, err := svc.ValidateToken(token)
	assert.Error(t, err)

	_, err = service.NewTokenService("").ValidateToken(token)
	assert.ErrorIs(t, err, service.ErrEmptySecret)
}
