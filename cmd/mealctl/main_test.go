package main

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealboard/backend/internal/model"
	"github.com/pageza/mealboard/backend/internal/service"
)

func TestParseIngredients(t *testing.T) {
	got := parseIngredients([]string{"flour:2:cup", "eggs:3", "salt", " : 1 "})
	assert.Equal(t, []model.Ingredient{
		{Name: "flour", Amount: "2", Unit: "cup"},
		{Name: "eggs", Amount: "3"},
		{Name: "salt"},
	}, got)
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	t.Setenv("JWT_SECRET", "cli-secret")
	userID := uuid.New()

	a := &app{}
	t.Cleanup(a.close)
	root := newRootCmd(a)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"token", "--user", userID.String(), "--username", "cook"})
	require.NoError(t, root.Execute())

	claims, err := service.NewTokenService("cli-secret").ValidateToken(string(bytes.TrimSpace(out.Bytes())))
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestSearchRejectsUnknownSource(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	a := &app{}
	t.Cleanup(a.close)
	root := newRootCmd(a)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"search", "--source", "everywhere", "pasta"})
	assert.Error(t, root.Execute())
	assert.Nil(t, a.res)
}
