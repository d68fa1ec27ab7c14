package model

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecipeID(t *testing.T) {
	local := uuid.New()

	tests := []struct {
		in      string
		want    RecipeID
		wantErr bool
	}{
		{in: "local:" + local.String(), want: LocalID(local)},
		{in: local.String(), want: LocalID(local)},
		{in: "ext:716429", want: ExternalID(716429)},
		{in: "716429", want: ExternalID(716429)},
		{in: "ext:-3", wantErr: true},
		{in: "local:716429", wantErr: true},
		{in: "pizza", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRecipeID(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecipeIDNeverCollides(t *testing.T) {
	ext := ExternalID(42)
	_, err := ext.UUID()
	assert.Error(t, err)

	n, err := ext.ExternalNumber()
	require.NoError(t, err)
	assert.Equal(t, 42, n)
	assert.NotEqual(t, ext.String(), LocalID(uuid.New()).String())
}

func TestRecipeIDJSONAndSQL(t *testing.T) {
	id := ExternalID(99)

	b, err := json.Marshal(map[string]RecipeID{"id": id})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"ext:99"}`, string(b))

	var decoded map[string]RecipeID
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, id, decoded["id"])

	v, err := id.Value()
	require.NoError(t, err)
	var scanned RecipeID
	require.NoError(t, scanned.Scan(v))
	assert.Equal(t, id, scanned)

	require.NoError(t, scanned.Scan(nil))
	assert.True(t, scanned.IsZero())
}

func TestMealPlanRecipeRefs(t *testing.T) {
	r1 := LocalID(uuid.New())
	r2 := ExternalID(7)
	plan := MealPlan{Slots: []MealPlanSlot{
		{Day: Tuesday, MealType: Dinner, RecipeRef: &r2},
		{Day: Monday, MealType: Dinner, RecipeRef: &r1},
		{Day: Wednesday, MealType: Lunch, RecipeRef: &r1},
		{Day: Thursday, MealType: Lunch, Name: "Leftovers"},
	}}

	assert.Equal(t, []RecipeID{r1, r2}, plan.RecipeRefs())
}

func TestLocalRecipeToRecipeIsRenderSafe(t *testing.T) {
	owner := uuid.New()
	row := LocalRecipe{ID: uuid.New(), UserID: owner, Title: "Soup", Visibility: VisibilityPrivate, Status: StatusPublished}

	r := row.ToRecipe()
	assert.Equal(t, OriginLocal, r.Origin)
	assert.Equal(t, "", r.Description)
	assert.Equal(t, "", r.Image)
	assert.Equal(t, 0, r.ReadyMinutes)
	assert.Equal(t, 0.0, r.HealthScore)
	assert.NotNil(t, r.Tags)
	assert.NotNil(t, r.Instructions)
	assert.Equal(t, &owner, r.OwnerID)
	assert.True(t, r.Editable())
}
