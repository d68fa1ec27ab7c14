package spoonacular

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealboard/backend/internal/model"
)

func loadFixture(t *testing.T) apiRecipe {
	t.Helper()
	data, err := os.ReadFile("testdata/recipe_information.json")
	require.NoError(t, err)
	var r apiRecipe
	require.NoError(t, json.Unmarshal(data, &r))
	return r
}

func TestNormalizeRecipe(t *testing.T) {
	r := normalize(loadFixture(t))

	assert.Equal(t, model.ExternalID(716429), r.ID)
	assert.Equal(t, model.OriginExternal, r.Origin)
	assert.Nil(t, r.OwnerID)
	assert.False(t, r.Editable())
	assert.Equal(t, "You can never have too many main course recipes, so give Pasta with Garlic a try. Similar recipe is worth a look.", r.Description)
	assert.Equal(t, r.Description, r.Summary)
	assert.Equal(t, 0, r.PrepMinutes)
	assert.Equal(t, 10, r.CookMinutes)
	assert.Equal(t, 15, r.ReadyMinutes)
	assert.Equal(t, "Italian", r.Cuisine)
	assert.True(t, r.Dietary.Vegetarian)
	assert.Equal(t, model.VisibilityPublic, r.Visibility)
}

func TestNormalizeIngredients(t *testing.T) {
	r := normalize(loadFixture(t))

	require.Len(t, r.Ingredients, 2)
	assert.Equal(t, model.Ingredient{
		Name: "butter", Amount: "1", Unit: "Tbsp", Note: "1 tbsp butter", Category: "milk, eggs, other dairy",
	}, r.Ingredients[0])
	assert.Equal(t, "cauliflower florets", r.Ingredients[1].Name)
	assert.Equal(t, "2", r.Ingredients[1].Amount)
	assert.Equal(t, "cups", r.Ingredients[1].Unit)
	assert.Equal(t, "pantry", r.Ingredients[1].Category)
}

func TestNormalizeInstructions(t *testing.T) {
	r := normalize(loadFixture(t))

	require.Len(t, r.Instructions, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{r.Instructions[0].Number, r.Instructions[1].Number, r.Instructions[2].Number})
	assert.Equal(t, &model.Temperature{Value: 350, Unit: "F"}, r.Instructions[0].Temperature)
	require.NotNil(t, r.Instructions[1].DurationMinutes)
	assert.Equal(t, 10, *r.Instructions[1].DurationMinutes)
	require.NotNil(t, r.Instructions[2].DurationMinutes)
	assert.Equal(t, 60, *r.Instructions[2].DurationMinutes)
	assert.Equal(t, []string{"oven", "pot", "frying pan"}, r.Equipment)
}

func TestNormalizeTags(t *testing.T) {
	r := normalize(loadFixture(t))

	assert.Equal(t, []string{"lunch", "main course", "italian", "mediterranean", "quick", "healthy", "popular"}, r.Tags)

	slow := normalize(apiRecipe{ID: 1, ReadyInMinutes: 90, Cheap: true, Sustainable: true})
	assert.Equal(t, []string{"slow", "budget", "sustainable"}, slow.Tags)
}

func TestNormalizeNutrition(t *testing.T) {
	r := normalize(loadFixture(t))

	assert.Len(t, r.Nutrition, 3)
	assert.Equal(t, model.Nutrient{Amount: 584.46, Unit: "kcal", PercentOfDailyNeeds: 29.22}, r.Nutrition["calories"])
	assert.Contains(t, r.Nutrition, "saturatedFat")
	assert.Contains(t, r.Nutrition, "protein")
	assert.NotContains(t, r.Nutrition, "vitaminK")

	assert.Nil(t, normalize(apiRecipe{ID: 2}).Nutrition)
}

func TestTruncateSummary(t *testing.T) {
	short := "A short summary."
	assert.Equal(t, short, truncateSummary(short, summaryLimit))

	long := strings.Repeat("word ", 60)
	got := truncateSummary(long, summaryLimit)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len([]rune(strings.TrimSuffix(got, "..."))), summaryLimit)
	assert.False(t, strings.HasSuffix(strings.TrimSuffix(got, "..."), " "))
	assert.True(t, strings.HasSuffix(strings.TrimSuffix(got, "..."), "word"))

	unbroken := strings.Repeat("x", 250)
	assert.Equal(t, strings.Repeat("x", 200)+"...", truncateSummary(unbroken, summaryLimit))
}

func TestNormalizeTemperature(t *testing.T) {
	assert.Equal(t, &model.Temperature{Value: 180, Unit: "C"}, normalizeTemperature(apiTemperature{Number: 180, Unit: "Celsius"}))
	assert.Equal(t, &model.Temperature{Value: 400, Unit: "F"}, normalizeTemperature(apiTemperature{Number: 400, Unit: "°F"}))
	assert.Nil(t, normalizeTemperature(apiTemperature{Number: 3, Unit: "gas mark"}))
}
