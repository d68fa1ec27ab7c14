package spoonacular

import (
	"math"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pageza/mealboard/backend/internal/model"
)

const (
	summaryLimit    = 200
	defaultCategory = "pantry"
	quickMaxMinutes = 20
	slowMinMinutes  = 60
)

// nutrientKeys maps provider nutrient names to internal keys. Anything else
// is dropped.
var nutrientKeys = map[string]string{
	"Calories":          "calories",
	"Fat":               "fat",
	"Saturated Fat":     "saturatedFat",
	"Carbohydrates":     "carbohydrates",
	"Net Carbohydrates": "netCarbohydrates",
	"Sugar":             "sugar",
	"Cholesterol":       "cholesterol",
	"Sodium":            "sodium",
	"Protein":           "protein",
	"Fiber":             "fiber",
}

// normalize converts a provider recipe into the unified shape. It is pure.
func normalize(in apiRecipe) model.Recipe {
	description := stripMarkup(in.Summary)

	out := model.Recipe{
		ID:           model.ExternalID(in.ID),
		Origin:       model.OriginExternal,
		Title:        strings.TrimSpace(in.Title),
		Description:  description,
		Summary:      truncateSummary(description, summaryLimit),
		PrepMinutes:  positiveMinutes(in.PreparationMinutes),
		CookMinutes:  positiveMinutes(in.CookingMinutes),
		ReadyMinutes: in.ReadyInMinutes,
		Servings:     in.Servings,
		Image:        in.Image,
		Dietary: model.DietaryFlags{
			Vegetarian:  in.Vegetarian,
			Vegan:       in.Vegan,
			GlutenFree:  in.GlutenFree,
			DairyFree:   in.DairyFree,
			VeryHealthy: in.VeryHealthy,
			Cheap:       in.Cheap,
		},
		HealthScore: in.HealthScore,
		Tags:        buildTags(in),
		Ingredients: normalizeIngredients(in.ExtendedIngredients),
		Visibility:  model.VisibilityPublic,
		Status:      model.StatusPublished,
		SourceURL:   in.SourceURL,
	}
	if len(in.Cuisines) > 0 {
		out.Cuisine = in.Cuisines[0]
	}
	out.Instructions, out.Equipment = flattenInstructions(in.AnalyzedInstructions)
	out.Nutrition = mapNutrition(in.Nutrition)
	return out
}

// stripMarkup returns the visible text of an HTML fragment with whitespace
// collapsed.
func stripMarkup(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.Join(strings.Fields(html), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// truncateSummary cuts text to at most limit characters at the last whitespace
// before the limit and appends an ellipsis. Short text is returned unchanged.
func truncateSummary(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	cut := runes[:limit]
	for i := len(cut) - 1; i > 0; i-- {
		if cut[i] == ' ' || cut[i] == '\n' || cut[i] == '\t' {
			cut = cut[:i]
			break
		}
	}
	return strings.TrimRight(string(cut), " \t\n") + "..."
}

func positiveMinutes(v *float64) int {
	if v == nil || *v <= 0 {
		return 0
	}
	return int(*v)
}

func normalizeIngredients(in []apiIngredient) []model.Ingredient {
	out := make([]model.Ingredient, 0, len(in))
	for _, ing := range in {
		name := ing.Name
		if ing.NameClean != nil && strings.TrimSpace(*ing.NameClean) != "" {
			name = *ing.NameClean
		}

		amount, unit := ing.Measures.US.Amount, ing.Measures.US.UnitShort
		if amount == 0 && unit == "" {
			amount, unit = ing.Amount, ing.Unit
		}

		category := defaultCategory
		if ing.Aisle != nil && strings.TrimSpace(*ing.Aisle) != "" {
			category = strings.ToLower(strings.TrimSpace(*ing.Aisle))
		}

		out = append(out, model.Ingredient{
			Name:     strings.TrimSpace(name),
			Amount:   formatAmount(amount),
			Unit:     unit,
			Note:     ing.Original,
			Category: category,
		})
	}
	return out
}

func formatAmount(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

// flattenInstructions merges every step group into one list numbered from 1
// and collects the equipment used across all steps, deduplicated by name.
func flattenInstructions(groups []apiInstructionGroup) ([]model.InstructionStep, []string) {
	steps := []model.InstructionStep{}
	var equipment []string
	seen := map[string]bool{}

	for _, g := range groups {
		for _, s := range g.Steps {
			step := model.InstructionStep{
				Number: len(steps) + 1,
				Text:   strings.TrimSpace(s.Step),
			}
			if s.Length != nil {
				if mins, ok := lengthMinutes(*s.Length); ok {
					step.DurationMinutes = &mins
				}
			}
			for _, eq := range s.Equipment {
				name := strings.TrimSpace(eq.Name)
				if name != "" {
					step.Equipment = append(step.Equipment, name)
					key := strings.ToLower(name)
					if !seen[key] {
						seen[key] = true
						equipment = append(equipment, name)
					}
				}
				if step.Temperature == nil && eq.Temperature != nil {
					step.Temperature = normalizeTemperature(*eq.Temperature)
				}
			}
			steps = append(steps, step)
		}
	}
	return steps, equipment
}

func lengthMinutes(l apiLength) (int, bool) {
	if l.Number <= 0 {
		return 0, false
	}
	unit := strings.ToLower(l.Unit)
	switch {
	case strings.HasPrefix(unit, "hour"):
		return l.Number * 60, true
	case strings.HasPrefix(unit, "second"):
		return int(math.Ceil(float64(l.Number) / 60)), true
	default:
		return l.Number, true
	}
}

func normalizeTemperature(t apiTemperature) *model.Temperature {
	unit := strings.ToLower(strings.Trim(t.Unit, " °"))
	switch unit {
	case "f", "fahrenheit":
		return &model.Temperature{Value: t.Number, Unit: "F"}
	case "c", "celsius":
		return &model.Temperature{Value: t.Number, Unit: "C"}
	default:
		return nil
	}
}

func buildTags(in apiRecipe) []string {
	tags := []string{}
	seen := map[string]bool{}
	add := func(tag string) {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	for _, t := range in.DishTypes {
		add(t)
	}
	for _, c := range in.Cuisines {
		add(c)
	}
	if in.ReadyInMinutes > 0 && in.ReadyInMinutes <= quickMaxMinutes {
		add("quick")
	}
	if in.ReadyInMinutes >= slowMinMinutes {
		add("slow")
	}
	if in.VeryHealthy {
		add("healthy")
	}
	if in.Cheap {
		add("budget")
	}
	if in.VeryPopular {
		add("popular")
	}
	if in.Sustainable {
		add("sustainable")
	}
	return tags
}

func mapNutrition(n *apiNutrition) map[string]model.Nutrient {
	if n == nil {
		return nil
	}
	out := make(map[string]model.Nutrient)
	for _, nu := range n.Nutrients {
		key, ok := nutrientKeys[nu.Name]
		if !ok {
			continue
		}
		out[key] = model.Nutrient{
			Amount:              nu.Amount,
			Unit:                nu.Unit,
			PercentOfDailyNeeds: nu.PercentOfDailyNeeds,
		}
	}
	return out
}
