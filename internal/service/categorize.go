package service

import (
	"strings"

	"github.com/pageza/mealboard/backend/internal/model"
)

type categoryRule struct {
	category model.GroceryCategory
	keywords []string
}

// categoryRules are tried in order; the first rule with a matching keyword
// wins. A keyword matches a whole word or its plural ("tomato" covers
// "tomatoes" but not "eggplant" for "egg"). A trailing * or an inner space
// makes it a substring match.
var categoryRules = []categoryRule{
	{model.CategoryDairy, []string{
		"milk", "buttermilk", "cheese", "yogurt", "yoghurt", "butter", "cream", "egg",
		"mozzarella", "parmesan", "cheddar", "ricotta", "feta",
	}},
	{model.CategoryMeat, []string{
		"chicken", "beef", "pork", "lamb", "turkey", "bacon", "sausage", "ham",
		"steak", "veal", "fish", "salmon", "tuna", "cod", "tilapia", "shrimp",
		"prawn", "crab", "lobster", "anchov*", "mince", "chorizo", "prosciutto",
	}},
	{model.CategoryProduce, []string{
		"onion", "garlic", "tomato", "potato", "carrot", "celery", "lettuce",
		"spinach", "kale", "cabbage", "broccoli", "cauliflower", "cucumber",
		"zucchini", "squash", "mushroom", "avocado", "apple", "banana", "lemon",
		"lime", "berr*", "grape", "cilantro", "parsley", "basil", "mint",
		"ginger", "scallion", "shallot", "leek", "bell pepper", "jalapeno",
		"green bean", "corn on the cob", "herb", "eggplant", "butternut",
	}},
	{model.CategoryBakery, []string{
		"bread", "baguette", "bun", "roll", "bagel", "tortilla", "pita",
		"croissant", "muffin", "naan", "brioche",
	}},
	{model.CategoryFrozen, []string{"frozen"}},
	{model.CategoryBeverages, []string{
		"juice", "soda", "coffee", "tea", "wine", "beer", "water", "lemonade",
		"kombucha",
	}},
}

// Categorize assigns a shopping category to an ingredient name. Names that
// match no rule are pantry items.
func Categorize(name string) model.GroceryCategory {
	lower := strings.ToLower(strings.TrimSpace(name))
	if lower == "" {
		return model.CategoryPantry
	}
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !(r >= 'a' && r <= 'z')
	})

	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if matchesKeyword(lower, words, kw) {
				return rule.category
			}
		}
	}
	return model.CategoryPantry
}

func matchesKeyword(lower string, words []string, kw string) bool {
	if stem, ok := strings.CutSuffix(kw, "*"); ok {
		return strings.Contains(lower, stem)
	}
	if strings.Contains(kw, " ") || kw == "frozen" {
		return strings.Contains(lower, kw)
	}
	for _, w := range words {
		if w == kw || w == kw+"s" || w == kw+"es" {
			return true
		}
	}
	return false
}

// categoryFor keeps a stored category when it is one of the known ones and
// falls back to the keyword rules otherwise.
func categoryFor(ing model.Ingredient) model.GroceryCategory {
	stored := model.GroceryCategory(strings.ToLower(strings.TrimSpace(ing.Category)))
	switch stored {
	case model.CategoryProduce, model.CategoryDairy, model.CategoryMeat, model.CategoryBakery,
		model.CategoryFrozen, model.CategoryBeverages, model.CategoryPantry:
		return stored
	}
	return Categorize(ing.Name)
}
