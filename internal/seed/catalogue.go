package seed

import "github.com/pageza/mealboard/backend/internal/model"

func minutes(n int) *int { return &n }

func score(f float64) *float64 { return &f }

func ing(name, amount, unit string) model.RecipeIngredient {
	return model.RecipeIngredient{Name: name, Amount: amount, Unit: unit}
}

func steps(texts ...string) model.InstructionSteps {
	out := make(model.InstructionSteps, len(texts))
	for i, t := range texts {
		out[i] = model.InstructionStep{Number: i + 1, Text: t}
	}
	return out
}

// catalogue returns fresh copies of the demo recipes.
func catalogue() []*model.LocalRecipe {
	return []*model.LocalRecipe{
		{
			Title:        "Weeknight Tomato Pasta",
			Description:  "Spaghetti in a quick garlic and tomato sauce.",
			Cuisine:      "italian",
			PrepMinutes:  minutes(10),
			CookMinutes:  minutes(15),
			ReadyMinutes: minutes(25),
			Servings:     minutes(4),
			HealthScore:  score(42),
			Vegetarian:   true,
			Tags:         model.JSONBStringArray{"quick", "vegetarian"},
			Visibility:   model.VisibilityPublic,
			Status:       model.StatusPublished,
			Ingredients: []model.RecipeIngredient{
				ing("spaghetti", "1", "lb"),
				ing("canned tomatoes", "28", "oz"),
				ing("garlic", "3", "clove"),
				ing("olive oil", "2", "tbsp"),
				ing("parmesan", "0.5", "cup"),
			},
			Instructions: steps(
				"Boil the spaghetti in salted water.",
				"Soften the garlic in olive oil, add tomatoes and simmer 10 minutes.",
				"Toss pasta with sauce and parmesan.",
			),
		},
		{
			Title:        "Chickpea Spinach Curry",
			Description:  "Coconut curry with chickpeas and wilted spinach.",
			Cuisine:      "indian",
			PrepMinutes:  minutes(10),
			CookMinutes:  minutes(25),
			ReadyMinutes: minutes(35),
			Servings:     minutes(4),
			HealthScore:  score(78),
			Vegetarian:   true,
			Vegan:        true,
			GlutenFree:   true,
			DairyFree:    true,
			Tags:         model.JSONBStringArray{"vegan", "one-pot"},
			Visibility:   model.VisibilityPublic,
			Status:       model.StatusPublished,
			Ingredients: []model.RecipeIngredient{
				ing("chickpeas", "2", "can"),
				ing("coconut milk", "1", "can"),
				ing("onion", "1", ""),
				ing("garlic", "2", "clove"),
				ing("spinach", "5", "oz"),
				ing("curry powder", "2", "tbsp"),
			},
			Instructions: steps(
				"Cook onion and garlic until soft.",
				"Add curry powder, chickpeas and coconut milk and simmer 15 minutes.",
				"Stir in spinach until wilted.",
			),
		},
		{
			Title:        "Sheet Pan Lemon Chicken",
			Description:  "Chicken thighs roasted with potatoes and lemon.",
			Cuisine:      "mediterranean",
			PrepMinutes:  minutes(15),
			CookMinutes:  minutes(40),
			ReadyMinutes: minutes(55),
			Servings:     minutes(4),
			HealthScore:  score(61),
			GlutenFree:   true,
			DairyFree:    true,
			Tags:         model.JSONBStringArray{"sheet-pan"},
			Visibility:   model.VisibilityFamily,
			Status:       model.StatusPublished,
			Ingredients: []model.RecipeIngredient{
				ing("chicken thighs", "2", "lb"),
				ing("potatoes", "1.5", "lb"),
				ing("lemon", "2", ""),
				ing("garlic", "4", "clove"),
				ing("olive oil", "3", "tbsp"),
			},
			Instructions: steps(
				"Toss everything with oil, salt and lemon juice.",
				"Roast at 425F for 40 minutes.",
			),
		},
		{
			Title:        "Overnight Oats",
			Description:  "Oats soaked in milk with berries.",
			Cuisine:      "american",
			PrepMinutes:  minutes(5),
			ReadyMinutes: minutes(5),
			Servings:     minutes(2),
			HealthScore:  score(70),
			Vegetarian:   true,
			Tags:         model.JSONBStringArray{"breakfast", "make-ahead"},
			Visibility:   model.VisibilityPublic,
			Status:       model.StatusPublished,
			Ingredients: []model.RecipeIngredient{
				ing("rolled oats", "1", "cup"),
				ing("milk", "1", "cup"),
				ing("blueberries", "0.5", "cup"),
				ing("honey", "1", "tbsp"),
			},
			Instructions: steps("Stir everything together and refrigerate overnight."),
		},
		{
			Title:        "Grandma's Banana Bread",
			Description:  "The family loaf. Not for sharing outside the house.",
			Cuisine:      "american",
			PrepMinutes:  minutes(15),
			CookMinutes:  minutes(60),
			ReadyMinutes: minutes(75),
			Servings:     minutes(8),
			Vegetarian:   true,
			Tags:         model.JSONBStringArray{"baking"},
			Visibility:   model.VisibilityPrivate,
			Status:       model.StatusPublished,
			Ingredients: []model.RecipeIngredient{
				ing("bananas", "3", ""),
				ing("flour", "2", "cup"),
				ing("butter", "0.5", "cup"),
				ing("eggs", "2", ""),
				ing("sugar", "0.75", "cup"),
			},
			Instructions: steps(
				"Mash bananas and mix with melted butter, eggs and sugar.",
				"Fold in flour and bake at 350F for an hour.",
			),
		},
		{
			Title:       "Black Bean Tacos",
			Description: "Work in progress.",
			Cuisine:     "mexican",
			Vegetarian:  true,
			Visibility:  model.VisibilityPublic,
			Status:      model.StatusDraft,
			Ingredients: []model.RecipeIngredient{
				ing("black beans", "1", "can"),
				ing("tortillas", "8", ""),
			},
		},
	}
}
