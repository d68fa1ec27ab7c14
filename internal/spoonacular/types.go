package spoonacular

// The types below mirror the provider's JSON. They never leave this package:
// everything is normalized into model.Recipe first.

type apiRecipe struct {
	ID                   int                   `json:"id"`
	Title                string                `json:"title"`
	Summary              string                `json:"summary"`
	Image                string                `json:"image"`
	SourceURL            string                `json:"sourceUrl"`
	ReadyInMinutes       int                   `json:"readyInMinutes"`
	PreparationMinutes   *float64              `json:"preparationMinutes"`
	CookingMinutes       *float64              `json:"cookingMinutes"`
	Servings             int                   `json:"servings"`
	Vegetarian           bool                  `json:"vegetarian"`
	Vegan                bool                  `json:"vegan"`
	GlutenFree           bool                  `json:"glutenFree"`
	DairyFree            bool                  `json:"dairyFree"`
	VeryHealthy          bool                  `json:"veryHealthy"`
	Cheap                bool                  `json:"cheap"`
	VeryPopular          bool                  `json:"veryPopular"`
	Sustainable          bool                  `json:"sustainable"`
	HealthScore          float64               `json:"healthScore"`
	Cuisines             []string              `json:"cuisines"`
	DishTypes            []string              `json:"dishTypes"`
	ExtendedIngredients  []apiIngredient       `json:"extendedIngredients"`
	AnalyzedInstructions []apiInstructionGroup `json:"analyzedInstructions"`
	Nutrition            *apiNutrition         `json:"nutrition"`
}

type apiIngredient struct {
	ID        int         `json:"id"`
	Name      string      `json:"name"`
	NameClean *string     `json:"nameClean"`
	Original  string      `json:"original"`
	Amount    float64     `json:"amount"`
	Unit      string      `json:"unit"`
	Aisle     *string     `json:"aisle"`
	Measures  apiMeasures `json:"measures"`
}

type apiMeasures struct {
	US     apiMeasure `json:"us"`
	Metric apiMeasure `json:"metric"`
}

type apiMeasure struct {
	Amount    float64 `json:"amount"`
	UnitShort string  `json:"unitShort"`
	UnitLong  string  `json:"unitLong"`
}

type apiInstructionGroup struct {
	Name  string    `json:"name"`
	Steps []apiStep `json:"steps"`
}

type apiStep struct {
	Number    int            `json:"number"`
	Step      string         `json:"step"`
	Equipment []apiEquipment `json:"equipment"`
	Length    *apiLength     `json:"length"`
}

type apiEquipment struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Temperature *apiTemperature `json:"temperature"`
}

type apiTemperature struct {
	Number float64 `json:"number"`
	Unit   string  `json:"unit"`
}

type apiLength struct {
	Number int    `json:"number"`
	Unit   string `json:"unit"`
}

type apiNutrition struct {
	Nutrients []apiNutrient `json:"nutrients"`
}

type apiNutrient struct {
	Name                string  `json:"name"`
	Amount              float64 `json:"amount"`
	Unit                string  `json:"unit"`
	PercentOfDailyNeeds float64 `json:"percentOfDailyNeeds"`
}

type searchResponse struct {
	Results      []apiRecipe `json:"results"`
	Offset       int         `json:"offset"`
	Number       int         `json:"number"`
	TotalResults int         `json:"totalResults"`
}

type randomResponse struct {
	Recipes []apiRecipe `json:"recipes"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}
