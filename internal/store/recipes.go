package store

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/mealboard/backend/internal/model"
)

const recipeEntity = "recipe"

func (s *Store) CreateRecipe(ctx context.Context, recipe *model.LocalRecipe) error {
	for i := range recipe.Ingredients {
		recipe.Ingredients[i].Position = i
	}
	return translate(s.db.WithContext(ctx).Create(recipe).Error, recipeEntity)
}

func (s *Store) GetRecipe(ctx context.Context, id uuid.UUID) (*model.LocalRecipe, error) {
	var recipe model.LocalRecipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients", orderByPosition).
		First(&recipe, "id = ?", id).Error
	if err != nil {
		return nil, translate(err, recipeEntity)
	}
	return &recipe, nil
}

func (s *Store) GetRecipes(ctx context.Context, ids []uuid.UUID) ([]model.LocalRecipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var recipes []model.LocalRecipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients", orderByPosition).
		Where("id IN ?", ids).
		Find(&recipes).Error
	if err != nil {
		return nil, translate(err, recipeEntity)
	}
	return recipes, nil
}

func (s *Store) ListOwnedRecipes(ctx context.Context, userID uuid.UUID, status model.RecipeStatus) ([]model.LocalRecipe, error) {
	var recipes []model.LocalRecipe
	query := s.db.WithContext(ctx).
		Preload("Ingredients", orderByPosition).
		Where("user_id = ?", userID)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Order("updated_at DESC").Find(&recipes).Error; err != nil {
		return nil, translate(err, recipeEntity)
	}
	return recipes, nil
}

// SearchRecipes returns one page of matching recipes and the total match
// count. Only published recipes are ever returned.
func (s *Store) SearchRecipes(ctx context.Context, q LocalQuery) ([]model.LocalRecipe, int64, error) {
	var total int64
	if err := s.searchScope(ctx, q).Model(&model.LocalRecipe{}).Count(&total).Error; err != nil {
		return nil, 0, translate(err, recipeEntity)
	}
	if q.Limit <= 0 || total == 0 {
		return []model.LocalRecipe{}, total, nil
	}

	query := s.searchScope(ctx, q).Preload("Ingredients", orderByPosition)
	query = s.applySort(query, q)

	var recipes []model.LocalRecipe
	if err := query.Offset(q.Offset).Limit(q.Limit).Find(&recipes).Error; err != nil {
		return nil, 0, translate(err, recipeEntity)
	}
	return recipes, total, nil
}

func (s *Store) searchScope(ctx context.Context, q LocalQuery) *gorm.DB {
	query := s.db.WithContext(ctx).Where("status = ?", model.StatusPublished)

	visible := s.db.Where("visibility = ?", model.VisibilityPublic)
	if q.CallerID != nil {
		visible = visible.Or("user_id = ?", *q.CallerID)
		if q.IncludeFamily {
			callerGroups := s.db.Model(&model.GroupMember{}).Select("group_id").Where("user_id = ?", *q.CallerID)
			relatives := s.db.Model(&model.GroupMember{}).Select("user_id").Where("group_id IN (?)", callerGroups)
			visible = visible.Or("(visibility = ? AND user_id IN (?))", model.VisibilityFamily, relatives)
		}
	}
	query = query.Where(visible)

	if text := strings.ToLower(strings.TrimSpace(q.Text)); text != "" {
		like := "%" + text + "%"
		query = query.Where("(LOWER(title) LIKE ? OR LOWER(description) LIKE ?)", like, like)
	}
	if cuisine := strings.ToLower(strings.TrimSpace(q.Cuisine)); cuisine != "" {
		query = query.Where("LOWER(cuisine) = ?", cuisine)
	}
	if diet := strings.ToLower(strings.TrimSpace(q.Diet)); diet != "" {
		query = s.applyDiet(query, diet)
	}
	if q.MaxReadyTime > 0 {
		query = query.Where("ready_minutes IS NOT NULL AND ready_minutes <= ?", q.MaxReadyTime)
	}
	return query
}

func (s *Store) applyDiet(query *gorm.DB, diet string) *gorm.DB {
	switch strings.NewReplacer("-", " ", "_", " ").Replace(diet) {
	case "vegetarian":
		return query.Where("vegetarian = ?", true)
	case "vegan":
		return query.Where("vegan = ?", true)
	case "gluten free", "glutenfree":
		return query.Where("gluten_free = ?", true)
	case "dairy free", "dairyfree":
		return query.Where("dairy_free = ?", true)
	}
	like := "%\"" + diet + "\"%"
	if s.isPostgres() {
		return query.Where("LOWER(tags::text) LIKE ?", like)
	}
	return query.Where("LOWER(tags) LIKE ?", like)
}

var sortColumns = map[string]string{
	"title":       "title",
	"time":        "ready_minutes",
	"healthiness": "health_score",
	"newest":      "updated_at",
}

func (s *Store) applySort(query *gorm.DB, q LocalQuery) *gorm.DB {
	column, ok := sortColumns[strings.ToLower(q.Sort)]
	if !ok && len(model.SearchTerms(q.Text)) > 0 && s.isPostgres() {
		vec := model.GenerateEmbedding(q.Text)
		// A later Order call would replace an expression ORDER BY, so the
		// tie-breakers go into the same expression.
		return query.Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "embedding <=> ?, updated_at DESC, id", Vars: []interface{}{vec}},
		})
	}
	if !ok {
		column = "updated_at"
	}

	desc := column == "updated_at" || column == "health_score"
	switch strings.ToLower(q.SortDirection) {
	case "asc":
		desc = false
	case "desc":
		desc = true
	}
	return query.
		Order(clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: desc}).
		Order("id")
}

// IngredientsFor loads the ingredient lists of many recipes in one query.
func (s *Store) IngredientsFor(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]model.Ingredient, error) {
	out := make(map[uuid.UUID][]model.Ingredient, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []model.RecipeIngredient
	err := s.db.WithContext(ctx).
		Where("recipe_id IN ?", ids).
		Order("recipe_id").Order("position").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, "recipe ingredients")
	}
	for _, row := range rows {
		out[row.RecipeID] = append(out[row.RecipeID], row.ToIngredient())
	}
	return out, nil
}

func (s *Store) UpdateRecipe(ctx context.Context, recipe *model.LocalRecipe) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Ingredients").Save(recipe).Error; err != nil {
			return translate(err, recipeEntity)
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return translate(err, "recipe ingredients")
		}
		for i := range recipe.Ingredients {
			recipe.Ingredients[i].ID = uuid.Nil
			recipe.Ingredients[i].RecipeID = recipe.ID
			recipe.Ingredients[i].Position = i
		}
		if len(recipe.Ingredients) > 0 {
			if err := tx.Create(&recipe.Ingredients).Error; err != nil {
				return translate(err, "recipe ingredients")
			}
		}
		return nil
	})
}

func (s *Store) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	result := s.db.WithContext(ctx).Delete(&model.LocalRecipe{}, "id = ?", id)
	if result.Error != nil {
		return translate(result.Error, recipeEntity)
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, recipeEntity)
	}
	return nil
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
