// Package seed loads demo data for local development.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/mealboard/backend/internal/apperr"
	"github.com/pageza/mealboard/backend/internal/model"
	"github.com/pageza/mealboard/backend/internal/service"
	"github.com/pageza/mealboard/backend/internal/store"
)

// DemoUser is a seeded group member. Ids are stable across runs.
type DemoUser struct {
	ID       uuid.UUID
	Username string
	Role     string
}

// DemoGroupID is the household every demo user belongs to.
var DemoGroupID = demoID("group:household")

// DemoUsers returns the seeded members, owner first.
func DemoUsers() []DemoUser {
	return []DemoUser{
		{ID: demoID("user:alex"), Username: "alex", Role: "owner"},
		{ID: demoID("user:sam"), Username: "sam", Role: "member"},
		{ID: demoID("user:jo"), Username: "jo", Role: "member"},
	}
}

func demoID(name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mealboard:demo:"+name))
}

// Members adds every demo user to the demo group. Existing memberships are kept.
func Members(ctx context.Context, st *store.Store) error {
	for _, u := range DemoUsers() {
		err := st.AddMember(ctx, DemoGroupID, u.ID, u.Role)
		if err != nil && !errors.Is(err, apperr.ErrConflict) {
			return fmt.Errorf("add member %s: %w", u.Username, err)
		}
	}
	return nil
}

// Recipes stores the demo catalogue for owner, skipping titles owner
// already has. It returns the recipes that exist afterwards, by title.
func Recipes(ctx context.Context, st *store.Store, owner uuid.UUID, log *zap.Logger) (map[string]*model.LocalRecipe, error) {
	existing, err := st.ListOwnedRecipes(ctx, owner, "")
	if err != nil {
		return nil, err
	}
	byTitle := make(map[string]*model.LocalRecipe, len(existing))
	for i := range existing {
		byTitle[existing[i].Title] = &existing[i]
	}

	for _, r := range catalogue() {
		if _, ok := byTitle[r.Title]; ok {
			continue
		}
		r.UserID = owner
		if err := st.CreateRecipe(ctx, r); err != nil {
			return nil, fmt.Errorf("create recipe %q: %w", r.Title, err)
		}
		log.Info("seeded recipe", zap.String("title", r.Title), zap.String("id", r.ID.String()))
		byTitle[r.Title] = r
	}
	return byTitle, nil
}

// MealPlan opens the demo group's plan for the week containing now and fills
// a few dinners. An existing active plan for that week is reused.
func MealPlan(ctx context.Context, st *store.Store, recipes map[string]*model.LocalRecipe, now time.Time, log *zap.Logger) (*model.MealPlan, error) {
	owner := DemoUsers()[0].ID
	plans := service.NewMealPlanService(st, log)

	plan, err := st.ActiveMealPlan(ctx, DemoGroupID, service.WeekStart(now))
	if errors.Is(err, apperr.ErrNotFound) {
		plan, err = plans.Create(ctx, owner, service.CreateMealPlanRequest{GroupID: DemoGroupID, WeekStart: now})
	}
	if err != nil {
		return nil, err
	}

	dinners := map[model.Weekday]string{
		model.Monday:    "Weeknight Tomato Pasta",
		model.Wednesday: "Chickpea Spinach Curry",
		model.Friday:    "Sheet Pan Lemon Chicken",
	}
	for day, title := range dinners {
		r, ok := recipes[title]
		if !ok {
			continue
		}
		ref := model.LocalID(r.ID)
		if _, err := plans.SetSlot(ctx, owner, plan.ID, day, model.Dinner, service.SlotInput{RecipeID: &ref}); err != nil {
			return nil, fmt.Errorf("fill %s dinner: %w", day, err)
		}
	}
	if _, err := plans.SetSlot(ctx, owner, plan.ID, model.Saturday, model.Dinner, service.SlotInput{Name: "Takeout"}); err != nil {
		return nil, fmt.Errorf("fill saturday dinner: %w", err)
	}
	return st.GetMealPlan(ctx, plan.ID)
}
