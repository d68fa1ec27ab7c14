package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/mealboard/backend/internal/apperr"
	"github.com/pageza/mealboard/backend/internal/model"
	"github.com/pageza/mealboard/backend/internal/store"
)

// GenerateRequest describes a new grocery list. Either MealPlanID or
// Ingredients must be set; explicit ingredients win.
type GenerateRequest struct {
	GroupID         uuid.UUID          `json:"group_id"`
	MealPlanID      *uuid.UUID         `json:"meal_plan_id,omitempty"`
	Name            string             `json:"name,omitempty"`
	Ingredients     []model.Ingredient `json:"ingredients,omitempty"`
	AdditionalItems []model.Ingredient `json:"additional_items,omitempty"`
}

// GroceryService generates grocery lists and drives their lifecycle.
type GroceryService struct {
	plans   store.MealPlanStore
	lists   store.GroceryListStore
	recipes store.RecipeStore
	members store.MembershipStore
	log     *zap.Logger
	now     func() time.Time
}

// NewGroceryService creates a new GroceryService instance
func NewGroceryService(st *store.Store, log *zap.Logger) *GroceryService {
	if log == nil {
		log = zap.NewNop()
	}
	return &GroceryService{
		plans:   st,
		lists:   st,
		recipes: st,
		members: st,
		log:     log,
		now:     time.Now,
	}
}

// Generate builds and stores a new active list, either from explicit
// ingredients or from the local recipes of a meal plan. External recipes in
// the plan contribute nothing; the generator never calls the provider.
func (s *GroceryService) Generate(ctx context.Context, callerID uuid.UUID, req GenerateRequest) (*model.GroceryList, error) {
	if req.GroupID == uuid.Nil {
		return nil, apperr.Validation("group_id is required")
	}
	if err := requireMember(ctx, s.members, req.GroupID, callerID); err != nil {
		return nil, err
	}

	list := &model.GroceryList{
		GroupID:   req.GroupID,
		Name:      strings.TrimSpace(req.Name),
		Status:    model.GroceryListActive,
		CreatedBy: callerID,
	}

	var items consolidator
	switch {
	case len(req.Ingredients) > 0:
		for _, ing := range req.Ingredients {
			items.add(ing, nil)
		}
		if list.Name == "" {
			list.Name = "Grocery list"
		}
	case req.MealPlanID != nil:
		plan, err := s.plans.GetMealPlan(ctx, *req.MealPlanID)
		if err != nil {
			return nil, err
		}
		if plan.GroupID != req.GroupID {
			return nil, apperr.Validation("meal plan %s belongs to a different group", plan.ID)
		}
		if err := s.addPlanIngredients(ctx, plan, &items); err != nil {
			return nil, err
		}
		list.MealPlanID = &plan.ID
		if list.Name == "" {
			list.Name = fmt.Sprintf("Groceries for week of %s", plan.WeekStart.Format("Jan 2, 2006"))
		}
	default:
		return nil, apperr.Validation("either meal_plan_id or ingredients is required")
	}

	var extras consolidator
	for _, ing := range req.AdditionalItems {
		extras.add(ing, nil)
	}
	list.Items = items.result()
	list.AdditionalItems = extras.result()

	if err := s.lists.CreateGroceryList(ctx, list); err != nil {
		return nil, err
	}
	s.log.Info("grocery list generated",
		zap.String("list_id", list.ID.String()),
		zap.Int("items", len(list.Items)),
	)
	return list, nil
}

func (s *GroceryService) addPlanIngredients(ctx context.Context, plan *model.MealPlan, items *consolidator) error {
	refs := plan.RecipeRefs()
	localIDs := make([]uuid.UUID, 0, len(refs))
	for _, ref := range refs {
		if ref.IsExternal() {
			s.log.Debug("skipping external recipe in meal plan", zap.String("recipe_id", ref.String()))
			continue
		}
		id, err := ref.UUID()
		if err != nil {
			continue
		}
		localIDs = append(localIDs, id)
	}

	byRecipe, err := s.recipes.IngredientsFor(ctx, localIDs)
	if err != nil {
		return err
	}
	for _, id := range localIDs {
		source := model.LocalID(id)
		for _, ing := range byRecipe[id] {
			items.add(ing, &source)
		}
	}
	return nil
}

// Get returns a list the caller's group owns.
func (s *GroceryService) Get(ctx context.Context, callerID, listID uuid.UUID) (*model.GroceryList, error) {
	list, err := s.lists.GetGroceryList(ctx, listID)
	if err != nil {
		return nil, err
	}
	if err := requireMember(ctx, s.members, list.GroupID, callerID); err != nil {
		return nil, err
	}
	return list, nil
}

// List returns every list of a group.
func (s *GroceryService) List(ctx context.Context, callerID, groupID uuid.UUID) ([]model.GroceryList, error) {
	if err := requireMember(ctx, s.members, groupID, callerID); err != nil {
		return nil, err
	}
	return s.lists.ListGroceryLists(ctx, groupID)
}

// ToggleItem flips the checked flag of one item. Only active lists change.
func (s *GroceryService) ToggleItem(ctx context.Context, callerID, listID uuid.UUID, itemID string) (*model.GroceryList, error) {
	return s.mutate(ctx, callerID, listID, func(list *model.GroceryList) error {
		if list.Status != model.GroceryListActive {
			return apperr.Validation("grocery list is %s, items can only change while active", list.Status)
		}
		item := list.FindItem(itemID)
		if item == nil {
			return apperr.NotFound("grocery item")
		}
		item.Checked = !item.Checked
		if list.AllChecked() {
			now := s.now().UTC()
			list.Status = model.GroceryListCompleted
			list.CompletedAt = &now
		}
		return nil
	})
}

// AddItems appends manual extras to an active list. Extras whose name is
// already among the additional items are not added twice.
func (s *GroceryService) AddItems(ctx context.Context, callerID, listID uuid.UUID, extras []model.Ingredient) (*model.GroceryList, error) {
	if len(extras) == 0 {
		return nil, apperr.Validation("at least one item is required")
	}
	return s.mutate(ctx, callerID, listID, func(list *model.GroceryList) error {
		if list.Status != model.GroceryListActive {
			return apperr.Validation("grocery list is %s, items can only change while active", list.Status)
		}
		c := seededConsolidator(list.AdditionalItems)
		for _, ing := range extras {
			c.add(ing, nil)
		}
		list.AdditionalItems = c.result()
		return nil
	})
}

// Complete moves an active list to completed.
func (s *GroceryService) Complete(ctx context.Context, callerID, listID uuid.UUID) (*model.GroceryList, error) {
	return s.mutate(ctx, callerID, listID, func(list *model.GroceryList) error {
		if list.Status != model.GroceryListActive {
			return apperr.Validation("only active lists can be completed, list is %s", list.Status)
		}
		now := s.now().UTC()
		list.Status = model.GroceryListCompleted
		list.CompletedAt = &now
		return nil
	})
}

// Archive retires a list. Archived is terminal.
func (s *GroceryService) Archive(ctx context.Context, callerID, listID uuid.UUID) (*model.GroceryList, error) {
	return s.mutate(ctx, callerID, listID, func(list *model.GroceryList) error {
		if list.Status == model.GroceryListArchived {
			return apperr.Validation("grocery list is already archived")
		}
		list.Status = model.GroceryListArchived
		return nil
	})
}

func (s *GroceryService) mutate(ctx context.Context, callerID, listID uuid.UUID, change func(*model.GroceryList) error) (*model.GroceryList, error) {
	list, err := s.Get(ctx, callerID, listID)
	if err != nil {
		return nil, err
	}
	if err := change(list); err != nil {
		return nil, err
	}
	if err := s.lists.SaveGroceryList(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func requireMember(ctx context.Context, members store.MembershipStore, groupID, userID uuid.UUID) error {
	ok, err := members.IsMember(ctx, groupID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.New(apperr.KindAccessDenied, "not a member of group %s", groupID)
	}
	return nil
}

// consolidator merges ingredient lines by normalized name. The first line
// seen for a name fixes its casing, amount, unit and category; later lines
// only add their recipe to the sources.
type consolidator struct {
	items []model.GroceryItem
	index map[string]int
}

func seededConsolidator(existing []model.GroceryItem) *consolidator {
	c := &consolidator{}
	for _, it := range existing {
		c.ensureIndex()
		c.index[normalizeName(it.Name)] = len(c.items)
		c.items = append(c.items, it)
	}
	return c
}

func (c *consolidator) ensureIndex() {
	if c.index == nil {
		c.index = make(map[string]int)
	}
}

func (c *consolidator) add(ing model.Ingredient, source *model.RecipeID) {
	key := normalizeName(ing.Name)
	if key == "" {
		return
	}
	c.ensureIndex()

	if i, ok := c.index[key]; ok {
		if source != nil && !containsRef(c.items[i].Sources, *source) {
			c.items[i].Sources = append(c.items[i].Sources, *source)
		}
		return
	}

	item := model.GroceryItem{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(ing.Name),
		Amount:   strings.TrimSpace(ing.Amount),
		Unit:     strings.TrimSpace(ing.Unit),
		Category: categoryFor(ing),
		Sources:  []model.RecipeID{},
	}
	if source != nil {
		item.Sources = append(item.Sources, *source)
	}
	c.index[key] = len(c.items)
	c.items = append(c.items, item)
}

func (c *consolidator) result() model.GroceryItems {
	if c.items == nil {
		return model.GroceryItems{}
	}
	return model.GroceryItems(c.items)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func containsRef(refs []model.RecipeID, ref model.RecipeID) bool {
	for _, r := range refs {
		if r == ref {
			return true
		}
	}
	return false
}
