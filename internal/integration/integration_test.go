// Package integration runs the HTTP surface against Postgres and a fake
// recipe provider.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealboard/backend/config"
	"github.com/pageza/mealboard/backend/internal/bootstrap"
	"github.com/pageza/mealboard/backend/internal/model"
	"github.com/pageza/mealboard/backend/internal/seed"
	"github.com/pageza/mealboard/backend/internal/server"
	"github.com/pageza/mealboard/backend/internal/service"
	"github.com/pageza/mealboard/backend/internal/spoonacular"
	"github.com/pageza/mealboard/backend/internal/store"
	"github.com/pageza/mealboard/backend/internal/testhelpers"
)

const secret = "integration-secret"

type harness struct {
	t       *testing.T
	handler http.Handler
	store   *store.Store
	recipes map[string]*model.LocalRecipe
}

func fakeProvider(t *testing.T) *httptest.Server {
	t.Helper()
	info, err := os.ReadFile("../spoonacular/testdata/recipe_information.json")
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.HandleFunc("/recipes/complexSearch", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"id":716429,"title":"Pasta with Garlic, Scallions, Cauliflower & Breadcrumbs","readyInMinutes":45,"servings":2}],"offset":0,"number":1,"totalResults":1}`))
	})
	mux.HandleFunc("/recipes/716429/information", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(info)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	db := testhelpers.SetupPostgres(t)
	provider := fakeProvider(t)

	gateway, err := spoonacular.NewClient(spoonacular.Config{
		APIKey:    "test-key",
		BaseURL:   provider.URL,
		CacheSize: 16,
	}, spoonacular.NewMemoryBudget(100, 24*time.Hour))
	require.NoError(t, err)

	cfg := &config.Config{
		Environment:           config.Test,
		ServerHost:            "localhost",
		ServerPort:            "8080",
		JWTSecret:             secret,
		CollectionExternalCap: 5,
		SearchLocalShareCap:   6,
	}

	ctx := context.Background()
	st := store.New(db)
	require.NoError(t, seed.Members(ctx, st))
	recipes, err := seed.Recipes(ctx, st, seed.DemoUsers()[0].ID, nil)
	require.NoError(t, err)

	srv := server.New(cfg, &bootstrap.Resources{DB: db, Gateway: gateway}, nil)
	return &harness{t: t, handler: srv.Handler(), store: st, recipes: recipes}
}

func (h *harness) do(method, path string, userID uuid.UUID, body interface{}) *httptest.ResponseRecorder {
	h.t.Helper()
	var payload bytes.Buffer
	if body != nil {
		require.NoError(h.t, json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if userID != uuid.Nil {
		req.Header.Set("Authorization", "Bearer "+testhelpers.SignToken(h.t, secret, userID))
	}
	w := httptest.NewRecorder()
	h.handler.ServeHTTP(w, req)
	return w
}

func TestMixedSearchAndExternalFavorite(t *testing.T) {
	h := newHarness(t)
	sam := seed.DemoUsers()[1].ID

	w := h.do(http.MethodGet, "/api/v1/recipes/search?q=pasta&pageSize=4", sam, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var found service.SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &found))
	assert.Equal(t, 1, found.SourceBreakdown.Local)
	assert.Equal(t, 1, found.SourceBreakdown.External)
	require.Len(t, found.Items, 2)
	titles := map[string]string{}
	for _, item := range found.Items {
		titles[item.ID.String()] = item.Title
	}
	assert.Equal(t, "Pasta with Garlic, Scallions, Cauliflower & Breadcrumbs", titles["ext:716429"])
	assert.Equal(t, "Weeknight Tomato Pasta", titles["local:"+h.recipes["Weeknight Tomato Pasta"].ID.String()])

	w = h.do(http.MethodPut, "/api/v1/recipes/ext:716429/favorite", sam, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = h.do(http.MethodGet, "/api/v1/collection", sam, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var collection service.CollectionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &collection))
	require.Len(t, collection.Items, 1)
	assert.Equal(t, "Pasta with Garlic, Scallions, Cauliflower & Breadcrumbs", collection.Items[0].Title)
	assert.True(t, collection.Items[0].IsFavorited)

	w = h.do(http.MethodGet, "/api/v1/external/budget", sam, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var budget struct {
		Used      int `json:"used"`
		Quota     int `json:"quota"`
		Remaining int `json:"remaining"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &budget))
	assert.Equal(t, 100, budget.Quota)
	assert.Positive(t, budget.Used)
	assert.Equal(t, budget.Quota-budget.Used, budget.Remaining)
}

func TestMealPlanToGroceryList(t *testing.T) {
	h := newHarness(t)
	alex, jo := seed.DemoUsers()[0].ID, seed.DemoUsers()[2].ID
	group := seed.DemoGroupID.String()

	plan, err := seed.MealPlan(context.Background(), h.store, h.recipes, time.Now(), nil)
	require.NoError(t, err)

	w := h.do(http.MethodPost, "/api/v1/groups/"+group+"/meal-plans", alex, map[string]string{
		"week_start": plan.WeekStart.Format("2006-01-02"),
	})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	w = h.do(http.MethodPost, "/api/v1/groups/"+group+"/grocery-lists", jo, map[string]interface{}{
		"meal_plan_id":     plan.ID,
		"additional_items": []model.Ingredient{{Name: "paper towels"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var list model.GroceryList
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, model.GroceryListActive, list.Status)
	assert.NotEmpty(t, list.Items)
	require.Len(t, list.AdditionalItems, 1)

	w = h.do(http.MethodPost, "/api/v1/grocery-lists/"+list.ID.String()+"/complete", alex, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	stranger := uuid.New()
	w = h.do(http.MethodGet, "/api/v1/grocery-lists/"+list.ID.String(), stranger, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
