package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealboard/backend/internal/api"
	"github.com/pageza/mealboard/backend/internal/middleware"
	"github.com/pageza/mealboard/backend/internal/mocks"
	"github.com/pageza/mealboard/backend/internal/service"
	"github.com/pageza/mealboard/backend/internal/testhelpers"
)

const testSecret = "api-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router     *gin.Engine
	search     *mocks.MockSearchService
	recipes    *mocks.MockRecipeService
	favorites  *mocks.MockFavoriteService
	collection *mocks.MockCollectionService
	gateway    *mocks.MockRecipeGateway
	plans      *mocks.MockMealPlanService
	grocery    *mocks.MockGroceryService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	s := &testServer{
		search:     &mocks.MockSearchService{},
		recipes:    &mocks.MockRecipeService{},
		favorites:  &mocks.MockFavoriteService{},
		collection: &mocks.MockCollectionService{},
		gateway:    &mocks.MockRecipeGateway{},
		plans:      &mocks.MockMealPlanService{},
		grocery:    &mocks.MockGroceryService{},
	}
	t.Cleanup(func() {
		s.search.AssertExpectations(t)
		s.recipes.AssertExpectations(t)
		s.favorites.AssertExpectations(t)
		s.collection.AssertExpectations(t)
		s.gateway.AssertExpectations(t)
		s.plans.AssertExpectations(t)
		s.grocery.AssertExpectations(t)
	})

	tokens := service.NewTokenService(testSecret)
	guards := api.Guards{
		Auth:         middleware.AuthMiddleware(tokens),
		OptionalAuth: middleware.OptionalAuth(tokens),
	}

	s.router = gin.New()
	s.router.Use(middleware.ErrorHandler(nil))
	v1 := s.router.Group("/api/v1")
	api.NewRecipeHandler(s.search, s.recipes, s.favorites, nil).RegisterRoutes(v1, guards)
	api.NewCollectionHandler(s.collection, s.gateway).RegisterRoutes(v1, guards)
	api.NewMealPlanHandler(s.plans).RegisterRoutes(v1, guards)
	api.NewGroceryHandler(s.grocery).RegisterRoutes(v1, guards)
	return s
}

// do sends a request as userID, or anonymously when userID is uuid.Nil.
func (s *testServer) do(t *testing.T, method, path string, userID uuid.UUID, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != uuid.Nil {
		req.Header.Set("Authorization", "Bearer "+testhelpers.SignToken(t, testSecret, userID))
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst), w.Body.String())
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body middleware.ErrorResponse
	decode(t, w, &body)
	return string(body.Code)
}
