package api_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/mealboard/backend/internal/apperr"
	"github.com/pageza/mealboard/backend/internal/model"
	"github.com/pageza/mealboard/backend/internal/service"
)

func TestGenerateGroceryList(t *testing.T) {
	s := newTestServer(t)
	userID, groupID, planID := uuid.New(), uuid.New(), uuid.New()

	list := &model.GroceryList{
		ID:      uuid.New(),
		GroupID: groupID,
		Status:  model.GroceryListActive,
		Items: model.GroceryItems{
			{ID: "a", Name: "Flour", Amount: "3", Unit: "cup", Category: "pantry"},
		},
	}
	s.grocery.On("Generate", mock.Anything, userID, mock.MatchedBy(func(req service.GenerateRequest) bool {
		return req.GroupID == groupID && req.MealPlanID != nil && *req.MealPlanID == planID &&
			len(req.AdditionalItems) == 1 && req.AdditionalItems[0].Name == "Coffee"
	})).Return(list, nil).Once()

	w := s.do(t, http.MethodPost, "/api/v1/groups/"+groupID.String()+"/grocery-lists", userID, map[string]interface{}{
		"meal_plan_id":     planID,
		"additional_items": []map[string]string{{"name": "Coffee"}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var got model.GroceryList
	decode(t, w, &got)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Flour", got.Items[0].Name)
}

func TestGenerateGroceryListDenied(t *testing.T) {
	s := newTestServer(t)
	userID, groupID := uuid.New(), uuid.New()
	s.grocery.On("Generate", mock.Anything, userID, mock.Anything).
		Return(nil, apperr.New(apperr.KindAccessDenied, "not a member of this group")).Once()

	w := s.do(t, http.MethodPost, "/api/v1/groups/"+groupID.String()+"/grocery-lists", userID,
		map[string]interface{}{"ingredients": []map[string]string{{"name": "Milk"}}})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, string(apperr.KindAccessDenied), errorCode(t, w))
}

func TestGroceryListLifecycleRoutes(t *testing.T) {
	s := newTestServer(t)
	userID, groupID, listID := uuid.New(), uuid.New(), uuid.New()
	base := "/api/v1/grocery-lists/" + listID.String()
	list := &model.GroceryList{ID: listID, GroupID: groupID}

	s.grocery.On("Get", mock.Anything, userID, listID).Return(list, nil).Once()
	s.grocery.On("ToggleItem", mock.Anything, userID, listID, "item-1").Return(list, nil).Once()
	s.grocery.On("AddItems", mock.Anything, userID, listID, []model.Ingredient{{Name: "Eggs", Amount: "12"}}).Return(list, nil).Once()
	s.grocery.On("Complete", mock.Anything, userID, listID).Return(list, nil).Once()
	s.grocery.On("Archive", mock.Anything, userID, listID).
		Return(nil, apperr.Validation("grocery list is already archived")).Once()
	s.grocery.On("List", mock.Anything, userID, groupID).Return([]model.GroceryList{*list}, nil).Once()

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, base, userID, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodPost, base+"/items/item-1/toggle", userID, nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodPost, base+"/items", userID,
		map[string]interface{}{"items": []map[string]string{{"name": "Eggs", "amount": "12"}}}).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodPost, base+"/complete", userID, nil).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, base+"/archive", userID, nil).Code)

	w := s.do(t, http.MethodGet, "/api/v1/groups/"+groupID.String()+"/grocery-lists", userID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		GroceryLists []model.GroceryList `json:"grocery_lists"`
	}
	decode(t, w, &body)
	assert.Len(t, body.GroceryLists, 1)

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, base+"/items", userID,
		map[string]interface{}{"items": []map[string]string{}}).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, base, uuid.Nil, nil).Code)
}
