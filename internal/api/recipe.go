package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/mealboard/backend/internal/apperr"
	"github.com/pageza/mealboard/backend/internal/service"
)

type RecipeHandler struct {
	search    service.ISearchService
	recipes   service.IRecipeService
	favorites service.IFavoriteService
	log       *zap.Logger
}

func NewRecipeHandler(search service.ISearchService, recipes service.IRecipeService, favorites service.IFavoriteService, log *zap.Logger) *RecipeHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &RecipeHandler{
		search:    search,
		recipes:   recipes,
		favorites: favorites,
		log:       log,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup, guards Guards) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("/search", append(guards.search(), h.Search)...)
		recipes.GET("/:id", guards.OptionalAuth, h.GetRecipe)
		recipes.PUT("/:id/favorite", guards.Auth, h.FavoriteRecipe)
		recipes.DELETE("/:id/favorite", guards.Auth, h.UnfavoriteRecipe)
		recipes.POST("/:id/favorite/toggle", guards.Auth, h.ToggleFavorite)
	}
}

// Search runs a unified search over local and external recipes.
func (h *RecipeHandler) Search(c *gin.Context) {
	source, err := service.ParseSource(c.Query("source"))
	if err != nil {
		respondError(c, err)
		return
	}
	page, ok := pageQuery(c)
	if !ok {
		return
	}
	maxReady, ok := intQuery(c, "maxReadyTime")
	if !ok {
		return
	}
	family := false
	if raw := c.Query("family"); raw != "" {
		if family, err = strconv.ParseBool(raw); err != nil {
			respondError(c, apperr.Validation("family must be a boolean"))
			return
		}
	}

	resp, err := h.search.Search(c.Request.Context(), service.SearchRequest{
		Query: c.Query("q"),
		Filters: service.SearchFilters{
			Cuisine:       c.Query("cuisine"),
			Diet:          c.Query("diet"),
			MaxReadyTime:  maxReady,
			Sort:          c.Query("sort"),
			SortDirection: c.Query("direction"),
		},
		Page:          page,
		Source:        source,
		CallerID:      optionalCaller(c),
		IncludeFamily: family,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := recipeIDParam(c)
	if !ok {
		return
	}
	recipe, err := h.recipes.Get(c.Request.Context(), optionalCaller(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) FavoriteRecipe(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	id, ok := recipeIDParam(c)
	if !ok {
		return
	}
	if err := h.favorites.Favorite(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe_id": id, "is_favorite": true})
}

func (h *RecipeHandler) UnfavoriteRecipe(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	id, ok := recipeIDParam(c)
	if !ok {
		return
	}
	if err := h.favorites.Unfavorite(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipe_id": id, "is_favorite": false})
}

func (h *RecipeHandler) ToggleFavorite(c *gin.Context) {
	userID, ok := caller(c)
	if !ok {
		return
	}
	id, ok := recipeIDParam(c)
	if !ok {
		return
	}
	favorited, err := h.favorites.Toggle(c.Request.Context(), userID, id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.log.Debug("favorite toggled",
		zap.String("user_id", userID.String()),
		zap.String("recipe_id", id.String()),
		zap.Bool("is_favorite", favorited))
	c.JSON(http.StatusOK, gin.H{"recipe_id": id, "is_favorite": favorited})
}
