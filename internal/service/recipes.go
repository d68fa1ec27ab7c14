package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/mealboard/backend/internal/apperr"
	"github.com/pageza/mealboard/backend/internal/model"
	"github.com/pageza/mealboard/backend/internal/store"
)

// RecipeService resolves a single recipe of either origin.
type RecipeService struct {
	recipes   store.RecipeStore
	favorites store.FavoriteStore
	members   store.MembershipStore
	gateway   RecipeGateway
	images    ImageResolver
	log       *zap.Logger
}

// NewRecipeService creates a new RecipeService instance. gateway and images
// may be nil.
func NewRecipeService(st *store.Store, gateway RecipeGateway, images ImageResolver, log *zap.Logger) *RecipeService {
	if log == nil {
		log = zap.NewNop()
	}
	return &RecipeService{
		recipes:   st,
		favorites: st,
		members:   st,
		gateway:   gateway,
		images:    images,
		log:       log,
	}
}

// Get returns the recipe if the caller may see it. External recipes are
// fetched with nutrition.
func (s *RecipeService) Get(ctx context.Context, callerID *uuid.UUID, id model.RecipeID) (*model.Recipe, error) {
	var recipe model.Recipe
	if id.IsExternal() {
		n, err := id.ExternalNumber()
		if err != nil {
			return nil, apperr.Validation("invalid recipe id %q", id)
		}
		if s.gateway == nil {
			return nil, apperr.New(apperr.KindUpstreamUnavailable, "external recipes are not configured")
		}
		fetched, err := s.gateway.FetchByID(ctx, n, true)
		if err != nil {
			return nil, err
		}
		recipe = *fetched
	} else {
		localID, err := id.UUID()
		if err != nil {
			return nil, apperr.Validation("invalid recipe id %q", id)
		}
		row, err := s.recipes.GetRecipe(ctx, localID)
		if err != nil {
			return nil, err
		}
		if err := checkVisible(ctx, s.members, row, callerID); err != nil {
			return nil, err
		}
		recipe = localView(ctx, s.images, s.log, row)
	}

	if callerID != nil {
		fav, err := s.favorites.IsFavorite(ctx, *callerID, recipe.ID)
		if err != nil {
			return nil, err
		}
		recipe.IsFavorited = fav
	}
	return &recipe, nil
}

// checkVisible applies the local visibility rules to one recipe. Owners see
// everything; others see published public recipes and, when they share a
// group with the owner, published family recipes.
func checkVisible(ctx context.Context, members store.MembershipStore, row *model.LocalRecipe, callerID *uuid.UUID) error {
	if callerID != nil && row.UserID == *callerID {
		return nil
	}
	if row.Status != model.StatusPublished {
		return apperr.New(apperr.KindAccessDenied, "recipe is not published")
	}
	switch row.Visibility {
	case model.VisibilityPublic:
		return nil
	case model.VisibilityFamily:
		if callerID == nil {
			return apperr.New(apperr.KindAccessDenied, "recipe is shared with family only")
		}
		ok, err := members.SharesGroup(ctx, *callerID, row.UserID)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.New(apperr.KindAccessDenied, "recipe is shared with family only")
		}
		return nil
	default:
		return apperr.New(apperr.KindAccessDenied, "recipe is private")
	}
}

// localView converts a stored recipe and resolves its image reference. A
// failed resolution leaves the image blank.
func localView(ctx context.Context, images ImageResolver, log *zap.Logger, row *model.LocalRecipe) model.Recipe {
	recipe := row.ToRecipe()
	if images != nil && recipe.Image != "" {
		url, err := images.ResolveImage(ctx, recipe.Image)
		if err != nil {
			log.Warn("failed to resolve recipe image", zap.String("recipe_id", recipe.ID.String()), zap.Error(err))
			url = ""
		}
		recipe.Image = url
	}
	return recipe
}

func localViews(ctx context.Context, images ImageResolver, log *zap.Logger, rows []model.LocalRecipe) []model.Recipe {
	out := make([]model.Recipe, 0, len(rows))
	for i := range rows {
		out = append(out, localView(ctx, images, log, &rows[i]))
	}
	return out
}

// markFavorites sets IsFavorited on every item with one store lookup.
func markFavorites(ctx context.Context, favorites store.FavoriteStore, userID uuid.UUID, items []model.Recipe) error {
	if len(items) == 0 {
		return nil
	}
	refs := make([]model.RecipeID, len(items))
	for i := range items {
		refs[i] = items[i].ID
	}
	set, err := favorites.FavoritedSet(ctx, userID, refs)
	if err != nil {
		return err
	}
	for i := range items {
		items[i].IsFavorited = set[items[i].ID]
	}
	return nil
}
