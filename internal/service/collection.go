package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/mealboard/backend/internal/model"
	"github.com/pageza/mealboard/backend/internal/store"
)

// DefaultCollectionExternalCap bounds the provider calls of one collection view.
const DefaultCollectionExternalCap = 5

// CollectionStats summarizes a collection.
type CollectionStats struct {
	OwnedCount     int `json:"owned_count"`
	FavoritedCount int `json:"favorited_count"`
	TotalCount     int `json:"total_count"`
}

// CollectionResponse is one page of a user's collection.
type CollectionResponse struct {
	Items  []model.Recipe  `json:"items"`
	Paging Paging          `json:"paging"`
	Stats  CollectionStats `json:"stats"`
}

// CollectionService assembles the recipes a user owns or favorited.
type CollectionService struct {
	recipes     store.RecipeStore
	favorites   store.FavoriteStore
	members     store.MembershipStore
	gateway     RecipeGateway
	images      ImageResolver
	log         *zap.Logger
	externalCap int
}

// NewCollectionService creates a new CollectionService instance. A cap below
// zero means the default.
func NewCollectionService(st *store.Store, gateway RecipeGateway, images ImageResolver, externalCap int, log *zap.Logger) *CollectionService {
	if log == nil {
		log = zap.NewNop()
	}
	if externalCap < 0 {
		externalCap = DefaultCollectionExternalCap
	}
	return &CollectionService{
		recipes:     st,
		favorites:   st,
		members:     st,
		gateway:     gateway,
		images:      images,
		log:         log,
		externalCap: externalCap,
	}
}

// Assemble builds the caller's collection: published recipes they own, local
// recipes they favorited, and up to externalCap of their most recently
// favorited external recipes. Failed external fetches are logged and dropped.
func (s *CollectionService) Assemble(ctx context.Context, callerID uuid.UUID, page PageRequest) (*CollectionResponse, error) {
	page = page.Normalize()

	owned, err := s.recipes.ListOwnedRecipes(ctx, callerID, model.StatusPublished)
	if err != nil {
		return nil, err
	}
	favs, err := s.favorites.ListFavorites(ctx, callerID)
	if err != nil {
		return nil, err
	}

	items := make([]model.Recipe, 0, len(owned)+len(favs))
	ownedIDs := make(map[uuid.UUID]bool, len(owned))
	for i := range owned {
		ownedIDs[owned[i].ID] = true
		items = append(items, localView(ctx, s.images, s.log, &owned[i]))
	}

	var (
		localIDs    []uuid.UUID
		externalIDs []model.RecipeID
	)
	favoritedAt := make(map[model.RecipeID]model.RecipeFavorite, len(favs))
	for _, f := range favs {
		favoritedAt[f.RecipeRef] = f
		if f.RecipeRef.IsExternal() {
			externalIDs = append(externalIDs, f.RecipeRef)
			continue
		}
		id, err := f.RecipeRef.UUID()
		if err != nil || ownedIDs[id] {
			continue
		}
		localIDs = append(localIDs, id)
	}

	localFavs, err := s.resolveLocal(ctx, callerID, localIDs)
	if err != nil {
		return nil, err
	}
	items = append(items, localFavs...)
	items = append(items, s.resolveExternal(ctx, externalIDs)...)

	for i := range items {
		items[i].IsFavorited = true
		if f, ok := favoritedAt[items[i].ID]; ok {
			ts := f.CreatedAt
			items[i].FavoritedAt = &ts
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].SortTime().After(items[j].SortTime())
	})

	return &CollectionResponse{
		Items:  paginate(items, page),
		Paging: newPaging(page, int64(len(items))),
		Stats: CollectionStats{
			OwnedCount:     len(owned),
			FavoritedCount: len(favs),
			TotalCount:     len(items),
		},
	}, nil
}

// resolveLocal loads favorited local recipes owned by others. Recipes that
// were deleted or are no longer visible to the caller are left out.
func (s *CollectionService) resolveLocal(ctx context.Context, callerID uuid.UUID, ids []uuid.UUID) ([]model.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := s.recipes.GetRecipes(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]model.Recipe, 0, len(rows))
	for i := range rows {
		// Owned recipes come from the owned listing, which already drops drafts.
		if rows[i].UserID == callerID {
			continue
		}
		if err := checkVisible(ctx, s.members, &rows[i], &callerID); err != nil {
			s.log.Debug("skipping favorite that is no longer visible",
				zap.String("recipe_id", rows[i].ID.String()), zap.Error(err))
			continue
		}
		out = append(out, localView(ctx, s.images, s.log, &rows[i]))
	}
	return out, nil
}

// resolveExternal fetches external favorites one at a time, most recent
// first, stopping at the cap.
func (s *CollectionService) resolveExternal(ctx context.Context, ids []model.RecipeID) []model.Recipe {
	if len(ids) == 0 || s.externalCap == 0 {
		return nil
	}
	if s.gateway == nil {
		s.log.Warn("external favorites skipped, provider not configured", zap.Int("count", len(ids)))
		return nil
	}
	if len(ids) > s.externalCap {
		s.log.Info("external favorites capped",
			zap.Int("favorited", len(ids)), zap.Int("cap", s.externalCap))
		ids = ids[:s.externalCap]
	}

	out := make([]model.Recipe, 0, len(ids))
	for _, id := range ids {
		n, err := id.ExternalNumber()
		if err != nil {
			continue
		}
		recipe, err := s.gateway.FetchByID(ctx, n, false)
		if err != nil {
			s.log.Warn("failed to fetch external favorite",
				zap.String("recipe_id", id.String()), zap.Error(err))
			continue
		}
		out = append(out, *recipe)
	}
	return out
}
