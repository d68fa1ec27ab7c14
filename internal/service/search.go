package service

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/mealboard/backend/internal/apperr"
	"github.com/pageza/mealboard/backend/internal/model"
	"github.com/pageza/mealboard/backend/internal/spoonacular"
	"github.com/pageza/mealboard/backend/internal/store"
)

// Source selects which recipe origins a search covers.
type Source string

const (
	SourceMixed    Source = "mixed"
	SourceLocal    Source = "local"
	SourceExternal Source = "external"
)

// ParseSource accepts "", "mixed", "local" and "external".
func ParseSource(s string) (Source, error) {
	switch Source(strings.ToLower(strings.TrimSpace(s))) {
	case "", SourceMixed:
		return SourceMixed, nil
	case SourceLocal:
		return SourceLocal, nil
	case SourceExternal:
		return SourceExternal, nil
	}
	return "", apperr.Validation("unknown source %q", s)
}

// DefaultLocalShareCap bounds how many local recipes a mixed page carries.
const DefaultLocalShareCap = 6

// defaultExternalQuery is sent to the provider when the caller typed nothing.
const defaultExternalQuery = "popular"

// SearchFilters narrows a search in both sources.
type SearchFilters struct {
	Cuisine       string `json:"cuisine,omitempty"`
	Diet          string `json:"diet,omitempty"`
	MaxReadyTime  int    `json:"max_ready_time,omitempty"`
	Sort          string `json:"sort,omitempty"`
	SortDirection string `json:"sort_direction,omitempty"`
}

// SearchRequest is one unified search.
type SearchRequest struct {
	Query    string
	Filters  SearchFilters
	Page     PageRequest
	Source   Source
	CallerID *uuid.UUID
	// IncludeFamily widens local visibility to family recipes of people who
	// share a group with the caller.
	IncludeFamily bool
}

// SourceBreakdown counts the items of a page by origin.
type SourceBreakdown struct {
	Local    int `json:"local"`
	External int `json:"external"`
}

// SearchResponse is one page of unified results. In mixed mode Paging.Total is
// the sum of both source totals and HasMore is only a hint.
type SearchResponse struct {
	Items           []model.Recipe  `json:"items"`
	Paging          Paging          `json:"paging"`
	SourceBreakdown SourceBreakdown `json:"source_breakdown"`
}

// SearchService merges local and external recipes into one result page.
type SearchService struct {
	recipes       store.RecipeStore
	favorites     store.FavoriteStore
	gateway       RecipeGateway
	images        ImageResolver
	log           *zap.Logger
	localShareCap int

	mu  sync.Mutex
	rng *rand.Rand
}

// SearchOption customizes a SearchService.
type SearchOption func(*SearchService)

// WithRand fixes the shuffle source, for tests.
func WithRand(rng *rand.Rand) SearchOption {
	return func(s *SearchService) { s.rng = rng }
}

// WithLocalShareCap overrides DefaultLocalShareCap.
func WithLocalShareCap(n int) SearchOption {
	return func(s *SearchService) {
		if n > 0 {
			s.localShareCap = n
		}
	}
}

// WithImages resolves stored image references of local recipes.
func WithImages(images ImageResolver) SearchOption {
	return func(s *SearchService) { s.images = images }
}

// NewSearchService creates a new SearchService instance. gateway may be nil,
// in which case only local recipes are searched.
func NewSearchService(recipes store.RecipeStore, favorites store.FavoriteStore, gateway RecipeGateway, log *zap.Logger, opts ...SearchOption) *SearchService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &SearchService{
		recipes:       recipes,
		favorites:     favorites,
		gateway:       gateway,
		log:           log,
		localShareCap: DefaultLocalShareCap,
		rng:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search returns one page for the request's source mode.
func (s *SearchService) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	req.Page = req.Page.Normalize()
	if req.Source == "" {
		req.Source = SourceMixed
	}

	var (
		resp *SearchResponse
		err  error
	)
	switch req.Source {
	case SourceLocal:
		resp, err = s.searchLocalOnly(ctx, req)
	case SourceExternal:
		resp, err = s.searchExternalOnly(ctx, req)
	case SourceMixed:
		resp, err = s.searchMixed(ctx, req)
	default:
		return nil, apperr.Validation("unknown source %q", req.Source)
	}
	if err != nil {
		return nil, err
	}

	if req.CallerID != nil {
		if err := markFavorites(ctx, s.favorites, *req.CallerID, resp.Items); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

func (s *SearchService) searchLocalOnly(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	items, total, err := s.local(ctx, req, req.Page.Offset(), req.Page.Size)
	if err != nil {
		return nil, err
	}
	return &SearchResponse{
		Items:           items,
		Paging:          newPaging(req.Page, total),
		SourceBreakdown: SourceBreakdown{Local: len(items)},
	}, nil
}

func (s *SearchService) searchExternalOnly(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	items, total, err := s.external(ctx, req, req.Page.Size)
	if err != nil {
		return nil, err
	}
	return &SearchResponse{
		Items:           items,
		Paging:          newPaging(req.Page, total),
		SourceBreakdown: SourceBreakdown{External: len(items)},
	}, nil
}

// searchMixed splits the page between the sources. Each source is paged
// independently by its own share, so deeper pages are not stable.
func (s *SearchService) searchMixed(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	size := req.Page.Size
	localShare := (size + 1) / 2
	if localShare > s.localShareCap {
		localShare = s.localShareCap
	}
	externalShare := size - localShare

	localItems, localTotal, err := s.local(ctx, req, (req.Page.Number-1)*localShare, localShare)
	if err != nil {
		return nil, err
	}

	var (
		externalItems []model.Recipe
		externalTotal int64
	)
	if externalShare > 0 {
		externalItems, externalTotal, err = s.external(ctx, req, externalShare)
		if err != nil {
			s.log.Warn("external search failed, serving local results only",
				zap.String("query", req.Query),
				zap.String("kind", string(apperr.KindOf(err))),
				zap.Error(err),
			)
			externalItems, externalTotal = nil, 0
		}
	}

	items := make([]model.Recipe, 0, len(localItems)+len(externalItems))
	items = append(items, localItems...)
	items = append(items, externalItems...)
	s.shuffle(items)
	if len(items) > size {
		items = items[:size]
	}

	var breakdown SourceBreakdown
	for _, it := range items {
		if it.Origin == model.OriginExternal {
			breakdown.External++
		} else {
			breakdown.Local++
		}
	}

	return &SearchResponse{
		Items:           items,
		Paging:          newPaging(req.Page, localTotal+externalTotal),
		SourceBreakdown: breakdown,
	}, nil
}

func (s *SearchService) local(ctx context.Context, req SearchRequest, offset, limit int) ([]model.Recipe, int64, error) {
	rows, total, err := s.recipes.SearchRecipes(ctx, store.LocalQuery{
		Text:          req.Query,
		Cuisine:       req.Filters.Cuisine,
		Diet:          req.Filters.Diet,
		MaxReadyTime:  req.Filters.MaxReadyTime,
		Sort:          req.Filters.Sort,
		SortDirection: req.Filters.SortDirection,
		CallerID:      req.CallerID,
		IncludeFamily: req.IncludeFamily,
		Offset:        offset,
		Limit:         limit,
	})
	if err != nil {
		return nil, 0, err
	}
	return localViews(ctx, s.images, s.log, rows), total, nil
}

// external asks the provider for the request's page at the given page size,
// so the provider offset is (page-1) * size.
func (s *SearchService) external(ctx context.Context, req SearchRequest, size int) ([]model.Recipe, int64, error) {
	if s.gateway == nil {
		return nil, 0, apperr.New(apperr.KindUpstreamUnavailable, "external recipes are not configured")
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		query = defaultExternalQuery
	}
	result, err := s.gateway.Search(ctx, spoonacular.SearchQuery{
		Query:         query,
		Cuisine:       req.Filters.Cuisine,
		Diet:          req.Filters.Diet,
		MaxReadyTime:  req.Filters.MaxReadyTime,
		Sort:          providerSort(req.Filters.Sort),
		SortDirection: req.Filters.SortDirection,
	}, spoonacular.Page{Number: req.Page.Number, Size: size})
	if err != nil {
		return nil, 0, err
	}
	items := result.Recipes
	if items == nil {
		items = []model.Recipe{}
	}
	return items, int64(result.Total), nil
}

// providerSort maps a sort key onto the provider's vocabulary. Keys the
// provider has no equivalent for fall back to its relevance order.
func providerSort(key string) string {
	switch strings.ToLower(key) {
	case "time", "healthiness", "popularity", "random":
		return strings.ToLower(key)
	}
	return ""
}

// shuffle is a Fisher-Yates shuffle on the service's random source.
func (s *SearchService) shuffle(items []model.Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(items) - 1; i > 0; i-- {
		j := s.rng.Intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}
