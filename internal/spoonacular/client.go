// Package spoonacular is the gateway to the third-party recipe provider. Every
// request is checked against a call budget first and every response is
// normalized into model.Recipe before it leaves the package.
package spoonacular

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"github.com/pageza/mealboard/backend/internal/apperr"
	"github.com/pageza/mealboard/backend/internal/model"
)

const (
	DefaultBaseURL = "https://api.spoonacular.com"
	MaxPageSize    = 50
	defaultTimeout = 15 * time.Second
)

// SearchQuery holds the provider search filters.
type SearchQuery struct {
	Query         string
	Cuisine       string
	Diet          string
	MaxReadyTime  int
	Sort          string
	SortDirection string
}

// Page selects a 1-based page of results.
type Page struct {
	Number int
	Size   int
}

// Normalize clamps the page into the provider's accepted range.
func (p Page) Normalize() Page {
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = 1
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

// Offset is the zero-based index of the first result on the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// SearchResult is one page of normalized provider results.
type SearchResult struct {
	Recipes []model.Recipe
	Total   int
}

// Config configures a Client.
type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	// CacheSize enables an in-memory cache of recipes fetched by id when > 0.
	CacheSize int
	Logger    *zap.Logger
}

// Client talks to the provider's HTTP API.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	budget  Budget
	cache   *lru.Cache[string, model.Recipe]
	logger  *zap.Logger
}

// NewClient creates a gateway client drawing from budget.
func NewClient(cfg Config, budget Budget) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("spoonacular API key is required")
	}
	if budget == nil {
		return nil, fmt.Errorf("spoonacular budget is required")
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		apiKey:  cfg.APIKey,
		baseURL: baseURL,
		http:    httpClient,
		budget:  budget,
		logger:  logger.Named("spoonacular"),
	}
	if cfg.CacheSize > 0 {
		cache, err := lru.New[string, model.Recipe](cfg.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("failed to create recipe cache: %w", err)
		}
		c.cache = cache
	}
	return c, nil
}

// Search runs a provider search and returns one normalized page.
func (c *Client) Search(ctx context.Context, q SearchQuery, page Page) (*SearchResult, error) {
	page = page.Normalize()

	params := url.Values{}
	params.Set("query", q.Query)
	setIfNotEmpty(params, "cuisine", q.Cuisine)
	setIfNotEmpty(params, "diet", q.Diet)
	if q.MaxReadyTime > 0 {
		params.Set("maxReadyTime", strconv.Itoa(q.MaxReadyTime))
	}
	setIfNotEmpty(params, "sort", q.Sort)
	if dir := strings.ToLower(q.SortDirection); dir == "asc" || dir == "desc" {
		params.Set("sortDirection", dir)
	}
	params.Set("number", strconv.Itoa(page.Size))
	params.Set("offset", strconv.Itoa(page.Offset()))
	params.Set("addRecipeInformation", "true")
	params.Set("addRecipeInstructions", "true")
	params.Set("fillIngredients", "true")

	var resp searchResponse
	if err := c.get(ctx, "/recipes/complexSearch", params, &resp); err != nil {
		return nil, err
	}

	recipes := make([]model.Recipe, 0, len(resp.Results))
	for _, r := range resp.Results {
		recipes = append(recipes, normalize(r))
	}
	return &SearchResult{Recipes: recipes, Total: resp.TotalResults}, nil
}

// FetchByID loads a single provider recipe.
func (c *Client) FetchByID(ctx context.Context, externalID int, includeNutrition bool) (*model.Recipe, error) {
	if externalID <= 0 {
		return nil, apperr.Validation("invalid external recipe id %d", externalID)
	}
	cacheKey := fmt.Sprintf("%d:%t", externalID, includeNutrition)
	if c.cache != nil {
		if cached, ok := c.cache.Get(cacheKey); ok {
			return &cached, nil
		}
	}

	params := url.Values{}
	params.Set("includeNutrition", strconv.FormatBool(includeNutrition))

	var raw apiRecipe
	if err := c.get(ctx, fmt.Sprintf("/recipes/%d/information", externalID), params, &raw); err != nil {
		return nil, err
	}

	recipe := normalize(raw)
	if c.cache != nil {
		c.cache.Add(cacheKey, recipe)
	}
	return &recipe, nil
}

// RandomBatch returns count random recipes, optionally restricted by a
// comma separated tag hint such as "vegetarian,dessert".
func (c *Client) RandomBatch(ctx context.Context, count int, tagHint string) ([]model.Recipe, error) {
	if count < 1 {
		count = 1
	}
	if count > MaxPageSize {
		count = MaxPageSize
	}
	params := url.Values{}
	params.Set("number", strconv.Itoa(count))
	setIfNotEmpty(params, "include-tags", strings.TrimSpace(tagHint))

	var resp randomResponse
	if err := c.get(ctx, "/recipes/random", params, &resp); err != nil {
		return nil, err
	}

	recipes := make([]model.Recipe, 0, len(resp.Recipes))
	for _, r := range resp.Recipes {
		recipes = append(recipes, normalize(r))
	}
	return recipes, nil
}

// BudgetStatus reports the state of the call budget.
func (c *Client) BudgetStatus(ctx context.Context) (BudgetStatus, error) {
	return c.budget.Status(ctx)
}

// get performs a budget-checked GET and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := c.budget.Allow(ctx); err != nil {
		return err
	}

	params.Set("apiKey", c.apiKey)
	endpoint := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return apperr.Wrap(apperr.KindUpstreamUnavailable, err, "failed to build provider request")
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		// url.Error carries the request URL, and with it the API key.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return apperr.Wrap(apperr.KindUpstreamUnavailable, err, "provider request failed")
	}
	defer resp.Body.Close()

	c.logger.Debug("provider call",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apperr.Upstream(resp.StatusCode, readErrorMessage(resp))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Wrap(apperr.KindUpstreamUnavailable, err, "failed to decode provider response")
	}

	if err := c.budget.Record(ctx); err != nil {
		c.logger.Warn("failed to record external call", zap.Error(err))
	}
	return nil
}

func readErrorMessage(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(body) == 0 {
		return http.StatusText(resp.StatusCode)
	}
	var e errorResponse
	if json.Unmarshal(body, &e) == nil && e.Message != "" {
		return e.Message
	}
	return strings.TrimSpace(string(body))
}

func setIfNotEmpty(params url.Values, key, value string) {
	if value != "" {
		params.Set(key, value)
	}
}
