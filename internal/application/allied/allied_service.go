package allied

import (
	"context"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// The allied feed changes slowly; half an hour of staleness is acceptable
// and keeps us from hammering partner stores.
const (
	cacheKey = "allied:products"
	cacheTTL = 30 * time.Minute
)

// Product is a listing published by an allied store. Field names follow the
// partner's feed, which is in English.
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
	Stock    int    `json:"stock"`
	URL      string `json:"url,omitempty"`
}

// Client fetches the product feed of an allied store
type Client interface {
	FetchProducts(ctx context.Context) ([]Product, error)
}

// Cache stores serializable values with a TTL
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Service aggregates allied store products behind a cache. Upstream failures
// are reported in-band so the storefront can render a friendly notice
// instead of breaking.
type Service struct {
	client Client
	cache  Cache
	logger *zap.Logger
}

// NewService creates a new allied Service
func NewService(client Client, cache Cache, logger *zap.Logger) *Service {
	return &Service{
		client: client,
		cache:  cache,
		logger: logger,
	}
}

// Result is the aggregated allied feed with its provenance
type Result struct {
	Success bool      `json:"success"`
	Data    []Product `json:"data,omitempty"`
	Count   int       `json:"count"`
	Source  string    `json:"source,omitempty"`
	Error   string    `json:"error,omitempty"`
}

// CategoriesResult lists the distinct categories present in the allied feed
type CategoriesResult struct {
	Success bool     `json:"success"`
	Data    []string `json:"data"`
	Count   int      `json:"count"`
	Error   string   `json:"error,omitempty"`
}

// Products returns the allied product feed, served from cache when fresh
func (s *Service) Products(ctx context.Context) Result {
	var cached []Product
	if ok, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && ok {
		return Result{Success: true, Data: cached, Count: len(cached), Source: "cache"}
	}

	products, err := s.client.FetchProducts(ctx)
	if err != nil {
		s.logger.Warn("allied store fetch failed", zap.Error(err))
		return Result{Success: false, Error: "No se pudo consultar la tienda aliada"}
	}

	if err := s.cache.Set(ctx, cacheKey, products, cacheTTL); err != nil {
		s.logger.Warn("failed to cache allied products", zap.Error(err))
	}
	return Result{Success: true, Data: products, Count: len(products), Source: "api"}
}

// Search filters the allied feed by product name and category. The category
// value "todas" means no category filter, matching the storefront's
// select-all option.
func (s *Service) Search(ctx context.Context, query, category string) Result {
	result := s.Products(ctx)
	if !result.Success {
		return result
	}

	filtered := result.Data
	if query != "" {
		q := strings.ToLower(query)
		matched := make([]Product, 0, len(filtered))
		for _, p := range filtered {
			if strings.Contains(strings.ToLower(p.Name), q) {
				matched = append(matched, p)
			}
		}
		filtered = matched
	}
	if category != "" && category != "todas" {
		matched := make([]Product, 0, len(filtered))
		for _, p := range filtered {
			if strings.EqualFold(p.Category, category) {
				matched = append(matched, p)
			}
		}
		filtered = matched
	}

	result.Data = filtered
	result.Count = len(filtered)
	return result
}

// Categories returns the sorted distinct categories in the allied feed
func (s *Service) Categories(ctx context.Context) CategoriesResult {
	result := s.Products(ctx)
	if !result.Success {
		return CategoriesResult{Success: false, Data: []string{}, Error: result.Error}
	}

	seen := make(map[string]struct{})
	categories := make([]string, 0)
	for _, p := range result.Data {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)

	return CategoriesResult{Success: true, Data: categories, Count: len(categories)}
}

// ClearCache drops the cached allied feed and warms it again from the
// partner. Unlike reads, which degrade in-band, a partner outage here is
// returned to the caller: they asked for fresh data and there is none.
func (s *Service) ClearCache(ctx context.Context) error {
	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		return err
	}

	products, err := s.client.FetchProducts(ctx)
	if err != nil {
		return err
	}

	if err := s.cache.Set(ctx, cacheKey, products, cacheTTL); err != nil {
		s.logger.Warn("failed to cache allied products", zap.Error(err))
	}
	return nil
}
