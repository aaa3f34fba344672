package mealdb

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/tastebite/platform/internal/domain/recipe"
	"github.com/tastebite/platform/internal/ports/outbound"
)

// CachedClient wraps a catalog client with a read-through cache. Catalog
// data changes rarely, so short TTLs keep browse latency down without
// serving stale results for long.
type CachedClient struct {
	inner  outbound.CatalogClient
	cache  outbound.CacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedClient creates a read-through caching catalog client.
func NewCachedClient(inner outbound.CatalogClient, cache outbound.CacheRepository, ttl time.Duration, logger *zap.Logger) outbound.CatalogClient {
	return &CachedClient{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: logger.Named("mealdb-cache"),
	}
}

func (c *CachedClient) Search(ctx context.Context, term string) ([]recipe.Summary, error) {
	var summaries []recipe.Summary
	err := c.through(ctx, "catalog:search:"+term, &summaries, func() (interface{}, error) {
		return c.inner.Search(ctx, term)
	})
	return summaries, err
}

func (c *CachedClient) FilterByCategory(ctx context.Context, category string) ([]recipe.Summary, error) {
	var summaries []recipe.Summary
	err := c.through(ctx, "catalog:category:"+category, &summaries, func() (interface{}, error) {
		return c.inner.FilterByCategory(ctx, category)
	})
	return summaries, err
}

func (c *CachedClient) FilterByArea(ctx context.Context, area string) ([]recipe.Summary, error) {
	var summaries []recipe.Summary
	err := c.through(ctx, "catalog:area:"+area, &summaries, func() (interface{}, error) {
		return c.inner.FilterByArea(ctx, area)
	})
	return summaries, err
}

func (c *CachedClient) Categories(ctx context.Context) ([]outbound.CatalogCategory, error) {
	var categories []outbound.CatalogCategory
	err := c.through(ctx, "catalog:categories", &categories, func() (interface{}, error) {
		return c.inner.Categories(ctx)
	})
	return categories, err
}

func (c *CachedClient) Areas(ctx context.Context) ([]string, error) {
	var areas []string
	err := c.through(ctx, "catalog:areas", &areas, func() (interface{}, error) {
		return c.inner.Areas(ctx)
	})
	return areas, err
}

func (c *CachedClient) Lookup(ctx context.Context, id string) (*outbound.CatalogRecipe, error) {
	var detail *outbound.CatalogRecipe
	err := c.through(ctx, "catalog:lookup:"+id, &detail, func() (interface{}, error) {
		return c.inner.Lookup(ctx, id)
	})
	return detail, err
}

// through fills dest from the cache, falling back to fetch on a miss.
// Cache errors are logged and treated as misses.
func (c *CachedClient) through(ctx context.Context, key string, dest interface{}, fetch func() (interface{}, error)) error {
	if data, err := c.cache.Get(ctx, key); err == nil {
		if err := json.Unmarshal(data, dest); err == nil {
			return nil
		}
		c.logger.Warn("Corrupt cache entry", zap.String("key", key))
	}

	value, err := fetch()
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Debug("Cache store failed", zap.String("key", key), zap.Error(err))
	}
	return json.Unmarshal(data, dest)
}
