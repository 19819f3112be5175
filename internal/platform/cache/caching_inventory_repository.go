// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"shelf_backend/internal/feature/inventory/domain/entity"
	"shelf_backend/internal/feature/inventory/usecase"
)

// CachingInventoryRepository decorates an InventoryRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository.
type CachingInventoryRepository struct {
	inner usecase.InventoryRepository
	rdb   *redis.Client
	ttl   time.Duration
	key   string
}

// NewCachingInventoryRepository decorates an InventoryRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If key is empty, it uses "inventory:current".
func NewCachingInventoryRepository(rdb *redis.Client, ttl time.Duration, inner usecase.InventoryRepository, key string) *CachingInventoryRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if key == "" {
		key = "inventory:current"
	}
	return &CachingInventoryRepository{
		inner: inner,
		rdb:   rdb,
		ttl:   ttl,
		key:   key,
	}
}

// Load retrieves the inventory store, checking cache first then falling back to the file.
func (c *CachingInventoryRepository) Load(ctx context.Context) (entity.Store, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Load(ctx)
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, c.key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Store
		if err := json.Unmarshal(b, &out); err == nil && out != nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, c.key).Err()
	}

	// 2) Fallback to the underlying repository
	out, err := c.inner.Load(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, c.key, b, c.ttl).Err()
	}

	return out, nil
}

// Save persists the inventory store and refreshes the cache entry.
func (c *CachingInventoryRepository) Save(ctx context.Context, store entity.Store) error {
	// First save to the underlying repository (file)
	if err := c.inner.Save(ctx, store); err != nil {
		return err
	}
	// Exit early if Redis is not configured
	if c.rdb == nil {
		return nil
	}

	// Refresh the cache with the new store (best effort)
	if b, err := json.Marshal(store); err == nil {
		_ = c.rdb.Set(ctx, c.key, b, c.ttl).Err()
	}
	return nil
}
