package di

import (
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"shelf_backend/internal/feature/inventory/adapters/file"
	"shelf_backend/internal/feature/inventory/usecase"
	"shelf_backend/internal/platform/cache"
)

// NewInventoryRepository creates the file-backed inventory repository wrapped
// with Redis caching. The decorator transparently bypasses the cache when rdb
// is nil, so callers can pass nil when Redis is unavailable.
func NewInventoryRepository(rdb *redis.Client) usecase.InventoryRepository {
	path := os.Getenv("INVENTORY_PATH")
	if path == "" {
		path = "inventory.json"
	}
	inner := file.NewInventoryFile(path)
	return cache.NewCachingInventoryRepository(rdb, 5*time.Minute, inner, "inventory:current")
}
