package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"venuedesk/pkg/logger"
	"venuedesk/pkg/model"
)

const activeCatalogKey = "properties:active"

// catalogCache is a read-through cache for the active venue catalog, the
// hottest read in the system. A nil client disables caching entirely, so the
// store keeps working without Redis.
type catalogCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

func newCatalogCache(client *redis.Client, ttl time.Duration, log *logger.Logger) *catalogCache {
	return &catalogCache{client: client, ttl: ttl, log: log}
}

func (c *catalogCache) Get(ctx context.Context) ([]*model.PropertyWithPackages, bool) {
	if c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, activeCatalogKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("Catalog cache read failed", "error", err)
		}
		return nil, false
	}

	var catalog []*model.PropertyWithPackages
	if err := json.Unmarshal(raw, &catalog); err != nil {
		c.log.Warn("Catalog cache entry is corrupt, dropping it", "error", err)
		c.Invalidate(ctx)
		return nil, false
	}
	return catalog, true
}

func (c *catalogCache) Set(ctx context.Context, catalog []*model.PropertyWithPackages) {
	if c.client == nil {
		return
	}

	raw, err := json.Marshal(catalog)
	if err != nil {
		c.log.Warn("Failed to encode catalog for cache", "error", err)
		return
	}
	if err := c.client.Set(ctx, activeCatalogKey, raw, c.ttl).Err(); err != nil {
		c.log.Warn("Catalog cache write failed", "error", err)
	}
}

// Invalidate drops the cached catalog. Called on every property mutation;
// the next read repopulates from the store.
func (c *catalogCache) Invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, activeCatalogKey).Err(); err != nil {
		c.log.Warn("Catalog cache invalidation failed", "error", err)
	}
}
