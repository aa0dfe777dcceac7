package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/learning/securedapp/internal/core/domain"
)

const (
	roleCatalogKey = "roles:catalog"
	roleCatalogTTL = 5 * time.Minute
)

// RoleCache caches the serialized role catalog in Redis. The catalog is
// small and read on every user load, so a short TTL plus invalidation on
// role writes keeps it fresh without hammering the store.
type RoleCache struct {
	client *redis.Client
}

// NewRoleCache creates a RoleCache wrapping the given Redis client.
func NewRoleCache(client *redis.Client) *RoleCache {
	return &RoleCache{client: client}
}

// Get returns the cached catalog, or (nil, nil) on a cache miss.
func (c *RoleCache) Get(ctx context.Context) ([]*domain.Role, error) {
	raw, err := c.client.Get(ctx, roleCatalogKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("role cache get: %w", err)
	}

	var roles []*domain.Role
	if err := json.Unmarshal(raw, &roles); err != nil {
		return nil, fmt.Errorf("role cache decode: %w", err)
	}
	return roles, nil
}

// Set stores the catalog with the cache TTL.
func (c *RoleCache) Set(ctx context.Context, roles []*domain.Role) error {
	raw, err := json.Marshal(roles)
	if err != nil {
		return fmt.Errorf("role cache encode: %w", err)
	}
	return c.client.Set(ctx, roleCatalogKey, raw, roleCatalogTTL).Err()
}

// Invalidate drops the cached catalog; the next read repopulates it.
func (c *RoleCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, roleCatalogKey).Err()
}
