// Package cache holds the server-side replacements for the persisted client
// caches. Entries are stored in Redis with a TTL and invalidated explicitly
// on every membership-mutating call; a Redis outage degrades to a cache miss
// rather than an error.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"collabhub/internal/model"
	"collabhub/pkg/metrics"
)

const teamKeyPrefix = "team:owner:"

type TeamCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewTeamCache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *TeamCache {
	return &TeamCache{rdb: rdb, ttl: ttl, logger: logger}
}

// Get returns the cached team for an owner email, or nil on a miss.
func (c *TeamCache) Get(ctx context.Context, owner string) *model.Team {
	data, err := c.rdb.Get(ctx, teamKeyPrefix+owner).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Team cache read failed", zap.Error(err))
		}
		metrics.IncrementCacheLookup("team", "miss")
		return nil
	}

	var t model.Team
	if err := json.Unmarshal(data, &t); err != nil {
		c.logger.Warn("Team cache entry corrupt, dropping", zap.String("owner", owner))
		c.rdb.Del(ctx, teamKeyPrefix+owner)
		metrics.IncrementCacheLookup("team", "miss")
		return nil
	}

	metrics.IncrementCacheLookup("team", "hit")
	return &t
}

func (c *TeamCache) Set(ctx context.Context, t *model.Team) {
	data, err := json.Marshal(t)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, teamKeyPrefix+t.Owner, data, c.ttl).Err(); err != nil {
		c.logger.Warn("Team cache write failed", zap.Error(err))
	}
}

// Invalidate drops the cached teams owned by any of the given emails. Called
// after every membership-mutating operation.
func (c *TeamCache) Invalidate(ctx context.Context, owners ...string) {
	if len(owners) == 0 {
		return
	}
	keys := make([]string, 0, len(owners))
	for _, o := range owners {
		keys = append(keys, teamKeyPrefix+o)
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("Team cache invalidation failed", zap.Error(err))
	}
}
