package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"collabhub/pkg/metrics"
)

const avatarKeyPrefix = "avatar:"

type AvatarCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewAvatarCache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *AvatarCache {
	return &AvatarCache{rdb: rdb, ttl: ttl, logger: logger}
}

// Get returns the cached avatar reference for an email. The second return
// distinguishes a cached empty avatar from a miss.
func (c *AvatarCache) Get(ctx context.Context, email string) (string, bool) {
	val, err := c.rdb.Get(ctx, avatarKeyPrefix+email).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("Avatar cache read failed", zap.Error(err))
		}
		metrics.IncrementCacheLookup("avatar", "miss")
		return "", false
	}
	metrics.IncrementCacheLookup("avatar", "hit")
	return val, true
}

func (c *AvatarCache) Set(ctx context.Context, email, avatar string) {
	if err := c.rdb.Set(ctx, avatarKeyPrefix+email, avatar, c.ttl).Err(); err != nil {
		c.logger.Warn("Avatar cache write failed", zap.Error(err))
	}
}

func (c *AvatarCache) Invalidate(ctx context.Context, email string) {
	if err := c.rdb.Del(ctx, avatarKeyPrefix+email).Err(); err != nil {
		c.logger.Warn("Avatar cache invalidation failed", zap.Error(err))
	}
}
