package report

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// reportCacheTTL keeps generated reports fresh enough for a single-user
// bookkeeping session while absorbing repeated dashboard loads.
const reportCacheTTL = 5 * time.Minute

// reportCache memoizes generated reports in Redis. A nil client disables
// caching; misses and codec failures fall through to a fresh computation.
type reportCache struct {
	client *redis.Client
	logger *zap.Logger
}

func newReportCache(client *redis.Client, logger *zap.Logger) *reportCache {
	return &reportCache{client: client, logger: logger}
}

func (c *reportCache) get(ctx context.Context, key string, dest interface{}) bool {
	if c.client == nil {
		return false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("report cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("report cache decode failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *reportCache) put(ctx context.Context, key string, value interface{}) {
	if c.client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("report cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, data, reportCacheTTL).Err(); err != nil {
		c.logger.Warn("report cache write failed", zap.String("key", key), zap.Error(err))
	}
}
