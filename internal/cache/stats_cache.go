package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// UserStats is the dashboard summary for one creator
type UserStats struct {
	FormCount              int64 `json:"formCount"`
	TotalResponsesReceived int64 `json:"totalResponsesReceived"`
	Score                  int64 `json:"score"`
}

// StatsCache keeps computed creator stats for a short window so dashboard
// polling doesn't re-count documents on every request
type StatsCache interface {
	Set(ctx context.Context, userID string, stats *UserStats) error
	Get(ctx context.Context, userID string) (*UserStats, error)
}

type statsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache creates a new stats cache
func NewStatsCache(client *redis.Client) StatsCache {
	return &statsCache{
		client: client,
		ttl:    time.Minute,
	}
}

func (c *statsCache) key(userID string) string {
	return fmt.Sprintf("user:%s:stats", userID)
}

func (c *statsCache) Set(ctx context.Context, userID string, stats *UserStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(userID), data, c.ttl).Err()
}

func (c *statsCache) Get(ctx context.Context, userID string) (*UserStats, error) {
	data, err := c.client.Get(ctx, c.key(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var stats UserStats
	if err := json.Unmarshal([]byte(data), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
