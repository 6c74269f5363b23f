package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ScoreboardCache handles Redis ZSET operations for a form's respondent
// scoreboard. Each submitted response records the respondent's score; the
// owner dashboard reads the top entries.
type ScoreboardCache interface {
	RecordScore(ctx context.Context, formID, userEmail string, score int) error
	GetTop(ctx context.Context, formID string, limit int) ([]ScoreboardEntry, error)
	GetRank(ctx context.Context, formID, userEmail string) (int64, error)
	Clear(ctx context.Context, formID string) error
}

// ScoreboardEntry is a single scoreboard row
type ScoreboardEntry struct {
	UserEmail string `json:"userEmail"`
	Score     int    `json:"score"`
	Rank      int    `json:"rank"`
}

type scoreboardCache struct {
	client *redis.Client
}

// NewScoreboardCache creates a new scoreboard cache
func NewScoreboardCache(client *redis.Client) ScoreboardCache {
	return &scoreboardCache{
		client: client,
	}
}

func (c *scoreboardCache) key(formID string) string {
	return fmt.Sprintf("form:%s:scores", formID)
}

func (c *scoreboardCache) RecordScore(ctx context.Context, formID, userEmail string, score int) error {
	return c.client.ZAdd(ctx, c.key(formID), redis.Z{
		Score:  float64(score),
		Member: userEmail,
	}).Err()
}

func (c *scoreboardCache) GetTop(ctx context.Context, formID string, limit int) ([]ScoreboardEntry, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, c.key(formID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]ScoreboardEntry, len(results))
	for i, z := range results {
		entries[i] = ScoreboardEntry{
			UserEmail: z.Member.(string),
			Score:     int(z.Score),
			Rank:      i + 1,
		}
	}
	return entries, nil
}

func (c *scoreboardCache) GetRank(ctx context.Context, formID, userEmail string) (int64, error) {
	rank, err := c.client.ZRevRank(ctx, c.key(formID), userEmail).Result()
	if err == redis.Nil {
		return -1, nil
	}
	return rank + 1, err // 1-indexed
}

func (c *scoreboardCache) Clear(ctx context.Context, formID string) error {
	return c.client.Del(ctx, c.key(formID)).Err()
}
