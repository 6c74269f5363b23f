package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"formforge/internal/model"
)

// FormCache holds the populated form snapshot (form + question documents)
// that scoring reads on every submission, so hot forms don't hit Mongo twice
// per submit. Entries are invalidated whenever the form or its questions
// change.
type FormCache interface {
	Set(ctx context.Context, formID string, populated *model.PopulatedForm) error
	Get(ctx context.Context, formID string) (*model.PopulatedForm, error)
	Invalidate(ctx context.Context, formID string) error
}

type formCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFormCache creates a new form snapshot cache
func NewFormCache(client *redis.Client) FormCache {
	return &formCache{
		client: client,
		ttl:    15 * time.Minute,
	}
}

func (c *formCache) key(formID string) string {
	return fmt.Sprintf("form:%s:snapshot", formID)
}

func (c *formCache) Set(ctx context.Context, formID string, populated *model.PopulatedForm) error {
	data, err := json.Marshal(populated)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(formID), data, c.ttl).Err()
}

func (c *formCache) Get(ctx context.Context, formID string) (*model.PopulatedForm, error) {
	data, err := c.client.Get(ctx, c.key(formID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var populated model.PopulatedForm
	if err := json.Unmarshal([]byte(data), &populated); err != nil {
		return nil, err
	}
	return &populated, nil
}

func (c *formCache) Invalidate(ctx context.Context, formID string) error {
	return c.client.Del(ctx, c.key(formID)).Err()
}
