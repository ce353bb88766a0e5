package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type MatchCache struct{ R *redis.Client }

func New(r *redis.Client) *MatchCache { return &MatchCache{R: r} }

func keyMatch(id int64) string { return "feed:match:" + strconv.FormatInt(id, 10) }

func (c *MatchCache) Get(ctx context.Context, id int64, dst any) (bool, error) {
	b, err := c.R.Get(ctx, keyMatch(id)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(b, dst)
}

func (c *MatchCache) Set(ctx context.Context, id int64, v any, ttl time.Duration) error {
	b, _ := json.Marshal(v)
	return c.R.Set(ctx, keyMatch(id), b, ttl).Err()
}
