package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"water-redistribution-service/internal/domain"
	"water-redistribution-service/internal/platform/obs"
	"water-redistribution-service/internal/ports"
)

const defaultWellsKey = "water:wells:snapshot"

// RedisWellCache decorates a WellRepository with a Redis-held copy of the
// wells snapshot. Redis failures fall through to the underlying repository.
type RedisWellCache struct {
	Next ports.WellRepository
	RDB  *redis.Client
	TTL  time.Duration
	Key  string
}

func NewRedisWellCache(next ports.WellRepository, rdb *redis.Client, ttl time.Duration) *RedisWellCache {
	return &RedisWellCache{Next: next, RDB: rdb, TTL: ttl, Key: defaultWellsKey}
}

// NewRedisClient builds a client from a redis:// URL and checks connectivity.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis client: parse url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis client: ping: %w", err)
	}
	return rdb, nil
}

func (c *RedisWellCache) ListWells(ctx context.Context) (_ []domain.Well, err error) {
	defer obs.Time(ctx, "wells.cache.List")(&err)

	if c.Next == nil {
		return nil, errors.New("well cache: next repository is nil")
	}

	if c.RDB != nil {
		wells, hit, err := c.get(ctx)
		if err != nil {
			log.Printf("req_id=%s well cache read failed: %v", obs.RequestID(ctx), err)
		}
		if hit {
			return wells, nil
		}
	}

	wells, err := c.Next.ListWells(ctx)
	if err != nil {
		return nil, err
	}

	if c.RDB != nil {
		if err := c.put(ctx, wells); err != nil {
			log.Printf("req_id=%s well cache write failed: %v", obs.RequestID(ctx), err)
		}
	}

	return wells, nil
}

// Invalidate drops the cached snapshot, e.g. after reseeding.
func (c *RedisWellCache) Invalidate(ctx context.Context) error {
	if c.RDB == nil {
		return nil
	}
	if err := c.RDB.Del(ctx, c.key()).Err(); err != nil {
		return fmt.Errorf("well cache: invalidate: %w", err)
	}
	return nil
}

func (c *RedisWellCache) get(ctx context.Context) ([]domain.Well, bool, error) {
	data, err := c.RDB.Get(ctx, c.key()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %q: %w", c.key(), err)
	}

	var wells []domain.Well
	if err := json.Unmarshal(data, &wells); err != nil {
		return nil, false, fmt.Errorf("decode %q: %w", c.key(), err)
	}
	return wells, true, nil
}

func (c *RedisWellCache) put(ctx context.Context, wells []domain.Well) error {
	data, err := json.Marshal(wells)
	if err != nil {
		return fmt.Errorf("encode wells: %w", err)
	}
	if err := c.RDB.Set(ctx, c.key(), data, c.TTL).Err(); err != nil {
		return fmt.Errorf("set %q: %w", c.key(), err)
	}
	return nil
}

func (c *RedisWellCache) key() string {
	if c.Key == "" {
		return defaultWellsKey
	}
	return c.Key
}
