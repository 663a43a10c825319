package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"water-redistribution-service/internal/domain"
)

type countingRepo struct {
	wells []domain.Well
	err   error
	calls int
}

func (r *countingRepo) ListWells(context.Context) ([]domain.Well, error) {
	r.calls++
	return r.wells, r.err
}

func newTestCache(t *testing.T, next *countingRepo) (*RedisWellCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisWellCache(next, rdb, time.Minute), mr
}

func sampleWells() []domain.Well {
	return []domain.Well{
		{ID: "W1", Location: &domain.Coordinates{Lon: -77.01, Lat: -12.02}, YieldM3PerDay: 120},
		{ID: "W2", YieldM3PerDay: 30},
	}
}

func TestRedisWellCacheHit(t *testing.T) {
	next := &countingRepo{wells: sampleWells()}
	c, _ := newTestCache(t, next)
	ctx := context.Background()

	first, err := c.ListWells(ctx)
	require.NoError(t, err)
	second, err := c.ListWells(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, next.calls)
	assert.Equal(t, first, second)
	require.NotNil(t, second[0].Location)
	assert.Equal(t, -77.01, second[0].Location.Lon)
	assert.Nil(t, second[1].Location)
}

func TestRedisWellCacheExpires(t *testing.T) {
	next := &countingRepo{wells: sampleWells()}
	c, mr := newTestCache(t, next)
	ctx := context.Background()

	_, err := c.ListWells(ctx)
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)
	_, err = c.ListWells(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, next.calls)
}

func TestRedisWellCacheInvalidate(t *testing.T) {
	next := &countingRepo{wells: sampleWells()}
	c, mr := newTestCache(t, next)
	ctx := context.Background()

	_, err := c.ListWells(ctx)
	require.NoError(t, err)
	assert.True(t, mr.Exists(defaultWellsKey))

	require.NoError(t, c.Invalidate(ctx))
	assert.False(t, mr.Exists(defaultWellsKey))
}

func TestRedisWellCacheFallsThroughWhenRedisIsDown(t *testing.T) {
	next := &countingRepo{wells: sampleWells()}
	c, mr := newTestCache(t, next)
	mr.Close()

	wells, err := c.ListWells(context.Background())
	require.NoError(t, err)
	assert.Len(t, wells, 2)
	assert.Equal(t, 1, next.calls)
}

func TestRedisWellCacheCorruptEntry(t *testing.T) {
	next := &countingRepo{wells: sampleWells()}
	c, mr := newTestCache(t, next)
	require.NoError(t, mr.Set(defaultWellsKey, "not json"))

	wells, err := c.ListWells(context.Background())
	require.NoError(t, err)
	assert.Len(t, wells, 2)
	assert.Equal(t, 1, next.calls)
}

func TestRedisWellCachePropagatesRepositoryError(t *testing.T) {
	boom := errors.New("db down")
	next := &countingRepo{err: boom}
	c, mr := newTestCache(t, next)

	_, err := c.ListWells(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists(defaultWellsKey))
}
