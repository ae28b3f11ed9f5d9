package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopNeverHits(t *testing.T) {
	var c Cache = Noop{}
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", 1, time.Minute))
	var got int
	hit, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.Delete(ctx, "k"))
}

func TestRedisRoundTrip(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	rdb := redis.NewClient(opt)
	t.Cleanup(func() { rdb.Close() })

	c := NewRedis(rdb)
	ctx := context.Background()
	type figures struct {
		Orders int64 `json:"orders"`
	}
	require.NoError(t, c.Set(ctx, "test:figures", figures{Orders: 4}, time.Minute))

	var got figures
	hit, err := c.Get(ctx, "test:figures", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, int64(4), got.Orders)

	require.NoError(t, c.Delete(ctx, "test:figures"))
	hit, err = c.Get(ctx, "test:figures", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}
