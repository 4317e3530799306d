package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/assert/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStore_SetGet(t *testing.T) {
	s, mr := newTestRedisStore(t)
	ctx := context.Background()

	err := s.Set(ctx, "markets:1:10", []byte(`[{"id":"bitcoin"}]`), time.Minute)
	assert.Equal(t, nil, err)
	assert.Equal(t, true, mr.Exists(keyPrefix+"markets:1:10"))

	got, ok, err := s.Get(ctx, "markets:1:10")
	assert.Equal(t, nil, err)
	assert.Equal(t, true, ok)
	assert.Equal(t, `[{"id":"bitcoin"}]`, string(got))
}

func TestRedisStore_MissAndExpiry(t *testing.T) {
	s, mr := newTestRedisStore(t)
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "missing")
	assert.Equal(t, nil, err)
	assert.Equal(t, false, ok)

	s.Set(ctx, "k", []byte("v"), time.Minute)
	mr.FastForward(2 * time.Minute)

	_, ok, err = s.Get(ctx, "k")
	assert.Equal(t, nil, err)
	assert.Equal(t, false, ok)
}

func TestRedisStore_ConnectionError(t *testing.T) {
	s, mr := newTestRedisStore(t)
	mr.Close()

	_, ok, err := s.Get(context.Background(), "k")
	assert.Equal(t, false, ok)
	assert.NotEqual(t, nil, err)
}
