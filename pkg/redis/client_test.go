package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fakeCmdable struct {
	counts  map[string]int64
	values  map[string]string
	expires map[string]time.Duration
}

func newFakeCmdable() *fakeCmdable {
	return &fakeCmdable{
		counts:  map[string]int64{},
		values:  map[string]string{},
		expires: map[string]time.Duration{},
	}
}

func (f *fakeCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeCmdable) Set(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	f.values[key] = value.(string)
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeCmdable) Get(_ context.Context, key string) *redis.StringCmd {
	val, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (f *fakeCmdable) Incr(_ context.Context, key string) *redis.IntCmd {
	f.counts[key]++
	return redis.NewIntResult(f.counts[key], nil)
}

func (f *fakeCmdable) Expire(_ context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	f.expires[key] = ttl
	return redis.NewBoolResult(true, nil)
}

func (f *fakeCmdable) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var removed int64
	for _, key := range keys {
		if _, ok := f.values[key]; ok {
			delete(f.values, key)
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}

func TestIncrWithTTLSetsExpiryOnce(t *testing.T) {
	fake := newFakeCmdable()
	client := NewWithStore(fake)

	count, err := client.IncrWithTTL(context.Background(), "rl:test", time.Minute)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
	require.Equal(t, time.Minute, fake.expires["rl:test"])

	count, err = client.IncrWithTTL(context.Background(), "rl:test", time.Minute)
	require.NoError(t, err)
	require.Equal(t, int64(2), count)
	// Expire is only issued with the first increment.
	require.Len(t, fake.expires, 1)
}

func TestFixedWindowAllow(t *testing.T) {
	fake := newFakeCmdable()
	client := NewWithStore(fake)

	for i := 0; i < 3; i++ {
		allowed, count, err := client.FixedWindowAllow(context.Background(), "login", 3, time.Minute)
		require.NoError(t, err)
		require.True(t, allowed)
		require.Equal(t, int64(i+1), count)
	}

	allowed, count, err := client.FixedWindowAllow(context.Background(), "login", 3, time.Minute)
	require.NoError(t, err)
	require.False(t, allowed)
	require.Equal(t, int64(4), count)
}

func TestKeysAreNamespaced(t *testing.T) {
	client := NewWithStore(newFakeCmdable())

	require.Equal(t, "tiendita:rate_limit:login", client.RateLimitKey("login"))
	require.Equal(t, "tiendita:counter:ventas", client.CounterKey("ventas"))
}

func TestSetGetDelRoundTrip(t *testing.T) {
	client := NewWithStore(newFakeCmdable())
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, "k", "v", 0))
	val, err := client.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v", val)

	require.NoError(t, client.Del(ctx, "k"))
	_, err = client.Get(ctx, "k")
	require.ErrorIs(t, err, redis.Nil)
}
