package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRunClaimer_Claim(t *testing.T) {
	c := NewInMemoryRunClaimer()
	defer c.Close()
	ctx := context.Background()

	clock := time.Date(2026, 5, 4, 6, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	ok, err := c.Claim(ctx, "expiry_scan:2026-05-04", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok, "first claim wins")

	ok, err = c.Claim(ctx, "expiry_scan:2026-05-04", time.Hour)
	require.NoError(t, err)
	assert.False(t, ok, "second claim loses while the first is live")

	ok, err = c.Claim(ctx, "expiry_scan:2026-05-05", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok, "other keys are independent")

	clock = clock.Add(time.Hour)
	ok, err = c.Claim(ctx, "expiry_scan:2026-05-04", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok, "expired claims can be taken again")
}

func TestInMemoryRunClaimer_Release(t *testing.T) {
	c := NewInMemoryRunClaimer()
	defer c.Close()
	ctx := context.Background()

	_, err := c.Claim(ctx, "expiry_scan:2026-05-04", time.Hour)
	require.NoError(t, err)
	require.NoError(t, c.Release(ctx, "expiry_scan:2026-05-04"))

	ok, err := c.Claim(ctx, "expiry_scan:2026-05-04", time.Hour)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestInMemoryRunClaimer_Cleanup(t *testing.T) {
	c := NewInMemoryRunClaimer()
	defer c.Close()
	ctx := context.Background()

	clock := time.Date(2026, 5, 4, 6, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return clock }

	_, _ = c.Claim(ctx, "short", time.Minute)
	_, _ = c.Claim(ctx, "long", 24*time.Hour)
	require.Equal(t, 2, c.Size())

	clock = clock.Add(time.Hour)
	c.cleanup()

	assert.Equal(t, 1, c.Size())
}

func TestInMemoryRunClaimer_ConcurrentClaims(t *testing.T) {
	c := NewInMemoryRunClaimer()
	defer c.Close()
	ctx := context.Background()

	const workers = 50
	results := make(chan bool, workers)
	for i := 0; i < workers; i++ {
		go func() {
			ok, err := c.Claim(ctx, "expiry_scan:2026-05-04", time.Hour)
			results <- ok && err == nil
		}()
	}

	won := 0
	for i := 0; i < workers; i++ {
		if <-results {
			won++
		}
	}
	assert.Equal(t, 1, won, "exactly one caller should win the claim")
}

func TestInMemoryRunClaimer_CloseTwice(t *testing.T) {
	c := NewInMemoryRunClaimer()
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}

func TestRedisRunClaimer_Keys(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	defer client.Close()

	assert.Equal(t, "sitinfra:run:expiry_scan:2026-05-04", NewRedisRunClaimer(client, "").key("expiry_scan:2026-05-04"))
	assert.Equal(t, "test:x", NewRedisRunClaimer(client, "test:").key("x"))
}

func TestRedisRunClaimer_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:0", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	_, err := NewRedisRunClaimer(client, "").Claim(context.Background(), "expiry_scan:2026-05-04", time.Hour)

	assert.ErrorContains(t, err, "failed to claim run expiry_scan:2026-05-04")
}
