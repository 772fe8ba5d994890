package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestCache(t *testing.T) (*InMemoryResultCache, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)}
	c := newInMemoryResultCache(time.Hour, clock.Now)
	t.Cleanup(func() { _ = c.Close() })
	return c, clock
}

func TestInMemoryResultCache_GetSet(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stored value before expiry", func(t *testing.T) {
		c, clock := newTestCache(t)
		require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

		clock.Advance(59 * time.Second)
		got, ok, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("v"), got)
	})

	t.Run("expired entry is a miss and is dropped lazily", func(t *testing.T) {
		c, clock := newTestCache(t)
		require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

		clock.Advance(time.Minute)
		_, ok, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, 0, c.Size())
	})

	t.Run("missing key is a miss", func(t *testing.T) {
		c, _ := newTestCache(t)
		_, ok, err := c.Get(ctx, "absent")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("non-positive ttl stores nothing", func(t *testing.T) {
		c, _ := newTestCache(t)
		require.NoError(t, c.Set(ctx, "zero", []byte("v"), 0))
		require.NoError(t, c.Set(ctx, "neg", []byte("v"), -time.Second))
		assert.Equal(t, 0, c.Size())
	})

	t.Run("stored bytes are isolated from the caller", func(t *testing.T) {
		c, _ := newTestCache(t)
		buf := []byte("abc")
		require.NoError(t, c.Set(ctx, "k", buf, time.Minute))
		buf[0] = 'z'

		got, _, _ := c.Get(ctx, "k")
		assert.Equal(t, []byte("abc"), got)
		got[1] = 'z'

		again, _, _ := c.Get(ctx, "k")
		assert.Equal(t, []byte("abc"), again)
	})

	t.Run("delete removes the key", func(t *testing.T) {
		c, _ := newTestCache(t)
		require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
		require.NoError(t, c.Delete(ctx, "k"))
		_, ok, _ := c.Get(ctx, "k")
		assert.False(t, ok)
	})
}

func TestInMemoryResultCache_Sweep(t *testing.T) {
	ctx := context.Background()
	c, clock := newTestCache(t)

	require.NoError(t, c.Set(ctx, "short", []byte("1"), time.Second))
	require.NoError(t, c.Set(ctx, "long", []byte("2"), time.Hour))

	clock.Advance(2 * time.Second)
	assert.Equal(t, 1, c.Sweep())
	assert.Equal(t, 1, c.Size())

	_, ok, _ := c.Get(ctx, "long")
	assert.True(t, ok)
}

func TestInMemoryResultCache_BackgroundSweep(t *testing.T) {
	c := NewInMemoryResultCache(10 * time.Millisecond)
	defer c.Close()

	require.NoError(t, c.Set(context.Background(), "k", []byte("v"), time.Millisecond))
	assert.Eventually(t, func() bool { return c.Size() == 0 }, time.Second, 5*time.Millisecond)
}

func TestInMemoryResultCache_Close(t *testing.T) {
	c := NewInMemoryResultCache(time.Minute)
	assert.NoError(t, c.Close())
	assert.NoError(t, c.Close())
}

func TestInMemoryResultCache_ConcurrentAccess(t *testing.T) {
	c := NewInMemoryResultCache(time.Millisecond)
	defer c.Close()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := Key("test", string(rune('a'+i%4)))
			for j := 0; j < 100; j++ {
				_ = c.Set(ctx, key, []byte{byte(j)}, time.Millisecond*time.Duration(j%3))
				_, _, _ = c.Get(ctx, key)
			}
		}(i)
	}
	wg.Wait()
}
