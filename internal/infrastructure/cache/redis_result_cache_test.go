//go:build integration

package cache

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alessandrv/FEC-mrp/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// newRedisConfig starts a Redis container and returns a config pointing at it
func newRedisConfig(t *testing.T) config.RedisConfig {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	mapped, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)
	port, err := strconv.Atoi(mapped.Port())
	require.NoError(t, err)

	return config.RedisConfig{Enabled: true, Host: host, Port: port}
}

func TestIntegration_RedisResultCache(t *testing.T) {
	cfg := newRedisConfig(t)
	ctx := context.Background()

	c, err := NewRedisResultCache(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	t.Run("miss on unknown key", func(t *testing.T) {
		_, ok, err := c.Get(ctx, "desc:NOPE")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "desc:A100", []byte("Steel frame"), time.Minute))

		value, ok, err := c.Get(ctx, "desc:A100")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "Steel frame", string(value))
	})

	t.Run("keys carry the prefix", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "avail:B200", []byte("{}"), time.Minute))

		exists, err := c.client.Exists(ctx, DefaultKeyPrefix+"avail:B200").Result()
		require.NoError(t, err)
		assert.Equal(t, int64(1), exists)
	})

	t.Run("non-positive ttl stores nothing", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "sim:zero", []byte("x"), 0))

		_, ok, err := c.Get(ctx, "sim:zero")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("entries expire", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "avail:short", []byte("1"), time.Second))

		assert.Eventually(t, func() bool {
			_, ok, err := c.Get(ctx, "avail:short")
			return err == nil && !ok
		}, 5*time.Second, 100*time.Millisecond)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "desc:C300", []byte("Bolt"), time.Minute))
		require.NoError(t, c.Delete(ctx, "desc:C300"))

		_, ok, err := c.Get(ctx, "desc:C300")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestIntegration_FactoryCreatesRedisCache(t *testing.T) {
	cfg := newRedisConfig(t)

	created, err := NewResultCacheFactory(cfg).CreateCache()
	require.NoError(t, err)
	t.Cleanup(func() { _ = created.Close() })

	_, ok := created.(*RedisResultCache)
	assert.True(t, ok)
}
