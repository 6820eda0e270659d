package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoCache(t *testing.T) {
	c, err := NewCache(Config{Type: "gocache", Local: LocalConfig{
		DefaultExpiration: 5 * time.Minute,
		CleanupInterval:   10 * time.Minute,
	}})
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()

	t.Run("Set and Get", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, "test_key", "test_value", time.Minute))
		v, ok := c.Get(ctx, "test_key")
		assert.True(t, ok)
		assert.Equal(t, "test_value", v)
	})

	t.Run("Add only once", func(t *testing.T) {
		ok, err := c.Add(ctx, "idem", true, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = c.Add(ctx, "idem", true, time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Delete and Clear", func(t *testing.T) {
		require.NoError(t, c.Delete(ctx, "test_key"))
		assert.False(t, c.Exists(ctx, "test_key"))
		require.NoError(t, c.Clear(ctx))
		assert.False(t, c.Exists(ctx, "idem"))
	})
}

func TestUnsupportedType(t *testing.T) {
	_, err := NewCache(Config{Type: "memcached"})
	assert.Error(t, err)
}
