package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stored values before expiry", func(t *testing.T) {
		c := NewMemoryCache()
		c.Set(ctx, "report:summary", []byte("cached"), time.Minute)

		value, ok := c.Get(ctx, "report:summary")

		assert.True(t, ok)
		assert.Equal(t, []byte("cached"), value)
	})

	t.Run("misses on unknown keys", func(t *testing.T) {
		c := NewMemoryCache()

		_, ok := c.Get(ctx, "missing")

		assert.False(t, ok)
	})

	t.Run("expires entries", func(t *testing.T) {
		c := NewMemoryCache()
		c.Set(ctx, "short", []byte("gone"), -time.Second)

		_, ok := c.Get(ctx, "short")

		assert.False(t, ok)
	})
}
