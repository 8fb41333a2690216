// Package cachetest holds the behavior every nps.Cache implementation must share.
package cachetest

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/trailhead/internal/nps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunCacheContract exercises cache against the nps.Cache contract.
func RunCacheContract(t *testing.T, cache nps.Cache) {
	ctx := context.Background()
	prefix := "contract-" + time.Now().Format("20060102150405.000000") + ":"

	t.Run("Set and Get", func(t *testing.T) {
		key := prefix + "/parks?stateCode=CA"
		require.NoError(t, cache.Set(ctx, key, []byte(`{"total":"1"}`), time.Minute))

		got, ok := cache.Get(ctx, key)
		require.True(t, ok, "value should be cached")
		assert.Equal(t, `{"total":"1"}`, string(got))
	})

	t.Run("Miss", func(t *testing.T) {
		_, ok := cache.Get(ctx, prefix+"never-set")
		assert.False(t, ok)
	})

	t.Run("Overwrite", func(t *testing.T) {
		key := prefix + "overwrite"
		require.NoError(t, cache.Set(ctx, key, []byte("old"), time.Minute))
		require.NoError(t, cache.Set(ctx, key, []byte("new"), time.Minute))

		got, ok := cache.Get(ctx, key)
		require.True(t, ok)
		assert.Equal(t, "new", string(got))
	})

	t.Run("Zero TTL Is Not Stored", func(t *testing.T) {
		key := prefix + "zero-ttl"
		require.NoError(t, cache.Set(ctx, key, []byte("v"), 0))

		_, ok := cache.Get(ctx, key)
		assert.False(t, ok)
	})

	t.Run("Keys Are Independent", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, prefix+"a", []byte("1"), time.Minute))
		require.NoError(t, cache.Set(ctx, prefix+"b", []byte("2"), time.Minute))

		a, _ := cache.Get(ctx, prefix+"a")
		b, _ := cache.Get(ctx, prefix+"b")
		assert.Equal(t, "1", string(a))
		assert.Equal(t, "2", string(b))
	})
}
