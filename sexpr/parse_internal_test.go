package sexpr

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/xxh3"
)

func cacheEntries() int {
	n := 0

	cache.Range(func(_, _ any) bool {
		n++

		return true
	})

	return n
}

func TestParseCached_Bounded(t *testing.T) {
	ctx := context.Background()

	ClearCache()
	t.Cleanup(ClearCache)

	for i := range maxCached {
		_, err := ParseCached(ctx, strconv.Itoa(i))
		require.NoError(t, err)
	}

	// Repeated sources are hits and do not grow the cache.
	_, err := ParseCached(ctx, "0")
	require.NoError(t, err)

	assert.Equal(t, maxCached, cacheEntries())
	assert.Equal(t, int64(maxCached), cacheSize.Load())

	_, err = ParseCached(ctx, "(+ 1 2)")
	require.NoError(t, err)

	assert.Equal(t, 1, cacheEntries())
	assert.Equal(t, int64(1), cacheSize.Load())

	_, stale := cache.Load(strconv.FormatUint(xxh3.Hash([]byte("0")), 36))
	assert.False(t, stale)
}
