package utils_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"macrodash/src/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache(t *testing.T) {
	t.Run("should return the cached value if valid", func(t *testing.T) {
		cache := utils.NewCache[[]byte]()
		cache.Set([]byte("png"), time.Minute)

		value, found := cache.Get()
		assert.True(t, found)
		assert.Equal(t, []byte("png"), value)
		assert.False(t, cache.CachedAt().IsZero())
	})

	t.Run("should miss before anything is set", func(t *testing.T) {
		cache := utils.NewCache[string]()

		_, found := cache.Get()
		assert.False(t, found)
		assert.True(t, cache.CachedAt().IsZero())
	})

	t.Run("should miss once expired", func(t *testing.T) {
		cache := utils.NewCache[string]()
		cache.Set("test value", 10*time.Millisecond)
		time.Sleep(30 * time.Millisecond)

		value, found := cache.Get()
		assert.False(t, found)
		assert.Empty(t, value)
	})

	t.Run("should keep a value without expiration", func(t *testing.T) {
		cache := utils.NewCache[int]()
		cache.Set(7, 0)

		value, found := cache.Get()
		assert.True(t, found)
		assert.Equal(t, 7, value)
	})

	t.Run("should miss after clear", func(t *testing.T) {
		cache := utils.NewCache[int]()
		cache.Set(7, 0)
		cache.Clear()

		_, found := cache.Get()
		assert.False(t, found)
	})
}

func TestSaveBytesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dashboard.png")

	require.NoError(t, utils.SaveBytesToFile([]byte{1, 2, 3}, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
}
