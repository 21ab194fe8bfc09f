package cache_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fieldrules/pkg/cache"
)

func TestLRU_PutGet(t *testing.T) {
	t.Parallel()

	t.Run("stores and returns values", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRU[string, int](3)

		c.Put("a", 1)
		c.Put("b", 2)

		v, ok := c.Get("a")
		assert.True(t, ok)
		assert.Equal(t, 1, v)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRU[string, int](3)

		v, ok := c.Get("missing")
		assert.False(t, ok)
		assert.Zero(t, v)
	})

	t.Run("put replaces existing value", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRU[string, int](3)

		c.Put("a", 1)
		old, replaced := c.Put("a", 2)

		assert.True(t, replaced)
		assert.Equal(t, 1, old)
		v, _ := c.Get("a")
		assert.Equal(t, 2, v)
		assert.Equal(t, 1, c.Len())
	})
}

func TestLRU_Eviction(t *testing.T) {
	t.Parallel()

	c := cache.NewLRU[string, int](2)
	var evicted []string
	c.OnEvict(func(key string, _ int) { evicted = append(evicted, key) })

	c.Put("a", 1)
	c.Put("b", 2)
	_, _ = c.Get("a") // b becomes least recently used
	c.Put("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, []string{"b"}, evicted)

	c.Purge()
	assert.Equal(t, 0, c.Len())
	assert.ElementsMatch(t, []string{"b", "a", "c"}, evicted)
}

func TestLRU_Remove(t *testing.T) {
	t.Parallel()

	c := cache.NewLRU[int, string](2)
	c.Put(1, "one")

	v, ok := c.Remove(1)
	assert.True(t, ok)
	assert.Equal(t, "one", v)

	_, ok = c.Remove(1)
	assert.False(t, ok)
}

func TestLRU_GetOrLoad(t *testing.T) {
	t.Parallel()

	t.Run("loads once and caches", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRU[string, int](4)
		calls := 0
		load := func(k string) (int, error) {
			calls++
			return len(k), nil
		}

		v, err := c.GetOrLoad("abc", load)
		require.NoError(t, err)
		assert.Equal(t, 3, v)

		v, err = c.GetOrLoad("abc", load)
		require.NoError(t, err)
		assert.Equal(t, 3, v)
		assert.Equal(t, 1, calls)
	})

	t.Run("errors are not cached", func(t *testing.T) {
		t.Parallel()
		c := cache.NewLRU[string, int](4)
		errBoom := errors.New("boom")
		calls := 0

		for range 2 {
			_, err := c.GetOrLoad("x", func(string) (int, error) {
				calls++
				return 0, errBoom
			})
			assert.ErrorIs(t, err, errBoom)
		}
		assert.Equal(t, 2, calls)
		assert.Equal(t, 0, c.Len())
	})
}

func TestLRU_Concurrent(t *testing.T) {
	t.Parallel()

	c := cache.NewLRU[int, int](16)
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := range 100 {
				c.Put(n*100+j, j)
				_, _ = c.Get(n*100 + j)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 16)
}

func TestNewLRU_PanicsOnInvalidCapacity(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { cache.NewLRU[string, int](0) })
}
