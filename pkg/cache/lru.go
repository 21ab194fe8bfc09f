package cache

import (
	"container/list"
	"sync"
)

type entry[K comparable, V any] struct {
	key   K
	value V
}

// LRU is a fixed-capacity cache that evicts the least recently used entry.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	items    map[K]*list.Element
	order    *list.List
	onEvict  func(K, V)
}

// NewLRU creates a cache holding at most capacity entries.
// It panics if capacity is not positive.
func NewLRU[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity <= 0 {
		panic("cache: LRU capacity must be positive")
	}
	return &LRU[K, V]{
		capacity: capacity,
		items:    make(map[K]*list.Element, capacity),
		order:    list.New(),
	}
}

// OnEvict registers a callback invoked for every entry dropped by capacity
// pressure, Remove or Purge.
func (c *LRU[K, V]) OnEvict(fn func(key K, value V)) {
	c.mu.Lock()
	c.onEvict = fn
	c.mu.Unlock()
}

// Get returns the cached value and marks it as recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*entry[K, V]).value, true
	}

	var zero V
	return zero, false
}

// Put stores value under key, returning the replaced value if there was one.
func (c *LRU[K, V]) Put(key K, value V) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.put(key, value)
}

// GetOrLoad returns the cached value for key or calls load to produce it.
// Errors from load are returned as-is and nothing is cached.
// load runs without the cache lock held, so concurrent misses for the same
// key may both call it; the last result stored wins.
func (c *LRU[K, V]) GetOrLoad(key K, load func(K) (V, error)) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	v, err := load(key)
	if err != nil {
		var zero V
		return zero, err
	}

	c.mu.Lock()
	c.put(key, v)
	c.mu.Unlock()
	return v, nil
}

// Remove deletes key from the cache.
func (c *LRU[K, V]) Remove(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		e := c.drop(el)
		return e.value, true
	}

	var zero V
	return zero, false
}

// Len reports the number of cached entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Purge drops every entry.
func (c *LRU[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for el := c.order.Back(); el != nil; el = c.order.Back() {
		c.drop(el)
	}
}

// put requires c.mu.
func (c *LRU[K, V]) put(key K, value V) (V, bool) {
	if el, ok := c.items[key]; ok {
		c.order.MoveToFront(el)
		e := el.Value.(*entry[K, V])
		old := e.value
		e.value = value
		return old, true
	}

	c.items[key] = c.order.PushFront(&entry[K, V]{key: key, value: value})
	if c.order.Len() > c.capacity {
		c.drop(c.order.Back())
	}

	var zero V
	return zero, false
}

// drop requires c.mu.
func (c *LRU[K, V]) drop(el *list.Element) *entry[K, V] {
	c.order.Remove(el)
	e := el.Value.(*entry[K, V])
	delete(c.items, e.key)
	if c.onEvict != nil {
		c.onEvict(e.key, e.value)
	}
	return e
}
