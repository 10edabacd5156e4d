// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cache

import "sync"

// Cache is an LRU cache bounded by the total cost of its entries.
// Cache must not be copied after creation.
type Cache[K comparable, V any] struct {
	budget  int
	cost    func(V) int
	onEvict func(K, V)

	mu      sync.Mutex
	entries map[K]*lruNode[K, V]
	order   lruList[K, V]
	size    int
	stats   Stats
}

// New creates a cache holding at most budget cost units. A budget of 0
// means unlimited. cost may be nil, in which case every entry costs 1.
// onEvict, if not nil, receives every entry that leaves the cache.
func New[K comparable, V any](budget int, cost func(V) int, onEvict func(K, V)) *Cache[K, V] {
	if cost == nil {
		cost = func(V) int { return 1 }
	}
	return &Cache[K, V]{
		budget:  budget,
		cost:    cost,
		onEvict: onEvict,
		entries: make(map[K]*lruNode[K, V]),
	}
}

// Get returns the value for key and marks it most recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}
	c.stats.Hits++
	c.order.moveToFront(node)
	return node.value, true
}

// Add stores value under key unless key is already present, and returns
// the value now cached together with whether it was inserted. A rejected
// value is not passed to the eviction callback; the caller still owns it.
//
// The newest entry is never evicted by its own insertion, so a single
// entry larger than the budget stays cached until the next Add.
func (c *Cache[K, V]) Add(key K, value V) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, ok := c.entries[key]; ok {
		c.order.moveToFront(node)
		return node.value, false
	}

	node := &lruNode[K, V]{key: key, value: value, cost: c.cost(value)}
	c.entries[key] = node
	c.order.pushFront(node)
	c.size += node.cost

	for c.budget > 0 && c.size > c.budget && c.order.len > 1 {
		c.evict(c.order.oldest())
	}
	return value, true
}

// Remove evicts key and reports whether it was present.
func (c *Cache[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.entries[key]
	if ok {
		c.evict(node)
	}
	return ok
}

// Clear evicts every entry, oldest first.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for node := c.order.oldest(); node != nil; node = c.order.oldest() {
		c.evict(node)
	}
}

// evict removes node. Caller must hold c.mu.
func (c *Cache[K, V]) evict(node *lruNode[K, V]) {
	c.order.unlink(node)
	delete(c.entries, node.key)
	c.size -= node.cost
	c.stats.Evictions++
	if c.onEvict != nil {
		c.onEvict(node.key, node.value)
	}
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Size returns the total cost of the cached entries.
func (c *Cache[K, V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Stats returns a snapshot of the counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Len = len(c.entries)
	s.Size = c.size
	s.Budget = c.budget
	return s
}

// Stats contains cache statistics.
type Stats struct {
	Len       int
	Size      int
	Budget    int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRate returns hits over lookups, 0 before the first lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}
