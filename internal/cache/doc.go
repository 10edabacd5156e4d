// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package cache provides a cost-budgeted LRU cache.
//
// Every entry carries a cost (for decoded images, its size in bytes).
// When the total cost exceeds the budget, least recently used entries are
// evicted and handed to the eviction callback, which typically returns
// the memory to its allocator.
//
//	c := cache.New[string, *draw.Buffer](256<<10,
//		func(b *draw.Buffer) int { return len(b.Data) },
//		func(_ string, b *draw.Buffer) { alloc.Free(b) })
//	c.Add("logo.png", buf)
//	buf, ok := c.Get("logo.png")
//
// Cache is safe for concurrent use. The eviction callback runs with the
// cache lock held and must not call back into the cache.
package cache
