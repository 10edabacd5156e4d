// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sim

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/dma2d/draw"
	"github.com/gogpu/dma2d/hal"
)

var (
	// ErrOutOfMemory is returned when the arena cannot satisfy an allocation.
	ErrOutOfMemory = errors.New("sim: out of memory")

	// ErrBusFault is returned for accesses outside the arena.
	ErrBusFault = errors.New("sim: bus fault")
)

// allocAlign is the allocation granularity, one cache line.
const allocAlign = 32

// CacheOp is one recorded cache maintenance operation.
type CacheOp struct {
	Clean bool // false means invalidate
	Addr  uint32
	Len   int
}

// Memory is a bus-addressed SRAM arena. It allocates layer and image
// buffers and records cache maintenance requests.
type Memory struct {
	base uint32

	mu    sync.Mutex
	data  []byte
	next  int
	free  map[int][]int
	used  int
	cache []CacheOp
}

// NewMemory creates an arena of size bytes starting at bus address base.
func NewMemory(base uint32, size int) *Memory {
	return &Memory{
		base: base,
		data: make([]byte, size),
		free: make(map[int][]int),
	}
}

// Base returns the bus address of the first byte.
func (m *Memory) Base() uint32 { return m.base }

// Size returns the arena size in bytes.
func (m *Memory) Size() int { return len(m.data) }

// Used returns the number of bytes currently allocated.
func (m *Memory) Used() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.used
}

// Slice returns the n bytes at bus address addr.
func (m *Memory) Slice(addr uint32, n int) ([]byte, error) {
	if addr < m.base || n < 0 {
		return nil, fmt.Errorf("%w: %#08x", ErrBusFault, addr)
	}
	off := int(addr - m.base)
	if off+n > len(m.data) {
		return nil, fmt.Errorf("%w: %#08x+%d", ErrBusFault, addr, n)
	}
	return m.data[off : off+n : off+n], nil
}

// Alloc carves a zeroed buffer out of the arena.
func (m *Memory) Alloc(width, height int, format draw.ColorFormat) (*draw.Buffer, error) {
	bpp := format.BytesPerPixel()
	if width <= 0 || height <= 0 || bpp == 0 {
		return nil, fmt.Errorf("%w: %dx%d %v", draw.ErrNoBuffer, width, height, format)
	}
	stride := width * bpp
	size := stride * height
	rounded := (size + allocAlign - 1) &^ (allocAlign - 1)

	m.mu.Lock()
	defer m.mu.Unlock()

	off := -1
	if list := m.free[rounded]; len(list) > 0 {
		off = list[len(list)-1]
		m.free[rounded] = list[:len(list)-1]
		clear(m.data[off : off+rounded])
	} else if m.next+rounded <= len(m.data) {
		off = m.next
		m.next += rounded
	}
	if off < 0 {
		return nil, fmt.Errorf("%w: %d bytes requested, %d free", ErrOutOfMemory, rounded, len(m.data)-m.next)
	}
	m.used += rounded

	return &draw.Buffer{
		Addr:   m.base + uint32(off),
		Data:   m.data[off : off+size : off+size],
		Width:  width,
		Height: height,
		Stride: stride,
		Format: format,
	}, nil
}

// Free returns b to the arena. Buffers not allocated here are ignored.
func (m *Memory) Free(b *draw.Buffer) {
	if b == nil || b.Addr < m.base {
		return
	}
	off := int(b.Addr - m.base)
	if off >= len(m.data) {
		return
	}
	rounded := (b.Stride*b.Height + allocAlign - 1) &^ (allocAlign - 1)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.free[rounded] = append(m.free[rounded], off)
	m.used -= rounded
}

// Clean records a cache clean of [addr, addr+n).
func (m *Memory) Clean(addr uint32, n int) {
	m.record(CacheOp{Clean: true, Addr: addr, Len: n})
}

// Invalidate records a cache invalidate of [addr, addr+n).
func (m *Memory) Invalidate(addr uint32, n int) {
	m.record(CacheOp{Addr: addr, Len: n})
}

func (m *Memory) record(op CacheOp) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache = append(m.cache, op)
}

// CacheOps returns the recorded cache maintenance operations.
func (m *Memory) CacheOps() []CacheOp {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CacheOp(nil), m.cache...)
}

// ResetCacheOps forgets recorded cache operations.
func (m *Memory) ResetCacheOps() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache = nil
}

var (
	_ draw.Allocator = (*Memory)(nil)
	_ hal.Cache      = (*Memory)(nil)
)
