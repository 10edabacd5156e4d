// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package hal

// Clock gates and resets the peripheral through the reset and clock
// controller. Enable must not return before the clock is running.
type Clock interface {
	Enable()
	Disable()
	// Reset pulses the peripheral reset line.
	Reset()
}

// Cache maintains coherency between the CPU data cache and memory that the
// peripheral reads or writes behind the CPU's back.
type Cache interface {
	// Clean writes dirty lines covering [addr, addr+n) back to memory.
	Clean(addr uint32, n int)
	// Invalidate discards lines covering [addr, addr+n).
	Invalidate(addr uint32, n int)
}

// NopClock is a Clock for parts whose peripheral clock is always on.
type NopClock struct{}

func (NopClock) Enable()  {}
func (NopClock) Disable() {}
func (NopClock) Reset()   {}

// NopCache is a Cache for cores without a data cache (Cortex-M4).
type NopCache struct{}

func (NopCache) Clean(uint32, int)      {}
func (NopCache) Invalidate(uint32, int) {}

var (
	_ Clock = NopClock{}
	_ Cache = NopCache{}
)
