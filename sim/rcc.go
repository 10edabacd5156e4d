// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sim

import (
	"sync"

	"github.com/gogpu/dma2d/hal"
)

// RCC simulates the clock enable and reset lines of one peripheral.
type RCC struct {
	mu       sync.Mutex
	enabled  bool
	enables  int
	disables int
	resets   int
	attached []*DMA2D
}

// NewRCC returns a controller with the peripheral clock off.
func NewRCC() *RCC {
	return &RCC{}
}

// Enable turns the peripheral clock on.
func (r *RCC) Enable() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = true
	r.enables++
}

// Disable turns the peripheral clock off.
func (r *RCC) Disable() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled = false
	r.disables++
}

// Reset pulses reset on every attached peripheral.
func (r *RCC) Reset() {
	r.mu.Lock()
	r.resets++
	devs := append([]*DMA2D(nil), r.attached...)
	r.mu.Unlock()
	for _, d := range devs {
		d.reset()
	}
}

// Enabled reports whether the clock is running.
func (r *RCC) Enabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled
}

// Counts returns how often Enable, Disable and Reset were called.
func (r *RCC) Counts() (enables, disables, resets int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enables, r.disables, r.resets
}

func (r *RCC) attach(d *DMA2D) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attached = append(r.attached, d)
}

var _ hal.Clock = (*RCC)(nil)
