// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package hal describes the DMA2D peripheral at its hardware boundary:
// the register map, the control-register bit positions, and the small
// interfaces through which the draw unit touches hardware (the register
// block, the peripheral clock, and the data cache).
//
// The draw unit never dereferences a fixed peripheral address. It receives
// a RegisterBlock at construction, which is either an MMIO handle over the
// real peripheral or a simulated block from package sim.
package hal
