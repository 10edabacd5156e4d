// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package sim simulates the DMA2D peripheral, its clock controller and the
// SRAM it masters, so the draw unit can be exercised without hardware.
//
// Memory is a flat bus-addressed arena that also acts as the draw
// pipeline's buffer allocator and as the CPU data cache. DMA2D is a
// register file implementing hal.RegisterBlock: writing CR with START runs
// the programmed transfer against Memory and raises the same status flags
// the silicon does. Every register write is traced for inspection.
//
//	mem := sim.NewMemory(0x2000_0000, 1<<20)
//	rcc := sim.NewRCC()
//	dev := sim.NewDMA2D(mem, sim.WithClock(rcc))
package sim
