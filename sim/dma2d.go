// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sim

import (
	"errors"
	"sync"

	"github.com/gogpu/dma2d/hal"
	"github.com/gogpu/dma2d/internal/pixel"
)

// Write is one traced register write.
type Write struct {
	Off   hal.Offset
	Value uint32
}

// Option configures a simulated DMA2D.
type Option func(*DMA2D)

// WithLatency makes each transfer complete only after n status reads
// (CR or ISR) following START.
func WithLatency(n int) Option {
	return func(d *DMA2D) { d.latency = n }
}

// WithHang makes every started transfer run forever until aborted.
func WithHang() Option {
	return func(d *DMA2D) { d.hang = true }
}

// WithClock gates the register file on rcc: while the clock is off,
// writes are dropped and reads return zero. Resets through rcc clear the
// register file.
func WithClock(rcc *RCC) Option {
	return func(d *DMA2D) { d.rcc = rcc }
}

// DMA2D is a simulated Chrom-ART accelerator.
type DMA2D struct {
	mem     *Memory
	rcc     *RCC
	latency int
	hang    bool

	mu        sync.Mutex
	regs      [hal.RegisterSpan / 4]uint32
	running   bool
	countdown int
	trace     []Write
	transfers int
}

// NewDMA2D creates a peripheral mastering mem.
func NewDMA2D(mem *Memory, opts ...Option) *DMA2D {
	d := &DMA2D{mem: mem}
	for _, opt := range opts {
		opt(d)
	}
	if d.rcc != nil {
		d.rcc.attach(d)
	}
	return d
}

var _ hal.RegisterBlock = (*DMA2D)(nil)

func (d *DMA2D) clocked() bool {
	return d.rcc == nil || d.rcc.Enabled()
}

// Read returns the register at off. Status reads advance a pending
// transfer when latency is configured.
func (d *DMA2D) Read(off hal.Offset) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.clocked() {
		return 0
	}
	if d.running && !d.hang && (off == hal.CR || off == hal.ISR) {
		d.countdown--
		if d.countdown <= 0 {
			d.complete()
		}
	}
	return d.regs[off/4]
}

// Write stores v into the register at off and reacts to CR and IFCR.
func (d *DMA2D) Write(off hal.Offset, v uint32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.clocked() {
		return
	}
	d.trace = append(d.trace, Write{Off: off, Value: v})

	switch off {
	case hal.ISR:
		// read-only
	case hal.IFCR:
		d.regs[hal.ISR/4] &^= v & hal.FlagAll
	case hal.CR:
		if v&hal.CRAbort != 0 {
			d.running = false
			d.regs[hal.CR/4] = v &^ (hal.CRAbort | hal.CRStart)
			return
		}
		if d.running {
			// START is cleared by hardware only.
			v |= hal.CRStart
		}
		d.regs[hal.CR/4] = v
		if v&hal.CRStart != 0 && !d.running {
			d.running = true
			d.countdown = d.latency
			if !d.hang && d.latency <= 0 {
				d.complete()
			}
		}
	default:
		d.regs[off/4] = v
	}
}

// complete runs the programmed transfer and updates status.
// Caller holds d.mu.
func (d *DMA2D) complete() {
	d.running = false
	d.transfers++
	err := d.transfer()
	d.regs[hal.CR/4] &^= hal.CRStart
	switch {
	case errors.Is(err, errConfig):
		d.regs[hal.ISR/4] |= hal.FlagCE
	case err != nil:
		d.regs[hal.ISR/4] |= hal.FlagTE
	default:
		d.regs[hal.ISR/4] |= hal.FlagTC
	}
}

func (d *DMA2D) reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.regs = [hal.RegisterSpan / 4]uint32{}
	d.running = false
}

// Busy reports whether a transfer is in flight.
func (d *DMA2D) Busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

// Transfers returns the number of completed transfers.
func (d *DMA2D) Transfers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.transfers
}

// Trace returns the register writes since the last ResetTrace.
func (d *DMA2D) Trace() []Write {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Write(nil), d.trace...)
}

// ResetTrace forgets traced writes.
func (d *DMA2D) ResetTrace() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.trace = nil
}

// Written reports whether off was written since the last ResetTrace.
func (d *DMA2D) Written(off hal.Offset) bool {
	_, ok := d.Last(off)
	return ok
}

// Last returns the last value written to off since the last ResetTrace.
func (d *DMA2D) Last(off hal.Offset) (uint32, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i := len(d.trace) - 1; i >= 0; i-- {
		if d.trace[i].Off == off {
			return d.trace[i].Value, true
		}
	}
	return 0, false
}

// Peek returns a register without advancing a pending transfer.
func (d *DMA2D) Peek(off hal.Offset) uint32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.regs[off/4]
}

// layoutOf maps a hardware color mode to a pixel codec.
func layoutOf(cm hal.ColorMode) pixel.Layout {
	switch cm {
	case hal.CMARGB8888:
		return pixel.LayoutARGB8888
	case hal.CMRGB888:
		return pixel.LayoutRGB888
	case hal.CMRGB565:
		return pixel.LayoutRGB565
	case hal.CMARGB1555:
		return pixel.LayoutARGB1555
	case hal.CMARGB4444:
		return pixel.LayoutARGB4444
	case hal.CMA8:
		return pixel.LayoutA8
	default:
		return pixel.LayoutInvalid
	}
}
