// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dma2d

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/dma2d/draw"
	"github.com/gogpu/dma2d/hal"
	"github.com/gogpu/dma2d/sim"
)

var errNotBuffer = errors.New("not a buffer")

// bufferDecoder serves *draw.Buffer sources as already decoded images.
type bufferDecoder struct{}

func (bufferDecoder) Info(src any) (draw.ImageHeader, error) {
	b, ok := src.(*draw.Buffer)
	if !ok {
		return draw.ImageHeader{}, errNotBuffer
	}
	return draw.ImageHeader{Format: b.Format, Width: b.Width, Height: b.Height, Stride: b.Stride}, nil
}

func (bufferDecoder) Open(src any) (*draw.Buffer, error) {
	b, ok := src.(*draw.Buffer)
	if !ok {
		return nil, errNotBuffer
	}
	return b, nil
}

type failAlloc struct{}

func (failAlloc) Alloc(int, int, draw.ColorFormat) (*draw.Buffer, error) {
	return nil, draw.ErrNoBuffer
}

func (failAlloc) Free(*draw.Buffer) {}

// rig is an initialized unit on a simulated bus.
type rig struct {
	mem *sim.Memory
	rcc *sim.RCC
	dev *sim.DMA2D
	p   *draw.Pipeline
	u   *Unit
}

func newRig(t *testing.T, simOpts []sim.Option, opts ...Option) *rig {
	t.Helper()
	r := newOfflineRig(simOpts, opts...)
	if err := r.u.Init(); err != nil {
		t.Fatalf("Init() = %v", err)
	}
	r.dev.ResetTrace()
	r.mem.ResetCacheOps()
	return r
}

func newOfflineRig(simOpts []sim.Option, opts ...Option) *rig {
	r := &rig{
		mem: sim.NewMemory(0x2000_0000, 256<<10),
		rcc: sim.NewRCC(),
		p:   draw.NewPipeline(bufferDecoder{}),
	}
	r.dev = sim.NewDMA2D(r.mem, append([]sim.Option{sim.WithClock(r.rcc)}, simOpts...)...)
	r.u = New(r.p, r.dev, append([]Option{WithClock(r.rcc), WithCache(r.mem)}, opts...)...)
	return r
}

func (r *rig) layer(t *testing.T, w, h int, f draw.ColorFormat) (*draw.Layer, *draw.Buffer) {
	t.Helper()
	l := r.p.NewLayer(image.Rect(0, 0, w, h), f, r.mem)
	buf := l.AllocBuffer()
	if buf == nil {
		t.Fatalf("AllocBuffer(%dx%d %v) = nil", w, h, f)
	}
	return l, buf
}

func (r *rig) mustWrite(t *testing.T, off hal.Offset, want uint32) {
	t.Helper()
	got, ok := r.dev.Last(off)
	if !ok {
		t.Errorf("%v not written", off)
		return
	}
	if got != want {
		t.Errorf("%v = %#08x, want %#08x", off, got, want)
	}
}

func (r *rig) mustNotWrite(t *testing.T, offs ...hal.Offset) {
	t.Helper()
	for _, off := range offs {
		if v, ok := r.dev.Last(off); ok {
			t.Errorf("%v written with %#08x, want untouched", off, v)
		}
	}
}

func full(w, h int) image.Rectangle { return image.Rect(0, 0, w, h) }

func TestHealthString(t *testing.T) {
	tests := []struct {
		h    Health
		want string
	}{
		{HealthOffline, "offline"},
		{HealthOnline, "online"},
		{HealthDegraded, "degraded"},
		{Health(9), "invalid"},
	}
	for _, tt := range tests {
		if got := tt.h.String(); got != tt.want {
			t.Errorf("Health(%d).String() = %q, want %q", tt.h, got, tt.want)
		}
	}
}

func TestUnitIdentity(t *testing.T) {
	u := New(draw.NewPipeline(nil), sim.NewDMA2D(sim.NewMemory(0, 16)))
	if u.ID() != UnitID {
		t.Errorf("ID() = %d, want %d", u.ID(), UnitID)
	}
	if u.Name() != "dma2d" {
		t.Errorf("Name() = %q", u.Name())
	}
	if u.Health() != HealthOffline {
		t.Errorf("new unit Health() = %v, want offline", u.Health())
	}
	if u.Active() != nil {
		t.Error("new unit has an active task")
	}
	if err := u.Delete(); err != nil {
		t.Errorf("Delete() = %v", err)
	}
}
