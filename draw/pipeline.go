// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package draw

import (
	"fmt"
	"image"
	"slices"
	"sync"
	"sync/atomic"
)

// Pipeline owns the unit registry and drives dispatch.
type Pipeline struct {
	decoder ImageDecoder

	mu    sync.RWMutex
	units []Unit

	requested atomic.Bool
}

// NewPipeline creates a pipeline. decoder may be nil when no image tasks
// are submitted.
func NewPipeline(decoder ImageDecoder) *Pipeline {
	return &Pipeline{decoder: decoder}
}

// Register adds u to the registry. Registering an ID twice replaces the
// earlier unit.
func (p *Pipeline) Register(u Unit) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, old := range p.units {
		if old.ID() == u.ID() {
			p.units[i] = u
			return
		}
	}
	p.units = append(p.units, u)
	Logger().Info("draw: unit registered", "unit", u.Name(), "id", u.ID())
}

// Unregister removes the unit with the given ID.
func (p *Pipeline) Unregister(id UnitID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, u := range p.units {
		if u.ID() == id {
			p.units = append(p.units[:i], p.units[i+1:]...)
			Logger().Info("draw: unit unregistered", "unit", u.Name(), "id", id)
			return
		}
	}
}

// Units returns a snapshot of the registered units in registration order.
func (p *Pipeline) Units() []Unit {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]Unit(nil), p.units...)
}

// NewLayer creates a layer covering area. alloc provides its buffer.
func (p *Pipeline) NewLayer(area image.Rectangle, format ColorFormat, alloc Allocator) *Layer {
	return &Layer{Area: area, Format: format, pipeline: p, alloc: alloc}
}

// NextAvailableTask returns the next task on layer after prev that unit
// may claim, or nil. Pass UnitNone to accept tasks of any unit.
func (p *Pipeline) NextAvailableTask(layer *Layer, prev *Task, unit UnitID) *Task {
	return layer.nextAvailable(prev, unit)
}

// RequestDispatch asks the dispatch loop for another pass.
func (p *Pipeline) RequestDispatch() {
	p.requested.Store(true)
}

// DecodeImageHeader returns the header of an image source.
func (p *Pipeline) DecodeImageHeader(src any) (ImageHeader, error) {
	if p.decoder == nil {
		return ImageHeader{}, ErrNoDecoder
	}
	return p.decoder.Info(src)
}

// OpenImage returns the decoded pixels of an image source.
func (p *Pipeline) OpenImage(src any) (*Buffer, error) {
	if p.decoder == nil {
		return nil, ErrNoDecoder
	}
	return p.decoder.Open(src)
}

// evaluate offers t to every unit not excluded from layer, except skip.
func (p *Pipeline) evaluate(layer *Layer, t *Task, skip UnitID) {
	for _, u := range p.Units() {
		if u.ID() == skip || layer.Excluded(u.ID()) {
			continue
		}
		if u.Evaluate(t) == EvalHardReject {
			layer.exclude(u.ID())
			Logger().Debug("draw: unit excluded from layer", "unit", u.Name(), "format", layer.Format)
		}
	}
}

// DispatchOnce offers layer to every unit once and reports whether any
// unit finished a task. Claims held by units no longer registered are
// released first, which also counts as progress.
func (p *Pipeline) DispatchOnce(layer *Layer) bool {
	units := p.Units()
	progress := p.releaseOrphans(layer, units)
	for _, u := range units {
		if u.Dispatch(layer) == DispatchDone {
			progress = true
		}
	}
	return progress
}

func (p *Pipeline) releaseOrphans(layer *Layer, units []Unit) bool {
	released := false
	for _, id := range layer.claimants() {
		if slices.ContainsFunc(units, func(u Unit) bool { return u.ID() == id }) {
			continue
		}
		if n := layer.ReleaseClaims(id); n > 0 {
			Logger().Debug("draw: released claims of unregistered unit", "id", id, "tasks", n)
			released = true
		}
	}
	return released
}

// Finish dispatches until every task of layer is ready.
func (p *Pipeline) Finish(layer *Layer) error {
	for {
		pending := layer.Pending()
		if pending == 0 {
			return nil
		}
		p.requested.Store(false)
		if !p.DispatchOnce(layer) && !p.requested.Load() {
			return fmt.Errorf("%w: %d task(s) pending", ErrStalled, pending)
		}
	}
}

// Close deletes every unit and empties the registry.
func (p *Pipeline) Close() error {
	p.mu.Lock()
	units := p.units
	p.units = nil
	p.mu.Unlock()

	var first error
	for _, u := range units {
		if err := u.Delete(); err != nil && first == nil {
			first = fmt.Errorf("draw: delete %s: %w", u.Name(), err)
		}
	}
	return first
}
