// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dma2d

import (
	"image"
	"sync"
	"sync/atomic"

	"github.com/gogpu/dma2d/draw"
	"github.com/gogpu/dma2d/hal"
)

// UnitID is the pipeline identifier of the DMA2D unit.
const UnitID draw.UnitID = 5

// Host is the part of the pipeline the unit talks to. *draw.Pipeline
// implements it.
type Host interface {
	// NextAvailableTask returns the first queued task of layer after prev
	// that unit may draw, or nil.
	NextAvailableTask(layer *draw.Layer, prev *draw.Task, unit draw.UnitID) *draw.Task

	// RequestDispatch asks the scheduler to poll every unit again.
	RequestDispatch()

	// DecodeImageHeader returns the header of an image source.
	DecodeImageHeader(src any) (draw.ImageHeader, error)

	// OpenImage returns the decoded pixels of an image source.
	OpenImage(src any) (*draw.Buffer, error)

	Register(u draw.Unit)
	Unregister(id draw.UnitID)
}

var _ Host = (*draw.Pipeline)(nil)

// Health is the operational state of a unit.
type Health int32

const (
	// HealthOffline units are not initialized and claim nothing.
	HealthOffline Health = iota
	// HealthOnline units claim and draw tasks.
	HealthOnline
	// HealthDegraded units timed out on the peripheral. They claim nothing
	// until the next Init.
	HealthDegraded
)

// String returns the health name.
func (h Health) String() string {
	switch h {
	case HealthOffline:
		return "offline"
	case HealthOnline:
		return "online"
	case HealthDegraded:
		return "degraded"
	default:
		return "invalid"
	}
}

// Unit is a draw unit backed by one DMA2D peripheral.
//
// The peripheral runs one transfer at a time. Dispatch holds an exclusive
// guard from claiming a task until the task is released, so concurrent
// Dispatch calls never interleave register programs.
type Unit struct {
	host Host
	regs hal.RegisterBlock
	opts options

	life   sync.Mutex
	health atomic.Int32

	busy   sync.Mutex
	active atomic.Pointer[draw.Task]
	clip   image.Rectangle
}

var _ draw.Unit = (*Unit)(nil)

// New creates an offline unit driving regs on behalf of host.
// Call Init to bring the peripheral up and register the unit.
func New(host Host, regs hal.RegisterBlock, opts ...Option) *Unit {
	u := &Unit{
		host: host,
		regs: regs,
		opts: defaultOptions(),
	}
	for _, opt := range opts {
		opt(&u.opts)
	}
	return u
}

// ID returns UnitID.
func (u *Unit) ID() draw.UnitID { return UnitID }

// Name returns "dma2d".
func (u *Unit) Name() string { return "dma2d" }

// Health returns the current health.
func (u *Unit) Health() Health { return Health(u.health.Load()) }

// Active returns the task being drawn, or nil.
func (u *Unit) Active() *draw.Task { return u.active.Load() }
