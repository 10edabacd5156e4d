// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package draw

import (
	"image"
	"sync/atomic"
)

// Kind is the kind of drawing a task performs.
type Kind uint8

const (
	// KindFill fills a rectangle with a solid color.
	KindFill Kind = iota + 1
	// KindImage copies an image into the layer.
	KindImage
	// KindBorder strokes a rectangle outline.
	KindBorder
	// KindLabel renders text.
	KindLabel
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindFill:
		return "fill"
	case KindImage:
		return "image"
	case KindBorder:
		return "border"
	case KindLabel:
		return "label"
	default:
		return "unknown"
	}
}

// State is the lifecycle state of a task.
type State int32

const (
	// StateQueued tasks wait to be claimed.
	StateQueued State = iota
	// StateInProgress tasks are held by exactly one unit.
	StateInProgress
	// StateReady tasks are finished.
	StateReady
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateQueued:
		return "queued"
	case StateInProgress:
		return "in-progress"
	case StateReady:
		return "ready"
	default:
		return "invalid"
	}
}

// ScoreBaseline is the score of an unclaimed task. Units claim a task by
// writing a strictly lower score.
const ScoreBaseline = 100

// FillDesc describes a solid fill.
type FillDesc struct {
	Color  Color
	Opa    Opa
	Radius int
}

// ImageDesc describes an image copy. Scale is 8.8 fixed point (256 is 1:1)
// and Rotation is in tenths of a degree around the image center.
type ImageDesc struct {
	Src      any
	Opa      Opa
	Scale    int
	Rotation int
}

// Transformed reports whether the image is scaled or rotated.
func (d *ImageDesc) Transformed() bool {
	return (d.Scale != 0 && d.Scale != ScaleNone) || d.Rotation%3600 != 0
}

// ScaleNone is the identity value of ImageDesc.Scale.
const ScaleNone = 256

// Task is one rectangular drawing operation owned by a layer's queue.
//
// Units read Kind, Area, Clip and Desc, and only write State, Score and
// PreferredUnit, and only while they examine or hold the task.
type Task struct {
	Kind Kind
	// Area is the target rectangle in screen coordinates.
	Area image.Rectangle
	// Clip limits drawing, in screen coordinates.
	Clip image.Rectangle
	// Desc is *FillDesc for KindFill and *ImageDesc for KindImage.
	Desc any

	Layer *Layer

	PreferredUnit UnitID
	Score         int

	state atomic.Int32
}

// State returns the task state.
func (t *Task) State() State { return State(t.state.Load()) }

// SetState moves the task to s.
func (t *Task) SetState(s State) { t.state.Store(int32(s)) }

// DrawArea returns Area clipped by Clip.
func (t *Task) DrawArea() image.Rectangle {
	return t.Area.Intersect(t.Clip)
}

// Fill returns the fill descriptor, or nil if the task is not a fill.
func (t *Task) Fill() *FillDesc {
	d, _ := t.Desc.(*FillDesc)
	return d
}

// Image returns the image descriptor, or nil if the task is not an image.
func (t *Task) Image() *ImageDesc {
	d, _ := t.Desc.(*ImageDesc)
	return d
}

// Claim records u as the preferred unit if score beats the current score.
// It reports whether the claim was taken. Only queued tasks can be claimed.
func (t *Task) Claim(u UnitID, score int) bool {
	if t.State() != StateQueued || score >= t.Score {
		return false
	}
	t.Score = score
	t.PreferredUnit = u
	return true
}
