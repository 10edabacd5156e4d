// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package draw

import (
	"image"
	"sync"
)

// Layer is a destination surface that a batch of tasks renders into.
type Layer struct {
	// Area is the screen rectangle covered by the layer buffer.
	Area   image.Rectangle
	Format ColorFormat

	pipeline *Pipeline
	alloc    Allocator

	mu       sync.Mutex
	buf      *Buffer
	tasks    []*Task
	excluded map[UnitID]bool
}

// Buffer returns the layer buffer, or nil if it was never allocated.
func (l *Layer) Buffer() *Buffer {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.buf
}

// AllocBuffer returns the layer buffer, allocating it on first use.
// It returns nil when the allocator is exhausted; callers treat that as
// "not ready" and retry on a later pass.
func (l *Layer) AllocBuffer() *Buffer {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.buf != nil {
		return l.buf
	}
	if l.alloc == nil {
		return nil
	}
	buf, err := l.alloc.Alloc(l.Area.Dx(), l.Area.Dy(), l.Format)
	if err != nil {
		Logger().Debug("draw: layer buffer not ready", "area", l.Area, "format", l.Format, "err", err)
		return nil
	}
	l.buf = buf
	return buf
}

// Release returns the layer buffer to its allocator.
func (l *Layer) Release() {
	l.mu.Lock()
	buf := l.buf
	l.buf = nil
	l.mu.Unlock()
	if buf != nil && l.alloc != nil {
		l.alloc.Free(buf)
	}
}

// AddFill queues a fill task.
func (l *Layer) AddFill(area, clip image.Rectangle, d FillDesc) *Task {
	return l.Add(&Task{Kind: KindFill, Area: area, Clip: clip, Desc: &d})
}

// AddImage queues an image task.
func (l *Layer) AddImage(area, clip image.Rectangle, d ImageDesc) *Task {
	return l.Add(&Task{Kind: KindImage, Area: area, Clip: clip, Desc: &d})
}

// Add queues t on the layer and lets every unit evaluate it once.
func (l *Layer) Add(t *Task) *Task {
	t.Layer = l
	t.SetState(StateQueued)
	t.Score = ScoreBaseline
	t.PreferredUnit = UnitNone
	if l.pipeline != nil {
		l.pipeline.evaluate(l, t, UnitNone)
	}

	l.mu.Lock()
	l.tasks = append(l.tasks, t)
	l.mu.Unlock()
	return t
}

// Requeue hands an in-progress task back to the queue after the unit failed
// to execute it, and lets every other unit evaluate it again.
func (l *Layer) Requeue(t *Task, failed UnitID) {
	t.Score = ScoreBaseline
	t.PreferredUnit = UnitNone
	t.SetState(StateQueued)
	if l.pipeline != nil {
		l.pipeline.evaluate(l, t, failed)
	}
}

// ReleaseClaims hands every queued task claimed by u back to the other
// units and returns how many it released. Units call it when they can no
// longer draw what they claimed.
func (l *Layer) ReleaseClaims(u UnitID) int {
	if u == UnitNone {
		return 0
	}
	var claimed []*Task
	l.mu.Lock()
	for _, t := range l.tasks {
		if t.State() == StateQueued && t.PreferredUnit == u {
			claimed = append(claimed, t)
		}
	}
	l.mu.Unlock()

	for _, t := range claimed {
		l.Requeue(t, u)
	}
	return len(claimed)
}

// claimants returns the distinct units holding claims on queued tasks.
func (l *Layer) claimants() []UnitID {
	l.mu.Lock()
	defer l.mu.Unlock()
	var ids []UnitID
	seen := make(map[UnitID]bool)
	for _, t := range l.tasks {
		u := t.PreferredUnit
		if t.State() != StateQueued || u == UnitNone || seen[u] {
			continue
		}
		seen[u] = true
		ids = append(ids, u)
	}
	return ids
}

// Tasks returns a snapshot of the layer's tasks in submission order.
func (l *Layer) Tasks() []*Task {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*Task(nil), l.tasks...)
}

// Pending returns the number of tasks not yet ready.
func (l *Layer) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, t := range l.tasks {
		if t.State() != StateReady {
			n++
		}
	}
	return n
}

// Excluded reports whether unit u hard-rejected this layer.
func (l *Layer) Excluded(u UnitID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.excluded[u]
}

func (l *Layer) exclude(u UnitID) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.excluded == nil {
		l.excluded = make(map[UnitID]bool)
	}
	l.excluded[u] = true
}

// nextAvailable returns the first queued task after prev that unit may take
// and that does not overlap an earlier unfinished task.
func (l *Layer) nextAvailable(prev *Task, unit UnitID) *Task {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := 0
	if prev != nil {
		for i, t := range l.tasks {
			if t == prev {
				start = i + 1
				break
			}
		}
	}
	for i := start; i < len(l.tasks); i++ {
		t := l.tasks[i]
		if t.State() != StateQueued {
			continue
		}
		if unit != UnitNone && t.PreferredUnit != UnitNone && t.PreferredUnit != unit {
			continue
		}
		if l.independent(i) {
			return t
		}
	}
	return nil
}

// independent reports whether no task before index i is unfinished and
// overlaps it. Caller holds l.mu.
func (l *Layer) independent(i int) bool {
	area := l.tasks[i].DrawArea()
	for _, t := range l.tasks[:i] {
		if t.State() == StateReady {
			continue
		}
		if t.DrawArea().Overlaps(area) {
			return false
		}
	}
	return true
}
