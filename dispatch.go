// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dma2d

import "github.com/gogpu/dma2d/draw"

// Dispatch claims and draws at most one task of layer.
//
// It returns draw.DispatchNoProgress without side effects while another
// Dispatch holds the peripheral, and draw.DispatchIdle when no task is
// claimed for this unit, the layer format is unsupported or the layer
// buffer cannot be allocated yet. A unit that is not online hands its
// queued claims back to the other units and reports draw.DispatchDone when
// it released any.
//
// A task whose transfer fails is handed back to the queue so another unit
// can draw it. Either way the peripheral is released and the scheduler is
// asked to poll again.
func (u *Unit) Dispatch(layer *draw.Layer) draw.DispatchResult {
	if !u.busy.TryLock() {
		return draw.DispatchNoProgress
	}
	defer u.busy.Unlock()

	if u.active.Load() != nil {
		return draw.DispatchNoProgress
	}
	if !IsDestinationSupported(layer.Format) {
		return draw.DispatchIdle
	}
	if u.Health() != HealthOnline {
		if n := layer.ReleaseClaims(UnitID); n > 0 {
			Logger().Warn("dma2d: claims released", "health", u.Health(), "tasks", n)
			u.host.RequestDispatch()
			return draw.DispatchDone
		}
		return draw.DispatchIdle
	}

	t := u.host.NextAvailableTask(layer, nil, UnitID)
	for t != nil && t.PreferredUnit != UnitID {
		t = u.host.NextAvailableTask(layer, t, UnitID)
	}
	if t == nil {
		return draw.DispatchIdle
	}
	buf := layer.AllocBuffer()
	if buf == nil {
		return draw.DispatchIdle
	}

	t.SetState(draw.StateInProgress)
	u.active.Store(t)
	u.clip = t.Clip

	err := u.execute(layer, buf, t)

	u.active.Store(nil)
	if err != nil {
		Logger().Warn("dma2d: task requeued", "kind", t.Kind, "area", t.Area, "err", err)
		layer.Requeue(t, UnitID)
	} else {
		t.SetState(draw.StateReady)
	}

	u.host.RequestDispatch()
	return draw.DispatchDone
}
