// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dma2d

import "github.com/gogpu/dma2d/draw"

// Evaluate decides whether the unit can draw t.
//
// A layer format the peripheral cannot write is a hard reject: no task of
// that layer will ever fit. Everything else that does not fit is a soft
// reject: rounded fills, scaled or rotated images, image sources in a
// format the peripheral cannot read or whose header cannot be decoded,
// other task kinds, and every task while the unit is not online.
//
// On acceptance a queued task is claimed with the configured score if it
// beats the task's current score. Tasks in progress or ready are never
// modified.
func (u *Unit) Evaluate(t *draw.Task) draw.Evaluation {
	if t.Layer == nil || !IsDestinationSupported(t.Layer.Format) {
		return draw.EvalHardReject
	}
	if u.Health() != HealthOnline {
		return draw.EvalSoftReject
	}

	switch t.Kind {
	case draw.KindFill:
		d := t.Fill()
		if d == nil || d.Radius > 0 {
			return draw.EvalSoftReject
		}
	case draw.KindImage:
		d := t.Image()
		if d == nil || d.Transformed() {
			return draw.EvalSoftReject
		}
		hdr, err := u.host.DecodeImageHeader(d.Src)
		if err != nil || !IsSourceSupported(hdr.Format) {
			return draw.EvalSoftReject
		}
	default:
		return draw.EvalSoftReject
	}

	if t.State() == draw.StateQueued {
		t.Claim(UnitID, u.opts.score.Score(t))
	}
	return draw.EvalAccept
}
