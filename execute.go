// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dma2d

import (
	"fmt"
	"image"

	"github.com/gogpu/dma2d/draw"
)

// execute draws t into buf. The draw rectangle is the task area clipped
// by the bound clip and by the layer; an empty rectangle touches no
// register.
func (u *Unit) execute(layer *draw.Layer, buf *draw.Buffer, t *draw.Task) error {
	r := t.Area.Intersect(u.clip).Intersect(layer.Area)
	if r.Empty() {
		return nil
	}

	switch t.Kind {
	case draw.KindFill:
		return u.fill(layer, buf, t, r)
	case draw.KindImage:
		return u.image(layer, buf, t, r)
	default:
		defect(fmt.Sprintf("dma2d: execute reached with %v task", t.Kind))
		return nil
	}
}

// fill draws a solid rectangle. r is in screen coordinates.
func (u *Unit) fill(layer *draw.Layer, buf *draw.Buffer, t *draw.Task, r image.Rectangle) error {
	d := t.Fill()
	if d == nil || d.Opa == draw.OpaTransparent {
		return nil
	}
	p := u.fillProgram(buf, r.Sub(layer.Area.Min), d)
	Logger().Debug("dma2d: fill", "mode", p.Mode, "rect", r, "opa", d.Opa)
	return u.submit(&p)
}

// image copies the task's image with its top-left corner at the task
// area origin. r is in screen coordinates.
func (u *Unit) image(layer *draw.Layer, buf *draw.Buffer, t *draw.Task, r image.Rectangle) error {
	d := t.Image()
	if d == nil || d.Opa == draw.OpaTransparent {
		return nil
	}
	src, err := u.host.OpenImage(d.Src)
	if err != nil {
		return fmt.Errorf("dma2d: open image: %w", err)
	}
	if !IsSourceSupported(src.Format) {
		return fmt.Errorf("dma2d: image source: %w: %v", draw.ErrUnsupportedFormat, src.Format)
	}

	r = r.Intersect(src.Bounds().Add(t.Area.Min))
	if r.Empty() {
		return nil
	}
	p := u.imageProgram(buf, r.Sub(layer.Area.Min), src, r.Min.Sub(t.Area.Min), d.Opa)
	Logger().Debug("dma2d: image", "mode", p.Mode, "rect", r, "opa", d.Opa, "format", src.Format)
	return u.submit(&p)
}
