// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package draw

import (
	"image"
	"math"
	"sync"
	"sync/atomic"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/dma2d/internal/blend"
	"github.com/gogpu/dma2d/internal/pixel"
)

// SoftwareUnit renders tasks on the CPU. It is the fallback unit: it
// claims every task no faster unit claimed and it handles the features
// blitters lack (rounded corners, scaled and rotated images, L8 layers).
type SoftwareUnit struct {
	host *Pipeline

	mu     sync.Mutex
	active atomic.Pointer[Task]
}

// NewSoftwareUnit creates a software unit bound to p.
func NewSoftwareUnit(p *Pipeline) *SoftwareUnit {
	return &SoftwareUnit{host: p}
}

var _ Unit = (*SoftwareUnit)(nil)

// ID returns UnitSoftware.
func (s *SoftwareUnit) ID() UnitID { return UnitSoftware }

// Name returns "software".
func (s *SoftwareUnit) Name() string { return "software" }

// Active returns the task being drawn, or nil.
func (s *SoftwareUnit) Active() *Task { return s.active.Load() }

// Evaluate accepts every fill and every decodable image on layers whose
// format the CPU codecs can write.
func (s *SoftwareUnit) Evaluate(t *Task) Evaluation {
	if t.Layer == nil || !softwareWritable(t.Layer.Format) {
		return EvalHardReject
	}
	switch t.Kind {
	case KindFill:
	case KindImage:
		d := t.Image()
		if d == nil {
			return EvalSoftReject
		}
		hdr, err := s.host.DecodeImageHeader(d.Src)
		if err != nil || !hdr.Format.layout().IsValid() {
			return EvalSoftReject
		}
	default:
		return EvalSoftReject
	}
	if t.State() == StateQueued && t.PreferredUnit == UnitNone {
		t.PreferredUnit = UnitSoftware
	}
	return EvalAccept
}

func softwareWritable(f ColorFormat) bool {
	switch f {
	case FormatL8, FormatRGB565, FormatRGB888, FormatARGB8888, FormatXRGB8888:
		return true
	default:
		return false
	}
}

// Dispatch draws the next software task of layer.
func (s *SoftwareUnit) Dispatch(layer *Layer) DispatchResult {
	if !s.mu.TryLock() {
		return DispatchNoProgress
	}
	defer s.mu.Unlock()

	t := s.host.NextAvailableTask(layer, nil, UnitSoftware)
	for t != nil && t.PreferredUnit != UnitSoftware {
		t = s.host.NextAvailableTask(layer, t, UnitSoftware)
	}
	if t == nil {
		return DispatchIdle
	}
	buf := layer.AllocBuffer()
	if buf == nil {
		return DispatchIdle
	}

	t.SetState(StateInProgress)
	s.active.Store(t)

	s.execute(layer, buf, t)

	t.SetState(StateReady)
	s.active.Store(nil)

	s.host.RequestDispatch()
	return DispatchDone
}

// Delete is a no-op.
func (s *SoftwareUnit) Delete() error { return nil }

func (s *SoftwareUnit) execute(layer *Layer, buf *Buffer, t *Task) {
	r := t.DrawArea().Intersect(layer.Area)
	if r.Empty() {
		return
	}
	switch t.Kind {
	case KindFill:
		s.fill(layer, buf, t, r)
	case KindImage:
		s.image(layer, buf, t, r)
	}
}

func (s *SoftwareUnit) fill(layer *Layer, buf *Buffer, t *Task, r image.Rectangle) {
	d := t.Fill()
	if d == nil || d.Opa == OpaTransparent {
		return
	}
	l := buf.Format.layout()
	src := d.Color.argb(uint8(d.Opa))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if d.Radius > 0 && !inRoundedRect(t.Area, d.Radius, x, y) {
				continue
			}
			px := buf.Data[buf.Offset(x-layer.Area.Min.X, y-layer.Area.Min.Y):]
			writePixel(l, px, src)
		}
	}
}

func (s *SoftwareUnit) image(layer *Layer, buf *Buffer, t *Task, r image.Rectangle) {
	d := t.Image()
	if d == nil || d.Opa == OpaTransparent {
		return
	}
	src, err := s.host.OpenImage(d.Src)
	if err != nil {
		Logger().Warn("draw: software image open failed", "err", err)
		return
	}

	var at func(x, y int) (pixel.ARGB, bool)
	if d.Transformed() {
		img := transformImage(src, t.Area, d)
		at = func(x, y int) (pixel.ARGB, bool) {
			c := img.NRGBAAt(x, y)
			return pixel.ARGB{A: c.A, R: c.R, G: c.G, B: c.B}, true
		}
	} else {
		sl := src.Format.layout()
		at = func(x, y int) (pixel.ARGB, bool) {
			sx, sy := x-t.Area.Min.X, y-t.Area.Min.Y
			if sx < 0 || sy < 0 || sx >= src.Width || sy >= src.Height {
				return pixel.ARGB{}, false
			}
			c := pixel.Decode(sl, src.Data[src.Offset(sx, sy):], pixel.ARGB{})
			if !src.Format.HasAlpha() {
				c.A = 0xFF
			}
			return c, true
		}
	}

	l := buf.Format.layout()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c, ok := at(x, y)
			if !ok {
				continue
			}
			if d.Opa < OpaMax {
				c.A = blend.MulDiv255(c.A, uint8(d.Opa))
			}
			writePixel(l, buf.Data[buf.Offset(x-layer.Area.Min.X, y-layer.Area.Min.Y):], c)
		}
	}
}

// writePixel stores c, blending when it is not fully opaque.
func writePixel(l pixel.Layout, px []byte, c pixel.ARGB) {
	if c.A >= uint8(OpaMax) {
		c.A = 0xFF
		pixel.Encode(l, px, c)
		return
	}
	if c.A == 0 {
		return
	}
	pixel.Encode(l, px, blend.Over(c, pixel.Decode(l, px, pixel.ARGB{})))
}

// transformImage renders src scaled and rotated about its center, centered
// in area. The result uses screen coordinates.
func transformImage(src *Buffer, area image.Rectangle, d *ImageDesc) *image.NRGBA {
	scale := 1.0
	if d.Scale > 0 {
		scale = float64(d.Scale) / ScaleNone
	}
	theta := float64(d.Rotation) / 10 * math.Pi / 180
	sin, cos := math.Sincos(theta)

	a, b := scale*cos, -scale*sin
	dd, e := scale*sin, scale*cos
	scx, scy := float64(src.Width)/2, float64(src.Height)/2
	acx := float64(area.Min.X+area.Max.X) / 2
	acy := float64(area.Min.Y+area.Max.Y) / 2

	m := f64.Aff3{
		a, b, acx - (a*scx + b*scy),
		dd, e, acy - (dd*scx + e*scy),
	}
	dst := image.NewNRGBA(area)
	srcImg := src.Image()
	xdraw.ApproxBiLinear.Transform(dst, m, srcImg, srcImg.Bounds(), xdraw.Over, nil)
	return dst
}

// inRoundedRect reports whether the center of pixel (x, y) lies inside
// area with corners of the given radius.
func inRoundedRect(area image.Rectangle, radius, x, y int) bool {
	r := min(radius, area.Dx()/2, area.Dy()/2)
	if r <= 0 {
		return true
	}
	px, py := float64(x)+0.5, float64(y)+0.5
	left, right := float64(area.Min.X+r), float64(area.Max.X-r)
	top, bottom := float64(area.Min.Y+r), float64(area.Max.Y-r)

	cx, cy := px, py
	switch {
	case px < left:
		cx = left
	case px > right:
		cx = right
	}
	switch {
	case py < top:
		cy = top
	case py > bottom:
		cy = bottom
	}
	dx, dy := px-cx, py-cy
	return dx*dx+dy*dy <= float64(r*r)
}
