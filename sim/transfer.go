// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sim

import (
	"errors"

	"github.com/gogpu/dma2d/hal"
	"github.com/gogpu/dma2d/internal/blend"
	"github.com/gogpu/dma2d/internal/pixel"
)

var errConfig = errors.New("sim: configuration error")

// stage is one decoded fetch or store port.
type stage struct {
	layout pixel.Layout
	pfc    hal.PFC
	addr   uint32
	offset int
	color  pixel.ARGB
}

func (d *DMA2D) fetchStage(pfccr, mar, or, colr hal.Offset) (stage, error) {
	pfc := hal.DecodePFC(d.regs[pfccr/4])
	l := layoutOf(pfc.CM)
	if !l.IsValid() {
		return stage{}, errConfig
	}
	return stage{
		layout: l,
		pfc:    pfc,
		addr:   d.regs[mar/4],
		offset: int(d.regs[or/4] & hal.OORMask),
		color:  pixel.FromUint32(d.regs[colr/4]),
	}, nil
}

func (d *DMA2D) outputStage() (stage, error) {
	v := d.regs[hal.OPFCCR/4]
	pfc := hal.DecodePFC(v & (hal.OPFCCRCMMask | 1<<hal.PFCCRRBSPos))
	l := layoutOf(pfc.CM)
	if !l.IsValid() || l == pixel.LayoutA8 {
		return stage{}, errConfig
	}
	return stage{
		layout: l,
		pfc:    pfc,
		addr:   d.regs[hal.OMAR/4],
		offset: int(d.regs[hal.OOR/4] & hal.OORMask),
	}, nil
}

// line returns the bytes of row y of a w-pixel-wide stage.
func (d *DMA2D) line(s stage, y, w int) ([]byte, error) {
	size := s.layout.Size()
	addr := s.addr + uint32(y*(w+s.offset)*size)
	return d.mem.Slice(addr, w*size)
}

// read decodes pixel x of a fetched line applying PFC alpha and swap.
func (s stage) read(line []byte, x int) pixel.ARGB {
	tint := s.color
	tint.A = 0
	c := pixel.Decode(s.layout, line[x*s.layout.Size():], tint)
	if s.pfc.RBS {
		c = c.SwapRB()
	}
	c.A = blend.ApplyAlpha(c.A, blend.AlphaMode(s.pfc.AlphaMode), s.pfc.Alpha)
	return c
}

func (s stage) write(line []byte, x int, c pixel.ARGB) {
	if s.pfc.RBS {
		c = c.SwapRB()
	}
	pixel.Encode(s.layout, line[x*s.layout.Size():], c)
}

// transfer executes the programmed operation. Caller holds d.mu.
func (d *DMA2D) transfer() error {
	w, h := hal.SplitGeometry(d.regs[hal.NLR/4])
	mode := hal.ModeOf(d.regs[hal.CR/4])

	out, err := d.outputStage()
	if err != nil {
		return err
	}
	if w == 0 || h == 0 {
		return nil
	}

	switch mode {
	case hal.ModeR2M:
		return d.fill(out, w, h)
	case hal.ModeM2M, hal.ModeM2MPFC:
		fg, err := d.fetchStage(hal.FGPFCCR, hal.FGMAR, hal.FGOR, hal.FGCOLR)
		if err != nil {
			return err
		}
		if mode == hal.ModeM2M {
			return d.copyRaw(fg, out, w, h)
		}
		return d.convert(fg, out, w, h)
	case hal.ModeM2MBlend:
		fg, err := d.fetchStage(hal.FGPFCCR, hal.FGMAR, hal.FGOR, hal.FGCOLR)
		if err != nil {
			return err
		}
		bg, err := d.fetchStage(hal.BGPFCCR, hal.BGMAR, hal.BGOR, hal.BGCOLR)
		if err != nil {
			return err
		}
		return d.blend(fg, bg, out, w, h)
	default:
		return errConfig
	}
}

// fill writes OCOLR, already in the output format, to every pixel.
func (d *DMA2D) fill(out stage, w, h int) error {
	size := out.layout.Size()
	ocolr := d.regs[hal.OCOLR/4]
	px := make([]byte, size)
	for i := range px {
		px[i] = byte(ocolr >> (8 * i))
	}
	for y := 0; y < h; y++ {
		line, err := d.line(out, y, w)
		if err != nil {
			return err
		}
		for x := 0; x < w; x++ {
			copy(line[x*size:], px)
		}
	}
	return nil
}

// copyRaw moves foreground bytes without conversion.
func (d *DMA2D) copyRaw(fg, out stage, w, h int) error {
	out.layout = fg.layout
	for y := 0; y < h; y++ {
		src, err := d.line(fg, y, w)
		if err != nil {
			return err
		}
		dst, err := d.line(out, y, w)
		if err != nil {
			return err
		}
		copy(dst, src)
	}
	return nil
}

func (d *DMA2D) convert(fg, out stage, w, h int) error {
	for y := 0; y < h; y++ {
		src, err := d.line(fg, y, w)
		if err != nil {
			return err
		}
		dst, err := d.line(out, y, w)
		if err != nil {
			return err
		}
		for x := 0; x < w; x++ {
			out.write(dst, x, fg.read(src, x))
		}
	}
	return nil
}

func (d *DMA2D) blend(fg, bg, out stage, w, h int) error {
	for y := 0; y < h; y++ {
		fl, err := d.line(fg, y, w)
		if err != nil {
			return err
		}
		bl, err := d.line(bg, y, w)
		if err != nil {
			return err
		}
		dst, err := d.line(out, y, w)
		if err != nil {
			return err
		}
		for x := 0; x < w; x++ {
			out.write(dst, x, blend.Over(fg.read(fl, x), bg.read(bl, x)))
		}
	}
	return nil
}
