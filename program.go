// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dma2d

import (
	"image"

	"github.com/gogpu/dma2d/draw"
	"github.com/gogpu/dma2d/hal"
)

// Port is the configuration of one fetch or store stage.
type Port struct {
	PFC hal.PFC
	// Addr is the bus address of the first pixel.
	Addr uint32
	// Offset is the number of pixels skipped at the end of each line.
	Offset uint32
	// Color is FGCOLR/BGCOLR for fetch stages and OCOLR for the output.
	Color uint32
}

// Region is a bus address range touched by a transfer.
type Region struct {
	Addr uint32
	Len  int
}

// Program is the register image of one transfer. It is computed fresh for
// every operation.
type Program struct {
	Mode          hal.Mode
	FG, BG, Out   Port
	Width, Height int

	// Reads are the memory regions the peripheral fetches.
	Reads []Region
	// Write is the memory region the peripheral stores.
	Write Region
}

type regWrite struct {
	off hal.Offset
	val uint32
}

// writes returns the register writes for p in programming order, without
// the final CR write. Stages the mode does not use are left untouched.
func (p *Program) writes() []regWrite {
	w := make([]regWrite, 0, 14)
	if p.Mode != hal.ModeR2M {
		w = append(w, regWrite{hal.FGPFCCR, p.FG.PFC.Encode()})
		if p.Mode != hal.ModeM2M {
			w = append(w, regWrite{hal.FGCOLR, p.FG.Color})
		}
		w = append(w,
			regWrite{hal.FGMAR, p.FG.Addr},
			regWrite{hal.FGOR, p.FG.Offset & hal.OORMask},
		)
	}
	if p.Mode == hal.ModeM2MBlend {
		w = append(w,
			regWrite{hal.BGPFCCR, p.BG.PFC.Encode()},
			regWrite{hal.BGCOLR, p.BG.Color},
			regWrite{hal.BGMAR, p.BG.Addr},
			regWrite{hal.BGOR, p.BG.Offset & hal.OORMask},
		)
	}
	w = append(w, regWrite{hal.OPFCCR, p.Out.PFC.Encode()})
	if p.Mode == hal.ModeR2M || p.Mode == hal.ModeM2MBlend {
		w = append(w, regWrite{hal.OCOLR, p.Out.Color})
	}
	w = append(w,
		regWrite{hal.OMAR, p.Out.Addr},
		regWrite{hal.OOR, p.Out.Offset & hal.OORMask},
		regWrite{hal.NLR, hal.Geometry(p.Width, p.Height)},
	)
	return w
}

// region returns the bus range spanned by rectangle r of b.
func region(b *draw.Buffer, r image.Rectangle) Region {
	bpp := b.Format.BytesPerPixel()
	return Region{
		Addr: b.AddrOf(r.Min.X, r.Min.Y),
		Len:  (r.Dy()-1)*b.Stride + r.Dx()*bpp,
	}
}

// outputPort configures the store stage for rectangle r of dst.
func (u *Unit) outputPort(dst *draw.Buffer, r image.Rectangle) Port {
	return Port{
		PFC:    hal.PFC{CM: HardwareFormat(dst.Format), RBS: u.opts.swapRB},
		Addr:   dst.AddrOf(r.Min.X, r.Min.Y),
		Offset: uint32(dst.PixelStride() - r.Dx()),
	}
}

// backgroundPort configures the background stage to read the output
// rectangle in place. XRGB8888 pixels carry no alpha and are read opaque.
func (u *Unit) backgroundPort(dst *draw.Buffer, out Port) Port {
	bg := out
	bg.PFC.AlphaMode = uint32(alphaKeep)
	if dst.Format == draw.FormatXRGB8888 {
		bg.PFC.AlphaMode = uint32(alphaReplace)
		bg.PFC.Alpha = 0xFF
	}
	return bg
}

// Alpha modes of the PFCCR AM field.
const (
	alphaKeep     = 0
	alphaReplace  = 1
	alphaMultiply = 2
)

// fillProgram builds a fill of rectangle r, in buffer coordinates.
//
// Opaque fills are register-to-memory transfers of the packed color.
// Translucent fills blend an A8 foreground whose alpha is replaced by the
// opacity over the destination, writing back in place. The foreground
// stage never fetches mask bytes in replace mode, so it points at the
// output rectangle.
func (u *Unit) fillProgram(dst *draw.Buffer, r image.Rectangle, d *draw.FillDesc) Program {
	out := u.outputPort(dst, r)
	p := Program{
		Width:  r.Dx(),
		Height: r.Dy(),
		Write:  region(dst, r),
	}

	if d.Opa >= draw.OpaMax {
		p.Mode = hal.ModeR2M
		out.Color = packColor(d.Color, out.PFC.CM, u.opts.swapRB)
		p.Out = out
		return p
	}

	p.Mode = hal.ModeM2MBlend
	p.FG = Port{
		PFC: hal.PFC{
			CM:        hal.CMA8,
			AlphaMode: alphaReplace,
			Alpha:     uint8(d.Opa),
			RBS:       u.opts.swapRB,
		},
		Addr:   out.Addr,
		Offset: out.Offset,
		Color:  rgb(d.Color, u.opts.swapRB),
	}
	p.BG = u.backgroundPort(dst, out)
	p.Out = out
	p.Reads = []Region{p.Write}
	return p
}

// imageProgram copies src, starting at srcPt, into rectangle r of dst, in
// buffer coordinates.
//
// Opaque copies of sources without alpha move pixels unchanged when the
// formats match and convert them otherwise. Every other copy blends the
// source over the destination in place, with the source alpha multiplied
// by the opacity when the opacity is below draw.OpaMax.
func (u *Unit) imageProgram(dst *draw.Buffer, r image.Rectangle, src *draw.Buffer, srcPt image.Point, opa draw.Opa) Program {
	out := u.outputPort(dst, r)
	sr := image.Rectangle{Min: srcPt, Max: srcPt.Add(r.Size())}
	fg := Port{
		PFC:    hal.PFC{CM: HardwareFormat(src.Format), RBS: u.opts.swapRB},
		Addr:   src.AddrOf(sr.Min.X, sr.Min.Y),
		Offset: uint32(src.PixelStride() - r.Dx()),
	}
	p := Program{
		FG:     fg,
		Out:    out,
		Width:  r.Dx(),
		Height: r.Dy(),
		Reads:  []Region{region(src, sr)},
		Write:  region(dst, r),
	}

	opaque := opa >= draw.OpaMax
	if opaque && !src.Format.HasAlpha() {
		p.Mode = hal.ModeM2MPFC
		if fg.PFC.CM == out.PFC.CM && !u.opts.swapRB && !opaqueFromXRGB(src, dst) {
			p.Mode = hal.ModeM2M
		}
		if src.Format == draw.FormatXRGB8888 && p.Mode == hal.ModeM2MPFC {
			p.FG.PFC.AlphaMode = alphaReplace
			p.FG.PFC.Alpha = 0xFF
		}
		return p
	}

	p.Mode = hal.ModeM2MBlend
	switch {
	case src.Format == draw.FormatXRGB8888:
		p.FG.PFC.AlphaMode = alphaReplace
		p.FG.PFC.Alpha = uint8(opa)
	case opaque:
		p.FG.PFC.AlphaMode = alphaKeep
		p.FG.PFC.Alpha = 0xFF
	default:
		p.FG.PFC.AlphaMode = alphaMultiply
		p.FG.PFC.Alpha = uint8(opa)
	}
	p.BG = u.backgroundPort(dst, out)
	p.Reads = append(p.Reads, p.Write)
	return p
}

// opaqueFromXRGB reports whether copying src into dst must force the
// undefined XRGB8888 alpha byte to opaque.
func opaqueFromXRGB(src, dst *draw.Buffer) bool {
	return src.Format == draw.FormatXRGB8888 && dst.Format != draw.FormatXRGB8888
}
