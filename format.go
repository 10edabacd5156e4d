// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dma2d

import (
	"github.com/gogpu/dma2d/draw"
	"github.com/gogpu/dma2d/hal"
	"github.com/gogpu/dma2d/internal/pixel"
)

// HardwareFormat maps f to the peripheral's color mode code. Formats the
// unit cannot read and write return hal.CMUnsupported.
//
// ARGB8888 and XRGB8888 share a code: the peripheral cannot ignore the
// alpha byte on writes, so XRGB8888 layers are written with opaque alpha.
func HardwareFormat(f draw.ColorFormat) hal.ColorMode {
	switch f {
	case draw.FormatARGB8888, draw.FormatXRGB8888:
		return hal.CMARGB8888
	case draw.FormatRGB888:
		return hal.CMRGB888
	case draw.FormatRGB565:
		return hal.CMRGB565
	default:
		return hal.CMUnsupported
	}
}

// IsSourceSupported reports whether the unit can fetch pixels of format f.
func IsSourceSupported(f draw.ColorFormat) bool {
	return HardwareFormat(f) != hal.CMUnsupported
}

// IsDestinationSupported reports whether the unit can write pixels of format f.
func IsDestinationSupported(f draw.ColorFormat) bool {
	return HardwareFormat(f) != hal.CMUnsupported
}

// packColor encodes c as the peripheral expects it in OCOLR for output
// mode cm. With swap set the red and blue channels are exchanged first.
func packColor(c draw.Color, cm hal.ColorMode, swap bool) uint32 {
	px := pixel.ARGB{A: 0xFF, R: c.R, G: c.G, B: c.B}
	if swap {
		px = px.SwapRB()
	}
	switch cm {
	case hal.CMARGB8888:
		return px.Uint32()
	case hal.CMRGB888:
		return px.Uint32() & 0x00FFFFFF
	case hal.CMRGB565:
		return uint32(pixel.Pack565(px))
	default:
		return 0
	}
}

// rgb returns c as 0x00RRGGBB for FGCOLR and BGCOLR, swapped if asked.
func rgb(c draw.Color, swap bool) uint32 {
	px := pixel.ARGB{R: c.R, G: c.G, B: c.B}
	if swap {
		px = px.SwapRB()
	}
	return px.Uint32() & 0x00FFFFFF
}
