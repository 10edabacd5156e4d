// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package draw

import "github.com/gogpu/dma2d/internal/pixel"

// Color is a 24-bit RGB color.
type Color struct {
	R, G, B uint8
}

// ColorHex builds a Color from 0xRRGGBB.
func ColorHex(v uint32) Color {
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// Uint32 packs c as 0xFFRRGGBB.
func (c Color) Uint32() uint32 {
	return 0xFF<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

func (c Color) argb(a uint8) pixel.ARGB {
	return pixel.ARGB{A: a, R: c.R, G: c.G, B: c.B}
}

// Opa is an 8-bit opacity.
type Opa uint8

// Opacity thresholds. Anything at or above OpaMax is drawn as fully
// covering. Units skip only OpaTransparent.
const (
	OpaTransparent Opa = 0
	OpaMin         Opa = 2
	Opa50          Opa = 127
	OpaMax         Opa = 253
	OpaCover       Opa = 255
)
