// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package pixel encodes and decodes the in-memory pixel layouts shared by
// the simulated accelerator and the software draw unit.
//
// All multi-byte layouts are little-endian, matching the memory layout of
// a Cortex-M framebuffer: an ARGB8888 pixel 0xAARRGGBB is stored as the
// bytes B, G, R, A.
package pixel

// Layout is an in-memory pixel storage layout.
type Layout uint8

const (
	// LayoutInvalid marks a layout that cannot be decoded.
	LayoutInvalid Layout = iota

	// LayoutARGB8888 is 32-bit straight alpha, bytes B, G, R, A.
	LayoutARGB8888

	// LayoutRGB888 is 24-bit, bytes B, G, R.
	LayoutRGB888

	// LayoutRGB565 is 16-bit little-endian r5g6b5.
	LayoutRGB565

	// LayoutARGB1555 is 16-bit little-endian a1r5g5b5.
	LayoutARGB1555

	// LayoutARGB4444 is 16-bit little-endian a4r4g4b4.
	LayoutARGB4444

	// LayoutA8 is an 8-bit alpha mask.
	LayoutA8

	// LayoutL8 is 8-bit luminance.
	LayoutL8

	layoutCount
)

// layoutSize holds bytes per pixel for each layout.
var layoutSize = [layoutCount]int{
	LayoutInvalid:  0,
	LayoutARGB8888: 4,
	LayoutRGB888:   3,
	LayoutRGB565:   2,
	LayoutARGB1555: 2,
	LayoutARGB4444: 2,
	LayoutA8:       1,
	LayoutL8:       1,
}

// Size returns the number of bytes per pixel, or 0 for an invalid layout.
func (l Layout) Size() int {
	if l >= layoutCount {
		return 0
	}
	return layoutSize[l]
}

// IsValid reports whether l is a known, decodable layout.
func (l Layout) IsValid() bool {
	return l > LayoutInvalid && l < layoutCount
}

// String returns the layout name.
func (l Layout) String() string {
	switch l {
	case LayoutARGB8888:
		return "ARGB8888"
	case LayoutRGB888:
		return "RGB888"
	case LayoutRGB565:
		return "RGB565"
	case LayoutARGB1555:
		return "ARGB1555"
	case LayoutARGB4444:
		return "ARGB4444"
	case LayoutA8:
		return "A8"
	case LayoutL8:
		return "L8"
	default:
		return "Invalid"
	}
}

// ARGB is a straight (non-premultiplied) 8-bit-per-channel color.
type ARGB struct {
	A, R, G, B uint8
}

// Uint32 packs c as 0xAARRGGBB.
func (c ARGB) Uint32() uint32 {
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// FromUint32 unpacks 0xAARRGGBB.
func FromUint32(v uint32) ARGB {
	return ARGB{A: uint8(v >> 24), R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}
}

// SwapRB returns c with the red and blue channels exchanged.
func (c ARGB) SwapRB() ARGB {
	c.R, c.B = c.B, c.R
	return c
}

// Decode reads one pixel of layout l from the start of b.
// A8 pixels decode to the given tint with the stored alpha; the tint is
// ignored by every other layout. b must hold at least l.Size() bytes.
func Decode(l Layout, b []byte, tint ARGB) ARGB {
	switch l {
	case LayoutARGB8888:
		return ARGB{A: b[3], R: b[2], G: b[1], B: b[0]}
	case LayoutRGB888:
		return ARGB{A: 0xFF, R: b[2], G: b[1], B: b[0]}
	case LayoutRGB565:
		v := uint16(b[0]) | uint16(b[1])<<8
		return ARGB{
			A: 0xFF,
			R: expand5(uint8(v >> 11)),
			G: expand6(uint8(v>>5) & 0x3F),
			B: expand5(uint8(v) & 0x1F),
		}
	case LayoutARGB1555:
		v := uint16(b[0]) | uint16(b[1])<<8
		a := uint8(0)
		if v&0x8000 != 0 {
			a = 0xFF
		}
		return ARGB{
			A: a,
			R: expand5(uint8(v>>10) & 0x1F),
			G: expand5(uint8(v>>5) & 0x1F),
			B: expand5(uint8(v) & 0x1F),
		}
	case LayoutARGB4444:
		v := uint16(b[0]) | uint16(b[1])<<8
		return ARGB{
			A: expand4(uint8(v >> 12)),
			R: expand4(uint8(v>>8) & 0xF),
			G: expand4(uint8(v>>4) & 0xF),
			B: expand4(uint8(v) & 0xF),
		}
	case LayoutA8:
		tint.A = b[0]
		return tint
	case LayoutL8:
		return ARGB{A: 0xFF, R: b[0], G: b[0], B: b[0]}
	default:
		return ARGB{}
	}
}

// Encode writes c in layout l to the start of b.
// b must hold at least l.Size() bytes.
func Encode(l Layout, b []byte, c ARGB) {
	switch l {
	case LayoutARGB8888:
		b[0], b[1], b[2], b[3] = c.B, c.G, c.R, c.A
	case LayoutRGB888:
		b[0], b[1], b[2] = c.B, c.G, c.R
	case LayoutRGB565:
		v := Pack565(c)
		b[0], b[1] = uint8(v), uint8(v>>8)
	case LayoutARGB1555:
		v := uint16(c.R>>3)<<10 | uint16(c.G>>3)<<5 | uint16(c.B>>3)
		if c.A >= 0x80 {
			v |= 0x8000
		}
		b[0], b[1] = uint8(v), uint8(v>>8)
	case LayoutARGB4444:
		v := uint16(c.A>>4)<<12 | uint16(c.R>>4)<<8 | uint16(c.G>>4)<<4 | uint16(c.B>>4)
		b[0], b[1] = uint8(v), uint8(v>>8)
	case LayoutA8:
		b[0] = c.A
	case LayoutL8:
		b[0] = Luma(c)
	}
}

// Pack565 packs the color channels of c as r5g6b5.
func Pack565(c ARGB) uint16 {
	return uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
}

// Luma returns the Rec. 601 luminance of c.
func Luma(c ARGB) uint8 {
	return uint8((299*uint32(c.R) + 587*uint32(c.G) + 114*uint32(c.B) + 500) / 1000)
}

func expand5(v uint8) uint8 { return v<<3 | v>>2 }
func expand6(v uint8) uint8 { return v<<2 | v>>4 }
func expand4(v uint8) uint8 { return v<<4 | v }
