package blend

import "github.com/gogpu/dma2d/internal/pixel"

// AlphaMode selects how a constant alpha is combined with per-pixel alpha.
// Values match the AM field of the DMA2D FGPFCCR/BGPFCCR registers.
type AlphaMode uint8

const (
	// AlphaKeep leaves the pixel alpha unchanged.
	AlphaKeep AlphaMode = iota
	// AlphaReplace replaces the pixel alpha with the constant.
	AlphaReplace
	// AlphaMultiply multiplies the pixel alpha by the constant.
	AlphaMultiply
)

// ApplyAlpha combines pixel alpha a with the constant alpha according to mode.
// Unknown modes behave like AlphaKeep.
func ApplyAlpha(a byte, mode AlphaMode, constant byte) byte {
	switch mode {
	case AlphaReplace:
		return constant
	case AlphaMultiply:
		return mulDiv255(a, constant)
	default:
		return a
	}
}

// Over composites fg over bg with the DMA2D blender equation:
//
//	aMult = aFG * aBG / 255
//	aOut  = aFG + aBG - aMult
//	cOut  = (cFG*aFG + cBG*aBG - cBG*aMult) / aOut
//
// A fully transparent result is returned as the zero color.
func Over(fg, bg pixel.ARGB) pixel.ARGB {
	fa := uint32(fg.A)
	ba := uint32(bg.A)
	mult := div255(fa * ba)
	outA := fa + ba - mult
	if outA == 0 {
		return pixel.ARGB{}
	}
	ch := func(f, b uint8) uint8 {
		num := uint32(f)*fa + uint32(b)*ba - uint32(b)*mult
		return uint8((num + outA/2) / outA)
	}
	return pixel.ARGB{
		A: uint8(outA),
		R: ch(fg.R, bg.R),
		G: ch(fg.G, bg.G),
		B: ch(fg.B, bg.B),
	}
}
