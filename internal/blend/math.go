// Package blend implements the straight-alpha compositing equation used by
// the DMA2D blender, shared by the simulated peripheral and the software
// draw unit so both produce identical pixels.
//
// All values are 8-bit, non-premultiplied.
package blend

// div255 divides x by 255 exactly without using division.
//
// Formula: ((x + 1) + ((x + 1) >> 8)) >> 8 (Alvy Ray Smith).
// Exact for every product of two bytes.
func div255(x uint32) uint32 {
	t := x + 1
	return (t + (t >> 8)) >> 8
}

// mulDiv255 multiplies two bytes and divides by 255.
func mulDiv255(a, b byte) byte {
	return byte(div255(uint32(a) * uint32(b)))
}

// MulDiv255 is the exported form of mulDiv255 for callers that scale an
// alpha by an opacity.
func MulDiv255(a, b byte) byte {
	return mulDiv255(a, b)
}
