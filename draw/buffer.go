// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package draw

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/dma2d/internal/pixel"
)

// Buffer is a pixel buffer visible to both the CPU and bus-master
// peripherals. Data is the CPU view and Addr is the bus address of Data[0].
type Buffer struct {
	Addr   uint32
	Data   []byte
	Width  int
	Height int
	// Stride is the number of bytes per row.
	Stride int
	Format ColorFormat
}

// Bounds returns the buffer rectangle with origin (0, 0).
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// PixelStride returns the row pitch in pixels.
func (b *Buffer) PixelStride() int {
	if bpp := b.Format.BytesPerPixel(); bpp > 0 {
		return b.Stride / bpp
	}
	return 0
}

// Offset returns the byte offset of pixel (x, y).
func (b *Buffer) Offset(x, y int) int {
	return y*b.Stride + x*b.Format.BytesPerPixel()
}

// AddrOf returns the bus address of pixel (x, y).
func (b *Buffer) AddrOf(x, y int) uint32 {
	return b.Addr + uint32(b.Offset(x, y))
}

// TextureFormat returns the GPU texture format for uploading the buffer.
func (b *Buffer) TextureFormat() gputypes.TextureFormat {
	return b.Format.TextureFormat()
}

// Pixel decodes the pixel at (x, y) as straight alpha 0xAARRGGBB.
func (b *Buffer) Pixel(x, y int) uint32 {
	l := b.Format.layout()
	if !l.IsValid() {
		return 0
	}
	return pixel.Decode(l, b.Data[b.Offset(x, y):], pixel.ARGB{}).Uint32()
}

// Clear fills the whole buffer with c at full opacity.
func (b *Buffer) Clear(c Color) {
	l := b.Format.layout()
	if !l.IsValid() {
		return
	}
	bpp := l.Size()
	px := make([]byte, bpp)
	pixel.Encode(l, px, c.argb(0xFF))
	for y := 0; y < b.Height; y++ {
		row := b.Data[y*b.Stride:]
		for x := 0; x < b.Width; x++ {
			copy(row[x*bpp:], px)
		}
	}
}

// Image converts the buffer to an *image.NRGBA.
func (b *Buffer) Image() *image.NRGBA {
	img := image.NewNRGBA(b.Bounds())
	l := b.Format.layout()
	if !l.IsValid() {
		return img
	}
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			c := pixel.Decode(l, b.Data[b.Offset(x, y):], pixel.ARGB{})
			if b.Format == FormatXRGB8888 {
				c.A = 0xFF
			}
			img.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}
	return img
}

// Allocator hands out buffers. A nil buffer with a nil error is not
// allowed; failure must be reported through the error.
type Allocator interface {
	Alloc(width, height int, format ColorFormat) (*Buffer, error)
	Free(b *Buffer)
}

// HeapAllocator allocates buffers on the Go heap with synthetic, non-
// overlapping bus addresses. It serves software-only pipelines.
type HeapAllocator struct {
	mu   sync.Mutex
	next uint32
}

// Alloc allocates a zeroed buffer.
func (h *HeapAllocator) Alloc(width, height int, format ColorFormat) (*Buffer, error) {
	bpp := format.BytesPerPixel()
	if width <= 0 || height <= 0 || bpp == 0 {
		return nil, fmt.Errorf("%w: %dx%d %v", ErrNoBuffer, width, height, format)
	}
	stride := width * bpp
	size := stride * height

	h.mu.Lock()
	if h.next == 0 {
		h.next = 0x1000
	}
	addr := h.next
	h.next += uint32(size+0xFFF) &^ 0xFFF
	h.mu.Unlock()

	return &Buffer{
		Addr:   addr,
		Data:   make([]byte, size),
		Width:  width,
		Height: height,
		Stride: stride,
		Format: format,
	}, nil
}

// Free is a no-op; the garbage collector reclaims heap buffers.
func (h *HeapAllocator) Free(*Buffer) {}

var _ Allocator = (*HeapAllocator)(nil)
