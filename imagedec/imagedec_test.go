// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package imagedec

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/gogpu/dma2d/draw"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 40), G: uint8(y * 40), B: 0x80, A: 0xC0})
		}
	}
	return img
}

func TestInfo(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 3, 2))
	var jpg bytes.Buffer
	if err := jpeg.Encode(&jpg, image.NewRGBA(image.Rect(0, 0, 8, 8)), nil); err != nil {
		t.Fatal(err)
	}
	var bm bytes.Buffer
	if err := bmp.Encode(&bm, image.NewRGBA(image.Rect(0, 0, 5, 1))); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		src    any
		format draw.ColorFormat
		w, h   int
	}{
		{"png rgba", encodePNG(t, gradient(4, 3)), draw.FormatARGB8888, 4, 3},
		{"png gray", encodePNG(t, gray), draw.FormatL8, 3, 2},
		{"jpeg", jpg.Bytes(), draw.FormatRGB888, 8, 8},
		{"bmp", bm.Bytes(), draw.FormatARGB8888, 5, 1},
		{"image", gradient(2, 2), draw.FormatARGB8888, 2, 2},
		{"buffer", &draw.Buffer{Width: 7, Height: 1, Format: draw.FormatRGB565}, draw.FormatRGB565, 7, 1},
	}
	d := New(&draw.HeapAllocator{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hdr, err := d.Info(tt.src)
			if err != nil {
				t.Fatalf("Info() error = %v", err)
			}
			if hdr.Format != tt.format || hdr.Width != tt.w || hdr.Height != tt.h {
				t.Errorf("Info() = %+v, want %v %dx%d", hdr, tt.format, tt.w, tt.h)
			}
			if want := tt.w * tt.format.BytesPerPixel(); hdr.Stride != want {
				t.Errorf("Stride = %d, want %d", hdr.Stride, want)
			}
		})
	}
}

func TestInfoErrors(t *testing.T) {
	d := New(&draw.HeapAllocator{})
	if _, err := d.Info(42); !errors.Is(err, ErrUnknownSource) {
		t.Errorf("Info(int) = %v, want ErrUnknownSource", err)
	}
	if _, err := d.Info([]byte{}); !errors.Is(err, ErrEmptyData) {
		t.Errorf("Info(empty) = %v, want ErrEmptyData", err)
	}
	if _, err := d.Info([]byte("not an image")); err == nil {
		t.Error("Info(garbage) succeeded")
	}
	if _, err := d.Info(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("Info(missing file) succeeded")
	}
}

func TestOpenPNG(t *testing.T) {
	img := gradient(4, 3)
	data := encodePNG(t, img)
	d := New(&draw.HeapAllocator{})

	buf, err := d.Open(data)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if buf.Format != draw.FormatARGB8888 || buf.Width != 4 || buf.Height != 3 {
		t.Fatalf("Open() = %v %dx%d", buf.Format, buf.Width, buf.Height)
	}
	for y := range 3 {
		for x := range 4 {
			c := img.NRGBAAt(x, y)
			want := uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
			if got := buf.Pixel(x, y); got != want {
				t.Errorf("Pixel(%d, %d) = %#08x, want %#08x", x, y, got, want)
			}
		}
	}

	again, err := d.Open(data)
	if err != nil || again != buf {
		t.Errorf("second Open() = %p, %v; want cached %p", again, err, buf)
	}
	hdr, err := d.Info(data)
	if err != nil || hdr.Width != 4 {
		t.Errorf("Info() after Open = %+v, %v", hdr, err)
	}
}

func TestOpenGrayFile(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	gray.SetGray(1, 1, color.Gray{Y: 0x9A})
	path := filepath.Join(t.TempDir(), "gray.png")
	if err := os.WriteFile(path, encodePNG(t, gray), 0o600); err != nil {
		t.Fatal(err)
	}

	d := New(&draw.HeapAllocator{})
	buf, err := d.Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if buf.Format != draw.FormatL8 {
		t.Fatalf("Format = %v, want l8", buf.Format)
	}
	if got := buf.Data[buf.Offset(1, 1)]; got != 0x9A {
		t.Errorf("luma = %#x, want 0x9a", got)
	}
}

func TestOpenImageValue(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 12, 11))
	src.Set(11, 10, color.RGBA{R: 0xFF, A: 0xFF})
	d := New(&draw.HeapAllocator{})
	buf, err := d.Open(src)
	if err != nil {
		t.Fatal(err)
	}
	if got := buf.Pixel(1, 0); got != 0xFFFF0000 {
		t.Errorf("Pixel(1, 0) = %#08x", got)
	}
	if again, _ := d.Open(src); again != buf {
		t.Error("second Open(image) converted again")
	}
}

func TestOpenErrors(t *testing.T) {
	d := New(&draw.HeapAllocator{})
	if _, err := d.Open(42); !errors.Is(err, ErrUnknownSource) {
		t.Errorf("Open(int) = %v, want ErrUnknownSource", err)
	}
	if _, err := d.Open([]byte{}); !errors.Is(err, ErrEmptyData) {
		t.Errorf("Open(empty) = %v, want ErrEmptyData", err)
	}
}

// countingAlloc tracks outstanding buffers.
type countingAlloc struct {
	draw.HeapAllocator
	live int
}

func (c *countingAlloc) Alloc(w, h int, f draw.ColorFormat) (*draw.Buffer, error) {
	c.live++
	return c.HeapAllocator.Alloc(w, h, f)
}

func (c *countingAlloc) Free(*draw.Buffer) { c.live-- }

func TestClose(t *testing.T) {
	alloc := &countingAlloc{}
	d := New(alloc)
	if _, err := d.Open(encodePNG(t, gradient(2, 2))); err != nil {
		t.Fatal(err)
	}
	if alloc.live != 1 {
		t.Fatalf("live buffers = %d, want 1", alloc.live)
	}
	d.Close()
	if alloc.live != 0 {
		t.Errorf("live buffers after Close = %d, want 0", alloc.live)
	}
}

func TestCacheLimitFreesOldest(t *testing.T) {
	alloc := &countingAlloc{}
	// 4x4 ARGB8888 is 64 bytes, two fit.
	d := New(alloc, WithCacheLimit(128))

	a := encodePNG(t, gradient(4, 4))
	b := encodePNG(t, gradient(4, 4))
	c := encodePNG(t, gradient(4, 4))
	for _, src := range [][]byte{a, b, a, c} {
		if _, err := d.Open(src); err != nil {
			t.Fatal(err)
		}
	}
	if alloc.live != 2 {
		t.Errorf("live buffers = %d, want 2", alloc.live)
	}

	s := d.Stats()
	if s.Evictions != 1 || s.Hits != 1 || s.Size != 128 {
		t.Errorf("Stats() = %+v", s)
	}

	// b was least recently used.
	if _, err := d.Open(a); err != nil {
		t.Fatal(err)
	}
	if d.Stats().Hits != 2 {
		t.Error("a should still be cached")
	}
	d.Close()
	if alloc.live != 0 {
		t.Errorf("live buffers after Close = %d, want 0", alloc.live)
	}
}

func TestDecoderInPipeline(t *testing.T) {
	p := draw.NewPipeline(New(&draw.HeapAllocator{}))
	p.Register(draw.NewSoftwareUnit(p))
	layer := p.NewLayer(image.Rect(0, 0, 4, 3), draw.FormatRGB888, &draw.HeapAllocator{})

	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	task := layer.AddImage(image.Rect(1, 1, 3, 3), layer.Area, draw.ImageDesc{Src: encodePNG(t, img), Opa: draw.OpaCover})
	if task.PreferredUnit != draw.UnitSoftware {
		t.Fatalf("PreferredUnit = %d", task.PreferredUnit)
	}
	if err := p.Finish(layer); err != nil {
		t.Fatal(err)
	}
	if got := layer.Buffer().Pixel(2, 2); got != 0xFFFFFFFF {
		t.Errorf("Pixel(2, 2) = %#08x", got)
	}
}
