package draw

import (
	"errors"
	"testing"
)

func TestHeapAllocator(t *testing.T) {
	var h HeapAllocator
	a, err := h.Alloc(10, 4, FormatRGB565)
	if err != nil {
		t.Fatal(err)
	}
	b, err := h.Alloc(3, 3, FormatARGB8888)
	if err != nil {
		t.Fatal(err)
	}
	if a.Stride != 20 || len(a.Data) != 80 {
		t.Errorf("stride/len = %d/%d, want 20/80", a.Stride, len(a.Data))
	}
	if a.Addr == 0 || b.Addr < a.Addr+uint32(len(a.Data)) {
		t.Errorf("addresses overlap: %#x %#x", a.Addr, b.Addr)
	}
	if _, err := h.Alloc(0, 4, FormatRGB565); !errors.Is(err, ErrNoBuffer) {
		t.Errorf("zero width err = %v", err)
	}
	if _, err := h.Alloc(4, 4, FormatAL88); err != nil {
		t.Errorf("AL88 has a size and should allocate: %v", err)
	}
}

func TestBufferAddressing(t *testing.T) {
	b := &Buffer{Addr: 0x2000_0000, Width: 8, Height: 8, Stride: 32, Format: FormatRGB565}
	if b.PixelStride() != 16 {
		t.Errorf("PixelStride = %d, want 16", b.PixelStride())
	}
	if got := b.AddrOf(3, 2); got != 0x2000_0000+2*32+3*2 {
		t.Errorf("AddrOf(3,2) = %#x", got)
	}
}

func TestBufferClearAndImage(t *testing.T) {
	var h HeapAllocator
	b, _ := h.Alloc(4, 2, FormatXRGB8888)
	b.Clear(ColorHex(0x102030))
	if got := b.Pixel(3, 1); got != 0xFF102030 {
		t.Errorf("Pixel = %#x", got)
	}
	img := b.Image()
	c := img.NRGBAAt(0, 0)
	if c.R != 0x10 || c.G != 0x20 || c.B != 0x30 || c.A != 0xFF {
		t.Errorf("Image pixel = %+v", c)
	}
}
