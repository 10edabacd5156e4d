package pixel

import "testing"

func TestLayoutSize(t *testing.T) {
	tests := []struct {
		l    Layout
		want int
	}{
		{LayoutARGB8888, 4},
		{LayoutRGB888, 3},
		{LayoutRGB565, 2},
		{LayoutARGB1555, 2},
		{LayoutARGB4444, 2},
		{LayoutA8, 1},
		{LayoutL8, 1},
		{LayoutInvalid, 0},
		{Layout(200), 0},
	}
	for _, tt := range tests {
		if got := tt.l.Size(); got != tt.want {
			t.Errorf("%v.Size() = %d, want %d", tt.l, got, tt.want)
		}
	}
}

func TestEncodeDecodeExact(t *testing.T) {
	c := ARGB{A: 0x80, R: 0x12, G: 0x34, B: 0x56}

	b := make([]byte, 4)
	Encode(LayoutARGB8888, b, c)
	if b[0] != 0x56 || b[1] != 0x34 || b[2] != 0x12 || b[3] != 0x80 {
		t.Fatalf("ARGB8888 bytes = % x, want 56 34 12 80", b)
	}
	if got := Decode(LayoutARGB8888, b, ARGB{}); got != c {
		t.Errorf("ARGB8888 decode = %+v, want %+v", got, c)
	}

	Encode(LayoutRGB888, b, c)
	if got := Decode(LayoutRGB888, b, ARGB{}); got != (ARGB{A: 0xFF, R: 0x12, G: 0x34, B: 0x56}) {
		t.Errorf("RGB888 decode = %+v", got)
	}
}

func TestRGB565Extremes(t *testing.T) {
	b := make([]byte, 2)
	for _, c := range []ARGB{
		{A: 0xFF},
		{A: 0xFF, R: 0xFF, G: 0xFF, B: 0xFF},
		{A: 0xFF, R: 0xFF},
		{A: 0xFF, G: 0xFF},
		{A: 0xFF, B: 0xFF},
	} {
		Encode(LayoutRGB565, b, c)
		if got := Decode(LayoutRGB565, b, ARGB{}); got != c {
			t.Errorf("RGB565 round trip of %+v = %+v", c, got)
		}
	}
	if v := Pack565(ARGB{R: 0xFF}); v != 0xF800 {
		t.Errorf("Pack565(red) = %#x, want 0xf800", v)
	}
}

func TestA8UsesTint(t *testing.T) {
	tint := ARGB{R: 1, G: 2, B: 3}
	got := Decode(LayoutA8, []byte{0x40}, tint)
	want := ARGB{A: 0x40, R: 1, G: 2, B: 3}
	if got != want {
		t.Errorf("Decode(A8) = %+v, want %+v", got, want)
	}
}

func TestSwapRB(t *testing.T) {
	c := ARGB{A: 1, R: 2, G: 3, B: 4}
	if got := c.SwapRB(); got != (ARGB{A: 1, R: 4, G: 3, B: 2}) {
		t.Errorf("SwapRB = %+v", got)
	}
	if FromUint32(c.Uint32()) != c {
		t.Error("Uint32/FromUint32 mismatch")
	}
}

func TestLuma(t *testing.T) {
	if Luma(ARGB{R: 255, G: 255, B: 255}) != 255 {
		t.Error("white luma should be 255")
	}
	if Luma(ARGB{}) != 0 {
		t.Error("black luma should be 0")
	}
}
