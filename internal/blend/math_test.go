package blend

import "testing"

func TestDiv255Exact(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			x := uint32(a * b)
			if got := div255(x); got != x/255 {
				t.Fatalf("div255(%d) = %d, want %d", x, got, x/255)
			}
		}
	}
}

func TestMulDiv255Bounds(t *testing.T) {
	if mulDiv255(255, 255) != 255 {
		t.Error("255*255/255 should be 255")
	}
	if mulDiv255(0, 200) != 0 {
		t.Error("0*x should be 0")
	}
	if mulDiv255(255, 128) != 128 {
		t.Errorf("255*128/255 = %d, want 128", mulDiv255(255, 128))
	}
}
