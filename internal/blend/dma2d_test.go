package blend

import (
	"testing"

	"github.com/gogpu/dma2d/internal/pixel"
)

func TestApplyAlpha(t *testing.T) {
	tests := []struct {
		name     string
		a        byte
		mode     AlphaMode
		constant byte
		want     byte
	}{
		{"keep", 0x40, AlphaKeep, 0x80, 0x40},
		{"replace", 0x40, AlphaReplace, 0x80, 0x80},
		{"multiply opaque", 0xFF, AlphaMultiply, 0x80, 0x80},
		{"multiply zero", 0x00, AlphaMultiply, 0x80, 0x00},
		{"unknown", 0x40, AlphaMode(3), 0x80, 0x40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyAlpha(tt.a, tt.mode, tt.constant); got != tt.want {
				t.Errorf("ApplyAlpha = %#x, want %#x", got, tt.want)
			}
		})
	}
}

func TestOverOpaqueForeground(t *testing.T) {
	fg := pixel.ARGB{A: 255, R: 10, G: 20, B: 30}
	bg := pixel.ARGB{A: 255, R: 200, G: 200, B: 200}
	if got := Over(fg, bg); got != fg {
		t.Errorf("opaque fg over bg = %+v, want %+v", got, fg)
	}
}

func TestOverTransparentForeground(t *testing.T) {
	bg := pixel.ARGB{A: 255, R: 200, G: 100, B: 50}
	if got := Over(pixel.ARGB{R: 255}, bg); got != bg {
		t.Errorf("transparent fg over bg = %+v, want %+v", got, bg)
	}
}

func TestOverHalf(t *testing.T) {
	fg := pixel.ARGB{A: 128, R: 255}
	bg := pixel.ARGB{A: 255, B: 255}
	got := Over(fg, bg)
	if got.A != 255 {
		t.Errorf("alpha = %d, want 255", got.A)
	}
	if got.R < 126 || got.R > 129 {
		t.Errorf("red = %d, want ~128", got.R)
	}
	if got.B < 126 || got.B > 129 {
		t.Errorf("blue = %d, want ~127", got.B)
	}
}

func TestOverBothTransparent(t *testing.T) {
	if got := Over(pixel.ARGB{R: 1}, pixel.ARGB{G: 1}); got != (pixel.ARGB{}) {
		t.Errorf("got %+v, want zero", got)
	}
}
