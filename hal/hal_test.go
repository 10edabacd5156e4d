package hal

import (
	"testing"
	"unsafe"
)

func TestControlWord(t *testing.T) {
	tests := []struct {
		mode Mode
		want uint32
	}{
		{ModeM2M, 0x00000000},
		{ModeM2MPFC, 0x00010000},
		{ModeM2MBlend, 0x00020000},
		{ModeR2M, 0x00030000},
	}
	for _, tt := range tests {
		got := ControlWord(tt.mode)
		if got != tt.want {
			t.Errorf("ControlWord(%v) = %#08x, want %#08x", tt.mode, got, tt.want)
		}
		if ModeOf(got|CRStart) != tt.mode {
			t.Errorf("ModeOf(%#x) = %v, want %v", got, ModeOf(got), tt.mode)
		}
	}
}

func TestPFCEncode(t *testing.T) {
	p := PFC{CM: CMA8, AlphaMode: 1, Alpha: 0x80, RBS: true}
	v := p.Encode()
	want := uint32(0x80<<24 | 1<<21 | 1<<16 | 0x9)
	if v != want {
		t.Fatalf("Encode = %#08x, want %#08x", v, want)
	}
	if got := DecodePFC(v); got != p {
		t.Errorf("DecodePFC = %+v, want %+v", got, p)
	}
}

func TestGeometry(t *testing.T) {
	v := Geometry(320, 240)
	if v != 320<<16|240 {
		t.Fatalf("Geometry = %#x", v)
	}
	pl, nl := SplitGeometry(v)
	if pl != 320 || nl != 240 {
		t.Errorf("SplitGeometry = %d,%d", pl, nl)
	}
}

func TestOffsetString(t *testing.T) {
	if OMAR.String() != "OMAR" {
		t.Errorf("OMAR.String() = %q", OMAR.String())
	}
	if Offset(0x100).String() != "UNKNOWN" {
		t.Error("unexpected name for unmapped offset")
	}
}

func TestMMIO(t *testing.T) {
	var window [RegisterSpan / 4]uint32
	m := NewMMIO(unsafe.Pointer(&window[0]))

	m.Write(OMAR, 0x20001000)
	if window[OMAR/4] != 0x20001000 {
		t.Errorf("backing word = %#x", window[OMAR/4])
	}
	window[ISR/4] = FlagTC
	if m.Read(ISR) != FlagTC {
		t.Errorf("Read(ISR) = %#x", m.Read(ISR))
	}

	Set(m, CR, CRStart)
	Set(m, CR, ControlWord(ModeR2M))
	if window[0] != CRStart|ControlWord(ModeR2M) {
		t.Errorf("CR = %#x", window[0])
	}
	Clear(m, CR, CRStart)
	if window[0]&CRStart != 0 {
		t.Error("START still set after Clear")
	}
}
