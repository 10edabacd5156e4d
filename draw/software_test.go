package draw

import (
	"errors"
	"image"
	"testing"
)

// rawDecoder serves *Buffer sources as already decoded images.
type rawDecoder struct{}

func (rawDecoder) Info(src any) (ImageHeader, error) {
	b, ok := src.(*Buffer)
	if !ok {
		return ImageHeader{}, errors.New("not a buffer")
	}
	return ImageHeader{Format: b.Format, Width: b.Width, Height: b.Height, Stride: b.Stride}, nil
}

func (rawDecoder) Open(src any) (*Buffer, error) {
	b, ok := src.(*Buffer)
	if !ok {
		return nil, errors.New("not a buffer")
	}
	return b, nil
}

func newSoftwarePipeline() (*Pipeline, *SoftwareUnit) {
	p := NewPipeline(rawDecoder{})
	s := NewSoftwareUnit(p)
	p.Register(s)
	return p, s
}

func TestSoftwareEvaluate(t *testing.T) {
	p, s := newSoftwarePipeline()

	l8 := p.NewLayer(fullRect(4, 4), FormatL8, &HeapAllocator{})
	task := l8.AddFill(fullRect(4, 4), fullRect(4, 4), FillDesc{Opa: OpaCover})
	if task.PreferredUnit != UnitSoftware || task.Score != ScoreBaseline {
		t.Errorf("preferred=%d score=%d", task.PreferredUnit, task.Score)
	}

	a8 := p.NewLayer(fullRect(4, 4), FormatA8, &HeapAllocator{})
	a8.AddFill(fullRect(4, 4), fullRect(4, 4), FillDesc{Opa: OpaCover})
	if !a8.Excluded(UnitSoftware) {
		t.Error("software unit should hard-reject A8 layers")
	}

	label := &Task{Kind: KindLabel, Layer: l8}
	if got := s.Evaluate(label); got != EvalSoftReject {
		t.Errorf("label evaluation = %v", got)
	}
	bad := &Task{Kind: KindImage, Layer: l8, Desc: &ImageDesc{Src: "nope"}}
	if got := s.Evaluate(bad); got != EvalSoftReject {
		t.Errorf("undecodable image evaluation = %v", got)
	}
}

func TestSoftwareOpaqueFill(t *testing.T) {
	p, _ := newSoftwarePipeline()
	layer := p.NewLayer(image.Rect(10, 10, 18, 14), FormatRGB888, &HeapAllocator{})
	layer.AddFill(image.Rect(12, 11, 20, 13), image.Rect(0, 0, 100, 100), FillDesc{Color: ColorHex(0xFF0000), Opa: OpaCover})

	if err := p.Finish(layer); err != nil {
		t.Fatal(err)
	}
	buf := layer.Buffer()
	if got := buf.Pixel(2, 1); got != 0xFFFF0000 {
		t.Errorf("inside pixel = %#x", got)
	}
	if got := buf.Pixel(7, 2); got != 0xFFFF0000 {
		t.Errorf("clipped-to-layer edge pixel = %#x", got)
	}
	if got := buf.Pixel(1, 1); got != 0xFF000000 {
		t.Errorf("outside pixel = %#x", got)
	}
	if got := buf.Pixel(2, 3); got != 0xFF000000 {
		t.Errorf("below pixel = %#x", got)
	}
}

func TestSoftwareTranslucentFill(t *testing.T) {
	p, _ := newSoftwarePipeline()
	layer := p.NewLayer(fullRect(2, 1), FormatXRGB8888, &HeapAllocator{})
	buf := layer.AllocBuffer()
	buf.Clear(ColorHex(0x0000FF))

	layer.AddFill(fullRect(2, 1), fullRect(2, 1), FillDesc{Color: ColorHex(0xFF0000), Opa: 128})
	if err := p.Finish(layer); err != nil {
		t.Fatal(err)
	}
	got := buf.Pixel(0, 0)
	r, b := (got>>16)&0xFF, got&0xFF
	if r < 126 || r > 129 || b < 126 || b > 129 {
		t.Errorf("blended pixel = %#x, want ~50%% red over blue", got)
	}
}

func TestSoftwareRoundedFill(t *testing.T) {
	p, _ := newSoftwarePipeline()
	layer := p.NewLayer(fullRect(10, 10), FormatL8, &HeapAllocator{})
	layer.AddFill(fullRect(10, 10), fullRect(10, 10), FillDesc{Color: ColorHex(0xFFFFFF), Opa: OpaCover, Radius: 5})
	if err := p.Finish(layer); err != nil {
		t.Fatal(err)
	}
	buf := layer.Buffer()
	if buf.Pixel(0, 0) != 0xFF000000 {
		t.Error("corner pixel should stay untouched")
	}
	if buf.Pixel(5, 5) != 0xFFFFFFFF {
		t.Error("center pixel should be filled")
	}
	if buf.Pixel(5, 0) != 0xFFFFFFFF {
		t.Error("top edge center should be filled")
	}
}

func TestSoftwareImageCopy(t *testing.T) {
	p, _ := newSoftwarePipeline()
	var h HeapAllocator
	src, _ := h.Alloc(2, 2, FormatARGB8888)
	src.Clear(ColorHex(0x00FF00))

	layer := p.NewLayer(fullRect(4, 4), FormatRGB565, &h)
	layer.AddImage(image.Rect(1, 1, 3, 3), fullRect(4, 4), ImageDesc{Src: src, Opa: OpaCover})
	if err := p.Finish(layer); err != nil {
		t.Fatal(err)
	}
	buf := layer.Buffer()
	if got := buf.Pixel(1, 1); got != 0xFF00FF00 {
		t.Errorf("image pixel = %#x", got)
	}
	if got := buf.Pixel(0, 0); got != 0xFF000000 {
		t.Errorf("outside pixel = %#x", got)
	}
}

func TestSoftwareImageScaled(t *testing.T) {
	p, _ := newSoftwarePipeline()
	var h HeapAllocator
	src, _ := h.Alloc(2, 2, FormatRGB888)
	src.Clear(ColorHex(0xFFFFFF))

	layer := p.NewLayer(fullRect(8, 8), FormatRGB888, &h)
	layer.AddImage(fullRect(8, 8), fullRect(8, 8), ImageDesc{Src: src, Opa: OpaCover, Scale: 4 * ScaleNone})
	if err := p.Finish(layer); err != nil {
		t.Fatal(err)
	}
	if got := layer.Buffer().Pixel(4, 4); got != 0xFFFFFFFF {
		t.Errorf("scaled center pixel = %#x", got)
	}
}

func TestSoftwareBusyReturnsNoProgress(t *testing.T) {
	p, s := newSoftwarePipeline()
	layer := p.NewLayer(fullRect(2, 2), FormatRGB565, &HeapAllocator{})
	layer.AddFill(fullRect(2, 2), fullRect(2, 2), FillDesc{Opa: OpaCover})

	s.mu.Lock()
	got := s.Dispatch(layer)
	s.mu.Unlock()
	if got != DispatchNoProgress {
		t.Errorf("Dispatch while busy = %v", got)
	}
	if layer.Pending() != 1 {
		t.Error("busy dispatch must not touch the queue")
	}
}

func TestImageDescTransformed(t *testing.T) {
	tests := []struct {
		d    ImageDesc
		want bool
	}{
		{ImageDesc{}, false},
		{ImageDesc{Scale: ScaleNone}, false},
		{ImageDesc{Scale: 512}, true},
		{ImageDesc{Rotation: 900}, true},
		{ImageDesc{Rotation: 3600}, false},
	}
	for _, tt := range tests {
		if got := tt.d.Transformed(); got != tt.want {
			t.Errorf("%+v.Transformed() = %v, want %v", tt.d, got, tt.want)
		}
	}
}
