// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package imagedec resolves image sources for draw pipelines.
//
// A source is one of:
//   - *draw.Buffer: already decoded pixels, used as is
//   - []byte: an encoded PNG, JPEG, GIF, BMP, TIFF or WebP image
//   - string: the path of such a file
//   - image.Image: decoded pixels to be copied into a bus buffer
//
// Decoded buffers come from the decoder's allocator so bus-master
// peripherals can read them. Decodes are cached, and with WithCacheLimit
// the least recently used ones are freed once the cached pixels exceed
// the limit. A buffer returned by Open stays valid until a later Open
// evicts it or until Close.
package imagedec

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"  // register GIF
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"io"
	"os"
	"path/filepath"
	"reflect"
	"unsafe"

	_ "golang.org/x/image/bmp"  // register BMP
	_ "golang.org/x/image/tiff" // register TIFF
	_ "golang.org/x/image/webp" // register WebP

	"github.com/gogpu/dma2d/draw"
	"github.com/gogpu/dma2d/internal/cache"
	"github.com/gogpu/dma2d/internal/pixel"
)

var (
	// ErrUnknownSource is returned for sources of an unsupported type.
	ErrUnknownSource = errors.New("imagedec: unknown image source")

	// ErrEmptyData is returned for an empty encoded source.
	ErrEmptyData = errors.New("imagedec: empty data")
)

// cacheKey identifies a source. Byte slices are keyed by their backing
// array and images by identity, so callers must not modify either after
// submitting it.
type cacheKey struct {
	path string
	data *byte
	n    int
	img  image.Image
}

// Decoder implements draw.ImageDecoder.
type Decoder struct {
	alloc draw.Allocator
	cache *cache.Cache[cacheKey, *draw.Buffer]
}

var _ draw.ImageDecoder = (*Decoder)(nil)

// Option configures a Decoder.
type Option func(*decoderOptions)

type decoderOptions struct {
	limit int
}

// WithCacheLimit bounds the decoded pixels kept cached to n bytes.
// The default, 0, keeps every decode until Close.
func WithCacheLimit(n int) Option {
	return func(o *decoderOptions) {
		o.limit = n
	}
}

// New returns a decoder that allocates decoded pixels from alloc.
func New(alloc draw.Allocator, opts ...Option) *Decoder {
	var o decoderOptions
	for _, opt := range opts {
		opt(&o)
	}
	d := &Decoder{alloc: alloc}
	d.cache = cache.New(o.limit,
		func(b *draw.Buffer) int { return len(b.Data) },
		func(_ cacheKey, b *draw.Buffer) { d.alloc.Free(b) })
	return d
}

// Info returns the header of src without decoding its pixels.
func (d *Decoder) Info(src any) (draw.ImageHeader, error) {
	switch s := src.(type) {
	case *draw.Buffer:
		return header(s.Format, s.Width, s.Height), nil
	case image.Image:
		b := s.Bounds()
		return header(formatOf(s.ColorModel()), b.Dx(), b.Dy()), nil
	}

	if buf, ok := d.cached(src); ok {
		return header(buf.Format, buf.Width, buf.Height), nil
	}
	var cfg image.Config
	err := d.read(src, func(r io.Reader) (err error) {
		cfg, _, err = image.DecodeConfig(r)
		return err
	})
	if err != nil {
		return draw.ImageHeader{}, err
	}
	return header(formatOf(cfg.ColorModel), cfg.Width, cfg.Height), nil
}

// Open returns the decoded pixels of src.
func (d *Decoder) Open(src any) (*draw.Buffer, error) {
	switch s := src.(type) {
	case *draw.Buffer:
		return s, nil
	case []byte:
		if len(s) == 0 {
			return nil, ErrEmptyData
		}
	}
	k, ok := keyOf(src)
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrUnknownSource, src)
	}
	if buf, ok := d.cache.Get(k); ok {
		return buf, nil
	}

	img, ok := src.(image.Image)
	if !ok {
		err := d.read(src, func(r io.Reader) (err error) {
			img, _, err = image.Decode(r)
			return err
		})
		if err != nil {
			return nil, err
		}
	}
	buf, err := d.convert(img)
	if err != nil {
		return nil, err
	}

	cached, added := d.cache.Add(k, buf)
	if !added {
		d.alloc.Free(buf)
	}
	return cached, nil
}

// Stats returns the decode cache counters.
func (d *Decoder) Stats() cache.Stats {
	return d.cache.Stats()
}

// Close frees every cached buffer.
func (d *Decoder) Close() {
	d.cache.Clear()
}

func header(f draw.ColorFormat, w, h int) draw.ImageHeader {
	return draw.ImageHeader{Format: f, Width: w, Height: h, Stride: w * f.BytesPerPixel()}
}

func keyOf(src any) (cacheKey, bool) {
	switch s := src.(type) {
	case string:
		return cacheKey{path: filepath.Clean(s)}, true
	case []byte:
		if len(s) == 0 {
			return cacheKey{}, false
		}
		return cacheKey{data: unsafe.SliceData(s), n: len(s)}, true
	case image.Image:
		if !reflect.TypeOf(s).Comparable() {
			return cacheKey{}, false
		}
		return cacheKey{img: s}, true
	default:
		return cacheKey{}, false
	}
}

func (d *Decoder) cached(src any) (*draw.Buffer, bool) {
	k, ok := keyOf(src)
	if !ok {
		return nil, false
	}
	return d.cache.Get(k)
}

// read opens src and hands it to fn.
func (d *Decoder) read(src any, fn func(io.Reader) error) error {
	switch s := src.(type) {
	case []byte:
		if len(s) == 0 {
			return ErrEmptyData
		}
		if err := fn(bytes.NewReader(s)); err != nil {
			return fmt.Errorf("imagedec: decode: %w", err)
		}
		return nil
	case string:
		f, err := os.Open(filepath.Clean(s))
		if err != nil {
			return fmt.Errorf("imagedec: open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		if err := fn(f); err != nil {
			return fmt.Errorf("imagedec: decode %s: %w", filepath.Base(s), err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnknownSource, src)
	}
}

// formatOf picks the narrowest pipeline format that holds every color of m.
func formatOf(m color.Model) draw.ColorFormat {
	switch m {
	case color.GrayModel, color.Gray16Model:
		return draw.FormatL8
	case color.YCbCrModel, color.CMYKModel:
		return draw.FormatRGB888
	default:
		return draw.FormatARGB8888
	}
}

func layoutOf(f draw.ColorFormat) pixel.Layout {
	switch f {
	case draw.FormatL8:
		return pixel.LayoutL8
	case draw.FormatRGB888:
		return pixel.LayoutRGB888
	default:
		return pixel.LayoutARGB8888
	}
}

// convert copies img into a freshly allocated buffer.
func (d *Decoder) convert(img image.Image) (*draw.Buffer, error) {
	b := img.Bounds()
	f := formatOf(img.ColorModel())
	buf, err := d.alloc.Alloc(b.Dx(), b.Dy(), f)
	if err != nil {
		return nil, fmt.Errorf("imagedec: %w", err)
	}
	l := layoutOf(f)

	if nrgba, ok := img.(*image.NRGBA); ok {
		for y := range b.Dy() {
			row := nrgba.Pix[y*nrgba.Stride:]
			for x := range b.Dx() {
				p := row[x*4:]
				pixel.Encode(l, buf.Data[buf.Offset(x, y):], pixel.ARGB{R: p[0], G: p[1], B: p[2], A: p[3]})
			}
		}
		return buf, nil
	}

	for y := range b.Dy() {
		for x := range b.Dx() {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			pixel.Encode(l, buf.Data[buf.Offset(x, y):], pixel.ARGB{R: c.R, G: c.G, B: c.B, A: c.A})
		}
	}
	return buf, nil
}
