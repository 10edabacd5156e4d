// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package draw

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/dma2d/internal/pixel"
)

// ColorFormat is an abstract pixel format of a layer or image.
type ColorFormat uint8

const (
	// FormatUnknown is the zero format.
	FormatUnknown ColorFormat = iota

	// FormatL8 is 8-bit luminance.
	FormatL8

	// FormatA8 is an 8-bit alpha mask.
	FormatA8

	// FormatAL88 is 8-bit alpha plus 8-bit luminance.
	FormatAL88

	// FormatRGB565 is 16-bit truecolor.
	FormatRGB565

	// FormatRGB888 is 24-bit truecolor.
	FormatRGB888

	// FormatARGB8888 is 32-bit color with a straight alpha channel.
	FormatARGB8888

	// FormatXRGB8888 is 32-bit color whose alpha byte is ignored.
	FormatXRGB8888

	// FormatARGB8888Premultiplied is 32-bit color with premultiplied alpha.
	FormatARGB8888Premultiplied

	formatCount
)

type formatInfo struct {
	name   string
	size   int
	alpha  bool
	layout pixel.Layout
	tex    gputypes.TextureFormat
}

var formatTable = [formatCount]formatInfo{
	FormatUnknown:               {name: "unknown", tex: gputypes.TextureFormatUndefined},
	FormatL8:                    {name: "l8", size: 1, layout: pixel.LayoutL8, tex: gputypes.TextureFormatR8Unorm},
	FormatA8:                    {name: "a8", size: 1, alpha: true, layout: pixel.LayoutA8, tex: gputypes.TextureFormatR8Unorm},
	FormatAL88:                  {name: "al88", size: 2, alpha: true, tex: gputypes.TextureFormatUndefined},
	FormatRGB565:                {name: "rgb565", size: 2, layout: pixel.LayoutRGB565, tex: gputypes.TextureFormatUndefined},
	FormatRGB888:                {name: "rgb888", size: 3, layout: pixel.LayoutRGB888, tex: gputypes.TextureFormatUndefined},
	FormatARGB8888:              {name: "argb8888", size: 4, alpha: true, layout: pixel.LayoutARGB8888, tex: gputypes.TextureFormatBGRA8Unorm},
	FormatXRGB8888:              {name: "xrgb8888", size: 4, layout: pixel.LayoutARGB8888, tex: gputypes.TextureFormatBGRA8Unorm},
	FormatARGB8888Premultiplied: {name: "argb8888-premultiplied", size: 4, alpha: true, tex: gputypes.TextureFormatBGRA8Unorm},
}

func (f ColorFormat) info() formatInfo {
	if f >= formatCount {
		return formatTable[FormatUnknown]
	}
	return formatTable[f]
}

// BytesPerPixel returns the storage size of one pixel, 0 if unknown.
func (f ColorFormat) BytesPerPixel() int { return f.info().size }

// HasAlpha reports whether the format stores a meaningful alpha channel.
func (f ColorFormat) HasAlpha() bool { return f.info().alpha }

// String returns the lowercase format name used in configuration files.
func (f ColorFormat) String() string { return f.info().name }

// TextureFormat returns the GPU texture format with the same memory layout,
// or TextureFormatUndefined when the layer must be converted before upload.
func (f ColorFormat) TextureFormat() gputypes.TextureFormat { return f.info().tex }

// layout returns the codec used by the software unit.
func (f ColorFormat) layout() pixel.Layout { return f.info().layout }

// MarshalText implements encoding.TextMarshaler.
func (f ColorFormat) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *ColorFormat) UnmarshalText(text []byte) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for i := FormatUnknown + 1; i < formatCount; i++ {
		if formatTable[i].name == name {
			*f = i
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}
