// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package draw

// ImageHeader is the metadata of an image source.
type ImageHeader struct {
	Format ColorFormat
	Width  int
	Height int
	// Stride is bytes per row of the decoded pixels.
	Stride int
}

// ImageDecoder resolves opaque image sources.
type ImageDecoder interface {
	// Info returns the header without decoding pixels.
	Info(src any) (ImageHeader, error)
	// Open returns the decoded pixels in a bus-visible buffer whose format
	// matches the header returned by Info.
	Open(src any) (*Buffer, error)
}
