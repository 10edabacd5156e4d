// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package draw

import "errors"

// Common pipeline errors.
var (
	// ErrUnsupportedFormat is returned for color formats the pipeline does not know.
	ErrUnsupportedFormat = errors.New("draw: unsupported color format")

	// ErrNoBuffer is returned when a layer buffer cannot be allocated.
	ErrNoBuffer = errors.New("draw: buffer allocation failed")

	// ErrStalled is returned by Finish when queued tasks remain but no unit
	// makes progress.
	ErrStalled = errors.New("draw: dispatch stalled")

	// ErrNoDecoder is returned when an image task is evaluated without a decoder.
	ErrNoDecoder = errors.New("draw: no image decoder")
)
