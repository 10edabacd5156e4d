// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build dma2ddebug

package dma2d

// defect panics so inconsistencies surface in debug builds.
func defect(msg string) {
	panic(msg)
}
