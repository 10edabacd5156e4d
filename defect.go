// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !dma2ddebug

package dma2d

// defect reports an internal inconsistency and carries on.
func defect(msg string) {
	Logger().Warn(msg)
}
