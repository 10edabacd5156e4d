// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dma2d

import "errors"

var (
	// ErrTimeout is returned when the peripheral does not finish a transfer
	// within the configured timeout. The unit is degraded afterwards.
	ErrTimeout = errors.New("dma2d: transfer timed out")

	// ErrTransfer is returned when the peripheral reports a bus error.
	ErrTransfer = errors.New("dma2d: transfer error")

	// ErrConfiguration is returned when the peripheral rejects a program.
	ErrConfiguration = errors.New("dma2d: configuration error")

	// ErrOffline is returned when a transfer is submitted to a unit that
	// is not initialized.
	ErrOffline = errors.New("dma2d: unit offline")
)
