// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package hal

import (
	"sync/atomic"
	"unsafe"
)

// RegisterBlock is an owned handle to the peripheral's register window.
// Reads and writes are word-sized and must not be reordered or elided.
type RegisterBlock interface {
	Read(off Offset) uint32
	Write(off Offset, v uint32)
}

// Set ORs bits into a register (read-modify-write).
func Set(r RegisterBlock, off Offset, bits uint32) {
	r.Write(off, r.Read(off)|bits)
}

// Clear removes bits from a register (read-modify-write).
func Clear(r RegisterBlock, off Offset, bits uint32) {
	r.Write(off, r.Read(off)&^bits)
}

// MMIO accesses a memory-mapped register window through atomic word loads
// and stores, which the compiler never caches or merges.
type MMIO struct {
	base unsafe.Pointer
}

// NewMMIO wraps the register window starting at base. The window must span
// at least RegisterSpan bytes and stay mapped for the lifetime of the handle.
func NewMMIO(base unsafe.Pointer) *MMIO {
	return &MMIO{base: base}
}

func (m *MMIO) reg(off Offset) *uint32 {
	return (*uint32)(unsafe.Add(m.base, uintptr(off)))
}

// Read loads the register at off.
func (m *MMIO) Read(off Offset) uint32 {
	return atomic.LoadUint32(m.reg(off))
}

// Write stores v into the register at off.
func (m *MMIO) Write(off Offset, v uint32) {
	atomic.StoreUint32(m.reg(off), v)
}

var _ RegisterBlock = (*MMIO)(nil)
