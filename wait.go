// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dma2d

import (
	"fmt"
	"runtime"
	"time"

	"github.com/gogpu/dma2d/hal"
)

// submit runs p on the peripheral and waits for it to finish.
func (u *Unit) submit(p *Program) error {
	if u.Health() != HealthOnline {
		return ErrOffline
	}
	if !u.poll(u.idle) {
		return u.timeout("previous transfer")
	}

	for _, w := range p.writes() {
		u.regs.Write(w.off, w.val)
	}
	for _, r := range p.Reads {
		u.opts.cache.Clean(r.Addr, r.Len)
	}
	u.regs.Write(hal.IFCR, hal.FlagAll)
	u.regs.Write(hal.CR, hal.ControlWord(p.Mode)|hal.CRStart)

	var isr uint32
	done := u.poll(func() bool {
		isr = u.regs.Read(hal.ISR)
		return isr&(hal.FlagTC|hal.FlagTE|hal.FlagCE) != 0
	})
	if !done {
		return u.timeout(p.Mode.String())
	}
	u.regs.Write(hal.IFCR, isr&hal.FlagAll)
	u.opts.cache.Invalidate(p.Write.Addr, p.Write.Len)

	switch {
	case isr&hal.FlagCE != 0:
		return fmt.Errorf("%w: %v", ErrConfiguration, p.Mode)
	case isr&hal.FlagTE != 0:
		return fmt.Errorf("%w: %v", ErrTransfer, p.Mode)
	}
	return nil
}

// idle reports whether no transfer is running.
func (u *Unit) idle() bool {
	return u.regs.Read(hal.CR)&hal.CRStart == 0
}

// poll calls done until it returns true or the timeout expires.
func (u *Unit) poll(done func() bool) bool {
	deadline := time.Now().Add(u.opts.timeout)
	for !done() {
		if time.Now().After(deadline) {
			return done()
		}
		if u.opts.poll > 0 {
			time.Sleep(u.opts.poll)
		} else {
			runtime.Gosched()
		}
	}
	return true
}

// timeout aborts the running transfer and degrades the unit.
func (u *Unit) timeout(what string) error {
	hal.Set(u.regs, hal.CR, hal.CRAbort)
	u.health.CompareAndSwap(int32(HealthOnline), int32(HealthDegraded))
	Logger().Warn("dma2d: peripheral timed out, unit degraded", "waiting_for", what, "timeout", u.opts.timeout)
	return fmt.Errorf("%w after %v waiting for %s", ErrTimeout, u.opts.timeout, what)
}
