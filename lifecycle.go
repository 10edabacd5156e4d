// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dma2d

import (
	"fmt"

	"github.com/gogpu/dma2d/hal"
)

// Init enables the peripheral clock, disables the AHB dead time and
// registers the unit with the host. Calling Init on an online unit does
// nothing; calling it on a degraded unit brings it back online.
func (u *Unit) Init() error {
	u.life.Lock()
	defer u.life.Unlock()

	switch u.Health() {
	case HealthOnline:
		return nil
	case HealthDegraded:
		u.health.Store(int32(HealthOnline))
		Logger().Info("dma2d: unit recovered")
		return nil
	}

	u.opts.clock.Enable()
	u.regs.Write(hal.AMTCR, 0)
	u.health.Store(int32(HealthOnline))
	u.host.Register(u)
	Logger().Info("dma2d: unit online", "id", UnitID, "score", u.opts.score, "swap_rb", u.opts.swapRB)
	return nil
}

// Shutdown stops the peripheral, gates its clock, pulses its reset line
// and unregisters the unit. It waits for a running Dispatch to finish.
// Calling Shutdown on an offline unit does nothing.
//
// If the engine does not stop within the timeout it is aborted and
// Shutdown completes, returning ErrTimeout.
func (u *Unit) Shutdown() error {
	u.life.Lock()
	defer u.life.Unlock()

	if u.Health() == HealthOffline {
		return nil
	}

	u.busy.Lock()
	defer u.busy.Unlock()

	var err error
	hal.Clear(u.regs, hal.CR, hal.CRStart)
	if !u.poll(u.idle) {
		hal.Set(u.regs, hal.CR, hal.CRAbort)
		err = fmt.Errorf("dma2d: shutdown: %w", ErrTimeout)
	}

	u.opts.clock.Disable()
	u.opts.clock.Reset()
	u.health.Store(int32(HealthOffline))
	u.host.Unregister(UnitID)
	Logger().Info("dma2d: unit offline")
	return err
}

// Delete releases unit-private resources. The unit owns none.
func (u *Unit) Delete() error { return nil }
