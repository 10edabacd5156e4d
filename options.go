// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dma2d

import (
	"time"

	"github.com/gogpu/dma2d/hal"
)

// Default synchronisation limits.
const (
	DefaultTimeout      = 100 * time.Millisecond
	DefaultPollInterval = 0
)

// Option configures a Unit during creation.
//
// Example:
//
//	u := dma2d.New(p, regs,
//		dma2d.WithRedBlueSwap(true),
//		dma2d.WithTimeout(20*time.Millisecond),
//	)
type Option func(*options)

type options struct {
	score   ScoreStrategy
	swapRB  bool
	timeout time.Duration
	poll    time.Duration
	cache   hal.Cache
	clock   hal.Clock
}

func defaultOptions() options {
	return options{
		score:   FixedScore(DefaultScore),
		timeout: DefaultTimeout,
		poll:    DefaultPollInterval,
		cache:   hal.NopCache{},
		clock:   hal.NopClock{},
	}
}

// WithScore sets the score strategy. A nil strategy keeps the default.
func WithScore(s ScoreStrategy) Option {
	return func(o *options) {
		if s != nil {
			o.score = s
		}
	}
}

// WithRedBlueSwap sets the RBS bit on every stage and swaps the red and
// blue channels of constant colors. Some silicon revisions and panels
// need it.
func WithRedBlueSwap(swap bool) Option {
	return func(o *options) {
		o.swapRB = swap
	}
}

// WithTimeout bounds every wait for the peripheral. Non-positive values
// keep the default.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithPollInterval sets the sleep between status polls. Zero yields the
// processor instead of sleeping.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.poll = d
		}
	}
}

// WithCache sets the data cache maintained around transfers.
func WithCache(c hal.Cache) Option {
	return func(o *options) {
		if c != nil {
			o.cache = c
		}
	}
}

// WithClock sets the peripheral clock and reset control.
func WithClock(c hal.Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}
