// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads DMA2D unit, simulator and display settings from
// TOML files.
//
//	[unit]
//	strategy = "area"      # "fixed" or "area"
//	score = 80
//	min_area = 64          # pixels, area strategy only
//	red_blue_swap = false
//	timeout = "100ms"
//	poll_interval = "0s"
//
//	[sim]
//	memory = "1 MiB"
//	base = 0x20000000
//	latency = 4            # status polls per transfer
//	image_cache = "256 KiB" # decoded image budget, "0" keeps all
//
//	[display]
//	width = 480
//	height = 272
//	format = "rgb565"
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/gogpu/dma2d"
	"github.com/gogpu/dma2d/draw"
	"github.com/gogpu/dma2d/sim"
)

// ErrInvalid is returned by Validate for settings out of range.
var ErrInvalid = errors.New("config: invalid setting")

// Score strategies.
const (
	StrategyFixed = "fixed"
	StrategyArea  = "area"
)

// Config is the complete file schema.
type Config struct {
	Unit    UnitConfig    `koanf:"unit"`
	Sim     SimConfig     `koanf:"sim"`
	Display DisplayConfig `koanf:"display"`
}

// UnitConfig holds the DMA2D unit settings.
type UnitConfig struct {
	Strategy     string        `koanf:"strategy"`
	Score        int           `koanf:"score"`
	MinArea      int           `koanf:"min_area"`
	RedBlueSwap  bool          `koanf:"red_blue_swap"`
	Timeout      time.Duration `koanf:"timeout"`
	PollInterval time.Duration `koanf:"poll_interval"`
}

// SimConfig holds the simulated bus settings.
type SimConfig struct {
	Memory     string `koanf:"memory"` // e.g. "512 KiB"
	Base       uint32 `koanf:"base"`
	Latency    int    `koanf:"latency"`
	ImageCache string `koanf:"image_cache"`
}

// DisplayConfig describes the layer rendered by the demo.
type DisplayConfig struct {
	Width  int              `koanf:"width"`
	Height int              `koanf:"height"`
	Format draw.ColorFormat `koanf:"format"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Unit: UnitConfig{
			Strategy: StrategyFixed,
			Score:    dma2d.DefaultScore,
			Timeout:  dma2d.DefaultTimeout,
		},
		Sim: SimConfig{
			Memory:     "1 MiB",
			Base:       0x2000_0000,
			ImageCache: "0",
		},
		Display: DisplayConfig{
			Width:  480,
			Height: 272,
			Format: draw.FormatRGB565,
		},
	}
}

// Load reads the TOML files at paths in order, later files overriding
// earlier ones, on top of Default. Missing files are skipped.
func Load(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		path = filepath.Clean(path)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPaths returns the per-user file followed by ./dma2d.toml.
func DefaultPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "dma2d", "config.toml"))
	}
	return append(paths, "dma2d.toml")
}

// Validate checks every setting.
func (c *Config) Validate() error {
	switch c.Unit.Strategy {
	case StrategyFixed, StrategyArea:
	default:
		return fmt.Errorf("%w: unit.strategy %q", ErrInvalid, c.Unit.Strategy)
	}
	if c.Unit.Score <= 0 {
		return fmt.Errorf("%w: unit.score %d", ErrInvalid, c.Unit.Score)
	}
	if c.Unit.Timeout < 0 || c.Unit.PollInterval < 0 {
		return fmt.Errorf("%w: negative duration", ErrInvalid)
	}
	if _, err := c.MemoryBytes(); err != nil {
		return err
	}
	if _, err := c.ImageCacheBytes(); err != nil {
		return err
	}
	if c.Sim.Latency < 0 {
		return fmt.Errorf("%w: sim.latency %d", ErrInvalid, c.Sim.Latency)
	}
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("%w: display %dx%d", ErrInvalid, c.Display.Width, c.Display.Height)
	}
	if !dma2d.IsDestinationSupported(c.Display.Format) {
		return fmt.Errorf("%w: display.format %v", ErrInvalid, c.Display.Format)
	}
	return nil
}

// MemoryBytes returns the simulated memory size.
func (c *Config) MemoryBytes() (int, error) {
	n, err := humanize.ParseBytes(c.Sim.Memory)
	if err != nil {
		return 0, fmt.Errorf("%w: sim.memory %q: %v", ErrInvalid, c.Sim.Memory, err)
	}
	if n == 0 || n > 1<<30 {
		return 0, fmt.Errorf("%w: sim.memory %q out of range", ErrInvalid, c.Sim.Memory)
	}
	return int(n), nil
}

// ImageCacheBytes returns the decoded image cache budget, 0 for unlimited.
func (c *Config) ImageCacheBytes() (int, error) {
	n, err := humanize.ParseBytes(c.Sim.ImageCache)
	if err != nil {
		return 0, fmt.Errorf("%w: sim.image_cache %q: %v", ErrInvalid, c.Sim.ImageCache, err)
	}
	if n > 1<<30 {
		return 0, fmt.Errorf("%w: sim.image_cache %q out of range", ErrInvalid, c.Sim.ImageCache)
	}
	return int(n), nil
}

// ScoreStrategy returns the configured score strategy.
func (c *Config) ScoreStrategy() dma2d.ScoreStrategy {
	if c.Unit.Strategy == StrategyArea {
		return dma2d.AreaScore(c.Unit.Score, c.Unit.MinArea)
	}
	return dma2d.FixedScore(c.Unit.Score)
}

// UnitOptions turns the unit settings into options for dma2d.New.
func (c *Config) UnitOptions() []dma2d.Option {
	return []dma2d.Option{
		dma2d.WithScore(c.ScoreStrategy()),
		dma2d.WithRedBlueSwap(c.Unit.RedBlueSwap),
		dma2d.WithTimeout(c.Unit.Timeout),
		dma2d.WithPollInterval(c.Unit.PollInterval),
	}
}

// SimOptions turns the simulator settings into options for sim.NewDMA2D.
func (c *Config) SimOptions() []sim.Option {
	var opts []sim.Option
	if c.Sim.Latency > 0 {
		opts = append(opts, sim.WithLatency(c.Sim.Latency))
	}
	return opts
}
