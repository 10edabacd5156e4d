// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package dma2d

import (
	"testing"

	"github.com/gogpu/dma2d/draw"
	"github.com/gogpu/dma2d/hal"
)

func TestHardwareFormat(t *testing.T) {
	tests := []struct {
		f    draw.ColorFormat
		want hal.ColorMode
	}{
		{draw.FormatARGB8888, hal.CMARGB8888},
		{draw.FormatXRGB8888, hal.CMARGB8888},
		{draw.FormatRGB888, hal.CMRGB888},
		{draw.FormatRGB565, hal.CMRGB565},
		{draw.FormatUnknown, hal.CMUnsupported},
		{draw.FormatL8, hal.CMUnsupported},
		{draw.FormatA8, hal.CMUnsupported},
		{draw.FormatAL88, hal.CMUnsupported},
		{draw.FormatARGB8888Premultiplied, hal.CMUnsupported},
		{draw.ColorFormat(200), hal.CMUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.f.String(), func(t *testing.T) {
			if got := HardwareFormat(tt.f); got != tt.want {
				t.Errorf("HardwareFormat(%v) = %v, want %v", tt.f, got, tt.want)
			}
			supported := tt.want != hal.CMUnsupported
			if got := IsSourceSupported(tt.f); got != supported {
				t.Errorf("IsSourceSupported(%v) = %v, want %v", tt.f, got, supported)
			}
			if got := IsDestinationSupported(tt.f); got != supported {
				t.Errorf("IsDestinationSupported(%v) = %v, want %v", tt.f, got, supported)
			}
		})
	}
}

func TestPackColor(t *testing.T) {
	c := draw.ColorHex(0x1188FF)
	tests := []struct {
		name string
		cm   hal.ColorMode
		swap bool
		want uint32
	}{
		{"argb8888", hal.CMARGB8888, false, 0xFF1188FF},
		{"argb8888 swapped", hal.CMARGB8888, true, 0xFFFF8811},
		{"rgb888", hal.CMRGB888, false, 0x001188FF},
		{"rgb565", hal.CMRGB565, false, 0x2<<11 | 0x22<<5 | 0x1F},
		{"rgb565 swapped", hal.CMRGB565, true, 0x1F<<11 | 0x22<<5 | 0x2},
		{"unsupported", hal.CMA8, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := packColor(c, tt.cm, tt.swap); got != tt.want {
				t.Errorf("packColor() = %#08x, want %#08x", got, tt.want)
			}
		})
	}
}

func TestRGB(t *testing.T) {
	c := draw.ColorHex(0x123456)
	if got := rgb(c, false); got != 0x123456 {
		t.Errorf("rgb() = %#06x", got)
	}
	if got := rgb(c, true); got != 0x563412 {
		t.Errorf("rgb(swap) = %#06x", got)
	}
}
