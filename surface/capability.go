// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
)

// Font selects a registered font family at a pixel size.
// An empty Family selects the backend's primary font.
type Font struct {
	Family string
	Size   float64
}

// Metrics describes a measured string.
//
// Ascent and Descent are the ink extents above and below the baseline,
// both non-negative. Backends without real glyph outlines may report zero.
type Metrics struct {
	Width   float64
	Ascent  float64
	Descent float64
}

// Height returns the visual height of the measured string.
// A zero ascent is replaced by nominal so that height-less backends still
// produce a usable layout.
func (m Metrics) Height(nominal float64) float64 {
	ascent := m.Ascent
	if ascent == 0 {
		ascent = nominal
	}
	return ascent + m.Descent
}

// Measurer measures text without drawing it.
type Measurer interface {
	Measure(s string, f Font) Metrics
}

// Surface is a fixed-size drawing target.
//
// A Surface is used by a single goroutine for the duration of one frame.
type Surface interface {
	Measurer

	// Width and Height return the canvas size in pixels.
	Width() int
	Height() int

	// FillRect fills the axis-aligned rectangle with c.
	FillRect(x, y, w, h float64, c color.Color) error

	// DrawText draws s with its top-center at (x, y).
	DrawText(s string, x, y float64, f Font, c color.Color) error

	// Image returns the finished raster. The surface must not be drawn
	// to afterwards.
	Image() (image.Image, error)

	// Close releases backend resources. It is safe to call more than once.
	Close() error
}

// Factory creates surfaces. Implementations must be safe for concurrent use.
type Factory interface {
	NewSurface(width, height int) (Surface, error)
}
