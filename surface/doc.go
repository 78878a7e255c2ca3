// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package surface defines the drawing capabilities the countdown renderer
// consumes.
//
// The renderer never talks to a rasterizer directly. It asks a [Factory] for
// a [Surface] of the canvas size, measures text through the surface's
// [Measurer], and issues fills and text draws against it. This keeps the
// layout and frame logic independent of the pixel backend:
//
//   - raster.Factory draws with github.com/gogpu/gg on the CPU
//   - recording.Factory records the issued commands for tests
//
// # Coordinates
//
// Origin (0,0) is the top-left corner, X grows right and Y grows down.
// Text is anchored at its top-center: DrawText(s, x, y, ...) places the
// horizontal middle of s at x and the top of the font's ascent at y.
//
// # Usage
//
//	s, err := factory.NewSurface(600, 220)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	m := s.Measure("Sale ends in", surface.Font{Size: 26})
//	_ = s.FillRect(0, 0, 600, 220, bg)
//	_ = s.DrawText("Sale ends in", 300, 24, surface.Font{Size: 26}, fg)
//	img, err := s.Image()
package surface
