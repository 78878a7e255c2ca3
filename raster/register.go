// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import "github.com/gogpu/countdown/surface"

// Backend is the name raster registers under in the surface registry.
const Backend = "raster"

func init() {
	surface.Register(Backend, 10, Open)
}

// Open creates a Factory from surface options.
func Open(opts surface.Options) (surface.Factory, error) {
	return NewFactory(NewFonts(
		WithCustomFont(opts.FontPath, opts.FontFamily),
		WithLogger(opts.Logger),
	)), nil
}
