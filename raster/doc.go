// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package raster draws countdown frames with the gg software renderer.
//
// A [Factory] hands out [Surface] values backed by a fresh gg.Context each.
// Fonts are registered once per [Fonts] registry, on first use, and are
// read-only afterwards, so a single Factory can be shared by concurrent
// renders.
//
// Text measurement combines two views of the same font file: horizontal
// advances come from gg's text faces, and the ink extents above and below
// the baseline come from the glyph outlines through x/image/font/opentype.
//
//	fonts := raster.NewFonts(raster.WithCustomFont(path, "Brand"))
//	r := countdown.NewRenderer(layout, raster.NewFactory(fonts))
package raster
