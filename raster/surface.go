// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/countdown/surface"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// ErrFinished is returned when a surface is used after Image or Close.
var ErrFinished = errors.New("raster: surface finished")

// Factory creates gg-backed surfaces. It is safe for concurrent use.
type Factory struct {
	fonts *Fonts
}

// NewFactory creates a Factory drawing with fonts. A nil registry uses the
// built-in families.
func NewFactory(fonts *Fonts) *Factory {
	if fonts == nil {
		fonts = NewFonts()
	}
	return &Factory{fonts: fonts}
}

// Fonts returns the registry the factory draws with.
func (f *Factory) Fonts() *Fonts { return f.fonts }

// NewSurface implements surface.Factory.
func (f *Factory) NewSurface(width, height int) (surface.Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("raster: invalid surface size %dx%d", width, height)
	}
	f.fonts.load()
	dc := gg.NewContext(width, height)
	dc.SetTextMode(gg.TextModeBitmap)
	return &Surface{
		dc:     dc,
		fonts:  f.fonts,
		width:  width,
		height: height,
		faces:  make(map[surface.Font]*face, 4),
	}, nil
}

// face pairs the drawing face with the outline face used for ink bounds.
// Outline faces keep scratch buffers and are not shared between surfaces.
type face struct {
	draw text.Face
	ink  font.Face
}

// Surface is a surface.Surface drawing into a gg.Context.
type Surface struct {
	dc     *gg.Context
	fonts  *Fonts
	width  int
	height int
	faces  map[surface.Font]*face
	done   bool
}

// Width implements surface.Surface.
func (s *Surface) Width() int { return s.width }

// Height implements surface.Surface.
func (s *Surface) Height() int { return s.height }

func (s *Surface) face(f surface.Font) *face {
	if fc, ok := s.faces[f]; ok {
		return fc
	}
	ff := s.fonts.lookup(f.Family)
	fc := &face{draw: ff.source.Face(f.Size)}
	ink, err := opentype.NewFace(ff.outline, &opentype.FaceOptions{
		Size:    f.Size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err == nil {
		fc.ink = ink
	}
	s.faces[f] = fc
	return fc
}

// Measure implements surface.Measurer. Ascent and Descent are the ink
// extents of s; they are zero when the outline face is unavailable.
func (s *Surface) Measure(str string, f surface.Font) surface.Metrics {
	if str == "" {
		return surface.Metrics{}
	}
	fc := s.face(f)
	m := surface.Metrics{Width: fc.draw.Advance(str)}
	if fc.ink == nil {
		return m
	}
	bounds, _ := font.BoundString(fc.ink, str)
	m.Ascent = max(0, -float64(bounds.Min.Y)/64)
	m.Descent = max(0, float64(bounds.Max.Y)/64)
	return m
}

// FillRect implements surface.Surface.
func (s *Surface) FillRect(x, y, w, h float64, c color.Color) error {
	if s.done {
		return ErrFinished
	}
	s.dc.SetColor(c)
	s.dc.DrawRectangle(x, y, w, h)
	return s.dc.Fill()
}

// DrawText implements surface.Surface. The top of the em box is placed at
// y and the advance is centered on x.
func (s *Surface) DrawText(str string, x, y float64, f surface.Font, c color.Color) error {
	if s.done {
		return ErrFinished
	}
	if str == "" {
		return nil
	}
	fc := s.face(f)
	s.dc.SetFont(fc.draw)
	s.dc.SetColor(c)
	s.dc.DrawString(str, x-fc.draw.Advance(str)/2, y+fc.draw.Metrics().Ascent)
	return nil
}

// Image implements surface.Surface.
func (s *Surface) Image() (image.Image, error) {
	if s.done {
		return nil, ErrFinished
	}
	s.done = true
	return s.dc.Image(), nil
}

// Close implements surface.Surface.
func (s *Surface) Close() error {
	s.done = true
	var errs []error
	for _, fc := range s.faces {
		if fc.ink != nil {
			errs = append(errs, fc.ink.Close())
		}
	}
	clear(s.faces)
	errs = append(errs, s.dc.Close())
	return errors.Join(errs...)
}
