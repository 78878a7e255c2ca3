// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package raster

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"sync"

	gtfont "github.com/go-text/typesetting/font"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Built-in font families.
const (
	FamilyRegular = "Go"
	FamilyMedium  = "Go Medium"
	FamilyBold    = "Go Bold"
)

// fallbackCustomFamily names a custom font whose file carries no family name.
const fallbackCustomFamily = "CustomFont"

// fontFile is one registered font, parsed for drawing and for outlines.
type fontFile struct {
	source  *text.FontSource
	outline *opentype.Font
}

// Option configures a Fonts registry.
type Option func(*Fonts)

// WithCustomFont registers the font file at path under family. An empty
// family uses the name stored in the file. When the font loads, it is used
// for every family lookup.
func WithCustomFont(path, family string) Option {
	return func(f *Fonts) {
		f.customPath = path
		f.customFamily = family
	}
}

// WithLogger sets the logger receiving font registration warnings.
func WithLogger(l *slog.Logger) Option {
	return func(f *Fonts) {
		if l != nil {
			f.logger = l
		}
	}
}

// Fonts is a registry of font families.
//
// Registration happens once, on first use. A missing or unreadable custom
// font is logged at warn level and the built-in families are used instead.
type Fonts struct {
	customPath   string
	customFamily string
	logger       *slog.Logger

	once    sync.Once
	files   map[string]*fontFile
	primary string
	custom  bool
}

// NewFonts creates a font registry.
func NewFonts(opts ...Option) *Fonts {
	f := &Fonts{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Primary returns the family used when a lookup names no known family.
func (f *Fonts) Primary() string {
	f.load()
	return f.primary
}

// Families returns the registered family names, sorted.
func (f *Fonts) Families() []string {
	f.load()
	names := make([]string, 0, len(f.files))
	for name := range f.files {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (f *Fonts) load() {
	f.once.Do(func() {
		f.files = make(map[string]*fontFile, 4)
		builtin := []struct {
			name string
			data []byte
		}{
			{FamilyRegular, goregular.TTF},
			{FamilyMedium, gomedium.TTF},
			{FamilyBold, gobold.TTF},
		}
		for _, b := range builtin {
			ff, err := parseFont(b.data)
			if err != nil {
				// Embedded fonts are known-good.
				panic(fmt.Sprintf("raster: builtin font %s: %v", b.name, err))
			}
			f.files[b.name] = ff
		}
		f.primary = FamilyBold

		if f.customPath == "" {
			return
		}
		name, ff, err := loadCustom(f.customPath, f.customFamily)
		if err != nil {
			f.logger.Warn("raster: custom font not registered, using defaults",
				"path", f.customPath, "error", err)
			return
		}
		f.files[name] = ff
		f.primary = name
		f.custom = true
		f.logger.Info("raster: custom font registered", "path", f.customPath, "family", name)
	})
}

// lookup returns the font for family.
func (f *Fonts) lookup(family string) *fontFile {
	f.load()
	if !f.custom {
		if ff, ok := f.files[family]; ok {
			return ff
		}
	}
	return f.files[f.primary]
}

func loadCustom(path, family string) (string, *fontFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	face, err := gtfont.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return "", nil, fmt.Errorf("parse font: %w", err)
	}
	if family == "" {
		family = face.Describe().Family
	}
	if family == "" {
		family = fallbackCustomFamily
	}
	ff, err := parseFont(data)
	if err != nil {
		return "", nil, err
	}
	return family, ff, nil
}

var errNoOutlines = errors.New("raster: font has no outlines")

func parseFont(data []byte) (*fontFile, error) {
	src, err := text.NewFontSource(data)
	if err != nil {
		return nil, err
	}
	outline, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	if outline.NumGlyphs() == 0 {
		return nil, errNoOutlines
	}
	return &fontFile{source: src, outline: outline}, nil
}
