package recording

import (
	"unicode/utf8"

	"github.com/gogpu/countdown/surface"
)

// MeasureFunc measures a string for a font.
type MeasureFunc func(s string, f surface.Font) surface.Metrics

// Monospace is the default MeasureFunc.
func Monospace(s string, f surface.Font) surface.Metrics {
	if s == "" {
		return surface.Metrics{}
	}
	return surface.Metrics{
		Width:   float64(utf8.RuneCountInString(s)) * f.Size * 0.6,
		Ascent:  f.Size * 0.8,
		Descent: f.Size * 0.2,
	}
}

// Flat measures widths like Monospace but reports no vertical extent,
// like a backend without glyph outlines.
func Flat(s string, f surface.Font) surface.Metrics {
	return surface.Metrics{Width: Monospace(s, f).Width}
}
