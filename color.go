package countdown

import (
	"errors"
	"image/color"
	"strings"
)

// errBadColor is returned by ParseHex for anything other than #RGB or #RRGGBB.
var errBadColor = errors.New("countdown: color must be #RGB or #RRGGBB")

// Palette holds the three colors a frame is drawn with.
type Palette struct {
	Accent     color.RGBA
	Background color.RGBA
	Text       color.RGBA
}

// ParseHex parses "#RGB" or "#RRGGBB" into an opaque color.
// The leading '#' is required; alpha forms are rejected.
func ParseHex(s string) (color.RGBA, error) {
	if len(s) == 0 || s[0] != '#' {
		return color.RGBA{}, errBadColor
	}
	hex := s[1:]

	var r, g, b uint8
	var ok bool
	switch len(hex) {
	case 3:
		var v [3]uint8
		for i := range 3 {
			if v[i], ok = hexDigit(hex[i]); !ok {
				return color.RGBA{}, errBadColor
			}
		}
		r, g, b = v[0]*17, v[1]*17, v[2]*17
	case 6:
		var v [6]uint8
		for i := range 6 {
			if v[i], ok = hexDigit(hex[i]); !ok {
				return color.RGBA{}, errBadColor
			}
		}
		r, g, b = v[0]<<4|v[1], v[2]<<4|v[3], v[4]<<4|v[5]
	default:
		return color.RGBA{}, errBadColor
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// PickColor returns value trimmed if it is a valid hex color, fallback otherwise.
func PickColor(value, fallback string) string {
	v := strings.TrimSpace(value)
	if _, err := ParseHex(v); err != nil {
		return fallback
	}
	return v
}

// mustHex parses a color already validated by PickColor or the config
// defaults. Invalid input yields opaque black.
func mustHex(s string) color.RGBA {
	c, err := ParseHex(s)
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return c
}
