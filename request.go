package countdown

import (
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxLabelLen is the maximum label and sub-label length in characters.
const MaxLabelLen = 64

// Request is a sanitized render request.
type Request struct {
	Target     time.Time
	Label      string
	SubLabel   string
	Accent     string
	Background string
	Text       string

	// Animated records the caller's intent only; the deployment toggle is
	// applied by the Builder.
	Animated bool

	// CacheBust is echoed back in a response header and never rendered.
	CacheBust string
}

// Palette returns the request colors parsed for drawing.
func (r Request) Palette() Palette {
	return Palette{
		Accent:     mustHex(r.Accent),
		Background: mustHex(r.Background),
		Text:       mustHex(r.Text),
	}
}

// Defaults are the fallbacks applied by Sanitize.
type Defaults struct {
	Label      string
	Accent     string
	Background string
	Text       string
}

// Defaults returns the request fallbacks configured in c.
func (c *Config) Defaults() Defaults {
	return Defaults{
		Label:      c.Label,
		Accent:     c.Colors.Accent,
		Background: c.Colors.Background,
		Text:       c.Colors.Text,
	}
}

// targetLayouts are tried in order. Layouts without a zone are read as UTC.
var targetLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
}

// ParseTarget parses an ISO-like date string. It returns ErrInvalidTarget
// when s matches none of the accepted layouts.
func ParseTarget(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidTarget
	}
	for _, layout := range targetLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTarget
}

// Sanitize turns untrusted query parameters into a Request.
//
// Only the target is strictly validated; every other field degrades to its
// default or is truncated rather than failing the request.
func Sanitize(q url.Values, d Defaults) (Request, error) {
	target, err := ParseTarget(q.Get("target"))
	if err != nil {
		return Request{}, err
	}

	label := cleanLabel(q.Get("label"))
	if label == "" {
		label = cleanLabel(d.Label)
	}

	return Request{
		Target:     target,
		Label:      label,
		SubLabel:   cleanLabel(q.Get("sub")),
		Accent:     PickColor(q.Get("accent"), d.Accent),
		Background: PickColor(q.Get("bg"), d.Background),
		Text:       PickColor(q.Get("text"), d.Text),
		Animated:   WantsAnimation(q.Get("animated"), q.Get("format")),
		CacheBust:  q.Get("cb"),
	}, nil
}

// cleanLabel normalizes s to NFC, repairs invalid UTF-8 and truncates it to
// MaxLabelLen characters.
func cleanLabel(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFC.String(strings.ToValidUTF8(s, "�"))
	if utf8.RuneCountInString(s) <= MaxLabelLen {
		return s
	}
	n := 0
	for i := range s {
		if n == MaxLabelLen {
			return s[:i]
		}
		n++
	}
	return s
}
