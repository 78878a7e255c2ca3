package countdown

import (
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func testDefaults() Defaults {
	c := DefaultConfig()
	return c.Defaults()
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-12-31T23:59:59Z", time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)},
		{"2024-12-31T23:59:59.250Z", time.Date(2024, 12, 31, 23, 59, 59, 250e6, time.UTC)},
		{"2024-12-31T23:59:59+02:00", time.Date(2024, 12, 31, 21, 59, 59, 0, time.UTC)},
		{"2024-12-31T23:59:59", time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)},
		{"2024-12-31T23:59", time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC)},
		{"2024-12-31 08:00:00", time.Date(2024, 12, 31, 8, 0, 0, 0, time.UTC)},
		{"2024-12-31", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)},
		{" 2024-12-31 ", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"Tue, 31 Dec 2024 23:59:59 +0000", time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTarget(tt.in)
			if err != nil {
				t.Fatalf("ParseTarget(%q): %v", tt.in, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTarget(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseTargetInvalid(t *testing.T) {
	for _, in := range []string{"", "not-a-date", "2024-13-01", "2024-02-30", "tomorrow", "1700000000"} {
		if _, err := ParseTarget(in); !errors.Is(err, ErrInvalidTarget) {
			t.Errorf("ParseTarget(%q) error = %v, want ErrInvalidTarget", in, err)
		}
	}
}

func TestSanitizeDefaults(t *testing.T) {
	req, err := Sanitize(url.Values{"target": {"2024-12-31T23:59:59Z"}}, testDefaults())
	if err != nil {
		t.Fatal(err)
	}
	if req.Label != DefaultLabel {
		t.Errorf("Label = %q, want %q", req.Label, DefaultLabel)
	}
	if req.SubLabel != "" {
		t.Errorf("SubLabel = %q, want empty", req.SubLabel)
	}
	if req.Accent != DefaultAccent || req.Background != DefaultBackground || req.Text != DefaultText {
		t.Errorf("colors = %s/%s/%s", req.Accent, req.Background, req.Text)
	}
	if req.Animated {
		t.Error("Animated should default to false")
	}
	if req.CacheBust != "" {
		t.Errorf("CacheBust = %q", req.CacheBust)
	}
}

func TestSanitizeOverrides(t *testing.T) {
	q := url.Values{
		"target":   {"2030-01-01T00:00:00Z"},
		"label":    {"Launch in"},
		"sub":      {"Don't miss it"},
		"accent":   {"#f472b6"},
		"bg":       {"#000"},
		"text":     {"#ABCDEF"},
		"animated": {"1"},
		"cb":       {"v42"},
	}
	req, err := Sanitize(q, testDefaults())
	if err != nil {
		t.Fatal(err)
	}
	want := Request{
		Target:     time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		Label:      "Launch in",
		SubLabel:   "Don't miss it",
		Accent:     "#f472b6",
		Background: "#000",
		Text:       "#ABCDEF",
		Animated:   true,
		CacheBust:  "v42",
	}
	if !req.Target.Equal(want.Target) {
		t.Errorf("Target = %v", req.Target)
	}
	req.Target = want.Target
	if req != want {
		t.Errorf("Sanitize = %+v\nwant %+v", req, want)
	}
}

func TestSanitizeInvalidTarget(t *testing.T) {
	for _, q := range []url.Values{
		{},
		{"target": {"not-a-date"}},
		{"target": {""}, "label": {"x"}},
	} {
		if _, err := Sanitize(q, testDefaults()); !errors.Is(err, ErrInvalidTarget) {
			t.Errorf("Sanitize(%v) error = %v, want ErrInvalidTarget", q, err)
		}
	}
}

func TestSanitizeBadColorFallsBack(t *testing.T) {
	q := url.Values{"target": {"2030-01-01"}, "accent": {"not-a-color"}, "bg": {"#12345"}, "text": {"red"}}
	req, err := Sanitize(q, testDefaults())
	if err != nil {
		t.Fatalf("bad colors must not fail the request: %v", err)
	}
	if req.Accent != DefaultAccent || req.Background != DefaultBackground || req.Text != DefaultText {
		t.Errorf("colors = %s/%s/%s, want defaults", req.Accent, req.Background, req.Text)
	}
}

func TestSanitizeTruncatesLabels(t *testing.T) {
	long := strings.Repeat("é", 100)
	q := url.Values{"target": {"2030-01-01"}, "label": {long}, "sub": {strings.Repeat("ab", 50)}}
	req, err := Sanitize(q, testDefaults())
	if err != nil {
		t.Fatal(err)
	}
	if n := utf8.RuneCountInString(req.Label); n != MaxLabelLen {
		t.Errorf("label has %d characters, want %d", n, MaxLabelLen)
	}
	if n := utf8.RuneCountInString(req.SubLabel); n != MaxLabelLen {
		t.Errorf("sub-label has %d characters, want %d", n, MaxLabelLen)
	}
}

func TestCleanLabel(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"Sale", "Sale"},
		{"é", "é"},
		{"bad\xffbyte", "bad�byte"},
	}
	for _, tt := range tests {
		if got := cleanLabel(tt.in); got != tt.want {
			t.Errorf("cleanLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeFormatFlag(t *testing.T) {
	q := url.Values{"target": {"2030-01-01"}, "format": {"GIF"}}
	req, err := Sanitize(q, testDefaults())
	if err != nil {
		t.Fatal(err)
	}
	if !req.Animated {
		t.Error("format=GIF should request animation")
	}
}
