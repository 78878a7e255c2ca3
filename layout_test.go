package countdown

import (
	"math"
	"testing"
	"unicode/utf8"

	"github.com/gogpu/countdown/recording"
	"github.com/gogpu/countdown/surface"
)

type measureFunc func(s string, f surface.Font) surface.Metrics

func (m measureFunc) Measure(s string, f surface.Font) surface.Metrics { return m(s, f) }

var monospace = measureFunc(recording.Monospace)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestLayoutPositions(t *testing.T) {
	lc := DefaultLayout()
	in := LayoutInput{Label: "Sale ends in", Parts: Parts{Days: 1, Hours: 2, Minutes: 3, Seconds: 4}}
	p := Layout(in, monospace, lc)

	if p.Width != 600 || p.Height != 220 {
		t.Fatalf("plan size = %dx%d", p.Width, p.Height)
	}
	if p.Background != (Rect{0, 0, 600, 220}) {
		t.Errorf("Background = %+v", p.Background)
	}
	if p.Accent != (Rect{0, 214, 600, 6}) {
		t.Errorf("Accent = %+v", p.Accent)
	}

	// label 26, segment 56+8+20, block 26+24+84 = 134, (220-6-134)/2 = 40
	if !near(p.Label.X, 300) || !near(p.Label.Y, 40) {
		t.Errorf("Label anchor = (%g, %g), want (300, 40)", p.Label.X, p.Label.Y)
	}
	for i, s := range p.Segments {
		if !near(s.Value.Y, 90) {
			t.Errorf("segment %d value Y = %g, want 90", i, s.Value.Y)
		}
		if !near(s.Unit.Y, 154) {
			t.Errorf("segment %d unit Y = %g, want 154", i, s.Unit.Y)
		}
		center := s.Slot.X + s.Slot.W/2
		if !near(s.Value.X, center) || !near(s.Unit.X, center) {
			t.Errorf("segment %d not centered in its slot: value %g unit %g center %g", i, s.Value.X, s.Unit.X, center)
		}
	}
	if p.Sub.Text != "" {
		t.Errorf("Sub = %+v, want none", p.Sub)
	}

	wantValues := []string{"1", "02", "03", "04"}
	wantUnits := []string{"days", "hours", "minutes", "seconds"}
	for i, s := range p.Segments {
		if s.Value.Text != wantValues[i] || s.Unit.Text != wantUnits[i] {
			t.Errorf("segment %d = %q/%q, want %q/%q", i, s.Value.Text, s.Unit.Text, wantValues[i], wantUnits[i])
		}
		if s.Value.Font.Size != lc.ValueSize || s.Unit.Font.Size != lc.UnitSize {
			t.Errorf("segment %d fonts = %v/%v", i, s.Value.Font, s.Unit.Font)
		}
	}
}

func TestLayoutRowCentered(t *testing.T) {
	lc := DefaultLayout()
	p := Layout(LayoutInput{Label: "x", Parts: Parts{Days: 1234}}, monospace, lc)

	first, last := p.Segments[0].Slot, p.Segments[3].Slot
	left := first.X
	right := float64(lc.Width) - (last.X + last.W)
	if !near(left, right) {
		t.Errorf("row not centered: left margin %g, right margin %g", left, right)
	}
	for i := 1; i < 4; i++ {
		prev := p.Segments[i-1].Slot
		gap := p.Segments[i].Slot.X - (prev.X + prev.W)
		if !near(gap, lc.SegmentGap) {
			t.Errorf("gap before segment %d = %g, want %g", i, gap, lc.SegmentGap)
		}
	}
	// "1234" at 56px is wider than "days" at 20px.
	if !near(first.W, 4*56*0.6) {
		t.Errorf("days slot width = %g, want value width", first.W)
	}
	// "seconds" at 20px (84) is wider than "00" at 56px (67.2).
	if !near(last.W, 7*20*0.6) {
		t.Errorf("seconds slot width = %g, want unit width", last.W)
	}
}

func TestLayoutSubLabel(t *testing.T) {
	lc := DefaultLayout()
	p := Layout(LayoutInput{Label: "Sale", SubLabel: "Today only", Parts: Parts{}}, monospace, lc)

	// block 134 + 24 + 18 = 176; (214-176)/2 = 19 < padding 24
	if !near(p.Label.Y, 24) {
		t.Errorf("Label Y = %g, want padding 24", p.Label.Y)
	}
	valueY := 24.0 + 26 + 24
	if !near(p.Segments[0].Value.Y, valueY) {
		t.Errorf("value Y = %g, want %g", p.Segments[0].Value.Y, valueY)
	}
	if p.Sub.Text != "Today only" || !near(p.Sub.X, 300) {
		t.Errorf("Sub = %+v", p.Sub)
	}
	if want := valueY + 84 + 24 + 4; !near(p.Sub.Y, want) {
		t.Errorf("Sub Y = %g, want %g", p.Sub.Y, want)
	}
	if p.Sub.Font.Size != lc.SubSize {
		t.Errorf("Sub font size = %g", p.Sub.Font.Size)
	}
}

func TestLayoutPaddingClamp(t *testing.T) {
	lc := DefaultLayout()
	lc.Height = 100
	p := Layout(LayoutInput{Label: "Sale"}, monospace, lc)
	if !near(p.Label.Y, lc.Padding) {
		t.Errorf("Label Y = %g, want padding %g", p.Label.Y, lc.Padding)
	}
}

// growing reports taller ink for longer strings, which would move the
// baseline if segment heights followed the rendered digits.
var growing = measureFunc(func(s string, f surface.Font) surface.Metrics {
	n := float64(utf8.RuneCountInString(s))
	return surface.Metrics{Width: n * f.Size * 0.6, Ascent: f.Size * (0.5 + 0.1*n), Descent: f.Size * 0.1}
})

func TestLayoutNoVerticalJitter(t *testing.T) {
	lc := DefaultLayout()
	base := Layout(LayoutInput{Label: "Sale", Parts: Parts{Days: 9, Hours: 1}}, growing, lc)
	for _, days := range []int{10, 100, 1000, 0} {
		p := Layout(LayoutInput{Label: "Sale", Parts: Parts{Days: days, Hours: 1}}, growing, lc)
		if p.Label.Y != base.Label.Y {
			t.Errorf("days=%d: label Y %g != %g", days, p.Label.Y, base.Label.Y)
		}
		for i := range p.Segments {
			if p.Segments[i].Value.Y != base.Segments[i].Value.Y || p.Segments[i].Unit.Y != base.Segments[i].Unit.Y {
				t.Errorf("days=%d segment %d: Y (%g, %g) != (%g, %g)", days, i,
					p.Segments[i].Value.Y, p.Segments[i].Unit.Y,
					base.Segments[i].Value.Y, base.Segments[i].Unit.Y)
			}
		}
	}
}

func TestLayoutZeroHeightFallback(t *testing.T) {
	lc := DefaultLayout()
	in := LayoutInput{Label: "Sale", SubLabel: "now", Parts: Parts{Days: 3}}
	flat := Layout(in, measureFunc(recording.Flat), lc)
	mono := Layout(in, monospace, lc)

	// Monospace ascent+descent equals the nominal size, so both layouts
	// must agree vertically.
	if !near(flat.Label.Y, mono.Label.Y) || !near(flat.Sub.Y, mono.Sub.Y) {
		t.Errorf("flat label/sub Y = %g/%g, mono = %g/%g", flat.Label.Y, flat.Sub.Y, mono.Label.Y, mono.Sub.Y)
	}
	for i := range flat.Segments {
		if !near(flat.Segments[i].Unit.Y, mono.Segments[i].Unit.Y) {
			t.Errorf("segment %d unit Y = %g, want %g", i, flat.Segments[i].Unit.Y, mono.Segments[i].Unit.Y)
		}
	}
}

func TestLayoutDeterministic(t *testing.T) {
	lc := DefaultLayout()
	in := LayoutInput{Label: "Sale", SubLabel: "sub", Parts: Parts{Days: 5, Hours: 4, Minutes: 3, Seconds: 2}}
	if Layout(in, monospace, lc) != Layout(in, monospace, lc) {
		t.Error("Layout is not deterministic")
	}
}

func TestSegments(t *testing.T) {
	got := Segments(Parts{Days: 0, Hours: 5, Minutes: 10, Seconds: 0}, UnitLabels{"d", "h", "m", "s"})
	want := [4]Segment{{"0", "d"}, {"05", "h"}, {"10", "m"}, {"00", "s"}}
	if got != want {
		t.Errorf("Segments = %v, want %v", got, want)
	}
}
