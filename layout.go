package countdown

import (
	"strconv"

	"github.com/gogpu/countdown/surface"
)

// heightSamples are the reference strings used to measure segment value
// heights. Measuring a fixed sample instead of the rendered digits keeps the
// baseline still while the digits change from frame to frame.
var heightSamples = [4]string{"888", "88", "88", "88"}

// Segment is one countdown unit: its value and the word drawn beneath it.
type Segment struct {
	Value string
	Unit  string
}

// Segments returns the four canonical segments for p. Days are unpadded;
// hours, minutes and seconds always have two digits.
func Segments(p Parts, u UnitLabels) [4]Segment {
	return [4]Segment{
		{Value: strconv.Itoa(p.Days), Unit: u.Days},
		{Value: Pad(p.Hours), Unit: u.Hours},
		{Value: Pad(p.Minutes), Unit: u.Minutes},
		{Value: Pad(p.Seconds), Unit: u.Seconds},
	}
}

// Rect is a fill rectangle in canvas pixels.
type Rect struct {
	X, Y, W, H float64
}

// TextItem is a string anchored at its top-center.
type TextItem struct {
	Text string
	X, Y float64
	Font surface.Font
}

// SegmentItems are the placed value and unit of one segment, plus the slot
// the segment occupies in the row.
type SegmentItems struct {
	Value TextItem
	Unit  TextItem
	Slot  Rect
}

// Plan holds every draw position for one frame.
// A Plan is a value: it is computed per frame and never mutated.
type Plan struct {
	Width, Height int
	Background    Rect
	Accent        Rect
	Label         TextItem
	Segments      [4]SegmentItems
	// Sub is the sub-label; Sub.Text is empty when there is none.
	Sub TextItem
}

// LayoutInput is what varies between frames and requests.
type LayoutInput struct {
	Label    string
	SubLabel string
	Parts    Parts
}

// Layout computes the draw positions for in, measuring text with m.
//
// The label sits at the top, the four segments form a horizontally centered
// row below it, and the optional sub-label sits underneath. The whole block
// is vertically centered above the accent bar but never starts closer than
// lc.Padding to the top edge.
func Layout(in LayoutInput, m surface.Measurer, lc LayoutConfig) Plan {
	w, h := float64(lc.Width), float64(lc.Height)

	labelFont := surface.Font{Family: lc.LabelFamily, Size: lc.LabelSize}
	valueFont := surface.Font{Family: lc.ValueFamily, Size: lc.ValueSize}
	unitFont := surface.Font{Family: lc.ValueFamily, Size: lc.UnitSize}
	subFont := surface.Font{Family: lc.ValueFamily, Size: lc.SubSize}

	labelHeight := m.Measure(in.Label, labelFont).Height(lc.LabelSize)

	segs := Segments(in.Parts, lc.Units)
	var (
		widths, heights [4]float64
		valueWidths     [4]float64
		unitWidths      [4]float64
		valueHeights    [4]float64
		rowWidth        float64
		maxSegment      float64
	)
	for i, seg := range segs {
		valueHeights[i] = m.Measure(heightSamples[i], valueFont).Height(lc.ValueSize)
		valueWidths[i] = m.Measure(seg.Value, valueFont).Width

		unit := m.Measure(seg.Unit, unitFont)
		unitWidths[i] = unit.Width

		widths[i] = max(valueWidths[i], unitWidths[i])
		heights[i] = valueHeights[i] + lc.UnitGap + unit.Height(lc.UnitSize)
		rowWidth += widths[i]
		maxSegment = max(maxSegment, heights[i])
	}
	rowWidth += lc.SegmentGap * float64(len(segs)-1)

	var subHeight float64
	if in.SubLabel != "" {
		subHeight = m.Measure(in.SubLabel, subFont).Height(lc.SubSize)
	}

	block := labelHeight + lc.LabelGap + maxSegment
	if in.SubLabel != "" {
		block += lc.SubGap + subHeight
	}
	startY := max(lc.Padding, (h-lc.AccentHeight-block)/2)

	plan := Plan{
		Width:      lc.Width,
		Height:     lc.Height,
		Background: Rect{X: 0, Y: 0, W: w, H: h},
		Accent:     Rect{X: 0, Y: h - lc.AccentHeight, W: w, H: lc.AccentHeight},
		Label:      TextItem{Text: in.Label, X: w / 2, Y: startY, Font: labelFont},
	}

	valueY := startY + labelHeight + lc.LabelGap
	x := (w - rowWidth) / 2
	for i, seg := range segs {
		center := x + widths[i]/2
		plan.Segments[i] = SegmentItems{
			Value: TextItem{Text: seg.Value, X: center, Y: valueY, Font: valueFont},
			Unit:  TextItem{Text: seg.Unit, X: center, Y: valueY + valueHeights[i] + lc.UnitGap, Font: unitFont},
			Slot:  Rect{X: x, Y: valueY, W: widths[i], H: heights[i]},
		}
		x += widths[i] + lc.SegmentGap
	}

	if in.SubLabel != "" {
		plan.Sub = TextItem{
			Text: in.SubLabel,
			X:    w / 2,
			Y:    valueY + maxSegment + lc.SubGap + lc.SubExtra,
			Font: subFont,
		}
	}
	return plan
}
