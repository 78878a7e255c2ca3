package recording

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/gogpu/countdown/surface"
)

// ErrInjected is returned by operations configured to fail with WithFailure.
var ErrInjected = errors.New("recording: injected failure")

// Option configures a Factory.
type Option func(*Factory)

// WithMeasure sets the text measurement used by every surface.
func WithMeasure(m MeasureFunc) Option {
	return func(f *Factory) {
		if m != nil {
			f.measure = m
		}
	}
}

// WithFailure makes the n-th (0-based) command of type t fail on every
// surface. A negative n fails every command of that type.
func WithFailure(t CommandType, n int) Option {
	return func(f *Factory) {
		f.failType = t
		f.failAt = n
		f.fail = true
	}
}

// WithSurfaceError makes NewSurface fail.
func WithSurfaceError(err error) Option {
	return func(f *Factory) {
		f.newErr = err
	}
}

// Factory creates recording surfaces and keeps every finished Recording.
// Factory is safe for concurrent use.
type Factory struct {
	measure  MeasureFunc
	newErr   error
	fail     bool
	failType CommandType
	failAt   int

	mu         sync.Mutex
	recordings []*Recording
}

// NewFactory creates a Factory with Monospace measurement.
func NewFactory(opts ...Option) *Factory {
	f := &Factory{measure: Monospace}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewSurface implements surface.Factory.
func (f *Factory) NewSurface(width, height int) (surface.Surface, error) {
	if f.newErr != nil {
		return nil, f.newErr
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("recording: invalid dimensions %dx%d", width, height)
	}
	return &Recorder{
		factory:  f,
		width:    width,
		height:   height,
		commands: make([]Command, 0, 16),
	}, nil
}

// Recordings returns the recordings of all surfaces whose Image was taken,
// in completion order.
func (f *Factory) Recordings() []*Recording {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*Recording, len(f.recordings))
	copy(out, f.recordings)
	return out
}

// Reset forgets all recordings.
func (f *Factory) Reset() {
	f.mu.Lock()
	f.recordings = nil
	f.mu.Unlock()
}

func (f *Factory) keep(r *Recording) {
	f.mu.Lock()
	f.recordings = append(f.recordings, r)
	f.mu.Unlock()
}

// Recorder is a surface.Surface that records commands.
// The Recorder is not safe for concurrent use.
type Recorder struct {
	factory       *Factory
	width, height int
	commands      []Command
	counts        [len(commandTypeNames)]int
	finished      bool
}

// Width implements surface.Surface.
func (r *Recorder) Width() int { return r.width }

// Height implements surface.Surface.
func (r *Recorder) Height() int { return r.height }

// Measure implements surface.Measurer.
func (r *Recorder) Measure(s string, f surface.Font) surface.Metrics {
	return r.factory.measure(s, f)
}

// FillRect implements surface.Surface.
func (r *Recorder) FillRect(x, y, w, h float64, c color.Color) error {
	if err := r.check(CmdFillRect); err != nil {
		return err
	}
	r.commands = append(r.commands, FillRectCommand{X: x, Y: y, W: w, H: h, Color: toRGBA(c)})
	return nil
}

// DrawText implements surface.Surface.
func (r *Recorder) DrawText(s string, x, y float64, f surface.Font, c color.Color) error {
	if err := r.check(CmdDrawText); err != nil {
		return err
	}
	r.commands = append(r.commands, DrawTextCommand{Text: s, X: x, Y: y, Font: f, Color: toRGBA(c)})
	return nil
}

func (r *Recorder) check(t CommandType) error {
	if r.finished {
		return errors.New("recording: surface already finished")
	}
	n := r.counts[t]
	r.counts[t]++
	if r.factory.fail && r.factory.failType == t && (r.factory.failAt < 0 || r.factory.failAt == n) {
		return fmt.Errorf("%s #%d: %w", t, n, ErrInjected)
	}
	return nil
}

// Image implements surface.Surface. It finishes the recording, hands it to
// the factory and paints the recorded commands.
func (r *Recorder) Image() (image.Image, error) {
	if r.finished {
		return nil, errors.New("recording: Image called twice")
	}
	r.finished = true
	rec := &Recording{width: r.width, height: r.height, commands: r.commands}
	r.factory.keep(rec)
	return rec.paint(r.factory.measure), nil
}

// Close implements surface.Surface.
func (r *Recorder) Close() error { return nil }

// Recording is an immutable list of the commands one surface received.
type Recording struct {
	width, height int
	commands      []Command
}

// Width returns the width of the recorded canvas.
func (r *Recording) Width() int { return r.width }

// Height returns the height of the recorded canvas.
func (r *Recording) Height() int { return r.height }

// Commands returns the recorded commands in issue order.
func (r *Recording) Commands() []Command { return r.commands }

// Texts returns the DrawText commands in issue order.
func (r *Recording) Texts() []DrawTextCommand {
	var out []DrawTextCommand
	for _, c := range r.commands {
		if t, ok := c.(DrawTextCommand); ok {
			out = append(out, t)
		}
	}
	return out
}

func (r *Recording) paint(measure MeasureFunc) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	for _, c := range r.commands {
		switch c := c.(type) {
		case FillRectCommand:
			fill(img, c.X, c.Y, c.W, c.H, c.Color)
		case DrawTextCommand:
			m := measure(c.Text, c.Font)
			fill(img, c.X-m.Width/2, c.Y, m.Width, m.Height(c.Font.Size), c.Color)
		}
	}
	return img
}

func fill(img *image.RGBA, x, y, w, h float64, c color.RGBA) {
	rect := image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+w)), int(math.Round(y+h)),
	).Intersect(img.Bounds())
	draw.Draw(img, rect, image.NewUniform(c), image.Point{}, draw.Over)
}

func toRGBA(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{}
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}
