package countdown

import (
	"image"
	"time"

	"github.com/gogpu/countdown/surface"
)

// Renderer draws single countdown frames.
// Renderer holds no mutable state and is safe for concurrent use as long
// as its Factory is.
type Renderer struct {
	layout  LayoutConfig
	factory surface.Factory
}

// NewRenderer creates a Renderer drawing on surfaces from f.
func NewRenderer(lc LayoutConfig, f surface.Factory) *Renderer {
	lc.defaults()
	return &Renderer{layout: lc, factory: f}
}

// Layout returns the layout parameters the renderer draws with.
func (r *Renderer) Layout() LayoutConfig { return r.layout }

// Render draws the countdown for req as seen at instant at.
func (r *Renderer) Render(req Request, at time.Time) (image.Image, error) {
	return r.renderFrame(req, at, -1)
}

func (r *Renderer) renderFrame(req Request, at time.Time, frame int) (image.Image, error) {
	s, err := r.factory.NewSurface(r.layout.Width, r.layout.Height)
	if err != nil {
		return nil, renderErr("surface", frame, err)
	}
	defer s.Close()

	plan := Layout(LayoutInput{
		Label:    req.Label,
		SubLabel: req.SubLabel,
		Parts:    Remaining(req.Target, at),
	}, s, r.layout)

	if err := drawPlan(s, plan, req.Palette(), frame); err != nil {
		return nil, err
	}
	img, err := s.Image()
	if err != nil {
		return nil, renderErr("image", frame, err)
	}
	return img, nil
}

// drawPlan issues the draw instructions of p in order: background, accent
// bar, label, segment values and units, sub-label.
func drawPlan(s surface.Surface, p Plan, pal Palette, frame int) error {
	bg, accent := p.Background, p.Accent
	if err := s.FillRect(bg.X, bg.Y, bg.W, bg.H, pal.Background); err != nil {
		return renderErr("fill", frame, err)
	}
	if err := s.FillRect(accent.X, accent.Y, accent.W, accent.H, pal.Accent); err != nil {
		return renderErr("fill", frame, err)
	}

	items := make([]TextItem, 0, 10)
	items = append(items, p.Label)
	for _, seg := range p.Segments {
		items = append(items, seg.Value, seg.Unit)
	}
	if p.Sub.Text != "" {
		items = append(items, p.Sub)
	}
	for _, it := range items {
		if err := s.DrawText(it.Text, it.X, it.Y, it.Font, pal.Text); err != nil {
			return renderErr("text", frame, err)
		}
	}
	return nil
}
