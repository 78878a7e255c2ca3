package countdown

import (
	"bytes"
	"errors"
	"image/png"
	"slices"
	"strconv"
	"testing"
	"time"

	"github.com/gogpu/countdown/recording"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func testRequest() Request {
	return Request{
		Target:     epoch.Add(26*time.Hour + 3*time.Minute + 4*time.Second),
		Label:      "Ends",
		SubLabel:   "Hurry",
		Accent:     DefaultAccent,
		Background: DefaultBackground,
		Text:       DefaultText,
	}
}

func TestRenderDrawOrder(t *testing.T) {
	f := recording.NewFactory()
	r := NewRenderer(DefaultLayout(), f)

	img, err := r.Render(testRequest(), epoch)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if b := img.Bounds(); b.Dx() != 600 || b.Dy() != 220 {
		t.Errorf("image size = %v", b)
	}

	recs := f.Recordings()
	if len(recs) != 1 {
		t.Fatalf("recordings = %d, want 1", len(recs))
	}
	cmds := recs[0].Commands()
	if len(cmds) != 12 {
		t.Fatalf("commands = %d, want 12: %v", len(cmds), cmds)
	}

	pal := testRequest().Palette()
	bg, ok := cmds[0].(recording.FillRectCommand)
	if !ok || bg.Color != pal.Background || bg.W != 600 || bg.H != 220 {
		t.Errorf("first command = %v, want background fill", cmds[0])
	}
	accent, ok := cmds[1].(recording.FillRectCommand)
	if !ok || accent.Color != pal.Accent || accent.Y != 214 {
		t.Errorf("second command = %v, want accent bar", cmds[1])
	}

	var texts []string
	for _, c := range recs[0].Texts() {
		texts = append(texts, c.Text)
		if c.Color != pal.Text {
			t.Errorf("%q drawn in %v, want %v", c.Text, c.Color, pal.Text)
		}
	}
	want := []string{"Ends", "1", "days", "02", "hours", "03", "minutes", "04", "seconds", "Hurry"}
	if !slices.Equal(texts, want) {
		t.Errorf("texts = %q, want %q", texts, want)
	}
}

func TestRenderWithoutSubLabel(t *testing.T) {
	f := recording.NewFactory()
	req := testRequest()
	req.SubLabel = ""
	if _, err := NewRenderer(DefaultLayout(), f).Render(req, epoch); err != nil {
		t.Fatal(err)
	}
	if n := len(f.Recordings()[0].Texts()); n != 9 {
		t.Errorf("texts = %d, want 9", n)
	}
}

func TestRenderPastTarget(t *testing.T) {
	f := recording.NewFactory()
	if _, err := NewRenderer(DefaultLayout(), f).Render(testRequest(), epoch.Add(72*time.Hour)); err != nil {
		t.Fatal(err)
	}
	texts := f.Recordings()[0].Texts()
	for i, want := range []string{"0", "00", "00", "00"} {
		if got := texts[1+2*i].Text; got != want {
			t.Errorf("segment %d = %q, want %q", i, got, want)
		}
	}
}

func TestRenderFarFuture(t *testing.T) {
	f := recording.NewFactory()
	req := testRequest()
	req.Target = time.Date(2400, 1, 1, 0, 0, 0, 0, time.UTC)
	if _, err := NewRenderer(DefaultLayout(), f).Render(req, epoch); err != nil {
		t.Fatal(err)
	}
	days := (req.Target.Unix() - epoch.Unix()) / 86400
	if got, want := f.Recordings()[0].Texts()[1].Text, strconv.FormatInt(days, 10); got != want {
		t.Errorf("days = %s, want %s", got, want)
	}
}

func TestRenderFailures(t *testing.T) {
	tests := []struct {
		name string
		opt  recording.Option
		op   string
	}{
		{"surface", recording.WithSurfaceError(recording.ErrInjected), "surface"},
		{"background", recording.WithFailure(recording.CmdFillRect, 0), "fill"},
		{"accent", recording.WithFailure(recording.CmdFillRect, 1), "fill"},
		{"label", recording.WithFailure(recording.CmdDrawText, 0), "text"},
		{"sub-label", recording.WithFailure(recording.CmdDrawText, 9), "text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRenderer(DefaultLayout(), recording.NewFactory(tt.opt))
			img, err := r.Render(testRequest(), epoch)
			if img != nil {
				t.Error("Render() returned an image on failure")
			}
			if !errors.Is(err, ErrRendering) {
				t.Fatalf("error = %v, want ErrRendering", err)
			}
			if !errors.Is(err, recording.ErrInjected) {
				t.Errorf("error = %v, want it to wrap the capability error", err)
			}
			var re *RenderError
			if !errors.As(err, &re) || re.Op != tt.op || re.Frame != -1 {
				t.Errorf("RenderError = %+v, want op %q frame -1", re, tt.op)
			}
		})
	}
}

func TestRenderDeterministic(t *testing.T) {
	r := NewRenderer(DefaultLayout(), recording.NewFactory())
	encode := func() []byte {
		img, err := r.Render(testRequest(), epoch)
		if err != nil {
			t.Fatal(err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			t.Fatal(err)
		}
		return buf.Bytes()
	}
	if !bytes.Equal(encode(), encode()) {
		t.Error("identical renders produced different images")
	}
}

func TestNewRendererDefaults(t *testing.T) {
	r := NewRenderer(LayoutConfig{}, recording.NewFactory())
	if got := r.Layout(); got != DefaultLayout() {
		t.Errorf("Layout() = %+v, want defaults", got)
	}
}
