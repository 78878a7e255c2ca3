package countdown

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gogpu/countdown/encode"
	"github.com/gogpu/countdown/raster"
	"github.com/gogpu/countdown/surface"
)

// Content types of rendered responses.
const (
	ContentTypePNG  = "image/png"
	ContentTypeGIF  = "image/gif"
	ContentTypeJSON = "application/json"
)

// Response headers set on rendered images.
const (
	HeaderBucket    = "X-Countdown-Bucket"
	HeaderCacheBust = "X-Countdown-CB"
)

// Client-facing error messages.
const (
	MsgInvalidTarget = "Provide target query param as an ISO date, e.g. 2024-12-31T23:59:59Z"
	MsgRenderFailed  = "Failed to render countdown image"
)

// StillEncoder encodes a single image.
type StillEncoder interface {
	EncodeImage(w io.Writer, img image.Image) error
}

// Response is a transport-independent HTTP response.
type Response struct {
	Status int
	Header http.Header
	Body   []byte

	// Bucket is the start of the cache window the image depicts.
	Bucket time.Time
	// Animated reports whether Body is a GIF animation.
	Animated bool
}

// Builder turns raw query parameters into countdown image responses.
// A Builder is safe for concurrent use.
type Builder struct {
	cfg       Config
	renderer  *Renderer
	assembler *Assembler
	still     StillEncoder
	now       func() time.Time
}

// NewBuilder creates a Builder for cfg. Callers should start from
// DefaultConfig: zero numeric, string and color fields take their defaults,
// but a zero AllowAnimation disables GIF output.
func NewBuilder(cfg Config, opts ...BuilderOption) *Builder {
	cfg.defaults()
	o := builderOptions{
		still:     encode.PNG{},
		animation: encode.GIF{},
		now:       time.Now,
		workers:   cfg.Workers,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.factory == nil {
		o.factory = openBackend(cfg)
	}

	r := NewRenderer(cfg.Layout, o.factory)
	return &Builder{
		cfg:       cfg,
		renderer:  r,
		assembler: NewAssembler(r, o.animation, cfg.Frames, cfg.FrameDelay(), o.workers),
		still:     o.still,
		now:       o.now,
	}
}

// openBackend opens the configured surface backend, falling back to raster
// when it is unknown or fails to open.
func openBackend(cfg Config) surface.Factory {
	opts := surface.Options{
		FontPath:   cfg.FontPath,
		FontFamily: cfg.FontFamily,
		Logger:     Logger(),
	}
	f, err := surface.Open(cfg.Backend, opts)
	if err == nil {
		return f
	}
	Logger().Warn("countdown: surface backend unavailable, using raster",
		"backend", cfg.Backend, "error", err)
	f, _ = raster.Open(opts)
	return f
}

// Config returns the effective configuration.
func (b *Builder) Config() Config { return b.cfg }

// Build renders the countdown described by q.
//
// An invalid target yields a 400 response and a nil error; nothing is
// rendered. Animation is used only when both the request asks for it and
// the configuration allows it; otherwise a PNG is served. Rendering
// failures are returned as *RenderError.
func (b *Builder) Build(ctx context.Context, q url.Values) (*Response, error) {
	req, err := Sanitize(q, b.cfg.Defaults())
	if err != nil {
		Logger().Debug("countdown: request rejected", "error", err)
		return Rejected(), nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bucketMs := Bucket(b.now().UnixMilli(), b.cfg.BucketSeconds)
	at := time.UnixMilli(bucketMs)

	animate := req.Animated && b.cfg.AllowAnimation
	var body []byte
	if animate {
		body, err = b.animate(ctx, req, at)
		if body == nil && err == nil {
			animate = false
		}
	}
	if !animate {
		body, err = b.static(req, at)
	}
	if err != nil {
		Logger().Error("countdown: render failed", "error", err, "animated", animate)
		return nil, err
	}

	if animate {
		Logger().Debug("countdown: rendered", "bucket", bucketMs, "animated", true,
			"frames", b.assembler.FrameCount(), "delay_cs", b.cfg.FrameDelay(), "bytes", len(body))
	} else {
		Logger().Debug("countdown: rendered", "bucket", bucketMs, "animated", false, "bytes", len(body))
	}

	h := make(http.Header, 4)
	h.Set("Content-Type", ContentTypePNG)
	if animate {
		h.Set("Content-Type", ContentTypeGIF)
	}
	h.Set("Cache-Control", b.cfg.CacheControl())
	h.Set(HeaderBucket, strconv.FormatInt(bucketMs, 10))
	if req.CacheBust != "" {
		h.Set(HeaderCacheBust, req.CacheBust)
	}
	return &Response{
		Status:   http.StatusOK,
		Header:   h,
		Body:     body,
		Bucket:   at,
		Animated: animate,
	}, nil
}

// animate assembles the GIF. It returns nil, nil when the animation
// deadline passed and a static image should be served instead.
func (b *Builder) animate(ctx context.Context, req Request, at time.Time) ([]byte, error) {
	actx := ctx
	if b.cfg.AnimationTimeout > 0 {
		var cancel context.CancelFunc
		actx, cancel = context.WithTimeout(ctx, b.cfg.AnimationTimeout)
		defer cancel()
	}
	body, err := b.assembler.Assemble(actx, req, at)
	if err != nil && errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
		Logger().Warn("countdown: animation timed out, serving static image",
			"timeout", b.cfg.AnimationTimeout)
		return nil, nil
	}
	return body, err
}

func (b *Builder) static(req Request, at time.Time) ([]byte, error) {
	img, err := b.renderer.Render(req, at)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := b.still.EncodeImage(&buf, img); err != nil {
		return nil, renderErr("encode", -1, err)
	}
	return buf.Bytes(), nil
}

// Rejected returns the 400 response for a request without a usable target.
func Rejected() *Response {
	return jsonError(http.StatusBadRequest, MsgInvalidTarget)
}

// Failed returns the 500 response for a rendering failure.
func Failed() *Response {
	return jsonError(http.StatusInternalServerError, MsgRenderFailed)
}

func jsonError(status int, msg string) *Response {
	body, _ := json.Marshal(struct {
		Error string `json:"error"`
	}{msg})
	h := make(http.Header, 2)
	h.Set("Content-Type", ContentTypeJSON)
	h.Set("Cache-Control", "no-store")
	return &Response{Status: status, Header: h, Body: body}
}
