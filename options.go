package countdown

import (
	"time"

	"github.com/gogpu/countdown/surface"
)

// BuilderOption configures a Builder during creation.
//
// Example:
//
//	b := countdown.NewBuilder(cfg,
//		countdown.WithFactory(recording.NewFactory()),
//		countdown.WithClock(func() time.Time { return fixed }),
//	)
type BuilderOption func(*builderOptions)

type builderOptions struct {
	factory   surface.Factory
	still     StillEncoder
	animation AnimationEncoder
	now       func() time.Time
	workers   int
}

// WithFactory sets the surface factory frames are drawn on.
// The default is a raster.Factory using the configured fonts.
func WithFactory(f surface.Factory) BuilderOption {
	return func(o *builderOptions) {
		o.factory = f
	}
}

// WithStillEncoder sets the encoder for static responses.
func WithStillEncoder(e StillEncoder) BuilderOption {
	return func(o *builderOptions) {
		o.still = e
	}
}

// WithAnimationEncoder sets the encoder for animated responses.
func WithAnimationEncoder(e AnimationEncoder) BuilderOption {
	return func(o *builderOptions) {
		o.animation = e
	}
}

// WithClock sets the source of the current time.
func WithClock(now func() time.Time) BuilderOption {
	return func(o *builderOptions) {
		o.now = now
	}
}

// WithWorkers overrides the configured number of frame rendering goroutines.
func WithWorkers(n int) BuilderOption {
	return func(o *builderOptions) {
		o.workers = n
	}
}
