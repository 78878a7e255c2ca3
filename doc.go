// Package countdown renders countdown-to-a-date images for embedding where
// scripts cannot run, such as email.
//
// # Overview
//
// A request names a target instant plus optional label, sub-label and
// colors. The package answers with a PNG, or a looping GIF when animation
// is both requested and allowed, showing the days, hours, minutes and
// seconds left.
//
//	b := countdown.NewBuilder(countdown.DefaultConfig())
//	resp, err := b.Build(ctx, r.URL.Query())
//
// # Time buckets
//
// The current time is quantized to the start of a bucket (60 seconds by
// default) before rendering. Every request inside one bucket draws the same
// image, so CDNs can cache it with s-maxage equal to the bucket width. An
// animation starts at the bucket start and spreads its frames over the
// bucket, so one loop plays through exactly the time the image is cached
// for.
//
// # Pipeline
//
//	query → Sanitize → Request → Layout → Renderer → [Assembler] → Builder
//
// Layout is a pure function of text measurements and canvas size.
// [Renderer] draws a [Plan] through the surface.Surface capability, and
// [Assembler] renders frames concurrently before handing them to an
// [AnimationEncoder]. The raster package provides the gg-backed surfaces
// used by default; the recording package provides a surface that records
// draw instructions for tests.
//
// # Logging
//
// The package is silent by default. Use [SetLogger] to receive warnings,
// such as an animation falling back to a static image.
//
// # Errors
//
// Invalid targets are reported as a 400 [Response], never as an error.
// Capability failures are returned as *[RenderError], which matches
// [ErrRendering].
package countdown
