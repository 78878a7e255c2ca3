package countdown

import (
	"errors"
	"fmt"
)

// ErrInvalidTarget is returned by Sanitize when the target parameter is
// missing or is not a calendar instant. The request is rejected before any
// rendering is attempted.
var ErrInvalidTarget = errors.New("countdown: invalid target date")

// ErrRendering marks failures of the drawing or encoding capabilities.
// Such failures are not the caller's fault and are safe to retry.
var ErrRendering = errors.New("countdown: rendering failed")

// ErrFrameCount is returned when an animation is requested with no frames.
var ErrFrameCount = errors.New("countdown: frame count must be positive")

// RenderError describes a capability failure during one render step.
// It matches ErrRendering with errors.Is.
type RenderError struct {
	// Op is the step that failed, e.g. "surface", "fill", "text", "encode".
	Op string
	// Frame is the animation frame index, or -1 for static renders.
	Frame int
	Err   error
}

func (e *RenderError) Error() string {
	if e.Frame >= 0 {
		return fmt.Sprintf("countdown: %s frame %d: %v", e.Op, e.Frame, e.Err)
	}
	return fmt.Sprintf("countdown: %s: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Is reports whether target is ErrRendering.
func (e *RenderError) Is(target error) bool { return target == ErrRendering }

func renderErr(op string, frame int, err error) error {
	if err == nil {
		return nil
	}
	var re *RenderError
	if errors.As(err, &re) {
		return err
	}
	return &RenderError{Op: op, Frame: frame, Err: err}
}
