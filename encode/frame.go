package encode

import (
	"errors"
	"image"
	"time"
)

var (
	// ErrNoFrames is returned when an animation has no frames.
	ErrNoFrames = errors.New("encode: no frames")
	// ErrFrameSize is returned when frames differ in size.
	ErrFrameSize = errors.New("encode: frame size mismatch")
)

// Frame is one rendered image plus how long it is displayed.
// A Frame is immutable once created.
type Frame struct {
	Image image.Image
	Delay time.Duration
}

// DelayCS returns the display time in centiseconds, at least 1.
func (f Frame) DelayCS() int {
	cs := int((f.Delay + 5*time.Millisecond) / (10 * time.Millisecond))
	return max(1, cs)
}

// CentisecondsToDuration converts a GIF delay to a duration.
func CentisecondsToDuration(cs int) time.Duration {
	return time.Duration(cs) * 10 * time.Millisecond
}
