package countdown

import (
	"bytes"
	"context"
	"image"
	"io"
	"time"

	"github.com/gogpu/countdown/encode"
	"github.com/gogpu/countdown/internal/parallel"
)

// LoopForever is the GIF loop count that replays the clip indefinitely.
const LoopForever = 0

// AnimationEncoder encodes ordered timed frames into a looping animation.
type AnimationEncoder interface {
	EncodeFrames(w io.Writer, frames []encode.Frame, loopCount int) error
}

// Assembler renders a countdown as a sequence of frames and encodes them.
//
// Frame i depicts the countdown at base + i×delay. With the delay derived
// from the bucket width, one loop covers exactly the bucket the base instant
// belongs to.
type Assembler struct {
	renderer *Renderer
	encoder  AnimationEncoder
	pool     *parallel.WorkerPool
	frames   int
	delayCS  int
}

// NewAssembler creates an Assembler producing frames frames delayCS
// centiseconds apart, rendered on up to workers goroutines (0 means
// GOMAXPROCS).
func NewAssembler(r *Renderer, enc AnimationEncoder, frames, delayCS, workers int) *Assembler {
	return &Assembler{
		renderer: r,
		encoder:  enc,
		pool:     parallel.NewWorkerPool(workers),
		frames:   frames,
		delayCS:  max(1, delayCS),
	}
}

// FrameCount returns the number of frames per animation.
func (a *Assembler) FrameCount() int { return a.frames }

// Delay returns the display time of each frame.
func (a *Assembler) Delay() time.Duration {
	return encode.CentisecondsToDuration(a.delayCS)
}

// Frames renders every frame of the animation starting at base.
// Frames are rendered concurrently and returned in order. Any failure, or
// ctx ending, discards the whole sequence.
func (a *Assembler) Frames(ctx context.Context, req Request, base time.Time) ([]encode.Frame, error) {
	if a.frames <= 0 {
		return nil, ErrFrameCount
	}
	delay := a.Delay()
	images := make([]image.Image, a.frames)
	err := a.pool.Run(ctx, a.frames, func(_ context.Context, i int) error {
		img, err := a.renderer.renderFrame(req, base.Add(time.Duration(i)*delay), i)
		if err != nil {
			return err
		}
		images[i] = img
		return nil
	})
	if err != nil {
		return nil, err
	}

	frames := make([]encode.Frame, a.frames)
	for i, img := range images {
		frames[i] = encode.Frame{Image: img, Delay: delay}
	}
	return frames, nil
}

// Assemble renders and encodes the animation starting at base.
func (a *Assembler) Assemble(ctx context.Context, req Request, base time.Time) ([]byte, error) {
	frames, err := a.Frames(ctx, req, base)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := a.encoder.EncodeFrames(&buf, frames, LoopForever); err != nil {
		return nil, renderErr("encode", -1, err)
	}
	return buf.Bytes(), nil
}
