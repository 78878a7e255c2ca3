package encode

import (
	"cmp"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"
	"slices"
)

// maxPaletteSize is the GIF color table limit.
const maxPaletteSize = 256

// GIF encodes frame sequences as animated GIF.
type GIF struct{}

// ContentType returns the MIME type of the encoded output.
func (GIF) ContentType() string { return "image/gif" }

// EncodeFrames writes frames to w as one animated GIF.
// loopCount follows image/gif: 0 loops forever, -1 plays once.
//
// All frames must have the same bounds. The palette is built from the most
// frequent colors across every frame, so frames sharing colors stay stable
// while the animation plays.
func (GIF) EncodeFrames(w io.Writer, frames []Frame, loopCount int) error {
	if len(frames) == 0 {
		return ErrNoFrames
	}
	bounds := frames[0].Image.Bounds()
	for i, f := range frames {
		if f.Image == nil {
			return fmt.Errorf("encode: frame %d has no image", i)
		}
		if b := f.Image.Bounds(); b != bounds {
			return fmt.Errorf("%w: frame %d is %v, want %v", ErrFrameSize, i, b, bounds)
		}
	}

	pal := buildPalette(frames)
	q := newQuantizer(pal)

	anim := &gif.GIF{
		Image:     make([]*image.Paletted, len(frames)),
		Delay:     make([]int, len(frames)),
		LoopCount: loopCount,
		Config: image.Config{
			ColorModel: pal,
			Width:      bounds.Dx(),
			Height:     bounds.Dy(),
		},
	}
	for i, f := range frames {
		anim.Image[i] = q.paletted(f.Image)
		anim.Delay[i] = f.DelayCS()
	}
	return gif.EncodeAll(w, anim)
}

// rgbaKey packs a color into one comparable word.
func rgbaKey(c color.RGBA) uint32 {
	return uint32(c.R)<<24 | uint32(c.G)<<16 | uint32(c.B)<<8 | uint32(c.A)
}

func keyColor(k uint32) color.RGBA {
	return color.RGBA{R: uint8(k >> 24), G: uint8(k >> 16), B: uint8(k >> 8), A: uint8(k)}
}

// pixels calls fn for every pixel of img as 8-bit RGBA.
func pixels(img image.Image, fn func(x, y int, c color.RGBA)) {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := rgba.Pix[rgba.PixOffset(b.Min.X, y):]
			for x := b.Min.X; x < b.Max.X; x++ {
				i := (x - b.Min.X) * 4
				fn(x, y, color.RGBA{R: row[i], G: row[i+1], B: row[i+2], A: row[i+3]})
			}
		}
		return
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			fn(x, y, color.RGBAModel.Convert(img.At(x, y)).(color.RGBA))
		}
	}
}

// buildPalette returns up to 256 colors ordered by frequency, ties broken by
// color value so the result is deterministic.
func buildPalette(frames []Frame) color.Palette {
	counts := make(map[uint32]int)
	for _, f := range frames {
		pixels(f.Image, func(_, _ int, c color.RGBA) {
			counts[rgbaKey(c)]++
		})
	}

	keys := make([]uint32, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b uint32) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	if len(keys) > maxPaletteSize {
		keys = keys[:maxPaletteSize]
	}

	pal := make(color.Palette, len(keys))
	for i, k := range keys {
		pal[i] = keyColor(k)
	}
	return pal
}

// quantizer maps colors to palette indices, memoizing nearest-color lookups
// for colors that did not make it into the palette.
type quantizer struct {
	pal   color.Palette
	index map[uint32]uint8
}

func newQuantizer(pal color.Palette) *quantizer {
	q := &quantizer{pal: pal, index: make(map[uint32]uint8, len(pal))}
	for i, c := range pal {
		q.index[rgbaKey(c.(color.RGBA))] = uint8(i)
	}
	return q
}

func (q *quantizer) lookup(c color.RGBA) uint8 {
	k := rgbaKey(c)
	if i, ok := q.index[k]; ok {
		return i
	}
	i := uint8(q.pal.Index(c))
	q.index[k] = i
	return i
}

func (q *quantizer) paletted(img image.Image) *image.Paletted {
	b := img.Bounds()
	dst := image.NewPaletted(b, q.pal)
	pixels(img, func(x, y int, c color.RGBA) {
		dst.Pix[dst.PixOffset(x, y)] = q.lookup(c)
	})
	return dst
}
