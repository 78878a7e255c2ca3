package encode

import (
	"image"
	"image/png"
	"io"
)

// PNG encodes still images.
type PNG struct {
	// CompressionLevel is passed to image/png. The zero value is
	// png.DefaultCompression.
	CompressionLevel png.CompressionLevel
}

// EncodeImage writes img to w as PNG.
func (e PNG) EncodeImage(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: e.CompressionLevel}
	return enc.Encode(w, img)
}

// ContentType returns the MIME type of the encoded output.
func (PNG) ContentType() string { return "image/png" }
