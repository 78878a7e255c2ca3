// Package recording provides a surface.Factory that records drawing
// commands instead of rasterizing glyphs.
//
// It is the test double for the countdown renderer: tests inspect the
// ordered commands a frame issued, control text measurement, and inject
// capability failures, all without fonts or a real rasterizer.
//
// # Basic Usage
//
//	f := recording.NewFactory()
//	r := countdown.NewRenderer(cfg, f)
//	img, err := r.Render(req, now)
//
//	for _, rec := range f.Recordings() {
//	    for _, cmd := range rec.Commands() {
//	        fmt.Println(cmd.Type(), cmd)
//	    }
//	}
//
// # Measurement
//
// By default text is measured with [Monospace]: every rune advances
// 0.6 × size, ascent is 0.8 × size and descent 0.2 × size. Supply a custom
// [MeasureFunc] with [WithMeasure] to model other fonts, including
// backends that report no height at all.
//
// # Raster Output
//
// Image returns a real *image.RGBA: rectangles are filled, and each text
// command paints its measured box. The output is deterministic, so it can
// be fed to encoders and compared byte for byte.
package recording
