package recording

import "github.com/gogpu/countdown/surface"

// Backend is the name recording registers under in the surface registry.
// Its priority is below every drawing backend, so it is only used when
// requested by name.
const Backend = "recording"

func init() {
	surface.Register(Backend, 0, func(surface.Options) (surface.Factory, error) {
		return NewFactory(), nil
	})
}
