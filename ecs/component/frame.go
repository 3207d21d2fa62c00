package component

import (
	"github.com/milk9111/dollhouse/state"
	"github.com/milk9111/dollhouse/viewport"
)

// Frame is the per-tick input, stored on a dedicated entity. The engine
// writes it before the scheduler runs; systems only read it.
type Frame struct {
	State   state.App
	Elapsed float64
	Camera  viewport.CameraConfig
	Tick    uint64
}

var FrameComponent = NewComponent[Frame]()
