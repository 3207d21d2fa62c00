package component

import "github.com/milk9111/dollhouse/render"

// Commands collects the renderer commands emitted during one tick.
type Commands struct {
	Buffer render.Buffer
}

var CommandsComponent = NewComponent[Commands]()
