package component

import "github.com/milk9111/dollhouse/viewport"

// Camera marks the node that receives camera commands. Config holds the
// placement last emitted.
type Camera struct {
	Config viewport.CameraConfig
}

var CameraComponent = NewComponent[Camera]()
