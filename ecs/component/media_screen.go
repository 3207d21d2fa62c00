package component

import (
	"github.com/milk9111/dollhouse/media"
	"github.com/milk9111/dollhouse/state"
)

// MediaScreen owns the video resource bound to a node's surface.
type MediaScreen struct {
	Resource *media.Resource
	Flag     state.Flag
}

var MediaScreenComponent = NewComponent[MediaScreen]()
