package component

import "github.com/milk9111/dollhouse/sound"

// CueRequest is a one-shot request to play an audio cue. The cue system
// consumes every request each tick and destroys its entity.
type CueRequest struct {
	Cue sound.Cue
}

var CueRequestComponent = NewComponent[CueRequest]()
