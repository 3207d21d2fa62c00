package component

import "github.com/milk9111/dollhouse/sound"

// CuePlayer stores the synthesizer on a dedicated entity. The cue system
// plays through it; nothing else holds audio state.
type CuePlayer struct {
	Synth  *sound.Synthesizer
	Played int
}

var CuePlayerComponent = NewComponent[CuePlayer]()
