package component

import (
	"github.com/milk9111/dollhouse/anim"
	"github.com/milk9111/dollhouse/render"
	"github.com/milk9111/dollhouse/state"
)

// Animated drives a node rotation from a state flag. Angle properties move
// toward OpenTarget while the flag is set and toward Closed otherwise;
// accumulators spin at the velocity the flag selects.
type Animated struct {
	Property   anim.Property
	Flag       state.Flag
	Axis       render.Axis
	OpenTarget float64
	Closed     float64
}

var AnimatedComponent = NewComponent[Animated]()
