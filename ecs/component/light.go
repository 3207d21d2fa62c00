package component

import "github.com/milk9111/dollhouse/state"

// Light sets a node intensity from a flag. An empty Flag keeps the light at
// On. Rate zero applies the target immediately.
type Light struct {
	Flag state.Flag
	On   float64
	Off  float64
	Rate float64

	Current float64
	Primed  bool
}

var LightComponent = NewComponent[Light]()
