package component

import "github.com/milk9111/dollhouse/state"

// Scope limits an entity to one view and, inside the house, a set of rooms.
// Entities without a Scope are always active.
type Scope struct {
	View  state.View
	Rooms []state.Room

	// Active is recomputed every tick from the navigation state.
	Active bool
}

var ScopeComponent = NewComponent[Scope]()
