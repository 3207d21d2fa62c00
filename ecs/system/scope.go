package system

import (
	"github.com/milk9111/dollhouse/ecs"
	"github.com/milk9111/dollhouse/ecs/component"
	"github.com/milk9111/dollhouse/state"
)

// EventScopeChanged is raised when a node enters or leaves the current view
// and room. Data is a ScopeChange.
const EventScopeChanged ecs.EventType = "scope_changed"

type ScopeChange struct {
	Node   string
	Active bool
}

// ScopeSystem marks which scoped entities belong to the current view and
// room.
type ScopeSystem struct{}

func NewScopeSystem() *ScopeSystem { return &ScopeSystem{} }

func (s *ScopeSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	frame, ok := currentFrame(w)
	if !ok {
		return
	}

	ecs.ForEach2(w, component.NodeComponent.Kind(), component.ScopeComponent.Kind(), func(e ecs.Entity, node *component.Node, scope *component.Scope) {
		active := state.InScope(frame.State, scope.View, scope.Rooms)
		if active == scope.Active {
			return
		}
		scope.Active = active
		w.Events().Push(ecs.Event{
			Type:   EventScopeChanged,
			Entity: e,
			Data:   ScopeChange{Node: node.Name, Active: active},
		})
	})
}
