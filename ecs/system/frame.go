package system

import (
	"github.com/milk9111/dollhouse/ecs"
	"github.com/milk9111/dollhouse/ecs/component"
	"github.com/milk9111/dollhouse/render"
)

func currentFrame(w *ecs.World) (*component.Frame, bool) {
	ent, ok := ecs.First(w, component.FrameComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, ent, component.FrameComponent.Kind())
}

func commandBuffer(w *ecs.World) *render.Buffer {
	ent, ok := ecs.First(w, component.CommandsComponent.Kind())
	if !ok {
		return nil
	}
	cmds, ok := ecs.Get(w, ent, component.CommandsComponent.Kind())
	if !ok {
		return nil
	}
	return &cmds.Buffer
}

// inScope reports whether e should run this tick. Entities without a scope
// always run.
func inScope(w *ecs.World, e ecs.Entity) bool {
	scope, ok := ecs.Get(w, e, component.ScopeComponent.Kind())
	if !ok {
		return true
	}
	return scope.Active
}
