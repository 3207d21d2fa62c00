package system

import (
	"github.com/milk9111/dollhouse/ecs"
	"github.com/milk9111/dollhouse/ecs/component"
	"github.com/milk9111/dollhouse/media"
	"github.com/milk9111/dollhouse/render"
)

// MediaSystem reconciles every media resource against its flag. A resource
// whose node is out of scope is treated as off, so leaving the room stops
// playback.
type MediaSystem struct{}

func NewMediaSystem() *MediaSystem { return &MediaSystem{} }

func (s *MediaSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	frame, ok := currentFrame(w)
	if !ok {
		return
	}
	out := commandBuffer(w)

	ecs.ForEach2(w, component.MediaScreenComponent.Kind(), component.NodeComponent.Kind(), func(e ecs.Entity, screen *component.MediaScreen, node *component.Node) {
		if screen.Resource == nil {
			return
		}
		active := inScope(w, e)
		screen.Resource.Reconcile(active && frame.State.Flag(screen.Flag))
		if !active {
			return
		}

		var binding *media.Binding
		if screen.Resource.State() != media.Detached {
			binding = screen.Resource.Binding()
		}
		out.Push(render.Command{Node: node.Name, Op: render.OpTexture, Binding: binding})
	})
}

// CloseMedia detaches every media resource in w.
func CloseMedia(w *ecs.World) error {
	var firstErr error
	ecs.ForEach(w, component.MediaScreenComponent.Kind(), func(_ ecs.Entity, screen *component.MediaScreen) {
		if screen.Resource == nil {
			return
		}
		if err := screen.Resource.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	})
	return firstErr
}
