package system

import (
	"github.com/milk9111/dollhouse/ecs"
	"github.com/milk9111/dollhouse/ecs/component"
	"github.com/milk9111/dollhouse/render"
)

type CameraSystem struct {
	camEntity ecs.Entity
}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

// Update copies the frame's camera placement onto the camera entity and
// emits it.
func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	frame, ok := currentFrame(w)
	if !ok {
		return
	}

	cam, ok := ecs.Get(w, cs.camEntity, component.CameraComponent.Kind())
	if !ok {
		// the cached handle may be stale or point at another node
		camEntity, found := ecs.First(w, component.CameraComponent.Kind())
		if !found {
			return
		}
		cs.camEntity = camEntity
		cam, _ = ecs.Get(w, camEntity, component.CameraComponent.Kind())
	}
	cam.Config = frame.Camera

	name := "camera"
	if node, ok := ecs.Get(w, cs.camEntity, component.NodeComponent.Kind()); ok {
		name = node.Name
	}
	commandBuffer(w).Push(render.Command{
		Node:  name,
		Op:    render.OpCamera,
		Vec:   cam.Config.Position,
		Value: cam.Config.FieldOfView,
	})
}
