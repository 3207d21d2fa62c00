package system

import (
	"github.com/milk9111/dollhouse/ecs"
	"github.com/milk9111/dollhouse/ecs/component"
	"github.com/milk9111/dollhouse/render"
)

// AnimationSystem advances every in-scope animated property and emits its
// rotation.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (a *AnimationSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	frame, ok := currentFrame(w)
	if !ok {
		return
	}
	out := commandBuffer(w)

	ecs.ForEach2(w, component.AnimatedComponent.Kind(), component.NodeComponent.Kind(), func(e ecs.Entity, anim *component.Animated, node *component.Node) {
		if !inScope(w, e) {
			return
		}

		on := frame.State.Flag(anim.Flag)
		target := anim.Closed
		if on {
			target = anim.OpenTarget
		}
		anim.Property = anim.Property.Advance(frame.Elapsed, target, on)

		out.Push(render.Command{
			Node:  node.Name,
			Op:    render.OpRotation,
			Axis:  anim.Axis,
			Value: anim.Property.Current,
		})
	})
}
