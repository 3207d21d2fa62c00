package system

import (
	"github.com/milk9111/dollhouse/common"
	"github.com/milk9111/dollhouse/ecs"
	"github.com/milk9111/dollhouse/ecs/component"
	"github.com/milk9111/dollhouse/render"
)

// LightSystem sets light intensities from their flags.
type LightSystem struct{}

func NewLightSystem() *LightSystem { return &LightSystem{} }

func (s *LightSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	frame, ok := currentFrame(w)
	if !ok {
		return
	}
	out := commandBuffer(w)

	ecs.ForEach2(w, component.LightComponent.Kind(), component.NodeComponent.Kind(), func(e ecs.Entity, light *component.Light, node *component.Node) {
		if !inScope(w, e) {
			return
		}

		target := light.On
		if light.Flag != "" && !frame.State.Flag(light.Flag) {
			target = light.Off
		}

		switch {
		case !light.Primed || light.Rate <= 0:
			light.Current = target
			light.Primed = true
		default:
			k := common.SmoothingFactor(light.Rate, frame.Elapsed)
			light.Current += (target - light.Current) * k
		}

		out.Push(render.Command{Node: node.Name, Op: render.OpIntensity, Value: light.Current})
	})
}
