package entity

import (
	"fmt"

	"github.com/milk9111/dollhouse/ecs"
	"github.com/milk9111/dollhouse/ecs/component"
	"github.com/milk9111/dollhouse/prefabs"
	"github.com/milk9111/dollhouse/sound"
)

// NewHouse builds the singleton entities and one entity per node in spec.
// If any node fails, media already attached is released and nothing is
// left half-built in w.
func NewHouse(w *ecs.World, spec *prefabs.HouseSpec, synth *sound.Synthesizer, ctx *BuildContext) ([]ecs.Entity, error) {
	if spec == nil {
		return nil, fmt.Errorf("entity: house spec is nil")
	}

	var built []ecs.Entity
	fail := func(err error) ([]ecs.Entity, error) {
		for _, e := range built {
			_ = closeMedia(w, e)
			ecs.DestroyEntity(w, e)
		}
		return nil, err
	}

	singletons := []func(*ecs.World) (ecs.Entity, error){
		NewFrame,
		NewCommands,
		func(w *ecs.World) (ecs.Entity, error) { return NewCuePlayer(w, synth) },
	}
	for _, build := range singletons {
		e, err := build(w)
		if err != nil {
			return fail(err)
		}
		built = append(built, e)
	}

	for _, node := range spec.Nodes {
		e, err := BuildNode(w, node, ctx)
		if err != nil {
			return fail(err)
		}
		built = append(built, e)
	}
	return built, nil
}

func NewFrame(w *ecs.World) (ecs.Entity, error) {
	ent := ecs.CreateEntity(w)
	if err := ecs.Add(w, ent, component.FrameComponent.Kind(), &component.Frame{}); err != nil {
		return 0, fmt.Errorf("frame: add component: %w", err)
	}
	return ent, nil
}

func NewCommands(w *ecs.World) (ecs.Entity, error) {
	ent := ecs.CreateEntity(w)
	if err := ecs.Add(w, ent, component.CommandsComponent.Kind(), &component.Commands{}); err != nil {
		return 0, fmt.Errorf("commands: add component: %w", err)
	}
	return ent, nil
}

func NewCuePlayer(w *ecs.World, synth *sound.Synthesizer) (ecs.Entity, error) {
	ent := ecs.CreateEntity(w)
	if err := ecs.Add(w, ent, component.CuePlayerComponent.Kind(), &component.CuePlayer{Synth: synth}); err != nil {
		return 0, fmt.Errorf("cue player: add component: %w", err)
	}
	return ent, nil
}
