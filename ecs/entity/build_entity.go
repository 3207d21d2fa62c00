package entity

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/milk9111/dollhouse/anim"
	"github.com/milk9111/dollhouse/ecs"
	"github.com/milk9111/dollhouse/ecs/component"
	"github.com/milk9111/dollhouse/internal/log"
	"github.com/milk9111/dollhouse/media"
	"github.com/milk9111/dollhouse/prefabs"
	"github.com/milk9111/dollhouse/render"
	"github.com/milk9111/dollhouse/state"
)

var ErrNoMediaSource = errors.New("entity: no media source")

// BuildContext carries what node builders need beyond the node spec.
type BuildContext struct {
	// Source opens playback for media nodes.
	Source media.Source
	// MediaURI is used by media nodes that name no source of their own.
	MediaURI string
	Observer media.Observer
	Logger   *slog.Logger
}

func (c *BuildContext) logger() *slog.Logger {
	if c == nil || c.Logger == nil {
		return log.L()
	}
	return c.Logger
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, node string, raw any, ctx *BuildContext) error

var componentRegistry = map[string]componentBuildFn{
	prefabs.ComponentScope:       addScope,
	prefabs.ComponentAngle:       addAngle,
	prefabs.ComponentAccumulator: addAccumulator,
	prefabs.ComponentLight:       addLight,
	prefabs.ComponentMedia:       addMedia,
	prefabs.ComponentCamera:      addCamera,
}

var componentBuildOrder = []string{
	prefabs.ComponentScope,
	prefabs.ComponentCamera,
	prefabs.ComponentAngle,
	prefabs.ComponentAccumulator,
	prefabs.ComponentLight,
	prefabs.ComponentMedia,
}

// BuildNode creates one entity for spec. On error the partial entity is
// destroyed.
func BuildNode(w *ecs.World, spec prefabs.NodeSpec, ctx *BuildContext) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("entity: world is nil")
	}
	name := strings.TrimSpace(spec.Name)
	if name == "" {
		return 0, fmt.Errorf("entity: node has no name")
	}
	for key := range spec.Components {
		if _, ok := componentRegistry[key]; !ok {
			return 0, fmt.Errorf("entity: %s: %w %q", name, prefabs.ErrUnknownComponent, key)
		}
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.NodeComponent.Kind(), &component.Node{Name: name}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("entity: %s: add node: %w", name, err)
	}

	for _, key := range orderedComponents(spec.Components) {
		if err := componentRegistry[key](w, e, name, spec.Components[key], ctx); err != nil {
			_ = closeMedia(w, e)
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("entity: %s: %s: %w", name, key, err)
		}
	}
	return e, nil
}

func orderedComponents(components map[string]any) []string {
	keys := make([]string, 0, len(components))
	for _, key := range componentBuildOrder {
		if _, ok := components[key]; ok {
			keys = append(keys, key)
		}
	}
	var extra []string
	for key := range components {
		if !contains(componentBuildOrder, key) {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func closeMedia(w *ecs.World, e ecs.Entity) error {
	screen, ok := ecs.Get(w, e, component.MediaScreenComponent.Kind())
	if !ok || screen.Resource == nil {
		return nil
	}
	return screen.Resource.Close()
}

func addScope(w *ecs.World, e ecs.Entity, _ string, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ScopeSpec](raw)
	if err != nil {
		return err
	}
	scope := &component.Scope{View: state.Exterior}
	if spec.View != "" {
		if scope.View, err = state.ParseView(spec.View); err != nil {
			return err
		}
	}
	for _, r := range spec.Rooms {
		room, err := state.ParseRoom(r)
		if err != nil {
			return err
		}
		scope.Rooms = append(scope.Rooms, room)
	}
	return ecs.Add(w, e, component.ScopeComponent.Kind(), scope)
}

func addAngle(w *ecs.World, e ecs.Entity, _ string, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AngleSpec](raw)
	if err != nil {
		return err
	}
	flag, err := state.ParseFlag(spec.Flag)
	if err != nil {
		return err
	}
	axis, err := render.ParseAxis(spec.Axis)
	if err != nil {
		return err
	}
	rate := spec.Rate
	if rate <= 0 {
		rate = anim.DefaultRate
	}
	prop := anim.Property{Kind: anim.Angle, Rate: rate, Min: spec.Min, Max: spec.Max}
	prop.Current = prop.ClampTarget(spec.Closed)
	prop.Target = prop.Current
	return ecs.Add(w, e, component.AnimatedComponent.Kind(), &component.Animated{
		Property:   prop,
		Flag:       flag,
		Axis:       axis,
		OpenTarget: spec.OpenTarget,
		Closed:     spec.Closed,
	})
}

func addAccumulator(w *ecs.World, e ecs.Entity, _ string, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.AccumulatorSpec](raw)
	if err != nil {
		return err
	}
	flag, err := state.ParseFlag(spec.Flag)
	if err != nil {
		return err
	}
	axis, err := render.ParseAxis(spec.Axis)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.AnimatedComponent.Kind(), &component.Animated{
		Property: anim.Property{
			Kind:        anim.Accumulator,
			OnVelocity:  spec.OnVelocity,
			OffVelocity: spec.OffVelocity,
		},
		Flag: flag,
		Axis: axis,
	})
}

func addLight(w *ecs.World, e ecs.Entity, _ string, raw any, _ *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.LightSpec](raw)
	if err != nil {
		return err
	}
	light := &component.Light{On: spec.On, Off: spec.Off, Rate: spec.Rate}
	if spec.Flag != "" {
		if light.Flag, err = state.ParseFlag(spec.Flag); err != nil {
			return err
		}
	}
	return ecs.Add(w, e, component.LightComponent.Kind(), light)
}

func addMedia(w *ecs.World, e ecs.Entity, node string, raw any, ctx *BuildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.MediaComponentSpec](raw)
	if err != nil {
		return err
	}
	flag, err := state.ParseFlag(spec.Flag)
	if err != nil {
		return err
	}
	if ctx == nil || ctx.Source == nil {
		return ErrNoMediaSource
	}
	uri := spec.Source
	if uri == "" {
		uri = ctx.MediaURI
	}
	res := media.NewResource(uri, ctx.Source, media.NewScreen(node),
		media.WithLogger(ctx.logger()),
		media.WithObserver(ctx.Observer),
	)
	return ecs.Add(w, e, component.MediaScreenComponent.Kind(), &component.MediaScreen{Resource: res, Flag: flag})
}

func addCamera(w *ecs.World, e ecs.Entity, _ string, raw any, _ *BuildContext) error {
	if _, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw); err != nil {
		return err
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{})
}
