// Package house runs the frame update loop that turns the discrete house
// state into renderer commands and audio cues.
package house

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/milk9111/dollhouse/common"
	"github.com/milk9111/dollhouse/ecs"
	"github.com/milk9111/dollhouse/ecs/component"
	"github.com/milk9111/dollhouse/ecs/entity"
	"github.com/milk9111/dollhouse/ecs/system"
	"github.com/milk9111/dollhouse/internal/log"
	"github.com/milk9111/dollhouse/media"
	"github.com/milk9111/dollhouse/prefabs"
	"github.com/milk9111/dollhouse/render"
	"github.com/milk9111/dollhouse/sound"
	"github.com/milk9111/dollhouse/state"
	"github.com/milk9111/dollhouse/viewport"
)

var ErrClosed = errors.New("house: engine closed")

// Observer receives engine telemetry. telemetry.Metrics implements it.
type Observer interface {
	media.Observer
	system.CueObserver
	Ticked(commands int)
	ViewportChanged(class viewport.Class)
}

type Option func(*Engine)

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithSource sets where media nodes open playback.
func WithSource(src media.Source) Option {
	return func(e *Engine) { e.source = src }
}

// WithMediaURI overrides the scene's media source.
func WithMediaURI(uri string) Option {
	return func(e *Engine) { e.mediaURI = uri }
}

// WithAudio plays cues on engine. Without it cues are dropped.
func WithAudio(engine sound.Engine) Option {
	return func(e *Engine) { e.audio = engine }
}

func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// Engine owns the application state, the scene world and everything the
// frame loop drives. It is not safe for concurrent use: input setters and
// Tick must run on the same goroutine.
type Engine struct {
	log      *slog.Logger
	source   media.Source
	mediaURI string
	audio    sound.Engine
	observer Observer

	store     *state.Store
	viewport  *viewport.Controller
	synth     *sound.Synthesizer
	spec      *prefabs.HouseSpec
	world     *ecs.World
	scheduler *ecs.Scheduler
	frame     ecs.Entity
	commands  ecs.Entity
	ticks     uint64
	closed    bool
}

// New builds the scene described by spec.
func New(spec *prefabs.HouseSpec, opts ...Option) (*Engine, error) {
	if spec == nil {
		return nil, fmt.Errorf("house: new: spec is nil")
	}
	e := &Engine{log: log.L(), store: state.NewStore()}
	for _, opt := range opts {
		opt(e)
	}

	e.synth = sound.NewSynthesizer(e.audio, tonesFrom(spec.Tones), e.log)
	e.viewport = viewport.NewController(spec.Viewport.Breakpoint, cameraTable(spec.Viewport))

	if err := e.build(spec); err != nil {
		return nil, fmt.Errorf("house: new: %w", err)
	}
	return e, nil
}

func (e *Engine) build(spec *prefabs.HouseSpec) error {
	uri := spec.Media.Source
	if e.mediaURI != "" {
		uri = e.mediaURI
	}
	ctx := &entity.BuildContext{Source: e.source, MediaURI: uri, Logger: e.log}
	if e.observer != nil {
		ctx.Observer = e.observer
	}

	w := ecs.NewWorld()
	if _, err := entity.NewHouse(w, spec, e.synth, ctx); err != nil {
		return err
	}
	frame, ok := ecs.First(w, component.FrameComponent.Kind())
	if !ok {
		return fmt.Errorf("no frame entity")
	}
	commands, ok := ecs.First(w, component.CommandsComponent.Kind())
	if !ok {
		return fmt.Errorf("no command entity")
	}

	e.world, e.frame, e.commands, e.spec = w, frame, commands, spec
	e.scheduler = e.newScheduler()
	return nil
}

// newScheduler builds the systems for one world. Systems cache entities, so
// every rebuilt world gets its own.
func (e *Engine) newScheduler() *ecs.Scheduler {
	var cueObserver system.CueObserver
	if e.observer != nil {
		cueObserver = e.observer
	}
	return ecs.NewScheduler(
		system.NewScopeSystem(),
		system.NewAnimationSystem(),
		system.NewMediaSystem(),
		system.NewLightSystem(),
		system.NewCameraSystem(),
		system.NewAudioSystem(cueObserver),
	)
}

// Reload rebuilds the scene from spec, keeping the application state, then
// releases media bound by the old scene. On error the old scene is kept.
func (e *Engine) Reload(spec *prefabs.HouseSpec) error {
	if e.closed {
		return ErrClosed
	}
	if spec == nil {
		return fmt.Errorf("house: reload: spec is nil")
	}

	old := e.world
	if err := e.build(spec); err != nil {
		return fmt.Errorf("house: reload: %w", err)
	}
	if err := system.CloseMedia(old); err != nil {
		e.log.Debug("house: release media", "err", err)
	}

	e.synth.SetTones(tonesFrom(spec.Tones))
	before := e.viewport.Class()
	e.viewport.Configure(spec.Viewport.Breakpoint, cameraTable(spec.Viewport))
	if after := e.viewport.Class(); after != before && e.observer != nil {
		e.observer.ViewportChanged(after)
	}
	e.log.Info("house: scene reloaded", "name", spec.Name, "nodes", len(spec.Nodes))
	return nil
}

// Tick advances the scene by elapsed seconds and returns this tick's
// commands. Negative or non-finite elapsed times count as zero.
func (e *Engine) Tick(elapsed float64) []render.Command {
	if e.closed {
		return nil
	}
	if !common.Finite(elapsed) || elapsed < 0 {
		elapsed = 0
	}

	e.queueCues(e.store.Drain())

	snap := e.store.Snapshot()
	e.ticks++
	if frame, ok := ecs.Get(e.world, e.frame, component.FrameComponent.Kind()); ok {
		frame.State = snap
		frame.Elapsed = elapsed
		frame.Camera = e.viewport.Camera(snap.View)
		frame.Tick = e.ticks
	}

	cmds, ok := ecs.Get(e.world, e.commands, component.CommandsComponent.Kind())
	if !ok {
		return nil
	}
	cmds.Buffer.Reset()
	for _, evt := range e.scheduler.Update(e.world) {
		if change, ok := evt.Data.(system.ScopeChange); ok {
			e.log.Debug("house: scope", "node", change.Node, "active", change.Active, "tick", e.ticks)
		}
	}

	out := cmds.Buffer.Commands()
	if e.observer != nil {
		e.observer.Ticked(len(out))
	}
	return out
}

// queueCues turns state transitions into cue requests. Nothing is queued
// while sound is disabled.
func (e *Engine) queueCues(transitions []state.Transition) {
	for _, t := range transitions {
		if !t.State.SoundEnabled {
			continue
		}
		c, ok := cueFor(t)
		if !ok {
			continue
		}
		system.RequestCue(e.world, c)
	}
}

func cueFor(t state.Transition) (sound.Cue, bool) {
	switch t.Kind {
	case state.TransitionReset:
		return sound.Cue{Kind: sound.Click}, true
	case state.TransitionNavigate:
		return sound.Cue{Kind: sound.Navigate}, true
	case state.TransitionToggle:
		switch t.Flag {
		case state.FlagSound:
			if !t.On {
				return sound.Cue{}, false
			}
			return sound.Cue{Kind: sound.Click}, true
		case state.FlagFullscreen:
			return sound.Cue{Kind: sound.Navigate}, true
		default:
			return sound.Cue{Kind: sound.Toggle, On: t.On}, true
		}
	}
	return sound.Cue{}, false
}

// Resize reports a new display size and whether the camera class changed.
func (e *Engine) Resize(width, height int) bool {
	if !e.viewport.Resize(width, height) {
		return false
	}
	e.log.Debug("house: viewport class", "class", e.viewport.Class().String(), "width", width)
	if e.observer != nil {
		e.observer.ViewportChanged(e.viewport.Class())
	}
	return true
}

func (e *Engine) SetLight(on bool) bool        { return e.store.SetLight(on) }
func (e *Engine) SetFan(on bool) bool          { return e.store.SetFan(on) }
func (e *Engine) SetGate(on bool) bool         { return e.store.SetGate(on) }
func (e *Engine) SetTV(on bool) bool           { return e.store.SetTV(on) }
func (e *Engine) SetSoundEnabled(on bool) bool { return e.store.SetSoundEnabled(on) }
func (e *Engine) SetFullscreen(on bool) bool   { return e.store.SetFullscreen(on) }
func (e *Engine) Toggle(f state.Flag) bool     { return e.store.Toggle(f) }
func (e *Engine) SwitchView(v state.View) bool { return e.store.SwitchView(v) }
func (e *Engine) SwitchRoom(r state.Room) bool { return e.store.SwitchRoom(r) }
func (e *Engine) Reset()                       { e.store.Reset() }

// Snapshot returns the current application state.
func (e *Engine) Snapshot() state.App { return e.store.Snapshot() }

// Status is the controller's one-line summary.
func (e *Engine) Status() string { return e.store.Snapshot().Status() }

// Spec returns the scene spec in use.
func (e *Engine) Spec() *prefabs.HouseSpec { return e.spec }

// Viewport exposes the camera class controller.
func (e *Engine) Viewport() *viewport.Controller { return e.viewport }

// World exposes the scene world for inspection.
func (e *Engine) World() *ecs.World { return e.world }

// Close releases every media resource. Later ticks return nothing.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	return system.CloseMedia(e.world)
}
