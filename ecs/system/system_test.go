package system

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/milk9111/dollhouse/anim"
	"github.com/milk9111/dollhouse/ecs"
	"github.com/milk9111/dollhouse/ecs/component"
	"github.com/milk9111/dollhouse/internal/log"
	"github.com/milk9111/dollhouse/media"
	"github.com/milk9111/dollhouse/render"
	"github.com/milk9111/dollhouse/sound"
	"github.com/milk9111/dollhouse/state"
)

func newWorld(t *testing.T, app state.App, elapsed float64) (*ecs.World, *render.Buffer) {
	t.Helper()
	w := ecs.NewWorld()
	f := ecs.CreateEntity(w)
	if err := ecs.Add(w, f, component.FrameComponent.Kind(), &component.Frame{State: app, Elapsed: elapsed}); err != nil {
		t.Fatalf("add frame: %v", err)
	}
	c := ecs.CreateEntity(w)
	cmds := &component.Commands{}
	if err := ecs.Add(w, c, component.CommandsComponent.Kind(), cmds); err != nil {
		t.Fatalf("add commands: %v", err)
	}
	return w, &cmds.Buffer
}

func addNode(t *testing.T, w *ecs.World, name string) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.NodeComponent.Kind(), &component.Node{Name: name}); err != nil {
		t.Fatalf("add node: %v", err)
	}
	return e
}

func TestScopeSystem(t *testing.T) {
	tests := []struct {
		name  string
		app   state.App
		scope component.Scope
		want  bool
	}{
		{"exterior_node_outside", state.Default(), component.Scope{View: state.Exterior}, true},
		{"interior_node_outside", state.Default(), component.Scope{View: state.Interior}, false},
		{"any_room", state.App{View: state.Interior, Room: state.Kitchen}, component.Scope{View: state.Interior}, true},
		{"living_only_in_kitchen", state.App{View: state.Interior, Room: state.Kitchen}, component.Scope{View: state.Interior, Rooms: []state.Room{state.Living}}, false},
		{"living_only_in_living", state.App{View: state.Interior, Room: state.Living}, component.Scope{View: state.Interior, Rooms: []state.Room{state.Living}}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, _ := newWorld(t, tc.app, 0)
			e := addNode(t, w, "n")
			scope := tc.scope
			if err := ecs.Add(w, e, component.ScopeComponent.Kind(), &scope); err != nil {
				t.Fatal(err)
			}
			NewScopeSystem().Update(w)
			if got, _ := ecs.Get(w, e, component.ScopeComponent.Kind()); got.Active != tc.want {
				t.Fatalf("active = %v, want %v", got.Active, tc.want)
			}
		})
	}
}

func TestScopeSystemRaisesChanges(t *testing.T) {
	w, _ := newWorld(t, state.Default(), 0)
	e := addNode(t, w, "light.floor")
	if err := ecs.Add(w, e, component.ScopeComponent.Kind(), &component.Scope{View: state.Interior}); err != nil {
		t.Fatal(err)
	}
	sched := ecs.NewScheduler(NewScopeSystem())

	if evts := sched.Update(w); len(evts) != 0 {
		t.Fatalf("exterior pass raised %d events, want 0", len(evts))
	}

	frame, _ := currentFrame(w)
	frame.State.View = state.Interior
	evts := sched.Update(w)
	if len(evts) != 1 {
		t.Fatalf("got %d events, want 1", len(evts))
	}
	change, ok := evts[0].Data.(ScopeChange)
	if !ok || evts[0].Type != EventScopeChanged || change.Node != "light.floor" || !change.Active {
		t.Fatalf("event = %+v", evts[0])
	}

	if evts := sched.Update(w); len(evts) != 0 {
		t.Fatalf("steady pass raised %d events, want 0", len(evts))
	}
	if w.Events().Len() != 0 {
		t.Fatalf("queue not drained")
	}
}

func TestAnimationSystemSkipsInactive(t *testing.T) {
	w, buf := newWorld(t, state.App{Gate: true}, 0.5)
	e := addNode(t, w, "gate")
	_ = ecs.Add(w, e, component.AnimatedComponent.Kind(), &component.Animated{
		Property:   anim.Property{Rate: anim.DefaultRate},
		Flag:       state.FlagGate,
		OpenTarget: 1,
	})
	_ = ecs.Add(w, e, component.ScopeComponent.Kind(), &component.Scope{View: state.Interior})

	NewAnimationSystem().Update(w)
	if buf.Len() != 0 {
		t.Fatalf("inactive node emitted %d commands", buf.Len())
	}
	a, _ := ecs.Get(w, e, component.AnimatedComponent.Kind())
	if a.Property.Current != 0 {
		t.Fatalf("inactive node advanced to %v", a.Property.Current)
	}
}

func TestLightSystemSmoothing(t *testing.T) {
	w, buf := newWorld(t, state.App{Light: true}, 0.1)
	e := addNode(t, w, "lamp")
	_ = ecs.Add(w, e, component.LightComponent.Kind(), &component.Light{Flag: state.FlagLight, On: 1, Off: 0, Rate: 5, Current: 0, Primed: true})

	NewLightSystem().Update(w)
	cmds := buf.Commands()
	if len(cmds) != 1 || cmds[0].Op != render.OpIntensity {
		t.Fatalf("commands = %v", cmds)
	}
	if v := cmds[0].Value; v <= 0 || v >= 1 {
		t.Fatalf("smoothed intensity = %v, want strictly between 0 and 1", v)
	}
}

func TestLightSystemFixedLight(t *testing.T) {
	w, buf := newWorld(t, state.App{}, 0.1)
	e := addNode(t, w, "sun")
	_ = ecs.Add(w, e, component.LightComponent.Kind(), &component.Light{On: 1.5, Off: 0})

	NewLightSystem().Update(w)
	if cmds := buf.Commands(); len(cmds) != 1 || cmds[0].Value != 1.5 {
		t.Fatalf("commands = %v", cmds)
	}
}

type fakeEngine struct{ plays int }

func (f *fakeEngine) SampleRate() int       { return 8000 }
func (f *fakeEngine) Play(pcm []byte) error { f.plays++; return nil }

type cueRecorder struct{ cues []sound.Cue }

func (r *cueRecorder) CuePlayed(c sound.Cue) { r.cues = append(r.cues, c) }

func TestAudioSystemConsumesRequests(t *testing.T) {
	w, _ := newWorld(t, state.Default(), 0)
	engine := &fakeEngine{}
	p := ecs.CreateEntity(w)
	_ = ecs.Add(w, p, component.CuePlayerComponent.Kind(), &component.CuePlayer{
		Synth: sound.NewSynthesizer(engine, sound.DefaultTones(), log.Discard()),
	})

	RequestCue(w, sound.Cue{Kind: sound.Navigate})
	RequestCue(w, sound.Cue{Kind: sound.Toggle, On: true})
	RequestCue(w, sound.Cue{Kind: sound.Click})

	rec := &cueRecorder{}
	sys := NewAudioSystem(rec)
	sys.Update(w)

	if engine.plays != 3 {
		t.Fatalf("plays = %d, want 3", engine.plays)
	}
	want := []sound.CueKind{sound.Navigate, sound.Toggle, sound.Click}
	for i, c := range rec.cues {
		if c.Kind != want[i] {
			t.Fatalf("cue %d = %s, want %s", i, c.Kind, want[i])
		}
	}
	if n := len(ecs.Query(w, component.CueRequestComponent.Kind())); n != 0 {
		t.Fatalf("%d requests left", n)
	}

	sys.Update(w)
	if engine.plays != 3 {
		t.Fatalf("requests replayed")
	}
}

func TestCameraSystemEmitsFrameCamera(t *testing.T) {
	w, buf := newWorld(t, state.Default(), 0)
	f, _ := ecs.First(w, component.FrameComponent.Kind())
	frame, _ := ecs.Get(w, f, component.FrameComponent.Kind())
	frame.Camera.FieldOfView = 42
	frame.Camera.Position = render.Vec3{X: 1, Y: 2, Z: 3}

	e := addNode(t, w, "cam")
	_ = ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{})

	NewCameraSystem().Update(w)
	cmds := buf.Commands()
	if len(cmds) != 1 || cmds[0].Node != "cam" || cmds[0].Value != 42 || cmds[0].Vec.Z != 3 {
		t.Fatalf("commands = %v", cmds)
	}
}

func TestCameraSystemFollowsNewWorld(t *testing.T) {
	sys := NewCameraSystem()

	first, _ := newWorld(t, state.Default(), 0)
	cam := addNode(t, first, "camera")
	_ = ecs.Add(first, cam, component.CameraComponent.Kind(), &component.Camera{})
	sys.Update(first)

	// the old camera handle resolves to a live node without a camera here
	second, buf := newWorld(t, state.Default(), 0)
	addNode(t, second, "background")
	moved := addNode(t, second, "camera")
	_ = ecs.Add(second, moved, component.CameraComponent.Kind(), &component.Camera{})

	for i := 0; i < 3; i++ {
		buf.Reset()
		sys.Update(second)
		if _, ok := render.Index(buf.Commands()).Find("camera", render.OpCamera); !ok {
			t.Fatalf("pass %d: no camera command, got %v", i, buf.Commands())
		}
	}
}

type brokenPlayback struct{ err error }

func (p brokenPlayback) Start(context.Context) error { return nil }
func (p brokenPlayback) Pause()                      {}
func (p brokenPlayback) Frame() image.Image          { return nil }
func (p brokenPlayback) Close() error                { return p.err }

type brokenSource struct{ err error }

func (s brokenSource) Open(string) (media.Playback, error) { return brokenPlayback{err: s.err}, nil }

func TestCloseMediaReturnsCloseError(t *testing.T) {
	errBroken := errors.New("capture broken")
	w, _ := newWorld(t, state.App{TV: true}, 0)
	e := addNode(t, w, "tv.screen")
	res := media.NewResource("test://tv.mp4", brokenSource{err: errBroken}, media.NewScreen("tv.screen"), media.WithLogger(log.Discard()))
	if err := ecs.Add(w, e, component.MediaScreenComponent.Kind(), &component.MediaScreen{Resource: res, Flag: state.FlagTV}); err != nil {
		t.Fatal(err)
	}
	res.Reconcile(true)

	if err := CloseMedia(w); !errors.Is(err, errBroken) {
		t.Fatalf("CloseMedia() = %v, want %v", err, errBroken)
	}
	if res.State() != media.Detached {
		t.Fatalf("state = %s, want detached", res.State())
	}
	if err := CloseMedia(w); err != nil {
		t.Fatalf("second CloseMedia() = %v", err)
	}
}
