package script

import (
	"context"
	"strings"
	"testing"

	"github.com/milk9111/dollhouse/state"
)

func TestRunRecordsTimedSteps(t *testing.T) {
	steps, err := Run(context.Background(), []byte(`
gate(true)
wait(1.5)
view("interior")
room("kitchen")
wait(1)
for i := 0; i < 2; i++ {
	light(i == 0)
}
reset()
`))
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	want := []Step{
		{At: 0, Action: ActionGate, On: true},
		{At: 1.5, Action: ActionView, View: state.Interior},
		{At: 1.5, Action: ActionRoom, Room: state.Kitchen},
		{At: 2.5, Action: ActionLight, On: true},
		{At: 2.5, Action: ActionLight, On: false},
		{At: 2.5, Action: ActionReset},
	}
	if len(steps) != len(want) {
		t.Fatalf("got %d steps, want %d: %v", len(steps), len(want), steps)
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Fatalf("step %d = %+v, want %+v", i, steps[i], want[i])
		}
	}
}

func TestRunRejects(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown_view", `view("attic")`},
		{"negative_wait", `wait(-1)`},
		{"string_wait", `wait("soon")`},
		{"missing_arg", `light()`},
		{"syntax", `light(`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Run(context.Background(), []byte(tc.src)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestRunBadArgumentMessage(t *testing.T) {
	_, err := Run(context.Background(), []byte(`room("attic")`))
	if err == nil || !strings.Contains(err.Error(), ErrBadArgument.Error()) {
		t.Fatalf("err = %v, want %v", err, ErrBadArgument)
	}
}

func TestEmbeddedScriptsRun(t *testing.T) {
	for _, name := range []string{"tour", "party"} {
		steps, err := Load(context.Background(), name)
		if err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if len(steps) == 0 {
			t.Fatalf("%s: no steps", name)
		}
		for i := 1; i < len(steps); i++ {
			if steps[i].At < steps[i-1].At {
				t.Fatalf("%s: step %d goes back in time", name, i)
			}
		}
	}
}

type recordingControls struct {
	app   state.App
	calls []string
}

func (c *recordingControls) set(name string, dst *bool, on bool) bool {
	c.calls = append(c.calls, name)
	changed := *dst != on
	*dst = on
	return changed
}

func (c *recordingControls) SetLight(on bool) bool { return c.set("light", &c.app.Light, on) }
func (c *recordingControls) SetFan(on bool) bool   { return c.set("fan", &c.app.Fan, on) }
func (c *recordingControls) SetGate(on bool) bool  { return c.set("gate", &c.app.Gate, on) }
func (c *recordingControls) SetTV(on bool) bool    { return c.set("tv", &c.app.TV, on) }
func (c *recordingControls) SetSoundEnabled(on bool) bool {
	return c.set("sound", &c.app.SoundEnabled, on)
}
func (c *recordingControls) SetFullscreen(on bool) bool {
	return c.set("fullscreen", &c.app.Fullscreen, on)
}
func (c *recordingControls) SwitchView(v state.View) bool {
	c.calls = append(c.calls, "view")
	c.app.View = v
	return true
}
func (c *recordingControls) SwitchRoom(r state.Room) bool {
	c.calls = append(c.calls, "room")
	c.app.Room = r
	return true
}
func (c *recordingControls) Reset() { c.calls = append(c.calls, "reset") }

func TestPlayerAdvance(t *testing.T) {
	p := NewPlayer([]Step{
		{At: 0, Action: ActionGate, On: true},
		{At: 1, Action: ActionView, View: state.Interior},
		{At: 1, Action: ActionFan, On: true},
		{At: 2.5, Action: ActionReset},
	})
	c := &recordingControls{}

	if n := p.Advance(0, c); n != 1 {
		t.Fatalf("first advance ran %d", n)
	}
	if n := p.Advance(0.5, c); n != 0 {
		t.Fatalf("early advance ran %d", n)
	}
	if n := p.Advance(0.5, c); n != 2 {
		t.Fatalf("advance to 1s ran %d", n)
	}
	if p.Done() {
		t.Fatalf("done too early")
	}
	if n := p.Advance(10, c); n != 1 || !p.Done() {
		t.Fatalf("final advance ran %d, done=%v", n, p.Done())
	}
	if !c.app.Gate || !c.app.Fan || c.app.View != state.Interior {
		t.Fatalf("controls = %+v", c.app)
	}
	if len(c.calls) != 4 || c.calls[3] != "reset" {
		t.Fatalf("calls = %v", c.calls)
	}
}
