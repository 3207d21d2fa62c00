// Package script runs tengo automation scripts against the house input
// commands.
package script

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/dollhouse/prefabs"
	"github.com/milk9111/dollhouse/state"
)

var ErrBadArgument = errors.New("script: bad argument")

// Action names one input command.
type Action string

const (
	ActionLight      Action = "light"
	ActionFan        Action = "fan"
	ActionGate       Action = "gate"
	ActionTV         Action = "tv"
	ActionSound      Action = "sound"
	ActionFullscreen Action = "fullscreen"
	ActionView       Action = "view"
	ActionRoom       Action = "room"
	ActionReset      Action = "reset"
)

var flagActions = map[Action]state.Flag{
	ActionLight:      state.FlagLight,
	ActionFan:        state.FlagFan,
	ActionGate:       state.FlagGate,
	ActionTV:         state.FlagTV,
	ActionSound:      state.FlagSound,
	ActionFullscreen: state.FlagFullscreen,
}

// Step is one command scheduled At seconds after the script starts.
type Step struct {
	At     float64
	Action Action
	On     bool
	View   state.View
	Room   state.Room
}

func (s Step) String() string {
	switch s.Action {
	case ActionView:
		return fmt.Sprintf("%.2fs view(%s)", s.At, s.View)
	case ActionRoom:
		return fmt.Sprintf("%.2fs room(%s)", s.At, s.Room)
	case ActionReset:
		return fmt.Sprintf("%.2fs reset()", s.At)
	default:
		return fmt.Sprintf("%.2fs %s(%t)", s.At, s.Action, s.On)
	}
}

// Load runs the named script from prefabs/scripts.
func Load(ctx context.Context, name string) ([]Step, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", name, err)
	}
	steps, err := Run(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("script: %s: %w", name, err)
	}
	return steps, nil
}

// Run executes src and returns the commands it issued, in order. wait(s)
// advances the schedule; it does not sleep.
func Run(ctx context.Context, src []byte) ([]Step, error) {
	rec := &recorder{}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	for name, fn := range rec.functions() {
		if err := script.Add(name, fn); err != nil {
			return nil, fmt.Errorf("add %s: %w", name, err)
		}
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	if err := compiled.RunContext(ctx); err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}
	return rec.steps, nil
}

type recorder struct {
	at    float64
	steps []Step
}

func (r *recorder) functions() map[string]*tengo.UserFunction {
	fns := map[string]*tengo.UserFunction{}

	for action := range flagActions {
		action := action
		fns[string(action)] = &tengo.UserFunction{Name: string(action), Value: func(args ...tengo.Object) (tengo.Object, error) {
			if len(args) != 1 {
				return nil, tengo.ErrWrongNumArguments
			}
			r.steps = append(r.steps, Step{At: r.at, Action: action, On: !args[0].IsFalsy()})
			return tengo.UndefinedValue, nil
		}}
	}

	fns[string(ActionView)] = &tengo.UserFunction{Name: string(ActionView), Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		v, err := state.ParseView(objectAsString(args[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadArgument, err)
		}
		r.steps = append(r.steps, Step{At: r.at, Action: ActionView, View: v})
		return tengo.UndefinedValue, nil
	}}

	fns[string(ActionRoom)] = &tengo.UserFunction{Name: string(ActionRoom), Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		room, err := state.ParseRoom(objectAsString(args[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadArgument, err)
		}
		r.steps = append(r.steps, Step{At: r.at, Action: ActionRoom, Room: room})
		return tengo.UndefinedValue, nil
	}}

	fns[string(ActionReset)] = &tengo.UserFunction{Name: string(ActionReset), Value: func(args ...tengo.Object) (tengo.Object, error) {
		r.steps = append(r.steps, Step{At: r.at, Action: ActionReset})
		return tengo.UndefinedValue, nil
	}}

	fns["wait"] = &tengo.UserFunction{Name: "wait", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) != 1 {
			return nil, tengo.ErrWrongNumArguments
		}
		secs, ok := objectAsFloat(args[0])
		if !ok || secs < 0 || math.IsNaN(secs) || math.IsInf(secs, 0) {
			return nil, fmt.Errorf("%w: wait(%s)", ErrBadArgument, args[0].String())
		}
		r.at += secs
		return tengo.UndefinedValue, nil
	}}

	return fns
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

func objectAsFloat(obj tengo.Object) (float64, bool) {
	switch v := obj.(type) {
	case *tengo.Int:
		return float64(v.Value), true
	case *tengo.Float:
		return v.Value, true
	default:
		return 0, false
	}
}
