// Package state holds the discrete application state the house reacts to.
package state

import (
	"fmt"
	"strings"
)

type View int

const (
	Exterior View = iota
	Interior
)

func (v View) String() string {
	switch v {
	case Exterior:
		return "exterior"
	case Interior:
		return "interior"
	default:
		return fmt.Sprintf("view(%d)", int(v))
	}
}

func ParseView(s string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exterior":
		return Exterior, nil
	case "interior":
		return Interior, nil
	default:
		return 0, fmt.Errorf("state: unknown view %q", s)
	}
}

type Room int

const (
	Living Room = iota
	Kitchen
	Bedroom
)

// Rooms lists every room in navigation order.
var Rooms = []Room{Living, Kitchen, Bedroom}

func (r Room) String() string {
	switch r {
	case Living:
		return "living"
	case Kitchen:
		return "kitchen"
	case Bedroom:
		return "bedroom"
	default:
		return fmt.Sprintf("room(%d)", int(r))
	}
}

func ParseRoom(s string) (Room, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "living":
		return Living, nil
	case "kitchen":
		return Kitchen, nil
	case "bedroom":
		return Bedroom, nil
	default:
		return 0, fmt.Errorf("state: unknown room %q", s)
	}
}

func (r Room) valid() bool {
	return r >= Living && r <= Bedroom
}

// App is an immutable snapshot of everything the user controls.
type App struct {
	Light        bool `yaml:"light"`
	Fan          bool `yaml:"fan"`
	Gate         bool `yaml:"gate"`
	TV           bool `yaml:"tv"`
	SoundEnabled bool `yaml:"sound_enabled"`
	View         View `yaml:"view"`
	Room         Room `yaml:"room"`
	Fullscreen   bool `yaml:"fullscreen"`
}

// Default is the state on process start.
func Default() App {
	return App{SoundEnabled: true, View: Exterior, Room: Living}
}

// Flag names a boolean in App.
type Flag string

const (
	FlagLight      Flag = "light"
	FlagFan        Flag = "fan"
	FlagGate       Flag = "gate"
	FlagTV         Flag = "tv"
	FlagSound      Flag = "sound"
	FlagFullscreen Flag = "fullscreen"
)

// ParseFlag validates a flag name from configuration.
func ParseFlag(s string) (Flag, error) {
	f := Flag(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FlagLight, FlagFan, FlagGate, FlagTV, FlagSound, FlagFullscreen:
		return f, nil
	default:
		return "", fmt.Errorf("state: unknown flag %q", s)
	}
}

// Flag reads the named boolean. Unknown names read as false.
func (a App) Flag(f Flag) bool {
	switch f {
	case FlagLight:
		return a.Light
	case FlagFan:
		return a.Fan
	case FlagGate:
		return a.Gate
	case FlagTV:
		return a.TV
	case FlagSound:
		return a.SoundEnabled
	case FlagFullscreen:
		return a.Fullscreen
	default:
		return false
	}
}

func (a App) withFlag(f Flag, on bool) App {
	switch f {
	case FlagLight:
		a.Light = on
	case FlagFan:
		a.Fan = on
	case FlagGate:
		a.Gate = on
	case FlagTV:
		a.TV = on
	case FlagSound:
		a.SoundEnabled = on
	case FlagFullscreen:
		a.Fullscreen = on
	}
	return a
}

// Status renders the controller status line.
func (a App) Status() string {
	onOff := func(b bool, on, off string) string {
		if b {
			return on
		}
		return off
	}
	return fmt.Sprintf("Lights: %s  TV: %s  Gate: %s  Fan: %s",
		onOff(a.Light, "On", "Off"),
		onOff(a.TV, "Playing", "Off"),
		onOff(a.Gate, "Open", "Closed"),
		onOff(a.Fan, "On", "Off"),
	)
}

// MarshalYAML writes views and rooms by name.
func (v View) MarshalYAML() (any, error) { return v.String(), nil }

// MarshalYAML writes rooms by name.
func (r Room) MarshalYAML() (any, error) { return r.String(), nil }
