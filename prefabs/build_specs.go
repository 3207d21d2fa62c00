package prefabs

import (
	"fmt"

	"github.com/milk9111/dollhouse/state"
	"gopkg.in/yaml.v3"
)

// NodeSpec is one controlled scene node: a name and the components that
// drive it.
type NodeSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

const (
	ComponentScope       = "scope"
	ComponentAngle       = "angle"
	ComponentAccumulator = "accumulator"
	ComponentLight       = "light"
	ComponentMedia       = "media"
	ComponentCamera      = "camera"
)

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// ScopeSpec limits a node to a view and, for the interior, a set of rooms.
// An empty room list means every room.
type ScopeSpec struct {
	View  string   `yaml:"view"`
	Rooms []string `yaml:"rooms"`
}

// AngleSpec drives a rotation toward OpenTarget while Flag is set and back
// to Closed otherwise.
type AngleSpec struct {
	Flag       string  `yaml:"flag"`
	Axis       string  `yaml:"axis"`
	OpenTarget float64 `yaml:"open_target"`
	Closed     float64 `yaml:"closed"`
	Rate       float64 `yaml:"rate"`
	Min        float64 `yaml:"min"`
	Max        float64 `yaml:"max"`
}

// AccumulatorSpec spins a node continuously.
type AccumulatorSpec struct {
	Flag        string  `yaml:"flag"`
	Axis        string  `yaml:"axis"`
	OnVelocity  float64 `yaml:"on_velocity"`
	OffVelocity float64 `yaml:"off_velocity"`
}

// LightSpec sets an intensity from a flag. An empty flag is a fixed light.
// Rate zero sets the intensity immediately.
type LightSpec struct {
	Flag string  `yaml:"flag"`
	On   float64 `yaml:"on"`
	Off  float64 `yaml:"off"`
	Rate float64 `yaml:"rate"`
}

// MediaComponentSpec binds a video source to the node's surface. An empty
// source uses the house media source.
type MediaComponentSpec struct {
	Flag   string `yaml:"flag"`
	Source string `yaml:"source"`
}

type CameraComponentSpec struct{}

func (n NodeSpec) validate() error {
	for name, raw := range n.Components {
		var err error
		switch name {
		case ComponentScope:
			var s ScopeSpec
			if s, err = DecodeComponentSpec[ScopeSpec](raw); err == nil {
				err = s.validate()
			}
		case ComponentAngle:
			var s AngleSpec
			if s, err = DecodeComponentSpec[AngleSpec](raw); err == nil {
				_, err = parseFlag(s.Flag)
			}
		case ComponentAccumulator:
			var s AccumulatorSpec
			if s, err = DecodeComponentSpec[AccumulatorSpec](raw); err == nil {
				_, err = parseFlag(s.Flag)
			}
		case ComponentLight:
			var s LightSpec
			if s, err = DecodeComponentSpec[LightSpec](raw); err == nil && s.Flag != "" {
				_, err = parseFlag(s.Flag)
			}
		case ComponentMedia:
			var s MediaComponentSpec
			if s, err = DecodeComponentSpec[MediaComponentSpec](raw); err == nil {
				_, err = parseFlag(s.Flag)
			}
		case ComponentCamera:
			_, err = DecodeComponentSpec[CameraComponentSpec](raw)
		default:
			err = fmt.Errorf("%w %q", ErrUnknownComponent, name)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func (s ScopeSpec) validate() error {
	if s.View != "" {
		if _, err := state.ParseView(s.View); err != nil {
			return err
		}
	}
	for _, r := range s.Rooms {
		if _, err := state.ParseRoom(r); err != nil {
			return err
		}
	}
	return nil
}
