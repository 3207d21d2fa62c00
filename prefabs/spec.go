package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/dollhouse/state"
	"gopkg.in/yaml.v3"
)

// DefaultHouse is the embedded scene prefab.
const DefaultHouse = "house.yaml"

var (
	ErrUnknownFlag      = errors.New("prefabs: unknown flag")
	ErrUnknownComponent = errors.New("prefabs: unknown component")
	ErrDuplicateNode    = errors.New("prefabs: duplicate node")
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// HouseSpec describes the whole controlled scene.
type HouseSpec struct {
	Name       string         `yaml:"name"`
	Media      MediaSpec      `yaml:"media"`
	Viewport   ViewportSpec   `yaml:"viewport"`
	Tones      ToneTableSpec  `yaml:"tones"`
	Background BackgroundSpec `yaml:"background"`
	Nodes      []NodeSpec     `yaml:"nodes"`
}

type MediaSpec struct {
	Source string `yaml:"source"`
}

type ViewportSpec struct {
	Breakpoint int                  `yaml:"breakpoint"`
	Cameras    map[string]ClassSpec `yaml:"cameras"`
}

// ClassSpec holds the narrow and wide camera for one view.
type ClassSpec struct {
	Narrow *CameraSpec `yaml:"narrow"`
	Wide   *CameraSpec `yaml:"wide"`
}

type CameraSpec struct {
	Position    Vec3Spec `yaml:"position"`
	FieldOfView float64  `yaml:"fov"`
}

type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type ToneTableSpec struct {
	Click     *ToneSpec `yaml:"click"`
	ToggleOn  *ToneSpec `yaml:"toggle_on"`
	ToggleOff *ToneSpec `yaml:"toggle_off"`
	Navigate  *ToneSpec `yaml:"navigate"`
}

type ToneSpec struct {
	StartHz  float64 `yaml:"start_hz"`
	EndHz    float64 `yaml:"end_hz"`
	Duration float64 `yaml:"duration"`
	Wave     string  `yaml:"wave"`
	Gain     float64 `yaml:"gain"`
	EndGain  float64 `yaml:"end_gain"`
}

type BackgroundSpec struct {
	Lit   YAMLColor `yaml:"lit"`
	Unlit YAMLColor `yaml:"unlit"`
}

// LoadHouseSpec reads and validates a house prefab.
func LoadHouseSpec(name string) (*HouseSpec, error) {
	if name == "" {
		name = DefaultHouse
	}
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", name, err)
	}
	spec, err := ParseHouseSpec(data)
	if err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	return spec, nil
}

// ParseHouseSpec decodes and validates raw YAML.
func ParseHouseSpec(data []byte) (*HouseSpec, error) {
	var spec HouseSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate checks every node decodes and refers to known flags, views and
// rooms.
func (s *HouseSpec) Validate() error {
	seen := make(map[string]struct{}, len(s.Nodes))
	for i, n := range s.Nodes {
		name := strings.TrimSpace(n.Name)
		if name == "" {
			return fmt.Errorf("node %d: empty name", i)
		}
		if _, ok := seen[name]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateNode, name)
		}
		seen[name] = struct{}{}
		if err := n.validate(); err != nil {
			return fmt.Errorf("node %s: %w", name, err)
		}
	}
	for view := range s.Viewport.Cameras {
		if _, err := state.ParseView(view); err != nil {
			return fmt.Errorf("viewport: %w", err)
		}
	}
	for key, t := range map[string]*ToneSpec{
		"click": s.Tones.Click, "toggle_on": s.Tones.ToggleOn,
		"toggle_off": s.Tones.ToggleOff, "navigate": s.Tones.Navigate,
	} {
		if t == nil || t.Wave == "" {
			continue
		}
		if !validWave(t.Wave) {
			return fmt.Errorf("tones: %s: unknown wave %q", key, t.Wave)
		}
	}
	return nil
}

func validWave(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sine", "square":
		return true
	}
	return false
}

func parseFlag(s string) (state.Flag, error) {
	f, err := state.ParseFlag(s)
	if err != nil {
		return "", fmt.Errorf("%w %q", ErrUnknownFlag, s)
	}
	return f, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// Or returns c's color, or fallback when none was configured.
func (c YAMLColor) Or(fallback color.Color) color.Color {
	if c.Color == nil {
		return fallback
	}
	return c.Color
}
