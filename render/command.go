// Package render describes what the house asks the renderer to draw each
// tick. The renderer never reports anything back.
package render

import (
	"fmt"

	"github.com/milk9111/dollhouse/media"
)

type Vec3 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type Axis int

const (
	AxisY Axis = iota
	AxisX
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("axis(%d)", int(a))
	}
}

func ParseAxis(s string) (Axis, error) {
	switch s {
	case "y", "":
		return AxisY, nil
	case "x":
		return AxisX, nil
	case "z":
		return AxisZ, nil
	default:
		return 0, fmt.Errorf("render: unknown axis %q", s)
	}
}

type Op int

const (
	OpRotation Op = iota
	OpPosition
	OpIntensity
	OpTexture
	OpCamera
)

func (o Op) String() string {
	switch o {
	case OpRotation:
		return "rotation"
	case OpPosition:
		return "position"
	case OpIntensity:
		return "intensity"
	case OpTexture:
		return "texture"
	case OpCamera:
		return "camera"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Command is one write to a scene node.
//
//	OpRotation:  Value radians about Axis
//	OpPosition:  Vec
//	OpIntensity: Value
//	OpTexture:   Binding, nil clears the surface
//	OpCamera:    Vec position, Value field of view in degrees
type Command struct {
	Node    string
	Op      Op
	Axis    Axis
	Value   float64
	Vec     Vec3
	Binding *media.Binding
}

func (c Command) String() string {
	switch c.Op {
	case OpRotation:
		return fmt.Sprintf("%s rotation.%s=%.4f", c.Node, c.Axis, c.Value)
	case OpPosition:
		return fmt.Sprintf("%s position=(%.3f, %.3f, %.3f)", c.Node, c.Vec.X, c.Vec.Y, c.Vec.Z)
	case OpIntensity:
		return fmt.Sprintf("%s intensity=%.3f", c.Node, c.Value)
	case OpTexture:
		if c.Binding == nil {
			return fmt.Sprintf("%s texture=none", c.Node)
		}
		return fmt.Sprintf("%s texture=%s", c.Node, c.Binding.ID)
	case OpCamera:
		return fmt.Sprintf("%s camera=(%.3f, %.3f, %.3f) fov=%.1f", c.Node, c.Vec.X, c.Vec.Y, c.Vec.Z, c.Value)
	default:
		return fmt.Sprintf("%s %s", c.Node, c.Op)
	}
}

// Renderer consumes one tick's commands.
type Renderer interface {
	Apply(cmds []Command)
}

// Buffer collects the commands of one tick.
type Buffer struct {
	cmds []Command
}

func (b *Buffer) Reset() {
	if b == nil {
		return
	}
	b.cmds = b.cmds[:0]
}

func (b *Buffer) Push(c Command) {
	if b == nil {
		return
	}
	b.cmds = append(b.cmds, c)
}

func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.cmds)
}

// Commands returns a copy the caller may keep.
func (b *Buffer) Commands() []Command {
	if b == nil || len(b.cmds) == 0 {
		return nil
	}
	out := make([]Command, len(b.cmds))
	copy(out, b.cmds)
	return out
}

// Frame indexes a tick's commands by node for lookups.
type Frame map[string][]Command

func Index(cmds []Command) Frame {
	f := make(Frame, len(cmds))
	for _, c := range cmds {
		f[c.Node] = append(f[c.Node], c)
	}
	return f
}

// Find returns the first command for node with op.
func (f Frame) Find(node string, op Op) (Command, bool) {
	for _, c := range f[node] {
		if c.Op == op {
			return c, true
		}
	}
	return Command{}, false
}
