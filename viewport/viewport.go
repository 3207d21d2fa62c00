// Package viewport picks camera placement from the display width.
package viewport

import (
	"fmt"

	"github.com/milk9111/dollhouse/render"
	"github.com/milk9111/dollhouse/state"
)

// DefaultBreakpoint is the widest display still treated as narrow.
const DefaultBreakpoint = 576

type Class int

const (
	Wide Class = iota
	Narrow
)

func (c Class) String() string {
	switch c {
	case Wide:
		return "wide"
	case Narrow:
		return "narrow"
	default:
		return fmt.Sprintf("class(%d)", int(c))
	}
}

// Classify maps a display width to its class.
func Classify(width, breakpoint int) Class {
	if width <= breakpoint {
		return Narrow
	}
	return Wide
}

// CameraConfig is where the camera sits and how wide it sees.
type CameraConfig struct {
	Position    render.Vec3
	FieldOfView float64
}

// Table holds one camera per view and class.
type Table map[state.View]map[Class]CameraConfig

func DefaultTable() Table {
	return Table{
		state.Exterior: {
			Narrow: {Position: render.Vec3{X: 10, Y: 6, Z: 10}, FieldOfView: 60},
			Wide:   {Position: render.Vec3{X: 15, Y: 8, Z: 15}, FieldOfView: 50},
		},
		state.Interior: {
			Narrow: {Position: render.Vec3{X: 3, Y: 2, Z: 5}, FieldOfView: 60},
			Wide:   {Position: render.Vec3{X: 5, Y: 2.6, Z: 6.5}, FieldOfView: 45},
		},
	}
}

// Lookup returns the camera for view and class. Missing entries fall back to
// the default table.
func (t Table) Lookup(view state.View, class Class) CameraConfig {
	if byClass, ok := t[view]; ok {
		if cfg, ok := byClass[class]; ok {
			return cfg
		}
	}
	return DefaultTable()[view][class]
}

// Controller tracks the current class across resize notifications. The
// zero-width start state is wide until the first resize arrives.
type Controller struct {
	breakpoint int
	table      Table
	class      Class
	width      int
	height     int
	changes    int
}

func NewController(breakpoint int, table Table) *Controller {
	if breakpoint <= 0 {
		breakpoint = DefaultBreakpoint
	}
	if table == nil {
		table = DefaultTable()
	}
	return &Controller{breakpoint: breakpoint, table: table, class: Wide}
}

// Resize records the display size and reports whether the class changed.
func (c *Controller) Resize(width, height int) bool {
	c.width, c.height = width, height
	next := Classify(width, c.breakpoint)
	if next == c.class {
		return false
	}
	c.class = next
	c.changes++
	return true
}

func (c *Controller) Class() Class { return c.class }

func (c *Controller) Size() (int, int) { return c.width, c.height }

// Changes counts class changes since construction.
func (c *Controller) Changes() int { return c.changes }

// Camera returns the camera for view at the current class.
func (c *Controller) Camera(view state.View) CameraConfig {
	return c.table.Lookup(view, c.class)
}

// Configure replaces the breakpoint and table, re-deriving the class from
// the last known width.
func (c *Controller) Configure(breakpoint int, table Table) {
	if breakpoint > 0 {
		c.breakpoint = breakpoint
	}
	if table != nil {
		c.table = table
	}
	if c.width > 0 {
		c.Resize(c.width, c.height)
	}
}
