package main

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/dollhouse/common"
	"github.com/milk9111/dollhouse/prefabs"
	"github.com/milk9111/dollhouse/render"
	"golang.org/x/image/colornames"
)

// anchor places a node on the schematic as a fraction of the screen.
type anchor struct {
	x, y float64
}

var anchors = map[string]anchor{
	"gate.left":              {0.42, 0.78},
	"gate.right":             {0.58, 0.78},
	"light.sun":              {0.85, 0.12},
	"light.ambient.exterior": {0.15, 0.12},
	"fan.blades":             {0.5, 0.25},
	"light.fan":              {0.5, 0.25},
	"light.wall.left":        {0.12, 0.45},
	"light.wall.right":       {0.88, 0.45},
	"light.floor":            {0.5, 0.85},
	"light.hemisphere":       {0.3, 0.1},
	"light.directional":      {0.7, 0.1},
	"tv.screen":              {0.5, 0.55},
	"tv.glow":                {0.5, 0.55},
	"tv.emissive":            {0.5, 0.55},
}

const (
	gateLeafLength = 0.08
	fanBladeLength = 0.07
	fanBlades      = 4
	tvWidth        = 0.22
	tvHeight       = 0.14
)

// schematic is a flat stand-in for the scene-graph renderer. It keeps the
// latest command per node and op and draws them.
type schematic struct {
	background prefabs.BackgroundSpec
	latest     map[string]map[render.Op]render.Command

	tvSource image.Image
	tvImage  *ebiten.Image
}

func newSchematic(bg prefabs.BackgroundSpec) *schematic {
	return &schematic{background: bg, latest: map[string]map[render.Op]render.Command{}}
}

// Apply replaces the drawn frame with cmds. Nodes without commands this
// tick are out of scope and disappear.
func (s *schematic) Apply(cmds []render.Command) {
	s.latest = make(map[string]map[render.Op]render.Command, len(cmds))
	for _, c := range cmds {
		byOp, ok := s.latest[c.Node]
		if !ok {
			byOp = map[render.Op]render.Command{}
			s.latest[c.Node] = byOp
		}
		byOp[c.Op] = c
	}
}

func (s *schematic) value(node string, op render.Op) (render.Command, bool) {
	c, ok := s.latest[node][op]
	return c, ok
}

func (s *schematic) Draw(screen *ebiten.Image) {
	b := screen.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	level := 0.0
	if c, ok := s.value("background", render.OpIntensity); ok {
		level = common.Clamp(c.Value, 0, 1)
	}
	screen.Fill(mix(s.background.Unlit.Or(colornames.Midnightblue), s.background.Lit.Or(colornames.Skyblue), level))

	names := make([]string, 0, len(s.latest))
	for name := range s.latest {
		names = append(names, name)
	}
	sort.Strings(names)

	var unplaced []string
	for _, name := range names {
		a, ok := anchors[name]
		if !ok {
			if name != "background" && name != "camera" {
				unplaced = append(unplaced, name)
			}
			continue
		}
		cx, cy := float32(a.x*w), float32(a.y*h)
		for op, c := range s.latest[name] {
			switch op {
			case render.OpRotation:
				s.drawRotation(screen, name, cx, cy, c.Value, w)
			case render.OpIntensity:
				r := float32(6 + 10*common.Clamp(c.Value, 0, 3))
				vector.FillCircle(screen, cx, cy, r, color.NRGBA{R: 0xff, G: 0xe0, B: 0x80, A: uint8(60 + 60*common.Clamp(c.Value, 0, 3))}, true)
			case render.OpTexture:
				s.drawScreen(screen, cx, cy, w, h, c)
			}
		}
	}

	if c, ok := s.value("camera", render.OpCamera); ok {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("camera (%.1f, %.1f, %.1f) fov %.0f", c.Vec.X, c.Vec.Y, c.Vec.Z, c.Value), 8, b.Dy()-20)
	}
	for i, name := range unplaced {
		ebitenutil.DebugPrintAt(screen, name, b.Dx()-160, 8+14*i)
	}
}

func (s *schematic) drawRotation(screen *ebiten.Image, name string, cx, cy float32, angle, w float64) {
	switch name {
	case "fan.blades":
		l := fanBladeLength * w
		for i := 0; i < fanBlades; i++ {
			a := angle + float64(i)*common.FullTurn/fanBlades
			vector.StrokeLine(screen, cx, cy, cx+float32(l*math.Cos(a)), cy+float32(l*math.Sin(a)), 6, colornames.Saddlebrown, true)
		}
	default:
		// gate leaves hinge at the anchor and swing in the ground plane
		l := gateLeafLength * w
		dx, dy := l*math.Cos(angle), l*math.Sin(angle)
		if name == "gate.right" {
			dx, dy = -dx, -dy
		}
		vector.StrokeLine(screen, cx, cy, cx+float32(dx), cy+float32(dy), 4, colornames.Dimgray, true)
	}
}

func (s *schematic) drawScreen(screen *ebiten.Image, cx, cy float32, w, h float64, c render.Command) {
	sw, sh := float32(tvWidth*w), float32(tvHeight*h)
	x, y := cx-sw/2, cy-sh/2
	vector.FillRect(screen, x, y, sw, sh, colornames.Black, false)
	vector.StrokeRect(screen, x, y, sw, sh, 2, colornames.Gray, false)

	if c.Binding == nil || c.Binding.Released() {
		return
	}
	frame := c.Binding.Frame()
	if frame == nil {
		return
	}
	if frame != s.tvSource {
		if s.tvImage != nil {
			s.tvImage.Deallocate()
		}
		s.tvImage = ebiten.NewImageFromImage(frame)
		s.tvSource = frame
	}

	fb := s.tvImage.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(sw)/float64(fb.Dx()), float64(sh)/float64(fb.Dy()))
	op.GeoM.Translate(float64(x), float64(y))
	screen.DrawImage(s.tvImage, op)
}

func mix(a, b color.Color, t float64) color.Color {
	ar, ag, ab, _ := a.RGBA()
	br, bg, bb, _ := b.RGBA()
	lerp := func(x, y uint32) uint8 {
		return uint8(common.Lerp(float64(x>>8), float64(y>>8), t))
	}
	return color.NRGBA{R: lerp(ar, br), G: lerp(ag, bg), B: lerp(ab, bb), A: 0xff}
}
