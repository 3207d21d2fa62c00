package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/dollhouse/house"
	"github.com/milk9111/dollhouse/prefabs"
	"github.com/milk9111/dollhouse/script"
	"github.com/milk9111/dollhouse/state"
	"golang.design/x/clipboard"
	"gopkg.in/yaml.v3"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Game struct {
	log    *slog.Logger
	debug  bool
	frames int

	engine    *house.Engine
	schematic *schematic
	panel     *panel

	scene   string
	watcher *prefabs.Watcher

	scriptName string
	player     *script.Player

	clipboardOK bool
	commands    int
}

type gameConfig struct {
	debug       bool
	scene       string
	script      string
	clipboardOK bool
	watcher     *prefabs.Watcher
}

func NewGame(engine *house.Engine, cfg gameConfig, l *slog.Logger) *Game {
	g := &Game{
		log:         l,
		debug:       cfg.debug,
		engine:      engine,
		schematic:   newSchematic(engine.Spec().Background),
		scene:       cfg.scene,
		watcher:     cfg.watcher,
		scriptName:  cfg.script,
		clipboardOK: cfg.clipboardOK,
	}
	g.panel = newPanel(g)
	if cfg.script != "" {
		g.loadScript()
	}
	return g
}

func (g *Game) Update() error {
	g.frames++
	dt := 1 / float64(ebiten.TPS())

	g.drainWatcher()
	g.handleKeys()
	g.player.Advance(dt, g.engine)

	if !g.engine.Snapshot().Fullscreen {
		g.panel.ui.Update()
	}

	cmds := g.engine.Tick(dt)
	g.commands = len(cmds)
	g.schematic.Apply(cmds)

	snap := g.engine.Snapshot()
	if snap.Fullscreen != ebiten.IsFullscreen() {
		ebiten.SetFullscreen(snap.Fullscreen)
	}
	g.panel.setStatus(snap.Status())
	return nil
}

func (g *Game) handleKeys() {
	e := g.engine
	keys := []struct {
		key ebiten.Key
		fn  func()
	}{
		{ebiten.KeyL, func() { e.Toggle(state.FlagLight) }},
		{ebiten.KeyF, func() { e.Toggle(state.FlagFan) }},
		{ebiten.KeyG, func() { e.Toggle(state.FlagGate) }},
		{ebiten.KeyT, func() { e.Toggle(state.FlagTV) }},
		{ebiten.KeyM, func() { e.Toggle(state.FlagSound) }},
		{ebiten.KeyV, func() {
			if e.Snapshot().View == state.Exterior {
				e.SwitchView(state.Interior)
				return
			}
			e.SwitchView(state.Exterior)
		}},
		{ebiten.Key1, func() { e.SwitchRoom(state.Living) }},
		{ebiten.Key2, func() { e.SwitchRoom(state.Kitchen) }},
		{ebiten.Key3, func() { e.SwitchRoom(state.Bedroom) }},
		{ebiten.KeyR, e.Reset},
		{ebiten.KeyF11, func() { e.Toggle(state.FlagFullscreen) }},
		{ebiten.KeyEscape, func() { e.SetFullscreen(false) }},
		{ebiten.KeyC, g.copySnapshot},
	}
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k.key) {
			k.fn()
		}
	}
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(change)
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.Warn("prefabs: watcher error", "err", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(change prefabs.Change) {
	g.log.Debug("prefabs: changed", "path", change.Path, "kind", change.Kind.String())
	switch {
	case change.Matches(g.scene):
		spec, err := prefabs.LoadHouseSpec(g.scene)
		if err != nil {
			g.log.Warn("prefabs: reload scene", "path", change.Path, "err", err)
			return
		}
		if err := g.engine.Reload(spec); err != nil {
			g.log.Warn("house: reload", "err", err)
			return
		}
		g.schematic.background = spec.Background
	case change.Matches(g.scriptName):
		g.loadScript()
	}
}

func (g *Game) loadScript() {
	steps, err := script.Load(context.Background(), g.scriptName)
	if err != nil {
		g.log.Warn("script: load", "name", g.scriptName, "err", err)
		return
	}
	g.log.Info("script: loaded", "name", g.scriptName, "steps", len(steps))
	g.player = script.NewPlayer(steps)
}

func (g *Game) copySnapshot() {
	if !g.clipboardOK {
		return
	}
	data, err := yaml.Marshal(g.engine.Snapshot())
	if err != nil {
		g.log.Warn("clipboard: marshal state", "err", err)
		return
	}
	clipboard.Write(clipboard.FmtText, data)
	g.log.Debug("clipboard: copied state")
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.schematic.Draw(screen)
	if !g.engine.Snapshot().Fullscreen {
		g.panel.ui.Draw(screen)
	}
	if g.debug {
		w, _ := g.engine.Viewport().Size()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    Commands: %d    Viewport: %s (%d)",
			g.frames, ebiten.ActualFPS(), g.commands, g.engine.Viewport().Class(), w), 200, 8)
	}
}

// Layout reports every outside size to the engine so the camera class
// follows the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return baseWidth, baseHeight
	}
	g.engine.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
