package script

import "github.com/milk9111/dollhouse/state"

// Controls is the input boundary a script drives. house.Engine implements
// it.
type Controls interface {
	SetLight(on bool) bool
	SetFan(on bool) bool
	SetGate(on bool) bool
	SetTV(on bool) bool
	SetSoundEnabled(on bool) bool
	SetFullscreen(on bool) bool
	SwitchView(v state.View) bool
	SwitchRoom(r state.Room) bool
	Reset()
}

// Player replays steps as time advances.
type Player struct {
	steps   []Step
	next    int
	elapsed float64
}

func NewPlayer(steps []Step) *Player {
	return &Player{steps: steps}
}

// Advance moves the clock by dt seconds and applies every step now due.
// It returns how many steps ran.
func (p *Player) Advance(dt float64, c Controls) int {
	if p == nil || c == nil {
		return 0
	}
	if dt > 0 {
		p.elapsed += dt
	}
	ran := 0
	for p.next < len(p.steps) && p.steps[p.next].At <= p.elapsed {
		Apply(p.steps[p.next], c)
		p.next++
		ran++
	}
	return ran
}

// Done reports whether every step has run.
func (p *Player) Done() bool {
	return p == nil || p.next >= len(p.steps)
}

// Apply runs one step against c.
func Apply(s Step, c Controls) {
	switch s.Action {
	case ActionLight:
		c.SetLight(s.On)
	case ActionFan:
		c.SetFan(s.On)
	case ActionGate:
		c.SetGate(s.On)
	case ActionTV:
		c.SetTV(s.On)
	case ActionSound:
		c.SetSoundEnabled(s.On)
	case ActionFullscreen:
		c.SetFullscreen(s.On)
	case ActionView:
		c.SwitchView(s.View)
	case ActionRoom:
		c.SwitchRoom(s.Room)
	case ActionReset:
		c.Reset()
	}
}
