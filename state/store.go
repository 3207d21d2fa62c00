package state

// TransitionKind identifies what changed.
type TransitionKind string

const (
	TransitionToggle   TransitionKind = "toggle"
	TransitionReset    TransitionKind = "reset"
	TransitionNavigate TransitionKind = "navigate"
)

// Transition is emitted once per effective change. Setters that leave the
// state unchanged emit nothing.
type Transition struct {
	Kind TransitionKind
	Flag Flag
	On   bool
	// State is the snapshot right after the change.
	State App
}

// Store owns the application state and turns input commands into new
// snapshots. It is not safe for concurrent use; callers drive it from the
// update loop.
type Store struct {
	app         App
	nav         *Navigator
	transitions []Transition
}

func NewStore() *Store {
	s := &Store{app: Default(), nav: NewNavigator()}
	s.app.View = s.nav.View()
	s.app.Room = s.nav.Room()
	return s
}

// Snapshot returns the current state by value.
func (s *Store) Snapshot() App {
	return s.app
}

// Navigator exposes the view/room machine.
func (s *Store) Navigator() *Navigator {
	return s.nav
}

// Drain returns transitions recorded since the last call, oldest first.
func (s *Store) Drain() []Transition {
	if len(s.transitions) == 0 {
		return nil
	}
	out := s.transitions
	s.transitions = nil
	return out
}

func (s *Store) push(t Transition) {
	t.State = s.app
	s.transitions = append(s.transitions, t)
}

// Set writes a boolean flag.
func (s *Store) Set(f Flag, on bool) bool {
	if _, err := ParseFlag(string(f)); err != nil {
		return false
	}
	if s.app.Flag(f) == on {
		return false
	}
	s.app = s.app.withFlag(f, on)
	s.push(Transition{Kind: TransitionToggle, Flag: f, On: on})
	return true
}

func (s *Store) SetLight(on bool) bool        { return s.Set(FlagLight, on) }
func (s *Store) SetFan(on bool) bool          { return s.Set(FlagFan, on) }
func (s *Store) SetGate(on bool) bool         { return s.Set(FlagGate, on) }
func (s *Store) SetTV(on bool) bool           { return s.Set(FlagTV, on) }
func (s *Store) SetSoundEnabled(on bool) bool { return s.Set(FlagSound, on) }
func (s *Store) SetFullscreen(on bool) bool   { return s.Set(FlagFullscreen, on) }

// Toggle flips a flag and returns its new value.
func (s *Store) Toggle(f Flag) bool {
	s.Set(f, !s.app.Flag(f))
	return s.app.Flag(f)
}

// SwitchView moves between exterior and interior.
func (s *Store) SwitchView(v View) bool {
	if !s.nav.SwitchView(v) {
		return false
	}
	s.app.View = s.nav.View()
	s.push(Transition{Kind: TransitionNavigate})
	return true
}

// SwitchRoom selects a room; ignored outside.
func (s *Store) SwitchRoom(r Room) bool {
	if !s.nav.SwitchRoom(r) {
		return false
	}
	s.app.Room = s.nav.Room()
	s.push(Transition{Kind: TransitionNavigate})
	return true
}

// Reset turns every device off. View, room, sound and fullscreen are kept.
// A reset always emits a transition so the click cue plays.
func (s *Store) Reset() {
	s.app.Light = false
	s.app.Fan = false
	s.app.Gate = false
	s.app.TV = false
	s.push(Transition{Kind: TransitionReset})
}
