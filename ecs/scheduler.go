package ecs

// Scheduler runs systems in a fixed order. One Update is one frame pass.
type Scheduler struct {
	systems []System
	passes  uint64
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, sys := range systems {
		s.Add(sys)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update runs every system once, in order, and returns the events they
// raised. The queue is empty again when Update returns, so events never
// leak into the next pass.
func (s *Scheduler) Update(w *World) []Event {
	if w == nil {
		return nil
	}
	for _, system := range s.systems {
		system.Update(w)
	}
	s.passes++
	return w.Events().Drain()
}

// Passes counts completed updates.
func (s *Scheduler) Passes() uint64 {
	return s.passes
}

func (s *Scheduler) Systems() []System {
	return append([]System(nil), s.systems...)
}
