package ecs

// EventType names what happened.
type EventType string

// Event is raised by a system during one scheduler pass.
type Event struct {
	Type   EventType
	Entity Entity
	Data   any
}

// EventQueue collects the events of the current pass in the order raised.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Peek returns queued events of type typ without removing them. Later
// systems in the same pass use it to react to earlier ones.
func (q *EventQueue) Peek(typ EventType) []Event {
	if q == nil {
		return nil
	}
	var out []Event
	for _, evt := range q.items {
		if evt.Type == typ {
			out = append(out, evt)
		}
	}
	return out
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
