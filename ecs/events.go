package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	// EventContact carries a ContactEvent raised by the physics step.
	EventContact = "contact"
)

// ContactEvent is emitted when two collider shapes start overlapping. Source is
// the entity whose shape type registered interest in the contact.
type ContactEvent struct {
	Source Entity
	Other  Entity
}

// EventQueue is a simple FIFO queue. The scheduler clears it after every
// frame, so events are visible to every system that runs after the producer.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Peek returns the queued events without removing them.
func (q *EventQueue) Peek() []Event {
	if q == nil {
		return nil
	}
	return q.items
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

// Contacts returns the contact events queued so far this frame.
func (q *EventQueue) Contacts() []ContactEvent {
	if q == nil {
		return nil
	}
	var out []ContactEvent
	for _, evt := range q.items {
		if evt.Type != EventContact {
			continue
		}
		if c, ok := evt.Data.(ContactEvent); ok {
			out = append(out, c)
		}
	}
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
