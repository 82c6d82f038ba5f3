package elevator

import "time"

type EventKind int

const (
	EventMoved EventKind = iota
	EventStateChanged
	EventDoorsOpening
	EventDoorsClosing
	EventFloorServed
)

func (k EventKind) String() string {
	switch k {
	case EventMoved:
		return "moved"
	case EventStateChanged:
		return "stateChanged"
	case EventDoorsOpening:
		return "doorsOpening"
	case EventDoorsClosing:
		return "doorsClosing"
	case EventFloorServed:
		return "floorServed"
	default:
		return "undefined"
	}
}

// Event is a fire-and-forget notification emitted by a unit after a state
// mutation. Delivery order follows mutation order within one unit; no
// ordering is guaranteed across units.
type Event struct {
	Elevator int
	Kind     EventKind
	Floor    int
	State    State
	At       time.Time
}

// Sink consumes unit events. Implementations must not call back into the
// unit and should return quickly; slow consumers must buffer internally.
type Sink interface {
	Notify(Event)
}

type nopSink struct{}

func (nopSink) Notify(Event) {}

// queueEvent records an event while the unit lock is held. flushEvents
// hands the batch out for delivery after the lock is released.
func (u *Unit) queueEvent(kind EventKind) {
	u.queued = append(u.queued, Event{
		Elevator: u.id,
		Kind:     kind,
		Floor:    u.floor,
		State:    u.state,
		At:       time.Now(),
	})
}

func (u *Unit) flushEvents() []Event {
	events := u.queued
	u.queued = nil
	return events
}

func (u *Unit) emit(events []Event) {
	for _, e := range events {
		u.sink.Notify(e)
	}
}
