// Package monitor provides event sink implementations for elevator
// monitoring. Sinks carry no dispatch logic; they only consume the
// notifications units emit after state mutations.
package monitor

import (
	"log/slog"
	"sync"

	"elevatorlab/elevator"

	"github.com/angrycompany16/Network-go/network/transfer"
)

// LogSink writes every event to a structured logger.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink wraps logger; nil means slog.Default().
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Notify(e elevator.Event) {
	switch e.Kind {
	case elevator.EventMoved:
		s.logger.Info("elevator moved", "elevator", e.Elevator, "floor", e.Floor)
	case elevator.EventStateChanged:
		s.logger.Info("elevator state changed", "elevator", e.Elevator, "state", e.State.String(), "floor", e.Floor)
	case elevator.EventDoorsOpening:
		s.logger.Info("doors opening", "elevator", e.Elevator, "floor", e.Floor)
	case elevator.EventDoorsClosing:
		s.logger.Info("doors closing", "elevator", e.Elevator, "floor", e.Floor)
	case elevator.EventFloorServed:
		s.logger.Info("floor served", "elevator", e.Elevator, "floor", e.Floor)
	}
}

// BroadcastSink publishes events on a UDP broadcast port so external
// monitoring tools on the local network can follow the building without
// being linked in.
type BroadcastSink struct {
	events chan elevator.Event
}

const broadcastBuffer = 64

// NewBroadcastSink starts a broadcast sender on port and returns the
// sink feeding it.
func NewBroadcastSink(port int) *BroadcastSink {
	s := newBroadcastSink()
	go transfer.BroadcastSender(port, s.events)
	return s
}

func newBroadcastSink() *BroadcastSink {
	return &BroadcastSink{events: make(chan elevator.Event, broadcastBuffer)}
}

// Notify never blocks the emitting unit: events are dropped when the
// broadcast buffer is full.
func (s *BroadcastSink) Notify(e elevator.Event) {
	select {
	case s.events <- e:
	default:
	}
}

// MultiSink fans events out to a set of sinks. Sinks can be added after
// construction, which lets front-ends attach to a building that already
// owns the sink.
type MultiSink struct {
	mu    sync.RWMutex
	sinks []elevator.Sink
}

func NewMulti(sinks ...elevator.Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) Add(s elevator.Sink) {
	if s == nil {
		return
	}
	m.mu.Lock()
	m.sinks = append(m.sinks, s)
	m.mu.Unlock()
}

func (m *MultiSink) Notify(e elevator.Event) {
	m.mu.RLock()
	sinks := m.sinks
	m.mu.RUnlock()
	for _, s := range sinks {
		s.Notify(e)
	}
}
