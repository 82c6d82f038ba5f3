package elevator

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

type Direction int

const (
	Down Direction = iota - 1
	None
	Up
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case None:
		return "none"
	default:
		return "undefined"
	}
}

type State int

const (
	Idle State = iota
	MovingUp
	MovingDown
	DoorsOpening
	DoorsOpen
	DoorsClosing
	Maintenance
	Emergency
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case MovingUp:
		return "movingUp"
	case MovingDown:
		return "movingDown"
	case DoorsOpening:
		return "doorsOpening"
	case DoorsOpen:
		return "doorsOpen"
	case DoorsClosing:
		return "doorsClosing"
	case Maintenance:
		return "maintenance"
	case Emergency:
		return "emergency"
	default:
		return "undefined"
	}
}

type CallKind int

const (
	HallCall CallKind = iota
	CarCall
)

func (k CallKind) String() string {
	switch k {
	case HallCall:
		return "hall"
	case CarCall:
		return "car"
	default:
		return "undefined"
	}
}

// Request is an immutable pending call. Floor is 1-based and must lie
// within [1, NumFloors] of the owning building.
type Request struct {
	Floor     int
	Direction Direction
	Kind      CallKind
	CreatedAt time.Time
}

func NewHallCall(floor int, dir Direction) Request {
	return Request{Floor: floor, Direction: dir, Kind: HallCall, CreatedAt: time.Now()}
}

func NewCarCall(floor int) Request {
	return Request{Floor: floor, Direction: None, Kind: CarCall, CreatedAt: time.Now()}
}

// Config holds the per-unit parameters. All units of a building share the
// same values, but each unit keeps its own copy.
type Config struct {
	NumFloors      int
	Capacity       int
	TravelTime     time.Duration
	DoorTransition time.Duration
	DoorDwell      time.Duration
	IdlePoll       time.Duration
}

// Unit is a single elevator car. All mutable fields are guarded by mu and
// are touched only by the unit's own control loop and by the exported
// methods, never directly by other packages.
type Unit struct {
	id   int
	cfg  Config
	sink Sink

	mu        sync.Mutex
	floor     int
	direction Direction
	state     State
	pending   []bool // indexed 1..NumFloors
	npending  int
	load      int
	holdOpen  bool
	queued    []Event

	quit     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// NewUnit creates a stopped unit resting at floor 1. Call Start to launch
// its control loop. A nil sink discards all events.
func NewUnit(id int, cfg Config, sink Sink) *Unit {
	if sink == nil {
		sink = nopSink{}
	}
	return &Unit{
		id:        id,
		cfg:       cfg,
		sink:      sink,
		floor:     1,
		direction: None,
		state:     Idle,
		pending:   make([]bool, cfg.NumFloors+1),
		quit:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

func (u *Unit) ID() int { return u.id }

// Snapshot is a point-in-time copy of a unit's state, safe to share and
// cheap to take. Pending is sorted ascending.
type Snapshot struct {
	ID        int
	NumFloors int
	Floor     int
	Direction Direction
	State     State
	Pending   []int
	Capacity  int
	Load      int
	Available bool
}

func (u *Unit) Snapshot() Snapshot {
	u.mu.Lock()
	defer u.mu.Unlock()

	pending := make([]int, 0, u.npending)
	for f := 1; f <= u.cfg.NumFloors; f++ {
		if u.pending[f] {
			pending = append(pending, f)
		}
	}
	return Snapshot{
		ID:        u.id,
		NumFloors: u.cfg.NumFloors,
		Floor:     u.floor,
		Direction: u.direction,
		State:     u.state,
		Pending:   pending,
		Capacity:  u.cfg.Capacity,
		Load:      u.load,
		Available: u.availableLocked(),
	}
}

func (u *Unit) availableLocked() bool {
	return u.state != Maintenance && u.state != Emergency && u.load < u.cfg.Capacity
}

func (s Snapshot) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "  +---------------------+\n")
	fmt.Fprintf(&b, "  |elevator = %-10d|\n", s.ID)
	fmt.Fprintf(&b, "  |floor    = %-10d|\n", s.Floor)
	fmt.Fprintf(&b, "  |dirn     = %-10.10s|\n", s.Direction)
	fmt.Fprintf(&b, "  |state    = %-10.10s|\n", s.State)
	fmt.Fprintf(&b, "  +---------------------+\n")
	for f := s.NumFloors; f >= 1; f-- {
		mark := "-"
		for _, p := range s.Pending {
			if p == f {
				mark = "#"
			}
		}
		fmt.Fprintf(&b, "  | %2d |  %s  |\n", f, mark)
	}
	fmt.Fprintf(&b, "  +---------------------+")
	return b.String()
}
