// Package scheduler holds the pluggable hall call assignment strategies.
// Strategies are pure functions over elevator snapshots: identical inputs
// always produce the same choice, which keeps them trivial to test and
// safe to swap at runtime.
package scheduler

import (
	"fmt"

	"elevatorlab/elevator"
)

// Strategy picks the unit a request should be assigned to, or reports
// that no unit can take it. Implementations must skip unavailable units
// (maintenance, emergency, at capacity) and must be deterministic.
type Strategy interface {
	Name() string
	Select(elevators []elevator.Snapshot, req elevator.Request) (id int, ok bool)
}

// ByName resolves a strategy from its config name.
func ByName(name string) (Strategy, error) {
	switch name {
	case "nearest":
		return NearestCar{}, nil
	case "scan":
		return Scan{}, nil
	case "look":
		return Look{}, nil
	case "fastest":
		return FastestFirst{}, nil
	case "scan+nearest":
		return Fallback{Primary: Scan{}, Secondary: NearestCar{}}, nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
}

func distance(s elevator.Snapshot, floor int) int {
	if s.Floor > floor {
		return s.Floor - floor
	}
	return floor - s.Floor
}

// Fallback composes two strategies: the secondary is consulted only when
// the primary finds no candidate. This is the explicit form of the usual
// "SCAN, else nearest car" behavior; no strategy falls back implicitly.
type Fallback struct {
	Primary   Strategy
	Secondary Strategy
}

func (f Fallback) Name() string {
	return f.Primary.Name() + "+" + f.Secondary.Name()
}

func (f Fallback) Select(elevators []elevator.Snapshot, req elevator.Request) (int, bool) {
	if id, ok := f.Primary.Select(elevators, req); ok {
		return id, true
	}
	return f.Secondary.Select(elevators, req)
}
