package scheduler

import (
	"sort"

	"elevatorlab/elevator"
)

// NearestCar picks the available unit closest to the requested floor.
// Ties go to the lowest unit id.
type NearestCar struct{}

func (NearestCar) Name() string { return "nearest" }

func (NearestCar) Select(elevators []elevator.Snapshot, req elevator.Request) (int, bool) {
	bestID, bestDist := -1, 0
	for _, s := range elevators {
		if !s.Available {
			continue
		}
		d := distance(s, req.Floor)
		if bestID == -1 || d < bestDist {
			bestID, bestDist = s.ID, d
		}
	}
	return bestID, bestID != -1
}

// Scan only considers units already sweeping toward the floor in the
// request's direction (and not yet past it), plus idle units; among those
// it picks the closest. Returns none when no unit qualifies — composing
// with NearestCar is the caller's explicit choice, see Fallback.
type Scan struct{}

func (Scan) Name() string { return "scan" }

func (Scan) Select(elevators []elevator.Snapshot, req elevator.Request) (int, bool) {
	bestID, bestDist := -1, 0
	for _, s := range elevators {
		if !s.Available || !scanCandidate(s, req) {
			continue
		}
		d := distance(s, req.Floor)
		if bestID == -1 || d < bestDist {
			bestID, bestDist = s.ID, d
		}
	}
	return bestID, bestID != -1
}

func scanCandidate(s elevator.Snapshot, req elevator.Request) bool {
	switch s.Direction {
	case elevator.None:
		return true
	case elevator.Up:
		return req.Direction == elevator.Up && req.Floor >= s.Floor
	case elevator.Down:
		return req.Direction == elevator.Down && req.Floor <= s.Floor
	default:
		return false
	}
}

// Look scores every available unit as
// distance + 2*pendingCount - directionBonus, where the bonus is 10 for
// an idle unit or one heading the request's way, and picks the lowest
// score. Ties go to the lowest unit id.
type Look struct{}

func (Look) Name() string { return "look" }

const (
	lookLoadWeight     = 2
	lookDirectionBonus = 10
)

func (Look) Select(elevators []elevator.Snapshot, req elevator.Request) (int, bool) {
	bestID, bestScore := -1, 0
	for _, s := range elevators {
		if !s.Available {
			continue
		}
		score := distance(s, req.Floor) + lookLoadWeight*len(s.Pending)
		if s.Direction == elevator.None || s.Direction == req.Direction {
			score -= lookDirectionBonus
		}
		if bestID == -1 || score < bestScore {
			bestID, bestScore = s.ID, score
		}
	}
	return bestID, bestID != -1
}

// FastestFirst simulates each available unit serving its pending floors
// plus the new request and picks the one that goes idle soonest. Ties go
// to the lowest unit id.
type FastestFirst struct{}

func (FastestFirst) Name() string { return "fastest" }

func (FastestFirst) Select(elevators []elevator.Snapshot, req elevator.Request) (int, bool) {
	bestID, bestCost := -1, 0
	for _, s := range elevators {
		if !s.Available {
			continue
		}
		c := timeToServe(s, req.Floor)
		if bestID == -1 || c < bestCost {
			bestID, bestCost = s.ID, c
		}
	}
	return bestID, bestID != -1
}

// Abstract cost units per simulated phase. Only the ratio matters for
// ranking, so these stay fixed rather than tracking the configured
// travel and door times.
const (
	travelCost   = 2
	doorOpenCost = 3
)

// timeToServe runs the unit's own sweep rule forward in time until the
// pending set (including the new floor) is exhausted and returns the
// accumulated cost.
func timeToServe(s elevator.Snapshot, newFloor int) int {
	sim := newSim(s)
	sim.pending[newFloor] = true

	cost := 0
	for steps := 0; steps < 2*s.NumFloors*(len(s.Pending)+2); steps++ {
		if sim.pending[sim.floor] {
			delete(sim.pending, sim.floor)
			cost += doorOpenCost
		}
		sim.chooseDirection()
		if sim.dir == elevator.None {
			return cost
		}
		sim.floor += int(sim.dir)
		cost += travelCost
	}
	return cost
}

// PreferredOrder ranks available units by time-to-idle over their current
// pending sets, cheapest first. Useful for building-management layers
// that want an ordered candidate list rather than a single pick.
func PreferredOrder(elevators []elevator.Snapshot) []int {
	ids := make([]int, 0, len(elevators))
	costs := make(map[int]int, len(elevators))
	for _, s := range elevators {
		if !s.Available {
			continue
		}
		sim := newSim(s)
		cost := 0
		for steps := 0; steps < 2*s.NumFloors*(len(s.Pending)+1); steps++ {
			if sim.pending[sim.floor] {
				delete(sim.pending, sim.floor)
				cost += doorOpenCost
			}
			sim.chooseDirection()
			if sim.dir == elevator.None {
				break
			}
			sim.floor += int(sim.dir)
			cost += travelCost
		}
		ids = append(ids, s.ID)
		costs[s.ID] = cost
	}
	sort.SliceStable(ids, func(a, b int) bool { return costs[ids[a]] < costs[ids[b]] })
	return ids
}

type sim struct {
	floor     int
	dir       elevator.Direction
	numFloors int
	pending   map[int]bool
}

func newSim(s elevator.Snapshot) *sim {
	pending := make(map[int]bool, len(s.Pending))
	for _, f := range s.Pending {
		pending[f] = true
	}
	return &sim{floor: s.Floor, dir: s.Direction, numFloors: s.NumFloors, pending: pending}
}

func (s *sim) above() bool {
	for f := s.floor + 1; f <= s.numFloors; f++ {
		if s.pending[f] {
			return true
		}
	}
	return false
}

func (s *sim) below() bool {
	for f := 1; f < s.floor; f++ {
		if s.pending[f] {
			return true
		}
	}
	return false
}

func (s *sim) chooseDirection() {
	switch s.dir {
	case elevator.Down:
		if s.below() {
			s.dir = elevator.Down
		} else if s.above() {
			s.dir = elevator.Up
		} else {
			s.dir = elevator.None
		}
	default:
		if s.above() {
			s.dir = elevator.Up
		} else if s.below() {
			s.dir = elevator.Down
		} else {
			s.dir = elevator.None
		}
	}
}
