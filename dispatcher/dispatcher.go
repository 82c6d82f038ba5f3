// Package dispatcher owns the building: the elevator units, the active
// scheduling strategy, and the building-wide operations an embedding
// management layer calls into.
package dispatcher

import (
	"errors"
	"log/slog"
	"sync"

	"elevatorlab/config"
	"elevatorlab/elevator"
	"elevatorlab/scheduler"
)

var (
	// ErrInvalidFloor is returned for floors outside [1, NumFloors].
	ErrInvalidFloor = errors.New("floor out of range")
	// ErrInvalidDirection is returned for hall calls without an Up or
	// Down direction.
	ErrInvalidDirection = errors.New("hall call needs an up or down direction")
	// ErrUnknownElevator is returned for car calls naming a unit that
	// does not exist.
	ErrUnknownElevator = errors.New("no such elevator")
	// ErrNoElevatorAvailable is returned when the strategy finds no unit
	// able to take the request. Nothing is queued; retry is the caller's
	// policy.
	ErrNoElevatorAvailable = errors.New("no elevator available")
)

// Building dispatches hall and car calls across a fixed set of units.
// Units guard their own state; the building lock only covers the active
// strategy and the request counter, and is never held while waiting on a
// unit.
type Building struct {
	numFloors int
	units     []*elevator.Unit

	mu       sync.RWMutex
	strategy scheduler.Strategy
	requests int
}

// BuildingStatus is a point-in-time view of the whole building.
type BuildingStatus struct {
	Strategy  string
	Requests  int
	Elevators []elevator.Snapshot
}

// New creates a building with cfg.NumElevators units, ids 0..n-1, all
// resting at floor 1. Events from every unit go to sink (nil discards
// them). Units are created stopped; call Start.
func New(cfg config.Config, strategy scheduler.Strategy, sink elevator.Sink) *Building {
	if strategy == nil {
		strategy = scheduler.NearestCar{}
	}
	unitCfg := elevator.Config{
		NumFloors:      cfg.NumFloors,
		Capacity:       cfg.Capacity,
		TravelTime:     cfg.TravelTime(),
		DoorTransition: cfg.DoorTransition(),
		DoorDwell:      cfg.DoorDwell(),
		IdlePoll:       cfg.IdlePoll(),
	}
	units := make([]*elevator.Unit, cfg.NumElevators)
	for i := range units {
		units[i] = elevator.NewUnit(i, unitCfg, sink)
	}
	return &Building{
		numFloors: cfg.NumFloors,
		units:     units,
		strategy:  strategy,
	}
}

// Start launches every unit's control loop.
func (b *Building) Start() {
	for _, u := range b.units {
		u.Start()
	}
}

// Stop terminates every unit's control loop and waits for them to exit.
func (b *Building) Stop() {
	for _, u := range b.units {
		u.Stop()
	}
}

// HallCall routes a floor button press to the unit chosen by the active
// strategy. On any failure no unit state changes.
func (b *Building) HallCall(floor int, dir elevator.Direction) error {
	if floor < 1 || floor > b.numFloors {
		return ErrInvalidFloor
	}
	if dir != elevator.Up && dir != elevator.Down {
		return ErrInvalidDirection
	}

	req := elevator.NewHallCall(floor, dir)
	id, ok := b.Strategy().Select(b.snapshots(), req)
	if !ok {
		return ErrNoElevatorAvailable
	}
	// The unit may have gone unavailable since the snapshot was taken;
	// AddRequest re-checks under the unit lock.
	if err := b.units[id].AddRequest(req); err != nil {
		return ErrNoElevatorAvailable
	}
	b.countRequest()
	slog.Debug("hall call assigned", "floor", floor, "direction", dir.String(), "elevator", id)
	return nil
}

// CarCall routes a cabin button press to a specific unit.
func (b *Building) CarCall(id, floor int) error {
	if id < 0 || id >= len(b.units) {
		return ErrUnknownElevator
	}
	if floor < 1 || floor > b.numFloors {
		return ErrInvalidFloor
	}
	if err := b.units[id].AddRequest(elevator.NewCarCall(floor)); err != nil {
		return ErrNoElevatorAvailable
	}
	b.countRequest()
	slog.Debug("car call accepted", "floor", floor, "elevator", id)
	return nil
}

// RequestHallCall is the boolean form of HallCall.
func (b *Building) RequestHallCall(floor int, dir elevator.Direction) bool {
	err := b.HallCall(floor, dir)
	if err != nil {
		slog.Info("hall call rejected", "floor", floor, "direction", dir.String(), "reason", err)
	}
	return err == nil
}

// RequestCarCall is the boolean form of CarCall.
func (b *Building) RequestCarCall(id, floor int) bool {
	err := b.CarCall(id, floor)
	if err != nil {
		slog.Info("car call rejected", "floor", floor, "elevator", id, "reason", err)
	}
	return err == nil
}

// EmergencyStopAll puts every unit into Emergency and discards all
// pending floors. Idempotent.
func (b *Building) EmergencyStopAll() {
	slog.Warn("emergency stop engaged for all elevators")
	for _, u := range b.units {
		u.EmergencyStop()
	}
}

// EmergencyReleaseAll returns every emergency-stopped unit to Idle.
// Idempotent; discarded requests are not replayed.
func (b *Building) EmergencyReleaseAll() {
	slog.Warn("emergency stop released for all elevators")
	for _, u := range b.units {
		u.EmergencyRelease()
	}
}

// EnterMaintenance takes one unit out of service. Fails with
// ErrUnitMoving while the car is between floors.
func (b *Building) EnterMaintenance(id int) error {
	if id < 0 || id >= len(b.units) {
		return ErrUnknownElevator
	}
	return b.units[id].EnterMaintenance()
}

// ExitMaintenance returns one unit to service.
func (b *Building) ExitMaintenance(id int) error {
	if id < 0 || id >= len(b.units) {
		return ErrUnknownElevator
	}
	b.units[id].ExitMaintenance()
	return nil
}

// EnterMaintenanceAll takes every unit out of service, skipping units
// that are between floors. Returns the first such rejection, if any.
func (b *Building) EnterMaintenanceAll() error {
	var firstErr error
	for _, u := range b.units {
		if err := u.EnterMaintenance(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// ExitMaintenanceAll returns every maintenance unit to service.
func (b *Building) ExitMaintenanceAll() {
	for _, u := range b.units {
		u.ExitMaintenance()
	}
}

// HoldDoors restarts the door dwell on one unit, mirroring an obstruction
// switch.
func (b *Building) HoldDoors(id int) bool {
	if id < 0 || id >= len(b.units) {
		return false
	}
	return b.units[id].HoldDoors()
}

// SetLoad records the measured load of one unit.
func (b *Building) SetLoad(id, load int) error {
	if id < 0 || id >= len(b.units) {
		return ErrUnknownElevator
	}
	b.units[id].SetLoad(load)
	return nil
}

// Status copies each unit's state in turn. Units are only locked long
// enough to take their own snapshot, so the view is per-unit consistent
// but not a frozen instant across the building.
func (b *Building) Status() BuildingStatus {
	b.mu.RLock()
	name := b.strategy.Name()
	requests := b.requests
	b.mu.RUnlock()
	return BuildingStatus{
		Strategy:  name,
		Requests:  requests,
		Elevators: b.snapshots(),
	}
}

// Strategy returns the active scheduling strategy.
func (b *Building) Strategy() scheduler.Strategy {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.strategy
}

// SetStrategy swaps the active strategy at runtime. Nil is ignored.
func (b *Building) SetStrategy(s scheduler.Strategy) {
	if s == nil {
		return
	}
	b.mu.Lock()
	b.strategy = s
	b.mu.Unlock()
	slog.Info("scheduling strategy changed", "strategy", s.Name())
}

// NumElevators returns the number of units in the building.
func (b *Building) NumElevators() int { return len(b.units) }

// NumFloors returns the building's floor count.
func (b *Building) NumFloors() int { return b.numFloors }

func (b *Building) snapshots() []elevator.Snapshot {
	snaps := make([]elevator.Snapshot, len(b.units))
	for i, u := range b.units {
		snaps[i] = u.Snapshot()
	}
	return snaps
}

func (b *Building) countRequest() {
	b.mu.Lock()
	b.requests++
	b.mu.Unlock()
}
