package elevator

import (
	"errors"
	"log/slog"
	"time"
)

var (
	// ErrUnitUnavailable is returned when a request is sent to a unit in
	// maintenance, in emergency, or at rated capacity.
	ErrUnitUnavailable = errors.New("elevator unavailable")
	// ErrUnitMoving is returned when maintenance is requested while the
	// unit is between floors.
	ErrUnitMoving = errors.New("elevator is between floors")
)

// faultPause is how long a unit backs off after a control loop fault
// before resuming.
const faultPause = 500 * time.Millisecond

// Start launches the unit's control loop.
func (u *Unit) Start() {
	go u.run()
}

// Stop terminates the control loop and waits for it to exit. Safe to call
// more than once.
func (u *Unit) Stop() {
	u.stopOnce.Do(func() { close(u.quit) })
	<-u.done
}

func (u *Unit) run() {
	defer close(u.done)
	for {
		select {
		case <-u.quit:
			return
		default:
		}
		u.safeStep()
	}
}

// safeStep contains loop faults: a panic inside one iteration is logged
// and followed by a short pause, never by loop termination. A faulted
// unit degrades to idle instead of disappearing from the building.
func (u *Unit) safeStep() {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("elevator control loop fault", "elevator", u.id, "panic", r)
			u.sleep(faultPause)
		}
	}()
	u.step()
}

// step is one control loop iteration: re-check the emergency/maintenance
// flags, compute the next floor from the pending set, move at most one
// floor toward it, and open doors when arriving at a pending floor.
// Recomputing the target every iteration means floors requested mid-travel
// are picked up before the car passes them.
func (u *Unit) step() {
	u.mu.Lock()
	if u.interrupted() {
		u.mu.Unlock()
		u.sleep(u.cfg.IdlePoll)
		return
	}
	if u.npending == 0 {
		u.direction = None
		u.setState(Idle)
		events := u.flushEvents()
		u.mu.Unlock()
		u.emit(events)
		u.sleep(u.cfg.IdlePoll)
		return
	}

	target, _ := u.nextFloor()
	if target == u.floor {
		u.serveCurrentFloor()
		return
	}
	if target > u.floor {
		u.direction = Up
		u.setState(MovingUp)
	} else {
		u.direction = Down
		u.setState(MovingDown)
	}
	events := u.flushEvents()
	u.mu.Unlock()
	u.emit(events)

	if !u.sleep(u.cfg.TravelTime) {
		return
	}

	u.mu.Lock()
	if u.interrupted() {
		// Emergency/maintenance hit mid-travel: the arrival never commits.
		u.mu.Unlock()
		return
	}
	if u.direction == Up && u.floor < u.cfg.NumFloors {
		u.floor++
	} else if u.direction == Down && u.floor > 1 {
		u.floor--
	}
	u.queueEvent(EventMoved)
	if u.pending[u.floor] {
		u.serveCurrentFloor()
		return
	}
	events = u.flushEvents()
	u.mu.Unlock()
	u.emit(events)
}

// serveCurrentFloor runs the timed door sequence for the floor the car is
// resting at: DoorsOpening, DoorsOpen (clearing the pending floor),
// DoorsClosing, Idle. Must be called with u.mu held; returns unlocked.
// The dwell repeats while the floor is re-requested or the doors are held.
func (u *Unit) serveCurrentFloor() {
	u.setState(DoorsOpening)
	u.queueEvent(EventDoorsOpening)
	events := u.flushEvents()
	u.mu.Unlock()
	u.emit(events)
	if !u.sleep(u.cfg.DoorTransition) {
		return
	}

	u.mu.Lock()
	if u.interrupted() {
		u.mu.Unlock()
		return
	}
	u.setState(DoorsOpen)
	for {
		if u.pending[u.floor] {
			u.clearPending(u.floor)
			u.queueEvent(EventFloorServed)
		}
		u.holdOpen = false
		events = u.flushEvents()
		u.mu.Unlock()
		u.emit(events)
		if !u.sleep(u.cfg.DoorDwell) {
			return
		}
		u.mu.Lock()
		if u.interrupted() {
			u.mu.Unlock()
			return
		}
		if !u.pending[u.floor] && !u.holdOpen {
			break
		}
	}
	u.setState(DoorsClosing)
	u.queueEvent(EventDoorsClosing)
	events = u.flushEvents()
	u.mu.Unlock()
	u.emit(events)
	if !u.sleep(u.cfg.DoorTransition) {
		return
	}

	u.mu.Lock()
	if u.interrupted() {
		u.mu.Unlock()
		return
	}
	u.recomputeDirection()
	u.setState(Idle)
	events = u.flushEvents()
	u.mu.Unlock()
	u.emit(events)
}

// interrupted reports whether the unit has been pulled out of normal
// service. Requires u.mu.
func (u *Unit) interrupted() bool {
	return u.state == Emergency || u.state == Maintenance
}

// setState transitions the state machine and queues a state-change event
// when the state actually changes. Requires u.mu.
func (u *Unit) setState(s State) {
	if u.state == s {
		return
	}
	u.state = s
	u.queueEvent(EventStateChanged)
}

// sleep blocks for d or until the unit is stopped. Never called with u.mu
// held. Reports false when the unit is shutting down.
func (u *Unit) sleep(d time.Duration) bool {
	select {
	case <-u.quit:
		return false
	case <-time.After(d):
		return true
	}
}

// AddRequest queues the request's floor for service. The floor is
// guaranteed to be visited unless emergency or maintenance clears it
// first. Floor bounds are validated at the dispatcher boundary.
func (u *Unit) AddRequest(req Request) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if !u.availableLocked() {
		return ErrUnitUnavailable
	}
	u.addPending(req.Floor)
	return nil
}

// EmergencyStop forces the unit into the Emergency state and discards all
// pending floors. Idempotent. Takes effect before the next floor arrival
// or door action commits.
func (u *Unit) EmergencyStop() {
	u.mu.Lock()
	u.clearAllPending()
	u.direction = None
	u.setState(Emergency)
	events := u.flushEvents()
	u.mu.Unlock()
	u.emit(events)
}

// EmergencyRelease returns an emergency-stopped unit to Idle with an empty
// pending set. A no-op for units not in Emergency.
func (u *Unit) EmergencyRelease() {
	u.mu.Lock()
	if u.state != Emergency {
		u.mu.Unlock()
		return
	}
	u.direction = None
	u.setState(Idle)
	events := u.flushEvents()
	u.mu.Unlock()
	u.emit(events)
}

// EnterMaintenance takes the unit out of service and discards all pending
// floors. Rejected while the car is between floors. Idempotent.
func (u *Unit) EnterMaintenance() error {
	u.mu.Lock()
	if u.state == MovingUp || u.state == MovingDown {
		u.mu.Unlock()
		return ErrUnitMoving
	}
	if u.state == Maintenance {
		u.mu.Unlock()
		return nil
	}
	u.clearAllPending()
	u.direction = None
	u.setState(Maintenance)
	events := u.flushEvents()
	u.mu.Unlock()
	u.emit(events)
	return nil
}

// ExitMaintenance returns a maintenance unit to Idle. A no-op otherwise.
func (u *Unit) ExitMaintenance() {
	u.mu.Lock()
	if u.state != Maintenance {
		u.mu.Unlock()
		return
	}
	u.direction = None
	u.setState(Idle)
	events := u.flushEvents()
	u.mu.Unlock()
	u.emit(events)
}

// HoldDoors restarts the dwell while the doors are open, mirroring an
// obstruction switch. Reports whether the doors were actually held.
func (u *Unit) HoldDoors() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.state == DoorsOpening || u.state == DoorsOpen {
		u.holdOpen = true
		return true
	}
	return false
}

// SetLoad records the current load. A unit at or over rated capacity is
// skipped by scheduling strategies and rejects new requests.
func (u *Unit) SetLoad(load int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if load < 0 {
		load = 0
	}
	u.load = load
}
