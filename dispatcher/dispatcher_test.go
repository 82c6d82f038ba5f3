package dispatcher

import (
	"testing"
	"time"

	"elevatorlab/config"
	"elevatorlab/elevator"
	"elevatorlab/scheduler"
)

func testConfig() config.Config {
	return config.Config{
		NumFloors:        10,
		NumElevators:     3,
		Capacity:         8,
		TravelTimeMs:     1,
		DoorTransitionMs: 1,
		DoorDwellMs:      1,
		IdlePollMs:       1,
		Strategy:         "nearest",
	}
}

func pendingOf(b *Building, id int) []int {
	return b.Status().Elevators[id].Pending
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestHallCallValidation(t *testing.T) {
	b := New(testConfig(), scheduler.NearestCar{}, nil)

	if err := b.HallCall(15, elevator.Up); err != ErrInvalidFloor {
		t.Errorf("HallCall(15) = %v, want ErrInvalidFloor", err)
	}
	if err := b.HallCall(0, elevator.Down); err != ErrInvalidFloor {
		t.Errorf("HallCall(0) = %v, want ErrInvalidFloor", err)
	}
	if err := b.HallCall(4, elevator.None); err != ErrInvalidDirection {
		t.Errorf("HallCall with no direction = %v, want ErrInvalidDirection", err)
	}

	status := b.Status()
	if status.Requests != 0 {
		t.Errorf("request counter = %d after rejected calls, want 0", status.Requests)
	}
	for _, s := range status.Elevators {
		if len(s.Pending) != 0 {
			t.Errorf("elevator %d gained pending floors %v from a rejected call", s.ID, s.Pending)
		}
	}
}

func TestCarCallValidation(t *testing.T) {
	b := New(testConfig(), scheduler.NearestCar{}, nil)

	if err := b.CarCall(7, 3); err != ErrUnknownElevator {
		t.Errorf("CarCall(7, 3) = %v, want ErrUnknownElevator", err)
	}
	if err := b.CarCall(-1, 3); err != ErrUnknownElevator {
		t.Errorf("CarCall(-1, 3) = %v, want ErrUnknownElevator", err)
	}
	if err := b.CarCall(0, 11); err != ErrInvalidFloor {
		t.Errorf("CarCall(0, 11) = %v, want ErrInvalidFloor", err)
	}
	if err := b.CarCall(1, 6); err != nil {
		t.Fatalf("CarCall(1, 6) = %v", err)
	}
	if p := pendingOf(b, 1); len(p) != 1 || p[0] != 6 {
		t.Errorf("elevator 1 pending = %v, want [6]", p)
	}
}

func TestHallCallAssignsAndCounts(t *testing.T) {
	b := New(testConfig(), scheduler.NearestCar{}, nil)

	if !b.RequestHallCall(5, elevator.Up) {
		t.Fatal("hall call rejected")
	}
	if !b.RequestHallCall(2, elevator.Down) {
		t.Fatal("hall call rejected")
	}
	// Every unit rests at floor 1, so the nearest-car tie-break sends
	// both calls to unit 0.
	if p := pendingOf(b, 0); len(p) != 2 {
		t.Errorf("elevator 0 pending = %v, want two floors", p)
	}
	if got := b.Status().Requests; got != 2 {
		t.Errorf("request counter = %d, want 2", got)
	}
}

func TestAllUnitsInMaintenanceRejectsCalls(t *testing.T) {
	b := New(testConfig(), scheduler.NearestCar{}, nil)

	if err := b.EnterMaintenanceAll(); err != nil {
		t.Fatal(err)
	}
	if err := b.HallCall(4, elevator.Down); err != ErrNoElevatorAvailable {
		t.Errorf("HallCall = %v, want ErrNoElevatorAvailable", err)
	}
	if err := b.CarCall(1, 4); err != ErrNoElevatorAvailable {
		t.Errorf("CarCall = %v, want ErrNoElevatorAvailable", err)
	}

	b.ExitMaintenanceAll()
	if err := b.HallCall(4, elevator.Down); err != nil {
		t.Errorf("HallCall after maintenance exit = %v", err)
	}
}

func TestEmergencyStopAndRelease(t *testing.T) {
	b := New(testConfig(), scheduler.NearestCar{}, nil)

	if err := b.CarCall(2, 4); err != nil {
		t.Fatal(err)
	}
	if err := b.CarCall(2, 7); err != nil {
		t.Fatal(err)
	}

	b.EmergencyStopAll()
	b.EmergencyStopAll() // idempotent
	for _, s := range b.Status().Elevators {
		if s.State != elevator.Emergency {
			t.Errorf("elevator %d state = %s, want emergency", s.ID, s.State)
		}
		if len(s.Pending) != 0 {
			t.Errorf("elevator %d pending = %v, want empty", s.ID, s.Pending)
		}
	}
	if err := b.HallCall(3, elevator.Up); err != ErrNoElevatorAvailable {
		t.Errorf("HallCall during emergency = %v, want ErrNoElevatorAvailable", err)
	}

	b.EmergencyReleaseAll()
	for _, s := range b.Status().Elevators {
		if s.State != elevator.Idle || len(s.Pending) != 0 {
			t.Errorf("elevator %d after release: state %s pending %v", s.ID, s.State, s.Pending)
		}
	}
}

func TestStrategySwap(t *testing.T) {
	b := New(testConfig(), scheduler.NearestCar{}, nil)
	if got := b.Status().Strategy; got != "nearest" {
		t.Errorf("strategy = %q, want nearest", got)
	}

	b.SetStrategy(scheduler.Look{})
	if got := b.Status().Strategy; got != "look" {
		t.Errorf("strategy = %q after swap, want look", got)
	}

	b.SetStrategy(nil)
	if got := b.Status().Strategy; got != "look" {
		t.Errorf("nil swap changed strategy to %q", got)
	}
}

func TestBuildingServesCallsEndToEnd(t *testing.T) {
	cfg := testConfig()
	cfg.NumFloors = 4
	cfg.NumElevators = 2
	b := New(cfg, scheduler.Fallback{Primary: scheduler.Scan{}, Secondary: scheduler.NearestCar{}}, nil)

	b.Start()
	defer b.Stop()

	if !b.RequestCarCall(0, 3) {
		t.Fatal("car call rejected")
	}
	if !b.RequestHallCall(2, elevator.Up) {
		t.Fatal("hall call rejected")
	}

	waitFor(t, "all requests served", func() bool {
		for _, s := range b.Status().Elevators {
			if len(s.Pending) != 0 || s.State != elevator.Idle || s.Direction != elevator.None {
				return false
			}
		}
		return true
	})

	for _, s := range b.Status().Elevators {
		if s.Floor < 1 || s.Floor > cfg.NumFloors {
			t.Errorf("elevator %d at floor %d, outside bounds", s.ID, s.Floor)
		}
	}
}
