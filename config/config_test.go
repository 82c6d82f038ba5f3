package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "building_config.yaml")
	content := `NumFloors: 12
NumElevators: 4
Capacity: 10
TravelTimeMs: 1500
DoorDwellMs: 2500
Strategy: look
MonitorPort: 36251
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.NumFloors != 12 || c.NumElevators != 4 || c.Capacity != 10 {
		t.Errorf("building shape = %d floors / %d elevators / capacity %d", c.NumFloors, c.NumElevators, c.Capacity)
	}
	if c.TravelTime() != 1500*time.Millisecond {
		t.Errorf("TravelTime = %s, want 1.5s", c.TravelTime())
	}
	if c.DoorDwell() != 2500*time.Millisecond {
		t.Errorf("DoorDwell = %s, want 2.5s", c.DoorDwell())
	}
	// Fields missing from the file keep their defaults.
	if c.DoorTransitionMs != Default().DoorTransitionMs {
		t.Errorf("DoorTransitionMs = %d, want default %d", c.DoorTransitionMs, Default().DoorTransitionMs)
	}
	if c.Strategy != "look" {
		t.Errorf("Strategy = %q, want look", c.Strategy)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestLoadRejectsBadShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "building_config.yaml")
	if err := os.WriteFile(path, []byte("NumFloors: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected an error for a one-floor building")
	}
}
