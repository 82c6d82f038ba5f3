package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-yaml/yaml"
)

// Config holds the building-level parameters. Durations are stored as
// milliseconds in the yaml file since go-yaml has no native duration type.
type Config struct {
	NumFloors        int    `yaml:"NumFloors"`
	NumElevators     int    `yaml:"NumElevators"`
	Capacity         int    `yaml:"Capacity"`
	TravelTimeMs     int    `yaml:"TravelTimeMs"`
	DoorTransitionMs int    `yaml:"DoorTransitionMs"`
	DoorDwellMs      int    `yaml:"DoorDwellMs"`
	IdlePollMs       int    `yaml:"IdlePollMs"`
	Strategy         string `yaml:"Strategy"`
	MonitorPort      int    `yaml:"MonitorPort"`
}

func Default() Config {
	return Config{
		NumFloors:        4,
		NumElevators:     3,
		Capacity:         8,
		TravelTimeMs:     2000,
		DoorTransitionMs: 1000,
		DoorDwellMs:      3000,
		IdlePollMs:       20,
		Strategy:         "nearest",
		MonitorPort:      0,
	}
}

func Load(path string) (Config, error) {
	c := Default()
	file, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&c); err != nil {
		return c, fmt.Errorf("decode config: %w", err)
	}
	if err := c.validate(); err != nil {
		return c, err
	}
	return c, nil
}

func (c Config) validate() error {
	if c.NumFloors < 2 {
		return fmt.Errorf("config: NumFloors must be at least 2, got %d", c.NumFloors)
	}
	if c.NumElevators < 1 {
		return fmt.Errorf("config: NumElevators must be at least 1, got %d", c.NumElevators)
	}
	if c.Capacity < 1 {
		return fmt.Errorf("config: Capacity must be at least 1, got %d", c.Capacity)
	}
	return nil
}

func (c Config) TravelTime() time.Duration     { return time.Duration(c.TravelTimeMs) * time.Millisecond }
func (c Config) DoorTransition() time.Duration { return time.Duration(c.DoorTransitionMs) * time.Millisecond }
func (c Config) DoorDwell() time.Duration      { return time.Duration(c.DoorDwellMs) * time.Millisecond }
func (c Config) IdlePoll() time.Duration       { return time.Duration(c.IdlePollMs) * time.Millisecond }
