package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"elevatorlab/config"
	"elevatorlab/dispatcher"
	"elevatorlab/elevator"
	"elevatorlab/monitor"
	"elevatorlab/panel"
	"elevatorlab/scheduler"

	"github.com/eiannone/keyboard"
)

func main() {
	var (
		configPath = flag.String("config", "building_config.yaml", "path to the building config file")
		panelAddr  = flag.String("panel", "", "address of an elevator simulator to mirror, e.g. localhost:15657 (empty disables)")
		panelCar   = flag.Int("car", 0, "unit id the hardware panel mirrors")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Warn("could not load config, using defaults", "err", err)
		cfg = config.Default()
	}

	strategy, err := scheduler.ByName(cfg.Strategy)
	if err != nil {
		slog.Error("bad strategy in config", "err", err)
		os.Exit(1)
	}

	sinks := monitor.NewMulti(monitor.NewLogSink(nil))
	if cfg.MonitorPort > 0 {
		sinks.Add(monitor.NewBroadcastSink(cfg.MonitorPort))
	}

	building := dispatcher.New(cfg, strategy, sinks)
	if *panelAddr != "" {
		p := panel.New(building, *panelCar)
		sinks.Add(p)
		go p.Run(*panelAddr)
	}
	building.Start()
	defer building.Stop()

	fmt.Println("1-9: hall call  c: car call  e/r: emergency stop/release")
	fmt.Println("m/n: maintenance on/off  s: status  p: preferred order  Ctrl-C: quit")

	for {
		char, key, err := keyboard.GetSingleKey()
		if err != nil {
			slog.Error("keyboard input failed", "err", err)
			return
		}
		if key == keyboard.KeyCtrlC {
			return
		}

		switch {
		case char >= '1' && char <= '9':
			floor := int(char - '0')
			dir := elevator.Up
			if floor == cfg.NumFloors {
				dir = elevator.Down
			}
			building.RequestHallCall(floor, dir)
		case char == 'c':
			building.RequestCarCall(*panelCar, 3)
		case char == 'e':
			building.EmergencyStopAll()
		case char == 'r':
			building.EmergencyReleaseAll()
		case char == 'm':
			if err := building.EnterMaintenanceAll(); err != nil {
				slog.Info("some units refused maintenance", "err", err)
			}
		case char == 'n':
			building.ExitMaintenanceAll()
		case char == 's':
			status := building.Status()
			fmt.Printf("strategy=%s requests=%d\n", status.Strategy, status.Requests)
			for _, snap := range status.Elevators {
				fmt.Println(snap)
			}
		case char == 'p':
			fmt.Println("preferred order:", scheduler.PreferredOrder(building.Status().Elevators))
		}
	}
}
