// Package panel mirrors one elevator unit onto TTK4145 elevator hardware
// or its simulator. Panel buttons become hall and car calls, lamps and the
// floor indicator follow the unit's events. The hardware never drives the
// car; it is purely an I/O surface for the building.
package panel

import (
	"log/slog"

	"elevatorlab/dispatcher"
	"elevatorlab/elevator"

	"github.com/angrycompany16/driver-go/elevio"
)

type Panel struct {
	building  *dispatcher.Building
	carID     int
	numFloors int
}

// New binds a panel to one unit of the building. Attach the panel as an
// event sink and call Run.
func New(b *dispatcher.Building, carID int) *Panel {
	return &Panel{building: b, carID: carID, numFloors: b.NumFloors()}
}

// Run connects to the hardware at addr and forwards button presses until
// the process exits. Blocks; run it in its own goroutine.
// Hardware floors are 0-based, building floors 1-based.
func (p *Panel) Run(addr string) {
	elevio.Init(addr, p.numFloors)

	buttons := make(chan elevio.ButtonEvent)
	obstruction := make(chan bool)
	go elevio.PollButtons(buttons)
	go elevio.PollObstructionSwitch(obstruction)

	for {
		select {
		case ev := <-buttons:
			p.handleButton(ev)
		case obstructed := <-obstruction:
			if obstructed {
				p.building.HoldDoors(p.carID)
			}
		}
	}
}

func (p *Panel) handleButton(ev elevio.ButtonEvent) {
	floor := ev.Floor + 1
	var ok bool
	switch ev.Button {
	case elevio.BT_HallUp:
		ok = p.building.RequestHallCall(floor, elevator.Up)
	case elevio.BT_HallDown:
		ok = p.building.RequestHallCall(floor, elevator.Down)
	case elevio.BT_Cab:
		ok = p.building.RequestCarCall(p.carID, floor)
	}
	if ok {
		elevio.SetButtonLamp(ev.Button, ev.Floor, true)
	} else {
		slog.Info("panel call rejected", "floor", floor, "button", int(ev.Button))
	}
}

// Notify implements elevator.Sink for the mirrored unit.
func (p *Panel) Notify(e elevator.Event) {
	if e.Elevator != p.carID {
		return
	}
	switch e.Kind {
	case elevator.EventMoved:
		elevio.SetFloorIndicator(e.Floor - 1)
	case elevator.EventDoorsOpening:
		elevio.SetDoorOpenLamp(true)
	case elevator.EventDoorsClosing:
		elevio.SetDoorOpenLamp(false)
	case elevator.EventFloorServed:
		for btn := 0; btn < 3; btn++ {
			elevio.SetButtonLamp(elevio.ButtonType(btn), e.Floor-1, false)
		}
	}
}
