package planner

import (
	"github.com/abrezinsky/pinplanner/internal/catalog"
)

// Placeholder labels used when a board runs out of free rail pins.
const (
	PlaceholderPower  = "an available Power Pin"
	PlaceholderGround = "an available Ground Pin"
)

// RailPin is a power or ground connection in a wiring list. Placeholder rail
// pins have PinIndex -1.
type RailPin struct {
	Label       string `json:"label"`
	PinIndex    int    `json:"pin_index"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// WiringEntry is one component's row in a wiring list.
type WiringEntry struct {
	ComponentID   string             `json:"component_id"`
	ComponentName string             `json:"component_name"`
	SignalPin     string             `json:"signal_pin"`
	SignalIndex   int                `json:"signal_index"`
	SignalType    catalog.Capability `json:"signal_type"`
	Power         []RailPin          `json:"power"`
	Ground        []RailPin          `json:"ground"`
}

// AllocateWiring hands out free rail pins to the placed components, greedily in
// assignment order. Each claim pops from the end of the free list. When a rail
// runs out the entry names a placeholder instead of failing: the wiring list is
// documentation, not a constraint.
func AllocateWiring(cat *catalog.Catalog, t *Tracker) []WiringEntry {
	board := t.Board()
	power := freeRail(board, t, catalog.CapPower)
	ground := freeRail(board, t, catalog.CapGround)

	snap := t.Snapshot()
	out := make([]WiringEntry, 0, len(snap))
	for _, a := range snap {
		pin := board.Pins[a.PinIndex]
		entry := WiringEntry{
			ComponentID:   a.ComponentID,
			ComponentName: a.ComponentID,
			SignalPin:     pin.Label,
			SignalIndex:   a.PinIndex,
			SignalType:    pin.Capability,
			Power:         []RailPin{},
			Ground:        []RailPin{},
		}
		var powerPins, groundPins int
		if comp, ok := cat.Component(a.ComponentID); ok {
			entry.ComponentName = comp.DisplayName
			powerPins, groundPins = comp.PowerPins, comp.GroundPins
		}
		for i := 0; i < powerPins; i++ {
			var rp RailPin
			power, rp = claim(board, power, PlaceholderPower)
			entry.Power = append(entry.Power, rp)
		}
		for i := 0; i < groundPins; i++ {
			var rp RailPin
			ground, rp = claim(board, ground, PlaceholderGround)
			entry.Ground = append(entry.Ground, rp)
		}
		out = append(out, entry)
	}
	return out
}

func freeRail(board *catalog.Board, t *Tracker, capability catalog.Capability) []int {
	var free []int
	for i, p := range board.Pins {
		if p.Capability == capability && !t.IsAssigned(i) {
			free = append(free, i)
		}
	}
	return free
}

func claim(board *catalog.Board, free []int, placeholder string) ([]int, RailPin) {
	if len(free) == 0 {
		return free, RailPin{Label: placeholder, PinIndex: -1, Placeholder: true}
	}
	idx := free[len(free)-1]
	return free[:len(free)-1], RailPin{Label: board.Pins[idx].Label, PinIndex: idx}
}
