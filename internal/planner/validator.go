package planner

import (
	"strconv"

	"github.com/abrezinsky/pinplanner/internal/catalog"
)

// ValidatePlacement checks whether componentID may be placed on pinIndex given
// the tracker's current state. It returns nil when the placement is allowed, a
// *NotFoundError for an unknown component or pin, or a *PlacementError naming
// the first failing check. It never mutates the tracker.
//
// Checks run in a fixed order so the reported reason is unambiguous:
// already placed, pin occupied, rail pin, bus compatibility, power budget,
// ground budget.
func ValidatePlacement(cat *catalog.Catalog, componentID string, pinIndex int, state *Tracker) error {
	comp, ok := cat.Component(componentID)
	if !ok {
		return &NotFoundError{Kind: "component", ID: componentID}
	}
	pin, ok := state.Board().Pin(pinIndex)
	if !ok {
		return &NotFoundError{Kind: "pin", ID: strconv.Itoa(pinIndex)}
	}

	reject := func(reason Reason) *PlacementError {
		return &PlacementError{Reason: reason, ComponentID: componentID, PinIndex: pinIndex}
	}

	if at, placed := state.PinOf(componentID); placed {
		e := reject(AlreadyAssigned)
		e.PlacedAt = at
		return e
	}
	if occupant, taken := state.Occupant(pinIndex); taken {
		e := reject(PinOccupied)
		e.Occupant = occupant
		return e
	}
	if pin.Capability.IsRail() {
		e := reject(NonDataPin)
		e.Actual = pin.Capability
		return e
	}
	if !comp.Accepts(pin.Capability) {
		e := reject(IncompatibleBus)
		e.Allowed = append([]catalog.Capability(nil), comp.DataRequirement...)
		e.Actual = pin.Capability
		return e
	}
	if avail := state.AvailableCount(catalog.CapPower); avail < comp.PowerPins {
		e := reject(InsufficientPower)
		e.Required, e.Available = comp.PowerPins, avail
		return e
	}
	if avail := state.AvailableCount(catalog.CapGround); avail < comp.GroundPins {
		e := reject(InsufficientGround)
		e.Required, e.Available = comp.GroundPins, avail
		return e
	}
	return nil
}
