package planner

import (
	"fmt"
	"sort"

	"github.com/abrezinsky/pinplanner/internal/catalog"
)

// Assignment places one component on one pin. PinIndex is the position in the
// board's pin list; labels repeat so they cannot identify a pin.
type Assignment struct {
	PinIndex    int    `json:"pin_index"`
	ComponentID string `json:"component_id"`
}

// Tracker owns the occupancy state of a single board. It is not safe for
// concurrent use; callers serialise validate+place per board.
type Tracker struct {
	board       *catalog.Board
	byPin       map[int]string
	byComponent map[string]int
}

// NewTracker returns an empty tracker for the board.
func NewTracker(board *catalog.Board) *Tracker {
	return &Tracker{
		board:       board,
		byPin:       make(map[int]string),
		byComponent: make(map[string]int),
	}
}

// Board returns the board the tracker was created for.
func (t *Tracker) Board() *catalog.Board {
	return t.board
}

// IsAssigned reports whether the pin carries an assignment.
func (t *Tracker) IsAssigned(pinIndex int) bool {
	_, ok := t.byPin[pinIndex]
	return ok
}

// Occupant returns the component placed on the pin.
func (t *Tracker) Occupant(pinIndex int) (string, bool) {
	id, ok := t.byPin[pinIndex]
	return id, ok
}

// IsComponentPlaced reports whether the component is placed anywhere.
func (t *Tracker) IsComponentPlaced(componentID string) bool {
	_, ok := t.byComponent[componentID]
	return ok
}

// PinOf returns the pin the component is placed on.
func (t *Tracker) PinOf(componentID string) (int, bool) {
	pin, ok := t.byComponent[componentID]
	return pin, ok
}

// AvailableCount returns the number of unassigned pins with the capability.
func (t *Tracker) AvailableCount(capability catalog.Capability) int {
	n := 0
	for i, p := range t.board.Pins {
		if p.Capability != capability {
			continue
		}
		if _, taken := t.byPin[i]; !taken {
			n++
		}
	}
	return n
}

// Len returns the number of assignments.
func (t *Tracker) Len() int {
	return len(t.byPin)
}

// Place records an assignment. The caller must have validated the placement;
// Place only re-checks the tracker's own invariants.
func (t *Tracker) Place(componentID string, pinIndex int) error {
	if pinIndex < 0 || pinIndex >= len(t.board.Pins) {
		return &InvariantError{Op: "place", Detail: fmt.Sprintf("pin %d out of range for board %q", pinIndex, t.board.ID)}
	}
	if occupant, ok := t.byPin[pinIndex]; ok {
		return &InvariantError{Op: "place", Detail: fmt.Sprintf("pin %d already holds %q", pinIndex, occupant)}
	}
	if pin, ok := t.byComponent[componentID]; ok {
		return &InvariantError{Op: "place", Detail: fmt.Sprintf("component %q already on pin %d", componentID, pin)}
	}
	t.byPin[pinIndex] = componentID
	t.byComponent[componentID] = pinIndex
	return nil
}

// Remove deletes the assignment on the pin. It reports whether anything was
// removed; removing a free pin is a no-op.
func (t *Tracker) Remove(pinIndex int) bool {
	componentID, ok := t.byPin[pinIndex]
	if !ok {
		return false
	}
	delete(t.byPin, pinIndex)
	delete(t.byComponent, componentID)
	return true
}

// Clear drops every assignment.
func (t *Tracker) Clear() {
	t.byPin = make(map[int]string)
	t.byComponent = make(map[string]int)
}

// Snapshot returns the assignments in pin declaration order.
func (t *Tracker) Snapshot() []Assignment {
	out := make([]Assignment, 0, len(t.byPin))
	for pin, id := range t.byPin {
		out = append(out, Assignment{PinIndex: pin, ComponentID: id})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PinIndex < out[j].PinIndex })
	return out
}
