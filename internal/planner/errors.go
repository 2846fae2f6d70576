package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abrezinsky/pinplanner/internal/catalog"
)

// NotFoundError reports a component, board or pin that is not in the catalog.
type NotFoundError struct {
	Kind string // "component", "board" or "pin"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// Reason is the code attached to a rejected placement.
type Reason string

const (
	AlreadyAssigned    Reason = "ALREADY_ASSIGNED"
	PinOccupied        Reason = "PIN_OCCUPIED"
	NonDataPin         Reason = "NON_DATA_PIN"
	IncompatibleBus    Reason = "INCOMPATIBLE_BUS"
	InsufficientPower  Reason = "INSUFFICIENT_POWER"
	InsufficientGround Reason = "INSUFFICIENT_GROUND"
)

// PlacementError is an expected, user-facing rejection of a placement. Only the
// fields relevant to Reason are set: PlacedAt for AlreadyAssigned, Occupant for
// PinOccupied, Actual for NonDataPin, Allowed/Actual for IncompatibleBus, and
// Required/Available for the rail budget checks. The JSON form carries only
// those fields.
type PlacementError struct {
	Reason      Reason               `json:"reason"`
	ComponentID string               `json:"component_id"`
	PinIndex    int                  `json:"pin_index"`
	PlacedAt    int                  `json:"placed_at"`
	Occupant    string               `json:"occupant,omitempty"`
	Allowed     []catalog.Capability `json:"allowed,omitempty"`
	Actual      catalog.Capability   `json:"actual"`
	Required    int                  `json:"required,omitempty"`
	Available   int                  `json:"available"`
}

type placementErrorJSON struct {
	Reason      Reason               `json:"reason"`
	ComponentID string               `json:"component_id"`
	PinIndex    int                  `json:"pin_index"`
	PlacedAt    *int                 `json:"placed_at,omitempty"`
	Occupant    string               `json:"occupant,omitempty"`
	Allowed     []catalog.Capability `json:"allowed,omitempty"`
	Actual      *catalog.Capability  `json:"actual,omitempty"`
	Required    *int                 `json:"required,omitempty"`
	Available   *int                 `json:"available,omitempty"`
}

// MarshalJSON emits the common fields plus the ones that belong to Reason.
func (e *PlacementError) MarshalJSON() ([]byte, error) {
	out := placementErrorJSON{Reason: e.Reason, ComponentID: e.ComponentID, PinIndex: e.PinIndex}
	switch e.Reason {
	case AlreadyAssigned:
		out.PlacedAt = &e.PlacedAt
	case PinOccupied:
		out.Occupant = e.Occupant
	case NonDataPin:
		out.Actual = &e.Actual
	case IncompatibleBus:
		out.Allowed = e.Allowed
		out.Actual = &e.Actual
	case InsufficientPower, InsufficientGround:
		out.Required = &e.Required
		out.Available = &e.Available
	}
	return json.Marshal(out)
}

func (e *PlacementError) Error() string {
	switch e.Reason {
	case AlreadyAssigned:
		return fmt.Sprintf("component %q is already placed on pin %d", e.ComponentID, e.PlacedAt)
	case PinOccupied:
		return fmt.Sprintf("pin %d is occupied by %q", e.PinIndex, e.Occupant)
	case NonDataPin:
		return fmt.Sprintf("pin %d is a %s pin and cannot carry a component signal", e.PinIndex, e.Actual)
	case IncompatibleBus:
		allowed := make([]string, len(e.Allowed))
		for i, c := range e.Allowed {
			allowed[i] = c.String()
		}
		return fmt.Sprintf("component %q needs %s but pin %d is %s", e.ComponentID, strings.Join(allowed, "/"), e.PinIndex, e.Actual)
	case InsufficientPower:
		return fmt.Sprintf("component %q needs %d power pin(s), %d available", e.ComponentID, e.Required, e.Available)
	case InsufficientGround:
		return fmt.Sprintf("component %q needs %d ground pin(s), %d available", e.ComponentID, e.Required, e.Available)
	default:
		return fmt.Sprintf("placement of %q on pin %d rejected: %s", e.ComponentID, e.PinIndex, e.Reason)
	}
}

// InvariantError means the tracker was mutated without a prior successful
// validation. It indicates a programming error.
type InvariantError struct {
	Op     string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation in %s: %s", e.Op, e.Detail)
}

// ImportError wraps the failure of one assignment while importing a project.
type ImportError struct {
	Index       int
	ComponentID string
	Err         error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("assignment %d (%s): %v", e.Index, e.ComponentID, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}
