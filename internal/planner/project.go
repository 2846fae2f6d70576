package planner

import (
	"fmt"

	"github.com/abrezinsky/pinplanner/internal/catalog"
)

// ProjectAssignment is one placed component in the export/import shape.
// PinIndex is optional on import: older files carry only the pin label.
type ProjectAssignment struct {
	ComponentID   string             `json:"componentId"`
	ComponentName string             `json:"componentName"`
	Pin           string             `json:"pin"`
	PinType       catalog.Capability `json:"pinType"`
	PinIndex      *int               `json:"pinIndex,omitempty"`
}

// Project is the board-plus-assignments shape handed to export and
// persistence collaborators, and the only accepted import format.
type Project struct {
	BoardID     string              `json:"boardId"`
	BoardName   string              `json:"boardName"`
	Assignments []ProjectAssignment `json:"assignments"`
}

// AssembleProject converts the tracker's state into a Project. Assignments
// follow pin declaration order.
func AssembleProject(cat *catalog.Catalog, t *Tracker) Project {
	board := t.Board()
	snap := t.Snapshot()
	p := Project{
		BoardID:     board.ID,
		BoardName:   board.DisplayName,
		Assignments: make([]ProjectAssignment, 0, len(snap)),
	}
	for _, a := range snap {
		pin := board.Pins[a.PinIndex]
		name := a.ComponentID
		if comp, ok := cat.Component(a.ComponentID); ok {
			name = comp.DisplayName
		}
		idx := a.PinIndex
		p.Assignments = append(p.Assignments, ProjectAssignment{
			ComponentID:   a.ComponentID,
			ComponentName: name,
			Pin:           pin.Label,
			PinType:       pin.Capability,
			PinIndex:      &idx,
		})
	}
	return p
}

// ImportOptions controls how a Project is replayed.
type ImportOptions struct {
	// Trusted skips validation and bulk-loads the assignments. Use it only for
	// data this process produced itself.
	Trusted bool
}

// ImportProject rebuilds board occupancy from a Project. Each assignment is
// replayed through ValidatePlacement then Place unless opts.Trusted is set.
// The first failing assignment aborts the import with an *ImportError; no
// partially loaded tracker is returned.
func ImportProject(cat *catalog.Catalog, p Project, opts ImportOptions) (*Tracker, error) {
	board, ok := cat.Board(p.BoardID)
	if !ok {
		return nil, &NotFoundError{Kind: "board", ID: p.BoardID}
	}

	t := NewTracker(board)
	for i, a := range p.Assignments {
		pinIndex, err := resolvePin(board, t, a)
		if err != nil {
			return nil, &ImportError{Index: i, ComponentID: a.ComponentID, Err: err}
		}
		if !opts.Trusted {
			if err := ValidatePlacement(cat, a.ComponentID, pinIndex, t); err != nil {
				return nil, &ImportError{Index: i, ComponentID: a.ComponentID, Err: err}
			}
		}
		if err := t.Place(a.ComponentID, pinIndex); err != nil {
			return nil, &ImportError{Index: i, ComponentID: a.ComponentID, Err: err}
		}
	}
	return t, nil
}

// resolvePin maps an imported assignment to a pin index. An explicit index
// must agree with the label when both are present; a label alone picks the
// first free pin carrying it.
func resolvePin(board *catalog.Board, t *Tracker, a ProjectAssignment) (int, error) {
	if a.PinIndex != nil {
		pin, ok := board.Pin(*a.PinIndex)
		if !ok {
			return 0, &NotFoundError{Kind: "pin", ID: fmt.Sprint(*a.PinIndex)}
		}
		if a.Pin != "" && a.Pin != pin.Label {
			return 0, &NotFoundError{Kind: "pin", ID: fmt.Sprintf("%s@%d", a.Pin, *a.PinIndex)}
		}
		return *a.PinIndex, nil
	}

	first := -1
	for i, pin := range board.Pins {
		if pin.Label != a.Pin {
			continue
		}
		if !t.IsAssigned(i) {
			return i, nil
		}
		if first < 0 {
			first = i
		}
	}
	if first >= 0 {
		// Every pin with this label is taken; let validation report the clash.
		return first, nil
	}
	return 0, &NotFoundError{Kind: "pin", ID: a.Pin}
}
