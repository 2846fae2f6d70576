package planner_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abrezinsky/pinplanner/internal/catalog"
	"github.com/abrezinsky/pinplanner/internal/planner"
	"github.com/abrezinsky/pinplanner/internal/testutil"
)

func intPtr(v int) *int { return &v }

func TestAssembleProject(t *testing.T) {
	cat := testutil.NewTestCatalog(t)
	tr := newTracker(t, cat, "test_board")
	require.NoError(t, tr.Place("sensor", 5))
	require.NoError(t, tr.Place("led", 1))

	p := planner.AssembleProject(cat, tr)

	assert.Equal(t, "test_board", p.BoardID)
	assert.Equal(t, "Test Board", p.BoardName)
	assert.Equal(t, []planner.ProjectAssignment{
		{ComponentID: "led", ComponentName: "LED", Pin: "D0", PinType: catalog.CapGPIO, PinIndex: intPtr(1)},
		{ComponentID: "sensor", ComponentName: "I2C Sensor", Pin: "SCL", PinType: catalog.CapI2C, PinIndex: intPtr(5)},
	}, p.Assignments)
}

func TestAssembleProject_JSONShape(t *testing.T) {
	cat := testutil.NewTestCatalog(t)
	tr := newTracker(t, cat, "test_board")
	require.NoError(t, tr.Place("led", 1))

	data, err := json.Marshal(planner.AssembleProject(cat, tr))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"boardId": "test_board",
		"boardName": "Test Board",
		"assignments": [
			{"componentId": "led", "componentName": "LED", "pin": "D0", "pinType": "gpio", "pinIndex": 1}
		]
	}`, string(data))
}

func TestAssembleProject_EmptyBoard(t *testing.T) {
	cat := testutil.NewTestCatalog(t)
	p := planner.AssembleProject(cat, newTracker(t, cat, "test_board"))

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"assignments":[]`)
}

func TestImportProject_RoundTrip(t *testing.T) {
	cat := testutil.NewTestCatalog(t)
	tr := newTracker(t, cat, "test_board")
	require.NoError(t, tr.Place("led", 1))
	require.NoError(t, tr.Place("display", 2))
	require.NoError(t, tr.Place("gps", 9))

	restored, err := planner.ImportProject(cat, planner.AssembleProject(cat, tr), planner.ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, tr.Snapshot(), restored.Snapshot())
}

func TestImportProject_LabelOnlyAssignments(t *testing.T) {
	cat := testutil.NewTestCatalog(t)
	p := planner.Project{
		BoardID: "test_board",
		Assignments: []planner.ProjectAssignment{
			{ComponentID: "sensor", Pin: "SDA"},
			{ComponentID: "led", Pin: "D2"},
		},
	}

	tr, err := planner.ImportProject(cat, p, planner.ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, []planner.Assignment{
		{PinIndex: 2, ComponentID: "sensor"},
		{PinIndex: 7, ComponentID: "led"},
	}, tr.Snapshot())
}

func TestImportProject_ValidationSurfacesBadData(t *testing.T) {
	cat := testutil.NewTestCatalog(t)
	p := planner.Project{
		BoardID: "test_board",
		Assignments: []planner.ProjectAssignment{
			{ComponentID: "led", Pin: "D0", PinIndex: intPtr(1)},
			{ComponentID: "sensor", Pin: "D1", PinIndex: intPtr(4)},
		},
	}

	tr, err := planner.ImportProject(cat, p, planner.ImportOptions{})
	assert.Nil(t, tr)

	var ie *planner.ImportError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, 1, ie.Index)
	assert.Equal(t, "sensor", ie.ComponentID)

	var pe *planner.PlacementError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, planner.IncompatibleBus, pe.Reason)
}

func TestImportProject_TrustedSkipsValidation(t *testing.T) {
	cat := testutil.NewTestCatalog(t)
	p := planner.Project{
		BoardID: "test_board",
		Assignments: []planner.ProjectAssignment{
			{ComponentID: "sensor", Pin: "D1", PinIndex: intPtr(4)},
		},
	}

	tr, err := planner.ImportProject(cat, p, planner.ImportOptions{Trusted: true})
	require.NoError(t, err)
	assert.True(t, tr.IsComponentPlaced("sensor"))

	// Trusted imports still keep the tracker's own invariants.
	p.Assignments = append(p.Assignments, planner.ProjectAssignment{ComponentID: "sensor", PinIndex: intPtr(7)})
	_, err = planner.ImportProject(cat, p, planner.ImportOptions{Trusted: true})
	var inv *planner.InvariantError
	require.True(t, errors.As(err, &inv))
}

func TestImportProject_Errors(t *testing.T) {
	cat := testutil.NewTestCatalog(t)

	tests := []struct {
		name    string
		project planner.Project
		kind    string
	}{
		{
			name:    "unknown board",
			project: planner.Project{BoardID: "mystery"},
			kind:    "board",
		},
		{
			name: "unknown label",
			project: planner.Project{BoardID: "test_board", Assignments: []planner.ProjectAssignment{
				{ComponentID: "led", Pin: "D99"},
			}},
			kind: "pin",
		},
		{
			name: "index out of range",
			project: planner.Project{BoardID: "test_board", Assignments: []planner.ProjectAssignment{
				{ComponentID: "led", PinIndex: intPtr(40)},
			}},
			kind: "pin",
		},
		{
			name: "label disagrees with index",
			project: planner.Project{BoardID: "test_board", Assignments: []planner.ProjectAssignment{
				{ComponentID: "led", Pin: "D2", PinIndex: intPtr(1)},
			}},
			kind: "pin",
		},
		{
			name: "unknown component",
			project: planner.Project{BoardID: "test_board", Assignments: []planner.ProjectAssignment{
				{ComponentID: "phaser", Pin: "D0"},
			}},
			kind: "component",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := planner.ImportProject(cat, tt.project, planner.ImportOptions{})
			assert.Nil(t, tr)
			var nf *planner.NotFoundError
			require.True(t, errors.As(err, &nf), "got %v", err)
			assert.Equal(t, tt.kind, nf.Kind)
		})
	}
}

func TestImportProject_RepeatedLabelsTakeNextFreePin(t *testing.T) {
	cat := testutil.NewTestCatalog(t)
	p := planner.Project{
		BoardID: "test_board",
		Assignments: []planner.ProjectAssignment{
			{ComponentID: "a", Pin: "GND"},
			{ComponentID: "b", Pin: "GND"},
		},
	}

	tr, err := planner.ImportProject(cat, p, planner.ImportOptions{Trusted: true})
	require.NoError(t, err)
	assert.Equal(t, []planner.Assignment{
		{PinIndex: 3, ComponentID: "a"},
		{PinIndex: 6, ComponentID: "b"},
	}, tr.Snapshot())
}

func TestImportError_Unwrap(t *testing.T) {
	inner := &planner.NotFoundError{Kind: "pin", ID: "D9"}
	err := &planner.ImportError{Index: 2, ComponentID: "led", Err: inner}
	assert.Equal(t, `assignment 2 (led): pin "D9" not found`, err.Error())
	assert.ErrorIs(t, err, inner)
}
