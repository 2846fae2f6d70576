package services_test

import (
	"sync"
	"testing"
	"time"

	"github.com/abrezinsky/pinplanner/internal/logger"
	"github.com/abrezinsky/pinplanner/internal/models"
	"github.com/abrezinsky/pinplanner/internal/services"
	"github.com/abrezinsky/pinplanner/internal/testutil"
)

// recordingBroadcaster captures every state pushed by the planner
type recordingBroadcaster struct {
	mu     sync.Mutex
	states []models.BoardState
}

func (b *recordingBroadcaster) BroadcastBoardState(state models.BoardState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.states = append(b.states, state)
}

func (b *recordingBroadcaster) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.states)
}

func (b *recordingBroadcaster) last() models.BoardState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.states[len(b.states)-1]
}

// recordingMetrics captures metric calls
type recordingMetrics struct {
	mu         sync.Mutex
	placements map[string]int
	removals   int
	saved      int
	active     int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{placements: make(map[string]int)}
}

func (m *recordingMetrics) Placement(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.placements[result]++
}

func (m *recordingMetrics) Removal() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.removals++
}

func (m *recordingMetrics) ProjectSaved() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved++
}

func (m *recordingMetrics) ActiveAssignments(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = n
}

func (m *recordingMetrics) ObserveValidation(time.Duration) {}

// newPlanner builds a PlannerService over the test catalog with test_board selected
func newPlanner(t *testing.T) (*services.PlannerService, *recordingBroadcaster, *recordingMetrics) {
	t.Helper()
	m := newRecordingMetrics()
	svc := services.NewPlannerService(logger.Discard(), testutil.NewTestCatalog(t), m)
	b := &recordingBroadcaster{}
	svc.SetBroadcaster(b)
	if _, err := svc.SelectBoard("test_board"); err != nil {
		t.Fatalf("SelectBoard failed: %v", err)
	}
	return svc, b, m
}
