package services

import (
	"errors"
	"sync"
	"time"

	"github.com/abrezinsky/pinplanner/internal/catalog"
	"github.com/abrezinsky/pinplanner/internal/logger"
	"github.com/abrezinsky/pinplanner/internal/metrics"
	"github.com/abrezinsky/pinplanner/internal/models"
	"github.com/abrezinsky/pinplanner/internal/planner"
)

// PlannerService owns the single interactive planning session: the active
// board and its occupancy. All reads and writes go through mu, so a
// validate-then-place pair is one critical section.
type PlannerService struct {
	log         logger.Logger
	cat         *catalog.Catalog
	metrics     metrics.Recorder
	broadcaster Broadcaster

	mu      sync.Mutex
	tracker *planner.Tracker // nil until a board is selected
	version uint64
}

// NewPlannerService creates a new PlannerService with no board selected
func NewPlannerService(log logger.Logger, cat *catalog.Catalog, m metrics.Recorder) *PlannerService {
	if m == nil {
		m = metrics.Nop()
	}
	return &PlannerService{log: log, cat: cat, metrics: m}
}

// SetBroadcaster sets the broadcaster for sending updates to clients
func (s *PlannerService) SetBroadcaster(b Broadcaster) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.broadcaster = b
}

// Catalog returns the catalog the session validates against
func (s *PlannerService) Catalog() *catalog.Catalog {
	return s.cat
}

// SelectBoard starts a fresh session on boardID. Any previous assignments are
// discarded.
func (s *PlannerService) SelectBoard(boardID string) (models.BoardState, error) {
	if boardID == "" {
		return models.BoardState{}, ErrEmptyBoardID
	}
	board, ok := s.cat.Board(boardID)
	if !ok {
		return models.BoardState{}, &planner.NotFoundError{Kind: "board", ID: boardID}
	}

	return s.commit(func() error {
		s.tracker = planner.NewTracker(board)
		s.log.Info("Board selected", "board", board.ID)
		return nil
	})
}

// State returns a snapshot of the session
func (s *PlannerService) State() models.BoardState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

// Validate checks a placement without applying it
func (s *PlannerService) Validate(componentID string, pinIndex int) error {
	if componentID == "" {
		return ErrEmptyComponentID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tracker == nil {
		return ErrNoBoardSelected
	}
	return s.validateLocked(componentID, pinIndex)
}

// Place validates and applies a placement atomically
func (s *PlannerService) Place(componentID string, pinIndex int) (models.BoardState, error) {
	if componentID == "" {
		return models.BoardState{}, ErrEmptyComponentID
	}

	return s.commit(func() error {
		if s.tracker == nil {
			return ErrNoBoardSelected
		}
		log := s.log.With("board", s.tracker.Board().ID)

		if err := s.validateLocked(componentID, pinIndex); err != nil {
			var pe *planner.PlacementError
			if errors.As(err, &pe) {
				s.metrics.Placement(string(pe.Reason))
				log.Debug("Placement rejected", "component", componentID, "pin", pinIndex, "reason", pe.Reason)
			}
			return err
		}
		if err := s.tracker.Place(componentID, pinIndex); err != nil {
			log.Error("Placement failed after validation", "component", componentID, "pin", pinIndex, "error", err)
			return err
		}

		s.metrics.Placement(metrics.ResultAccepted)
		log.Info("Component placed", "component", componentID, "pin", pinIndex)
		return nil
	})
}

// Remove clears a pin. Removing a free pin is a no-op.
func (s *PlannerService) Remove(pinIndex int) (models.BoardState, error) {
	return s.commit(func() error {
		if s.tracker == nil {
			return ErrNoBoardSelected
		}
		if s.tracker.Remove(pinIndex) {
			s.metrics.Removal()
			s.log.Info("Component removed", "board", s.tracker.Board().ID, "pin", pinIndex)
		}
		return nil
	})
}

// Clear removes every assignment and keeps the board
func (s *PlannerService) Clear() (models.BoardState, error) {
	return s.commit(func() error {
		if s.tracker == nil {
			return ErrNoBoardSelected
		}
		s.tracker.Clear()
		s.log.Info("Board cleared", "board", s.tracker.Board().ID)
		return nil
	})
}

// Dependencies resolves a component's dependencies for the active board
func (s *PlannerService) Dependencies(componentID string) ([]planner.ResolvedDependency, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tracker == nil {
		return nil, ErrNoBoardSelected
	}
	return planner.ResolveDependencies(s.cat, componentID, s.tracker.Board().ID)
}

// Wiring returns the power/ground allocation for the session
func (s *PlannerService) Wiring() ([]planner.WiringEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tracker == nil {
		return nil, ErrNoBoardSelected
	}
	return planner.AllocateWiring(s.cat, s.tracker), nil
}

// Project assembles the session into its export shape
func (s *PlannerService) Project() (planner.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tracker == nil {
		return planner.Project{}, ErrNoBoardSelected
	}
	return planner.AssembleProject(s.cat, s.tracker), nil
}

// LoadProject replaces the session with p. On failure the current session is
// left untouched.
func (s *PlannerService) LoadProject(p planner.Project, opts planner.ImportOptions) (models.BoardState, error) {
	t, err := planner.ImportProject(s.cat, p, opts)
	if err != nil {
		s.log.Debug("Project load rejected", "board", p.BoardID, "error", err)
		return models.BoardState{}, err
	}

	return s.commit(func() error {
		s.tracker = t
		s.log.Info("Project loaded", "board", p.BoardID, "assignments", t.Len())
		return nil
	})
}

func (s *PlannerService) validateLocked(componentID string, pinIndex int) error {
	start := time.Now()
	defer func() { s.metrics.ObserveValidation(time.Since(start)) }()
	return planner.ValidatePlacement(s.cat, componentID, pinIndex, s.tracker)
}

// commit runs mutate under the session lock. When it succeeds the session
// version is bumped and the new state is broadcast after the lock is
// released, so a broadcaster may read State.
func (s *PlannerService) commit(mutate func() error) (models.BoardState, error) {
	state, b, err := func() (models.BoardState, Broadcaster, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if err := mutate(); err != nil {
			return models.BoardState{}, nil, err
		}
		s.version++
		state := s.stateLocked()
		s.metrics.ActiveAssignments(len(state.Assignments))
		return state, s.broadcaster, nil
	}()
	if err != nil {
		return models.BoardState{}, err
	}

	if b != nil {
		b.BroadcastBoardState(state)
	}
	return state, nil
}

func (s *PlannerService) stateLocked() models.BoardState {
	if s.tracker == nil {
		return models.BoardState{Assignments: []planner.Assignment{}, Version: s.version}
	}
	board := s.tracker.Board()
	return models.BoardState{
		Version:         s.version,
		BoardID:         board.ID,
		BoardName:       board.DisplayName,
		Assignments:     s.tracker.Snapshot(),
		AvailablePower:  s.tracker.AvailableCount(catalog.CapPower),
		AvailableGround: s.tracker.AvailableCount(catalog.CapGround),
	}
}
