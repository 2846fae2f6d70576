package services

import (
	"context"

	"github.com/abrezinsky/pinplanner/internal/catalog"
	"github.com/abrezinsky/pinplanner/internal/models"
	"github.com/abrezinsky/pinplanner/internal/planner"
)

// Broadcaster defines the interface for pushing session changes to clients
type Broadcaster interface {
	BroadcastBoardState(state models.BoardState)
}

// CatalogServicer defines the interface for read-only catalog lookups
type CatalogServicer interface {
	Boards() []*catalog.Board
	Board(id string) (*catalog.Board, error)
	Components() []*catalog.Component
	Component(id string) (*catalog.Component, error)
	Dependencies(componentID, boardID string) ([]planner.ResolvedDependency, error)
}

// PlannerServicer defines the interface for the interactive planning session
type PlannerServicer interface {
	SelectBoard(boardID string) (models.BoardState, error)
	State() models.BoardState
	Validate(componentID string, pinIndex int) error
	Place(componentID string, pinIndex int) (models.BoardState, error)
	Remove(pinIndex int) (models.BoardState, error)
	Clear() (models.BoardState, error)
	Dependencies(componentID string) ([]planner.ResolvedDependency, error)
	Wiring() ([]planner.WiringEntry, error)
	Project() (planner.Project, error)
	LoadProject(p planner.Project, opts planner.ImportOptions) (models.BoardState, error)
	SetBroadcaster(b Broadcaster)
}

// ProjectServicer defines the interface for the saved project store
type ProjectServicer interface {
	Save(ctx context.Context, name string) (*models.Project, error)
	List(ctx context.Context) ([]models.ProjectSummary, error)
	Get(ctx context.Context, id string) (*models.Project, error)
	Delete(ctx context.Context, id string) error
	Load(ctx context.Context, id string) (models.BoardState, error)
	Import(ctx context.Context, p planner.Project) (models.BoardState, error)
	ExportMarkdown(ctx context.Context, id string) ([]byte, error)
	ShareURL(ctx context.Context, id string) (string, error)
	QRCode(ctx context.Context, id string) ([]byte, error)
}

// SettingsServicer defines the interface for settings operations
type SettingsServicer interface {
	GetBaseURL(ctx context.Context) (string, error)
	SetBaseURL(ctx context.Context, url string) error
	GetDefaultBoard(ctx context.Context) (string, error)
	SetDefaultBoard(ctx context.Context, boardID string) error
	AllSettings(ctx context.Context) (map[string]interface{}, error)
	UpdateSettings(ctx context.Context, settings Settings) error
}

// Ensure concrete types implement interfaces
var (
	_ CatalogServicer  = (*CatalogService)(nil)
	_ PlannerServicer  = (*PlannerService)(nil)
	_ ProjectServicer  = (*ProjectService)(nil)
	_ SettingsServicer = (*SettingsService)(nil)
)
