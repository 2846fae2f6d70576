package repository

import (
	"context"

	"github.com/abrezinsky/pinplanner/internal/models"
)

// ProjectRepository defines saved project operations
type ProjectRepository interface {
	SaveProject(ctx context.Context, p *models.Project) error
	GetProject(ctx context.Context, id string) (*models.Project, error)
	ListProjects(ctx context.Context) ([]models.ProjectSummary, error)
	DeleteProject(ctx context.Context, id string) error
	CountProjects(ctx context.Context) (int, error)
}

// SettingsRepository defines settings data operations
type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// FullRepository combines all repository interfaces
type FullRepository interface {
	ProjectRepository
	SettingsRepository
}

// Ensure Repository implements all interfaces
var _ FullRepository = (*Repository)(nil)
