package mock

import (
	"context"

	"github.com/abrezinsky/pinplanner/internal/models"
	"github.com/abrezinsky/pinplanner/internal/repository"
)

// Repository wraps a real repository and allows injecting errors for testing.
//
// Usage:
//
//	realRepo := testutil.NewTestRepository(t)
//	mockRepo := mock.NewRepository(realRepo)
//	mockRepo.SaveProjectError = errors.New("database error")
//	svc := services.NewProjectService(log, mockRepo, planner, cat)
//	_, err := svc.Save(ctx, "Weather station")
//	// err will now contain the injected error
type Repository struct {
	repository.FullRepository

	// ===== Project Errors =====
	SaveProjectError   error
	GetProjectError    error
	ListProjectsError  error
	DeleteProjectError error
	CountProjectsError error

	// ===== Settings Errors =====
	GetSettingError error
	SetSettingError error
}

// NewRepository creates a mock repository wrapping a real one
func NewRepository(real repository.FullRepository) *Repository {
	return &Repository{
		FullRepository: real,
	}
}

// ===== Project Methods =====

func (m *Repository) SaveProject(ctx context.Context, p *models.Project) error {
	if m.SaveProjectError != nil {
		return m.SaveProjectError
	}
	return m.FullRepository.SaveProject(ctx, p)
}

func (m *Repository) GetProject(ctx context.Context, id string) (*models.Project, error) {
	if m.GetProjectError != nil {
		return nil, m.GetProjectError
	}
	return m.FullRepository.GetProject(ctx, id)
}

func (m *Repository) ListProjects(ctx context.Context) ([]models.ProjectSummary, error) {
	if m.ListProjectsError != nil {
		return nil, m.ListProjectsError
	}
	return m.FullRepository.ListProjects(ctx)
}

func (m *Repository) DeleteProject(ctx context.Context, id string) error {
	if m.DeleteProjectError != nil {
		return m.DeleteProjectError
	}
	return m.FullRepository.DeleteProject(ctx, id)
}

func (m *Repository) CountProjects(ctx context.Context) (int, error) {
	if m.CountProjectsError != nil {
		return 0, m.CountProjectsError
	}
	return m.FullRepository.CountProjects(ctx)
}

// ===== Settings Methods =====

func (m *Repository) GetSetting(ctx context.Context, key string) (string, error) {
	if m.GetSettingError != nil {
		return "", m.GetSettingError
	}
	return m.FullRepository.GetSetting(ctx, key)
}

func (m *Repository) SetSetting(ctx context.Context, key, value string) error {
	if m.SetSettingError != nil {
		return m.SetSettingError
	}
	return m.FullRepository.SetSetting(ctx, key, value)
}
