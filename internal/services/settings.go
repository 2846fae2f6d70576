package services

import (
	"context"
	"net/url"
	"strings"

	"github.com/abrezinsky/pinplanner/internal/catalog"
	"github.com/abrezinsky/pinplanner/internal/errors"
	"github.com/abrezinsky/pinplanner/internal/logger"
	"github.com/abrezinsky/pinplanner/internal/repository"
)

// Setting keys
const (
	SettingBaseURL      = "base_url"
	SettingDefaultBoard = "default_board"
)

// SettingsService handles settings-related business logic
type SettingsService struct {
	log  logger.Logger
	repo repository.SettingsRepository
	cat  *catalog.Catalog
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(log logger.Logger, repo repository.SettingsRepository, cat *catalog.Catalog) *SettingsService {
	return &SettingsService{log: log, repo: repo, cat: cat}
}

// GetBaseURL returns the application base URL
func (s *SettingsService) GetBaseURL(ctx context.Context) (string, error) {
	return s.optional(ctx, SettingBaseURL)
}

// SetBaseURL saves the application base URL. An empty value clears it;
// anything else must be an absolute http or https URL.
func (s *SettingsService) SetBaseURL(ctx context.Context, baseURL string) error {
	baseURL = strings.TrimSuffix(strings.TrimSpace(baseURL), "/")
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return errors.InvalidInputf("base_url %q must be an absolute http or https URL", baseURL)
		}
	}
	return s.repo.SetSetting(ctx, SettingBaseURL, baseURL)
}

// GetDefaultBoard returns the board selected at startup, or "" for none
func (s *SettingsService) GetDefaultBoard(ctx context.Context) (string, error) {
	return s.optional(ctx, SettingDefaultBoard)
}

// SetDefaultBoard saves the board selected at startup. An empty id clears it.
func (s *SettingsService) SetDefaultBoard(ctx context.Context, boardID string) error {
	if boardID != "" {
		if _, ok := s.cat.Board(boardID); !ok {
			return errors.NotFoundf("board %q not found", boardID)
		}
	}
	return s.repo.SetSetting(ctx, SettingDefaultBoard, boardID)
}

// AllSettings returns the known settings as a map
func (s *SettingsService) AllSettings(ctx context.Context) (map[string]interface{}, error) {
	settings := make(map[string]interface{})

	baseURL, err := s.GetBaseURL(ctx)
	if err != nil {
		return nil, err
	}
	settings[SettingBaseURL] = baseURL

	board, err := s.GetDefaultBoard(ctx)
	if err != nil {
		return nil, err
	}
	settings[SettingDefaultBoard] = board

	return settings, nil
}

// Settings represents application settings for update operations.
// Nil fields are left unchanged.
type Settings struct {
	BaseURL      *string
	DefaultBoard *string
}

// UpdateSettings updates multiple settings at once
func (s *SettingsService) UpdateSettings(ctx context.Context, settings Settings) error {
	if settings.BaseURL != nil {
		if err := s.SetBaseURL(ctx, *settings.BaseURL); err != nil {
			return err
		}
	}
	if settings.DefaultBoard != nil {
		if err := s.SetDefaultBoard(ctx, *settings.DefaultBoard); err != nil {
			return err
		}
	}
	s.log.Info("Settings updated")
	return nil
}

// optional reads a setting, treating a missing row as empty
func (s *SettingsService) optional(ctx context.Context, key string) (string, error) {
	value, err := s.repo.GetSetting(ctx, key)
	if err != nil {
		if err == repository.ErrNotFound {
			return "", nil
		}
		return "", err // Propagate database errors
	}
	return value, nil
}
