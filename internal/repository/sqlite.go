package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/abrezinsky/pinplanner/internal/models"
)

// Repository provides data access methods
type Repository struct {
	db  *sql.DB
	now func() time.Time
}

// New creates a new Repository
func New(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1) // SQLite works best with single connection
	db.SetMaxIdleConns(1)

	repo := &Repository{db: db, now: time.Now}

	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

// DB returns the underlying database connection (for transactions)
func (r *Repository) DB() *sql.DB {
	return r.db
}

// Close closes the database connection
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks if the database connection is alive
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// migrate runs database migrations
func (r *Repository) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			board_id TEXT NOT NULL,
			assignment_count INTEGER NOT NULL DEFAULT 0,
			data TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_projects_updated ON projects(updated_at)`,
	}

	for _, migration := range migrations {
		if _, err := r.db.Exec(migration); err != nil {
			return err
		}
	}

	// base_url is not set here; app.go fills it with the detected LAN address.
	defaultSettings := map[string]string{
		"default_board": "",
	}

	for key, value := range defaultSettings {
		_, err := r.db.Exec(`INSERT OR IGNORE INTO settings (key, value) VALUES (?, ?)`, key, value)
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *Repository) clock() time.Time {
	if r.now == nil {
		return time.Now().UTC()
	}
	return r.now().UTC()
}

// ==================== Project Methods ====================

// SaveProject inserts or replaces a project. CreatedAt is kept from the first
// save; both timestamps are written back to p.
func (r *Repository) SaveProject(ctx context.Context, p *models.Project) error {
	data, err := json.Marshal(p.Plan)
	if err != nil {
		return fmt.Errorf("encode project %s: %w", p.ID, err)
	}

	now := r.clock()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO projects (id, name, board_id, assignment_count, data, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			board_id = excluded.board_id,
			assignment_count = excluded.assignment_count,
			data = excluded.data,
			updated_at = excluded.updated_at`,
		p.ID, p.Name, p.Plan.BoardID, len(p.Plan.Assignments), string(data), p.CreatedAt, p.UpdatedAt)
	return err
}

// GetProject retrieves a project by id
func (r *Repository) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var p models.Project
	var data string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, data, created_at, updated_at
		FROM projects WHERE id = ?`, id).Scan(&p.ID, &p.Name, &data, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(data), &p.Plan); err != nil {
		return nil, fmt.Errorf("decode project %s: %w", id, err)
	}
	return &p, nil
}

// ListProjects returns summaries, most recently updated first
func (r *Repository) ListProjects(ctx context.Context) ([]models.ProjectSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, board_id, assignment_count, created_at, updated_at
		FROM projects
		ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []models.ProjectSummary{}
	for rows.Next() {
		var s models.ProjectSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.BoardID, &s.AssignmentCount, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, s)
	}
	return projects, rows.Err()
}

// DeleteProject removes a project
func (r *Repository) DeleteProject(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountProjects returns the number of saved projects
func (r *Repository) CountProjects(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&count)
	return count, err
}

// ==================== Settings Methods ====================

// GetSetting retrieves a setting value
func (r *Repository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return value, err
}

// SetSetting updates a setting value
func (r *Repository) SetSetting(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	return err
}
