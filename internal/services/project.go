package services

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"text/template"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"github.com/abrezinsky/pinplanner/internal/catalog"
	"github.com/abrezinsky/pinplanner/internal/errors"
	"github.com/abrezinsky/pinplanner/internal/logger"
	"github.com/abrezinsky/pinplanner/internal/metrics"
	"github.com/abrezinsky/pinplanner/internal/models"
	"github.com/abrezinsky/pinplanner/internal/planner"
	"github.com/abrezinsky/pinplanner/internal/repository"
)

// MaxProjectNameLength bounds saved project names
const MaxProjectNameLength = 80

// ProjectService handles the saved project store
type ProjectService struct {
	log      logger.Logger
	repo     repository.ProjectRepository
	planner  *PlannerService
	settings SettingsServicer
	metrics  metrics.Recorder
	newID    func() string
}

// NewProjectService creates a new ProjectService
func NewProjectService(log logger.Logger, repo repository.ProjectRepository, plannerSvc *PlannerService, settings SettingsServicer, m metrics.Recorder) *ProjectService {
	if m == nil {
		m = metrics.Nop()
	}
	return &ProjectService{
		log:      log,
		repo:     repo,
		planner:  plannerSvc,
		settings: settings,
		metrics:  m,
		newID:    uuid.NewString,
	}
}

// Save stores the current session under a new id
func (s *ProjectService) Save(ctx context.Context, name string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.Validationf("project name is required")
	}
	if len([]rune(name)) > MaxProjectNameLength {
		return nil, errors.Validationf("project name must be at most %d characters", MaxProjectNameLength)
	}

	plan, err := s.planner.Project()
	if err != nil {
		return nil, err
	}

	p := &models.Project{ID: s.newID(), Name: name, Plan: plan}
	if err := s.repo.SaveProject(ctx, p); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to save project")
	}

	s.metrics.ProjectSaved()
	s.log.Info("Project saved", "id", p.ID, "name", p.Name, "board", plan.BoardID, "assignments", len(plan.Assignments))
	return p, nil
}

// List returns project summaries, newest first
func (s *ProjectService) List(ctx context.Context) ([]models.ProjectSummary, error) {
	return s.repo.ListProjects(ctx)
}

// Get returns one saved project
func (s *ProjectService) Get(ctx context.Context, id string) (*models.Project, error) {
	p, err := s.repo.GetProject(ctx, id)
	if err == repository.ErrNotFound {
		return nil, errors.NotFoundf("project %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a saved project
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	err := s.repo.DeleteProject(ctx, id)
	if err == repository.ErrNotFound {
		return errors.NotFoundf("project %s not found", id)
	}
	if err != nil {
		return err
	}
	s.log.Info("Project deleted", "id", id)
	return nil
}

// Load replays a saved project into the session. The replay is validated so
// a project saved against an older catalog cannot smuggle in a bad placement.
func (s *ProjectService) Load(ctx context.Context, id string) (models.BoardState, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return models.BoardState{}, err
	}
	return s.planner.LoadProject(p.Plan, planner.ImportOptions{})
}

// Import replays an externally produced project into the session
func (s *ProjectService) Import(ctx context.Context, p planner.Project) (models.BoardState, error) {
	if p.BoardID == "" {
		return models.BoardState{}, ErrEmptyBoardID
	}
	return s.planner.LoadProject(p, planner.ImportOptions{})
}

// ShareURL returns the link that opens a saved project in the planner
func (s *ProjectService) ShareURL(ctx context.Context, id string) (string, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return "", err
	}
	baseURL, err := s.settings.GetBaseURL(ctx)
	if err != nil {
		return "", err
	}
	if baseURL == "" {
		return "", ErrBaseURLNotConfigured
	}
	return fmt.Sprintf("%s/?project=%s", strings.TrimSuffix(baseURL, "/"), url.QueryEscape(id)), nil
}

// QRCode renders the share link of a saved project as a PNG
func (s *ProjectService) QRCode(ctx context.Context, id string) ([]byte, error) {
	link, err := s.ShareURL(ctx, id)
	if err != nil {
		return nil, err
	}
	return qrcode.Encode(link, qrcode.Medium, 256)
}

// ExportMarkdown renders a wiring document. An empty id exports the current
// session.
func (s *ProjectService) ExportMarkdown(ctx context.Context, id string) ([]byte, error) {
	name := "Current session"
	var plan planner.Project
	if id == "" {
		p, err := s.planner.Project()
		if err != nil {
			return nil, err
		}
		plan = p
	} else {
		p, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		name, plan = p.Name, p.Plan
	}

	cat := s.planner.Catalog()
	// Saved projects were validated when placed; replay them as-is so the
	// document still renders after catalog edits.
	t, err := planner.ImportProject(cat, plan, planner.ImportOptions{Trusted: true})
	if err != nil {
		return nil, err
	}
	return renderMarkdown(cat, name, plan, planner.AllocateWiring(cat, t))
}

var markdownTemplate = template.Must(template.New("export").Parse(`# {{.Name}}

Board: {{.Plan.BoardName}} (` + "`{{.Plan.BoardID}}`" + `)

## Pin assignments
{{if .Plan.Assignments}}
| Pin | Type | Component |
|-----|------|-----------|
{{range .Plan.Assignments}}| {{.Pin}} | {{.PinType}} | {{.ComponentName}} |
{{end}}{{else}}
No components placed.
{{end}}{{range .Items}}
## {{.ComponentName}}

- Signal: {{.SignalPin}} ({{.SignalType}})
{{range .Power}}- Power: {{.Label}}
{{end}}{{range .Ground}}- Ground: {{.Label}}
{{end}}{{range .Required}}- Requires {{.}}
{{end}}{{range .Optional}}- Optional: {{.}}
{{end}}{{end}}`))

type exportItem struct {
	planner.WiringEntry
	Required []string
	Optional []string
}

func renderMarkdown(cat *catalog.Catalog, name string, plan planner.Project, wiring []planner.WiringEntry) ([]byte, error) {
	items := make([]exportItem, 0, len(wiring))
	for _, w := range wiring {
		item := exportItem{WiringEntry: w}
		// Components missing from the catalog have no rules to report.
		deps, _ := planner.ResolveDependencies(cat, w.ComponentID, plan.BoardID)
		for _, d := range deps {
			text := d.Type
			if d.BoardReason != "" {
				text += " (" + d.BoardReason + ")"
			}
			switch d.RequiredStatus {
			case catalog.Required:
				item.Required = append(item.Required, text)
			case catalog.Optional:
				item.Optional = append(item.Optional, text)
			}
		}
		items = append(items, item)
	}

	var buf bytes.Buffer
	err := markdownTemplate.Execute(&buf, struct {
		Name  string
		Plan  planner.Project
		Items []exportItem
	}{name, plan, items})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
