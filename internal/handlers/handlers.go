package handlers

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/abrezinsky/pinplanner/internal/auth"
	"github.com/abrezinsky/pinplanner/internal/logger"
	"github.com/abrezinsky/pinplanner/internal/services"
	"github.com/abrezinsky/pinplanner/internal/websocket"
)

// NewStaticServer creates a static file server from an fs.FS
func NewStaticServer(staticFS fs.FS) http.Handler {
	return http.FileServer(http.FS(staticFS))
}

// Templates holds all parsed HTML templates
type Templates struct {
	Index *template.Template
}

// Deps groups the collaborators the handlers call into
type Deps struct {
	Catalog  services.CatalogServicer
	Planner  services.PlannerServicer
	Projects services.ProjectServicer
	Settings services.SettingsServicer
	Auth     *auth.Auth
	Hub      *websocket.Hub
	Metrics  http.Handler
	Log      logger.Logger
}

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Catalog      services.CatalogServicer
	Planner      services.PlannerServicer
	Projects     services.ProjectServicer
	Settings     services.SettingsServicer
	Auth         *auth.Auth
	Hub          *websocket.Hub
	Metrics      http.Handler
	Log          logger.Logger
	templates    *Templates
	staticServer http.Handler
}

// New creates a new Handlers instance with all dependencies
func New(deps Deps, templatesFS fs.FS, staticServer http.Handler) (*Handlers, error) {
	templates, err := loadTemplates(templatesFS)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	h := NewForTesting(deps)
	h.templates = templates
	h.staticServer = staticServer
	return h, nil
}

// NewForTesting creates a Handlers instance without loading templates (for testing API endpoints)
func NewForTesting(deps Deps) *Handlers {
	if deps.Auth == nil {
		deps.Auth = auth.New("")
	}
	if deps.Log == nil {
		deps.Log = logger.Discard()
	}
	if deps.Metrics == nil {
		deps.Metrics = http.NotFoundHandler()
	}
	return &Handlers{
		Catalog:      deps.Catalog,
		Planner:      deps.Planner,
		Projects:     deps.Projects,
		Settings:     deps.Settings,
		Auth:         deps.Auth,
		Hub:          deps.Hub,
		Metrics:      deps.Metrics,
		Log:          deps.Log,
		staticServer: http.NotFoundHandler(),
	}
}

// loadTemplates parses all templates once at startup
func loadTemplates(templatesFS fs.FS) (*Templates, error) {
	t := &Templates{}
	var err error

	if t.Index, err = template.ParseFS(templatesFS, "index.html"); err != nil {
		return nil, fmt.Errorf("index template: %w", err)
	}

	return t, nil
}
