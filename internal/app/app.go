package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abrezinsky/pinplanner/internal/auth"
	"github.com/abrezinsky/pinplanner/internal/catalog"
	"github.com/abrezinsky/pinplanner/internal/handlers"
	"github.com/abrezinsky/pinplanner/internal/logger"
	"github.com/abrezinsky/pinplanner/internal/metrics"
	"github.com/abrezinsky/pinplanner/internal/repository"
	"github.com/abrezinsky/pinplanner/internal/services"
	"github.com/abrezinsky/pinplanner/internal/websocket"
)

const shutdownTimeout = 5 * time.Second

// Config holds the startup options of the planner server
type Config struct {
	DBPath string
	// CatalogPath overrides the embedded catalog when set
	CatalogPath string
	// LenientCatalog drops board overrides that name unknown boards instead
	// of refusing to start
	LenientCatalog bool
	Password       string
}

// App holds all application dependencies
type App struct {
	log       logger.Logger
	handlers  *handlers.Handlers
	repo      *repository.Repository
	planner   *services.PlannerService
	settings  *services.SettingsService
	hub       *websocket.Hub
	server    *http.Server
	closeOnce sync.Once
}

// New creates and initializes a new application instance
func New(log logger.Logger, cfg Config, templatesFS, staticFS fs.FS) (*App, error) {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	log.Info("Catalog loaded", "boards", len(cat.Boards()), "components", len(cat.Components()))

	repo, err := repository.New(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	// Initialize services
	m := metrics.New()
	catalogService := services.NewCatalogService(cat)
	plannerService := services.NewPlannerService(log, cat, m)
	settingsService := services.NewSettingsService(log, repo, cat)
	projectService := services.NewProjectService(log, repo, plannerService, settingsService, m)

	// Initialize WebSocket hub with DI
	hub := websocket.New(log, plannerService)
	hub.Start()
	plannerService.SetBroadcaster(hub)

	h, err := handlers.New(handlers.Deps{
		Catalog:  catalogService,
		Planner:  plannerService,
		Projects: projectService,
		Settings: settingsService,
		Auth:     auth.New(cfg.Password),
		Hub:      hub,
		Metrics:  m.Handler(),
		Log:      log,
	}, templatesFS, handlers.NewStaticServer(staticFS))
	if err != nil {
		hub.Stop()
		repo.Close()
		return nil, fmt.Errorf("failed to initialize handlers: %w", err)
	}

	a := &App{
		log:      log,
		handlers: h,
		repo:     repo,
		planner:  plannerService,
		settings: settingsService,
		hub:      hub,
	}
	a.server = &http.Server{Handler: a.Router()}
	a.restoreDefaultBoard()
	return a, nil
}

func loadCatalog(cfg Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		return catalog.Default()
	}
	cat, err := catalog.LoadFile(cfg.CatalogPath, catalog.Options{Lenient: cfg.LenientCatalog})
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog %s: %w", cfg.CatalogPath, err)
	}
	return cat, nil
}

// Router returns the configured HTTP router
func (a *App) Router() chi.Router {
	return a.handlers.Router()
}

// Close stops the server and releases app resources. It is safe to call more
// than once.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := a.server.Shutdown(ctx); err != nil {
			a.log.Warn("Server shutdown failed", "error", err)
		}
		a.hub.Stop()
		a.repo.Close()
	})
}

// Run starts the HTTP server and blocks until it stops. A server stopped by
// Close returns nil.
func (a *App) Run(addr string) error {
	// Set default base URL if not configured, using detected LAN IP
	ip := getPreferredIP(realNetworkProvider{})
	baseURL := fmt.Sprintf("http://%s%s", ip, addr)
	a.setDefaultBaseURL(baseURL)

	a.log.Info("Server starting", "url", baseURL)
	a.server.Addr = addr
	if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// restoreDefaultBoard starts the session on the saved default board, if any
func (a *App) restoreDefaultBoard() {
	ctx := context.Background()
	boardID, err := a.settings.GetDefaultBoard(ctx)
	if err != nil {
		a.log.Warn("Failed to read default board", "error", err)
		return
	}
	if boardID == "" {
		return
	}
	if _, err := a.planner.SelectBoard(boardID); err != nil {
		a.log.Warn("Default board is not in the catalog", "board", boardID, "error", err)
	}
}

// setDefaultBaseURL sets the base URL setting if not already configured
// or if current value uses localhost (which isn't useful for QR codes)
func (a *App) setDefaultBaseURL(baseURL string) {
	ctx := context.Background()
	existing, err := a.settings.GetBaseURL(ctx)
	if err != nil {
		a.log.Warn("Failed to read base_url", "error", err)
		return
	}

	needsUpdate := existing == "" || strings.Contains(existing, "localhost")
	if needsUpdate {
		if err := a.settings.SetBaseURL(ctx, baseURL); err != nil {
			a.log.Warn("Failed to set default base_url", "error", err)
		} else {
			a.log.Info("Default base URL set", "url", baseURL)
		}
	}
}

// networkInterface wraps net.Interface for testing
type networkInterface interface {
	Flags() net.Flags
	Addrs() ([]net.Addr, error)
}

// realInterface wraps a real net.Interface
type realInterface struct {
	iface net.Interface
}

func (r realInterface) Flags() net.Flags {
	return r.iface.Flags
}

func (r realInterface) Addrs() ([]net.Addr, error) {
	return r.iface.Addrs()
}

// networkProvider is an interface for getting network interfaces (for testing)
type networkProvider interface {
	Interfaces() ([]networkInterface, error)
}

// realNetworkProvider implements networkProvider using actual net package
type realNetworkProvider struct{}

func (realNetworkProvider) Interfaces() ([]networkInterface, error) {
	ifaces, err := net.Interfaces()
	if err != nil {
		return nil, err
	}
	result := make([]networkInterface, len(ifaces))
	for i, iface := range ifaces {
		result[i] = realInterface{iface: iface}
	}
	return result, nil
}

// getPreferredIP returns the address phones on the LAN should use to reach
// the planner. Private IPv4 ranges win over anything else; localhost is the
// last resort.
func getPreferredIP(provider networkProvider) string {
	ifaces, err := provider.Interfaces()
	if err != nil {
		return "localhost"
	}

	var candidates []net.IP
	for _, iface := range ifaces {
		flags := iface.Flags()
		if flags&net.FlagUp == 0 || flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}
		for _, addr := range addrs {
			if ip := ipv4Of(addr); ip != nil && !ip.IsLoopback() {
				candidates = append(candidates, ip)
			}
		}
	}

	for _, ip := range candidates {
		if ip.IsPrivate() {
			return ip.String()
		}
	}
	if len(candidates) > 0 {
		return candidates[0].String()
	}
	return "localhost"
}

// ipv4Of extracts the IPv4 address of addr, or nil
func ipv4Of(addr net.Addr) net.IP {
	var ip net.IP
	switch v := addr.(type) {
	case *net.IPNet:
		ip = v.IP
	case *net.IPAddr:
		ip = v.IP
	}
	return ip.To4()
}
