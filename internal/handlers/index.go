package handlers

import (
	"net/http"

	"github.com/abrezinsky/pinplanner/internal/catalog"
)

// IndexPageData holds the data passed to the planner page
type IndexPageData struct {
	Boards      []BoardSummaryResponse
	Components  []*catalog.Component
	BoardID     string
	ProjectID   string
	AuthEnabled bool
}

// handleIndex renders the planner. A ?project=<id> query (the share link)
// asks the page to load that project on startup.
func (h *Handlers) handleIndex(w http.ResponseWriter, r *http.Request) {
	boards := h.Catalog.Boards()
	data := IndexPageData{
		Boards:      make([]BoardSummaryResponse, len(boards)),
		Components:  h.Catalog.Components(),
		BoardID:     h.Planner.State().BoardID,
		ProjectID:   r.URL.Query().Get("project"),
		AuthEnabled: h.Auth.Enabled(),
	}
	for i, b := range boards {
		data.Boards[i] = toBoardSummary(b)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.Index.Execute(w, data); err != nil {
		h.Log.Error("Failed to render index", "error", err)
	}
}
