package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (h *Handlers) handleGetBoards(w http.ResponseWriter, r *http.Request) {
	boards := h.Catalog.Boards()
	resp := make([]BoardSummaryResponse, len(boards))
	for i, b := range boards {
		resp[i] = toBoardSummary(b)
	}
	respondOK(w, resp)
}

func (h *Handlers) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	board, err := h.Catalog.Board(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, toBoardResponse(board))
}

func (h *Handlers) handleGetComponents(w http.ResponseWriter, r *http.Request) {
	respondOK(w, h.Catalog.Components())
}

func (h *Handlers) handleGetComponent(w http.ResponseWriter, r *http.Request) {
	component, err := h.Catalog.Component(chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, component)
}

// handleGetDependencies resolves dependencies for ?board=, falling back to the
// session's board and then to the catalog defaults.
func (h *Handlers) handleGetDependencies(w http.ResponseWriter, r *http.Request) {
	boardID := r.URL.Query().Get("board")
	if boardID == "" {
		boardID = h.Planner.State().BoardID
	}

	deps, err := h.Catalog.Dependencies(chi.URLParam(r, "id"), boardID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, deps)
}
