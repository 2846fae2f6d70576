package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/abrezinsky/pinplanner/internal/planner"
)

func (h *Handlers) handleGetSession(w http.ResponseWriter, r *http.Request) {
	respondOK(w, h.Planner.State())
}

func (h *Handlers) handleSelectBoard(w http.ResponseWriter, r *http.Request) {
	var req SelectBoardRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	state, err := h.Planner.SelectBoard(req.BoardID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, state)
}

func decodePlacement(r *http.Request) (PlacementRequest, error) {
	var req PlacementRequest
	if err := decodeJSON(r, &req); err != nil {
		return req, err
	}
	if req.PinIndex == nil {
		return req, BadRequest("pin_index is required")
	}
	return req, nil
}

// handleValidatePlacement answers 200 for both outcomes; a rejection is data,
// not a failed request.
func (h *Handlers) handleValidatePlacement(w http.ResponseWriter, r *http.Request) {
	req, err := decodePlacement(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	err = h.Planner.Validate(req.ComponentID, *req.PinIndex)
	var pe *planner.PlacementError
	switch {
	case err == nil:
		respondOK(w, ValidationResponse{OK: true})
	case stderrors.As(err, &pe):
		respondOK(w, ValidationResponse{Reason: pe.Reason, Message: pe.Error(), Details: pe})
	default:
		h.respondError(w, r, err)
	}
}

func (h *Handlers) handlePlaceComponent(w http.ResponseWriter, r *http.Request) {
	req, err := decodePlacement(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	state, err := h.Planner.Place(req.ComponentID, *req.PinIndex)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondCreated(w, state)
}

func (h *Handlers) handleRemovePlacement(w http.ResponseWriter, r *http.Request) {
	pin, err := parseIntParam(r, "pin")
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if _, err := h.Planner.Remove(pin); err != nil {
		h.respondError(w, r, err)
		return
	}
	respondDeleted(w)
}

func (h *Handlers) handleClearSession(w http.ResponseWriter, r *http.Request) {
	state, err := h.Planner.Clear()
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, state)
}

func (h *Handlers) handleGetWiring(w http.ResponseWriter, r *http.Request) {
	wiring, err := h.Planner.Wiring()
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	if wiring == nil {
		wiring = []planner.WiringEntry{}
	}
	respondOK(w, wiring)
}

func (h *Handlers) handleGetSessionProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.Planner.Project()
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Disposition", `attachment; filename="`+project.BoardID+`-project.json"`)
	respondOK(w, project)
}

func (h *Handlers) handleExportSession(w http.ResponseWriter, r *http.Request) {
	h.exportMarkdown(w, r, "")
}

func (h *Handlers) exportMarkdown(w http.ResponseWriter, r *http.Request, projectID string) {
	doc, err := h.Projects.ExportMarkdown(r.Context(), projectID)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write(doc)
}
