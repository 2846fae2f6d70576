package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abrezinsky/pinplanner/internal/planner"
)

func (h *Handlers) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Projects.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, projects)
}

func (h *Handlers) handleGetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.Projects.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, project)
}

func (h *Handlers) handleSaveProject(w http.ResponseWriter, r *http.Request) {
	var req SaveProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	project, err := h.Projects.Save(r.Context(), req.Name)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondCreated(w, project)
}

func (h *Handlers) handleImportProject(w http.ResponseWriter, r *http.Request) {
	var project planner.Project
	if err := decodeJSON(r, &project); err != nil {
		h.respondError(w, r, err)
		return
	}

	state, err := h.Projects.Import(r.Context(), project)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, state)
}

func (h *Handlers) handleLoadProject(w http.ResponseWriter, r *http.Request) {
	state, err := h.Projects.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, state)
}

func (h *Handlers) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.Projects.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, err)
		return
	}
	respondDeleted(w)
}

func (h *Handlers) handleExportProject(w http.ResponseWriter, r *http.Request) {
	h.exportMarkdown(w, r, chi.URLParam(r, "id"))
}

func (h *Handlers) handleGetShareURL(w http.ResponseWriter, r *http.Request) {
	url, err := h.Projects.ShareURL(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, ShareResponse{URL: url})
}

func (h *Handlers) handleGetProjectQR(w http.ResponseWriter, r *http.Request) {
	png, err := h.Projects.QRCode(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(png)
}
