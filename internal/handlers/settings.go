package handlers

import (
	"net/http"

	"github.com/abrezinsky/pinplanner/internal/services"
)

func (h *Handlers) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Settings.AllSettings(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	respondOK(w, settings)
}

func (h *Handlers) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req SettingsUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	err := h.Settings.UpdateSettings(r.Context(), services.Settings{
		BaseURL:      req.BaseURL,
		DefaultBoard: req.DefaultBoard,
	})
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.handleGetSettings(w, r)
}
