package handlers

import (
	"net/http"

	"github.com/abrezinsky/pinplanner/internal/auth"
)

func (h *Handlers) handleAuthStatus(w http.ResponseWriter, r *http.Request) {
	respondOK(w, AuthStatusResponse{
		Enabled:       h.Auth.Enabled(),
		Authenticated: h.Auth.Enabled() && h.Auth.Authorized(r),
	})
}

// handleLogin exchanges the password for a session cookie
func (h *Handlers) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondError(w, r, err)
		return
	}

	if !h.Auth.Enabled() {
		respondSuccess(w, "Authentication is disabled")
		return
	}

	token, ok := h.Auth.Login(req.Password)
	if !ok {
		h.Log.Warn("Failed login attempt", "remote", r.RemoteAddr)
		h.respondError(w, r, Unauthorized("Invalid password"))
		return
	}

	auth.SetSessionCookie(w, token)
	respondSuccess(w, "Logged in")
}

// handleLogout clears the session
func (h *Handlers) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.CookieName); err == nil {
		h.Auth.Logout(cookie.Value)
	}

	auth.ClearSessionCookie(w)
	respondSuccess(w, "Logged out")
}
