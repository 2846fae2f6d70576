package handlers_test

import (
	"net/http"
	"testing"

	"github.com/abrezinsky/pinplanner/internal/handlers"
)

func TestHandleGetSettings(t *testing.T) {
	setup := newTestSetup(t, "")

	rec := setup.do(t, http.MethodGet, "/api/settings", nil)
	expectStatus(t, rec, http.StatusOK)

	var settings map[string]string
	decodeBody(t, rec, &settings)
	if settings["base_url"] != "" || settings["default_board"] != "" {
		t.Errorf("expected empty settings, got %v", settings)
	}
}

func TestHandleUpdateSettings(t *testing.T) {
	setup := newTestSetup(t, "")

	rec := setup.do(t, http.MethodPut, "/api/settings", map[string]string{
		"base_url":      "http://10.0.0.5:8082/",
		"default_board": "test_board",
	})
	expectStatus(t, rec, http.StatusOK)

	var settings map[string]string
	decodeBody(t, rec, &settings)
	if settings["base_url"] != "http://10.0.0.5:8082" {
		t.Errorf("expected trailing slash trimmed, got %q", settings["base_url"])
	}
	if settings["default_board"] != "test_board" {
		t.Errorf("expected default board, got %q", settings["default_board"])
	}

	// Omitted fields are unchanged
	rec = setup.do(t, http.MethodPut, "/api/settings", map[string]string{"default_board": ""})
	expectStatus(t, rec, http.StatusOK)
	decodeBody(t, rec, &settings)
	if settings["base_url"] != "http://10.0.0.5:8082" || settings["default_board"] != "" {
		t.Errorf("unexpected settings after partial update: %v", settings)
	}
}

func TestHandleUpdateSettings_UnknownBoard(t *testing.T) {
	setup := newTestSetup(t, "")

	rec := setup.do(t, http.MethodPut, "/api/settings", map[string]string{"default_board": "flux_board"})
	expectStatus(t, rec, http.StatusNotFound)

	rec = setup.do(t, http.MethodPut, "/api/settings", "{")
	expectStatus(t, rec, http.StatusBadRequest)
}

func TestHandleUpdateSettings_MalformedBaseURL(t *testing.T) {
	setup := newTestSetup(t, "")

	rec := setup.do(t, http.MethodPut, "/api/settings", map[string]string{"base_url": "planner.local"})
	expectStatus(t, rec, http.StatusBadRequest)

	var body struct {
		Code string `json:"code"`
	}
	decodeBody(t, rec, &body)
	if body.Code != handlers.ErrCodeValidation {
		t.Errorf("expected %s, got %q", handlers.ErrCodeValidation, body.Code)
	}
}
