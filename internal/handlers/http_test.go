package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/abrezinsky/pinplanner/internal/catalog"
	"github.com/abrezinsky/pinplanner/internal/errors"
	"github.com/abrezinsky/pinplanner/internal/handlers"
	"github.com/abrezinsky/pinplanner/internal/planner"
	"github.com/abrezinsky/pinplanner/internal/services"
)

func TestAPIError_Error(t *testing.T) {
	err := handlers.NewAPIError(http.StatusBadRequest, "BAD_REQUEST", "test message")

	if err.Error() != "test message" {
		t.Errorf("expected 'test message', got %q", err.Error())
	}
	if err.Code != "BAD_REQUEST" {
		t.Errorf("expected code 'BAD_REQUEST', got %q", err.Code)
	}
}

func TestAPIErrorConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *handlers.APIError
		status int
		code   string
	}{
		{"bad request", handlers.BadRequest("bad"), http.StatusBadRequest, handlers.ErrCodeBadRequest},
		{"unauthorized", handlers.Unauthorized("nope"), http.StatusUnauthorized, handlers.ErrCodeUnauthorized},
		{"not found", handlers.NotFound("gone"), http.StatusNotFound, handlers.ErrCodeNotFound},
		{"internal", handlers.InternalError(fmt.Errorf("disk on fire")), http.StatusInternalServerError, handlers.ErrCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Status != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, tt.err.Status)
			}
			if tt.err.Code != tt.code {
				t.Errorf("expected code %q, got %q", tt.code, tt.err.Code)
			}
		})
	}
}

func TestInternalError_HidesCause(t *testing.T) {
	err := handlers.InternalError(fmt.Errorf("secret database path"))

	if err.Message != "Internal server error" {
		t.Errorf("expected generic message, got %q", err.Message)
	}
	data, _ := json.Marshal(err)
	if string(data) != `{"code":"INTERNAL_SERVER_ERROR","error":"Internal server error"}` {
		t.Errorf("unexpected JSON: %s", data)
	}
}

func TestToAPIError(t *testing.T) {
	rejection := &planner.PlacementError{
		Reason:      planner.IncompatibleBus,
		ComponentID: "bme280",
		PinIndex:    4,
		Allowed:     []catalog.Capability{catalog.CapI2C},
		Actual:      catalog.CapGPIO,
	}

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"placement rejection", rejection, http.StatusConflict, "INCOMPATIBLE_BUS"},
		{"wrapped rejection", fmt.Errorf("place: %w", rejection), http.StatusConflict, "INCOMPATIBLE_BUS"},
		{"catalog miss", &planner.NotFoundError{Kind: "component", ID: "x"}, http.StatusNotFound, handlers.ErrCodeNotFound},
		{"import failure", &planner.ImportError{Index: 1, ComponentID: "led", Err: rejection}, http.StatusBadRequest, handlers.ErrCodeInvalidProject},
		{"invariant", &planner.InvariantError{Op: "place", Detail: "dup"}, http.StatusInternalServerError, handlers.ErrCodeInternalServer},
		{"app not found", errors.NotFoundf("project %s not found", "x"), http.StatusNotFound, handlers.ErrCodeNotFound},
		{"app validation", errors.Validationf("bad %s", "name"), http.StatusBadRequest, handlers.ErrCodeValidation},
		{"app invalid input", errors.InvalidInputf("bad %s", "url"), http.StatusBadRequest, handlers.ErrCodeValidation},
		{"app internal", errors.Wrap(fmt.Errorf("boom"), errors.ErrInternal, "failed"), http.StatusInternalServerError, handlers.ErrCodeInternalServer},
		{"no board", services.ErrNoBoardSelected, http.StatusConflict, handlers.ErrCodeNoBoardSelected},
		{"service error", services.ErrEmptyBoardID, http.StatusBadRequest, handlers.ErrCodeBadRequest},
		{"api error passthrough", handlers.Unauthorized("x"), http.StatusUnauthorized, handlers.ErrCodeUnauthorized},
		{"unknown", fmt.Errorf("mystery"), http.StatusInternalServerError, handlers.ErrCodeInternalServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := handlers.ToAPIError(tt.err)
			if apiErr.Status != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, apiErr.Status)
			}
			if apiErr.Code != tt.code {
				t.Errorf("expected code %q, got %q", tt.code, apiErr.Code)
			}
		})
	}
}

func TestToAPIError_RejectionDetails(t *testing.T) {
	rejection := &planner.PlacementError{
		Reason:      planner.PinOccupied,
		ComponentID: "button",
		PinIndex:    7,
		Occupant:    "led",
	}

	apiErr := handlers.ToAPIError(rejection)
	data, err := json.Marshal(apiErr)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var body struct {
		Code    string         `json:"code"`
		Error   string         `json:"error"`
		Details map[string]any `json:"details"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if body.Code != "PIN_OCCUPIED" {
		t.Errorf("expected code PIN_OCCUPIED, got %q", body.Code)
	}
	if body.Error != rejection.Error() {
		t.Errorf("expected message %q, got %q", rejection.Error(), body.Error)
	}
	if body.Details["occupant"] != "led" {
		t.Errorf("expected occupant led in details, got %v", body.Details)
	}
	if body.Details["pin_index"] != float64(7) {
		t.Errorf("expected pin_index 7 in details, got %v", body.Details["pin_index"])
	}
}
