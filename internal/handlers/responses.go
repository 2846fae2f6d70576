package handlers

import (
	"github.com/abrezinsky/pinplanner/internal/catalog"
	"github.com/abrezinsky/pinplanner/internal/planner"
)

// BoardSummaryResponse is one entry of the board list
type BoardSummaryResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Voltage  float64 `json:"voltage,omitempty"`
	PinCount int     `json:"pin_count"`
}

// BoardResponse is a board with its pin header
type BoardResponse struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Voltage float64       `json:"voltage,omitempty"`
	Pins    []PinResponse `json:"pins"`
}

// PinResponse is one physical pin
type PinResponse struct {
	Index      int                `json:"index"`
	Label      string             `json:"label"`
	Capability catalog.Capability `json:"type"`
}

// ValidationResponse is the result of a dry-run placement
type ValidationResponse struct {
	OK      bool                    `json:"ok"`
	Reason  planner.Reason          `json:"reason,omitempty"`
	Message string                  `json:"message,omitempty"`
	Details *planner.PlacementError `json:"details,omitempty"`
}

// ShareResponse carries the link for a saved project
type ShareResponse struct {
	URL string `json:"url"`
}

// AuthStatusResponse reports whether the client may mutate the project store
type AuthStatusResponse struct {
	Enabled       bool `json:"enabled"`
	Authenticated bool `json:"authenticated"`
}

func toBoardSummary(b *catalog.Board) BoardSummaryResponse {
	return BoardSummaryResponse{ID: b.ID, Name: b.DisplayName, Voltage: b.Voltage, PinCount: len(b.Pins)}
}

func toBoardResponse(b *catalog.Board) BoardResponse {
	pins := make([]PinResponse, len(b.Pins))
	for i, p := range b.Pins {
		pins[i] = PinResponse{Index: i, Label: p.Label, Capability: p.Capability}
	}
	return BoardResponse{ID: b.ID, Name: b.DisplayName, Voltage: b.Voltage, Pins: pins}
}
