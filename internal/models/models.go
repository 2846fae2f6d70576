package models

import (
	"time"

	"github.com/abrezinsky/pinplanner/internal/planner"
)

// Project is a saved pin plan
type Project struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Plan      planner.Project `json:"project"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ProjectSummary is the list view of a saved project
type ProjectSummary struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	BoardID         string    `json:"board_id"`
	AssignmentCount int       `json:"assignment_count"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BoardState is the live view of the planning session pushed to clients.
// Version grows with every session change.
type BoardState struct {
	BoardID         string               `json:"board_id"`
	BoardName       string               `json:"board_name"`
	Assignments     []planner.Assignment `json:"assignments"`
	AvailablePower  int                  `json:"available_power"`
	AvailableGround int                  `json:"available_ground"`
	Version         uint64               `json:"version"`
}

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}
