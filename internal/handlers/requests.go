package handlers

// SelectBoardRequest represents a request to start a session on a board
type SelectBoardRequest struct {
	BoardID string `json:"board_id"`
}

// PlacementRequest represents a request to validate or place a component
type PlacementRequest struct {
	ComponentID string `json:"component_id"`
	PinIndex    *int   `json:"pin_index"`
}

// SaveProjectRequest represents a request to save the current session
type SaveProjectRequest struct {
	Name string `json:"name"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Password string `json:"password"`
}

// SettingsUpdateRequest represents a request to update settings.
// Omitted fields are left unchanged.
type SettingsUpdateRequest struct {
	BaseURL      *string `json:"base_url"`
	DefaultBoard *string `json:"default_board"`
}
