package services

// Service errors
var (
	ErrNoBoardSelected      = &ServiceError{Message: "no board selected"}
	ErrBaseURLNotConfigured = &ServiceError{Message: "base_url is not configured"}
	ErrEmptyBoardID         = &ServiceError{Message: "board_id is required"}
	ErrEmptyComponentID     = &ServiceError{Message: "component_id is required"}
)

// ServiceError represents a service-level error
type ServiceError struct {
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}
