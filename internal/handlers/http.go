package handlers

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/abrezinsky/pinplanner/internal/errors"
	"github.com/abrezinsky/pinplanner/internal/planner"
	"github.com/abrezinsky/pinplanner/internal/services"
)

// Error codes for standardized API error responses
const (
	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeUnauthorized    = "UNAUTHORIZED"
	ErrCodeNotFound        = "NOT_FOUND"
	ErrCodeValidation      = "VALIDATION_ERROR"
	ErrCodeInternalServer  = "INTERNAL_SERVER_ERROR"
	ErrCodeNoBoardSelected = "NO_BOARD_SELECTED"
	ErrCodeInvalidProject  = "INVALID_PROJECT"
)

// APIError represents an error with an HTTP status code and error code.
// Placement rejections use the rejection reason as Code and carry the
// rejection fields in Details.
type APIError struct {
	Status  int         `json:"-"`
	Code    string      `json:"code"`
	Message string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
	cause   error
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new API error with custom message and code
func NewAPIError(status int, code, message string) *APIError {
	return &APIError{Status: status, Code: code, Message: message}
}

// BadRequest creates a 400 error with custom message
func BadRequest(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: ErrCodeBadRequest, Message: message}
}

// Unauthorized creates a 401 error with custom message
func Unauthorized(message string) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Code: ErrCodeUnauthorized, Message: message}
}

// NotFound creates a 404 error with custom message
func NotFound(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Code: ErrCodeNotFound, Message: message}
}

// InternalError creates a 500 error that hides err from the client.
// respondError logs the cause.
func InternalError(err error) *APIError {
	return &APIError{Status: http.StatusInternalServerError, Code: ErrCodeInternalServer, Message: "Internal server error", cause: err}
}

// Rejection builds the 409 response for a refused placement
func Rejection(pe *planner.PlacementError) *APIError {
	return &APIError{Status: http.StatusConflict, Code: string(pe.Reason), Message: pe.Error(), Details: pe}
}

// respondJSON writes a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// respondOK writes a 200 OK JSON response
func respondOK(w http.ResponseWriter, data interface{}) {
	respondJSON(w, http.StatusOK, data)
}

// respondCreated writes a 201 Created JSON response
func respondCreated(w http.ResponseWriter, data interface{}) {
	respondJSON(w, http.StatusCreated, data)
}

// respondSuccess writes a 200 OK with a message
func respondSuccess(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusOK, map[string]string{"message": message})
}

// respondDeleted writes a 204 No Content response
func respondDeleted(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// respondError writes an error response. Server-side failures are logged.
func (h *Handlers) respondError(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := ToAPIError(err)
	if apiErr.Status >= http.StatusInternalServerError && h.Log != nil {
		h.Log.Error("Request failed", "method", r.Method, "path", r.URL.Path, "error", apiErr.cause)
	}
	respondJSON(w, apiErr.Status, apiErr)
}

// decodeJSON decodes JSON from request body into the target
func decodeJSON(r *http.Request, target interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		if err == io.EOF {
			return BadRequest("Request body is empty")
		}
		return BadRequest("Invalid JSON: " + err.Error())
	}
	return nil
}

// parseIntParam extracts and parses an integer URL parameter
func parseIntParam(r *http.Request, name string) (int, error) {
	param := chi.URLParam(r, name)
	if param == "" {
		return 0, BadRequest("Missing " + name + " parameter")
	}
	id, err := strconv.Atoi(param)
	if err != nil {
		return 0, BadRequest("Invalid " + name + " parameter")
	}
	return id, nil
}

// ToAPIError converts service and planner errors to API errors
func ToAPIError(err error) *APIError {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}

	var ie *planner.ImportError
	if stderrors.As(err, &ie) {
		return &APIError{
			Status:  http.StatusBadRequest,
			Code:    ErrCodeInvalidProject,
			Message: ie.Error(),
			Details: map[string]interface{}{"index": ie.Index, "component_id": ie.ComponentID},
		}
	}

	var pe *planner.PlacementError
	if stderrors.As(err, &pe) {
		return Rejection(pe)
	}

	var nf *planner.NotFoundError
	if stderrors.As(err, &nf) {
		return NotFound(nf.Error())
	}

	var appErr *errors.Error
	if stderrors.As(err, &appErr) {
		switch appErr.Kind {
		case errors.ErrNotFound:
			return NotFound(appErr.Message)
		case errors.ErrValidation, errors.ErrInvalidInput:
			return &APIError{Status: http.StatusBadRequest, Code: ErrCodeValidation, Message: appErr.Message}
		default:
			return InternalError(err)
		}
	}

	var svcErr *services.ServiceError
	if stderrors.As(err, &svcErr) {
		if svcErr == services.ErrNoBoardSelected {
			return &APIError{Status: http.StatusConflict, Code: ErrCodeNoBoardSelected, Message: svcErr.Message}
		}
		return BadRequest(svcErr.Message)
	}

	// InvariantError and anything unexpected
	return InternalError(err)
}
