package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/puzzle-progress/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest        = "INVALID_REQUEST"
	CodeProgressNotFound      = "PROGRESS_NOT_FOUND"
	CodeDuplicateRegistration = "DUPLICATE_REGISTRATION"
	CodeNotFound              = "NOT_FOUND"
	CodeMethodNotAllowed      = "METHOD_NOT_ALLOWED"
	CodePayloadTooLarge       = "PAYLOAD_TOO_LARGE"
	CodeInternalError         = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// StatusOf returns the HTTP status WriteError would use for err
func StatusOf(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	case errors.Is(err, model.ErrProgressNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeProgressNotFound, "No progress found"}}
	case errors.Is(err, model.ErrDuplicateRegistration):
		return &httpError{http.StatusConflict, APIError{CodeDuplicateRegistration, "Player is already registered"}}
	case errors.Is(err, model.ErrInvalidPlayerID):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Invalid player id"}}
	case errors.Is(err, model.ErrInvalidProgress):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, "Progress must be valid JSON"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewPayloadTooLargeError creates an error for an oversized request body
func NewPayloadTooLargeError(message string) error {
	return &httpError{http.StatusRequestEntityTooLarge, APIError{CodePayloadTooLarge, message}}
}

// NewNotFoundError creates an error for unknown routes
func NewNotFoundError() error {
	return &httpError{http.StatusNotFound, APIError{CodeNotFound, "Not found"}}
}

// NewMethodNotAllowedError creates an error for a known route hit with the wrong method
func NewMethodNotAllowedError() error {
	return &httpError{http.StatusMethodNotAllowed, APIError{CodeMethodNotAllowed, "Method not allowed"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
