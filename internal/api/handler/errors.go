package handler

import (
	"errors"
	"net/http"

	"github.com/mcoot/puzzle-progress/internal/api/apierr"
	"github.com/mcoot/puzzle-progress/internal/api/request"
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// writeDecodeError reports a request.Decode failure: 413 for an oversized
// body, 400 otherwise
func writeDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, request.ErrBodyTooLarge) {
		WriteError(w, apierr.NewPayloadTooLargeError(err.Error()))
		return
	}
	WriteError(w, NewInvalidRequestError(err.Error()))
}
