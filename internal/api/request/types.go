package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/mcoot/puzzle-progress/internal/model"
)

// MaxBodyBytes bounds how much of a request body is read
const MaxBodyBytes = 1 << 20

// ErrBodyTooLarge is returned by Decode when the body exceeds its limit
var ErrBodyTooLarge = errors.New("request body too large")

// SetProgressRequest is the request body for POST /progress
type SetProgressRequest struct {
	ID       model.PlayerID  `json:"id"`       // required
	Progress json.RawMessage `json:"progress"` // required, any JSON value
}

// Validate checks required fields
func (r *SetProgressRequest) Validate() error {
	if r.ID == "" {
		return errors.New("id is required")
	}
	if len(r.Progress) == 0 {
		return errors.New("progress is required")
	}
	return nil
}

// RegisterRequest is the request body for POST /uuid
type RegisterRequest struct {
	UserID model.PlayerID `json:"user_id"` // required
}

// Validate checks required fields
func (r *RegisterRequest) Validate() error {
	if r.UserID == "" {
		return errors.New("user_id is required")
	}
	return nil
}

// Validator is implemented by request bodies that check their own fields
type Validator interface {
	Validate() error
}

// DecodeRequest decodes r's body into dst, reading at most MaxBodyBytes
func DecodeRequest(w http.ResponseWriter, r *http.Request, dst Validator) error {
	return Decode(http.MaxBytesReader(w, r.Body, MaxBodyBytes), dst)
}

// Decode reads a single JSON value from body into dst and validates it.
// Anything other than whitespace after the value is rejected. The returned
// error message is safe to show to clients.
func Decode(body io.Reader, dst Validator) error {
	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		return decodeError(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			if tooLarge := decodeError(err); errors.Is(tooLarge, ErrBodyTooLarge) {
				return tooLarge
			}
		}
		return errors.New("unexpected data after JSON body")
	}
	return dst.Validate()
}

func decodeError(err error) error {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		return fmt.Errorf("%w: limit is %d bytes", ErrBodyTooLarge, maxErr.Limit)
	case errors.Is(err, model.ErrInvalidPlayerID):
		return errors.New("id must be a string or an integer, without surrounding whitespace")
	case errors.Is(err, io.EOF):
		return errors.New("request body is required")
	default:
		return errors.New("invalid request body")
	}
}
