package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/puzzle-progress/internal/model"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{model.ErrProgressNotFound, http.StatusNotFound},
		{fmt.Errorf("lookup: %w", model.ErrProgressNotFound), http.StatusNotFound},
		{model.ErrDuplicateRegistration, http.StatusConflict},
		{model.ErrInvalidPlayerID, http.StatusBadRequest},
		{model.ErrInvalidProgress, http.StatusBadRequest},
		{NewInvalidRequestError("bad"), http.StatusBadRequest},
		{NewMethodNotAllowedError(), http.StatusMethodNotAllowed},
		{errors.New("database is locked"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, StatusOf(tt.err), tt.err.Error())
	}
}

func TestWriteErrorHidesInternalDetails(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, errors.New("disk I/O error at /var/lib/completions.db"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, CodeInternalError, resp.Error.Code)
	assert.NotContains(t, resp.Error.Message, "completions.db")
}

func TestWriteErrorInvalidRequestMessage(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, NewInvalidRequestError("user_id is required"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, CodeInvalidRequest, resp.Error.Code)
	assert.Equal(t, "user_id is required", resp.Error.Message)
}
