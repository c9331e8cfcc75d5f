package request

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/puzzle-progress/internal/model"
)

func TestDecodeSetProgress(t *testing.T) {
	var req SetProgressRequest
	err := Decode(strings.NewReader(`{"id":"abc","progress":["puzzle1","puzzle3"]}`), &req)
	require.NoError(t, err)

	assert.Equal(t, model.PlayerID("abc"), req.ID)
	assert.JSONEq(t, `["puzzle1","puzzle3"]`, string(req.Progress))
}

func TestDecodeSetProgressIntegerID(t *testing.T) {
	var req SetProgressRequest
	err := Decode(strings.NewReader(`{"id":12,"progress":{}}`), &req)
	require.NoError(t, err)
	assert.Equal(t, model.PlayerID("12"), req.ID)
}

func TestDecodeSetProgressMissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing id", `{"progress":[]}`, "id is required"},
		{"missing progress", `{"id":"abc"}`, "progress is required"},
		{"bad id type", `{"id":true,"progress":[]}`, "id must be a string or an integer, without surrounding whitespace"},
		{"padded id", `{"id":" abc","progress":[]}`, "id must be a string or an integer, without surrounding whitespace"},
		{"empty body", ``, "request body is required"},
		{"not json", `id=abc`, "invalid request body"},
		{"trailing object", `{"id":"abc","progress":[]}{"id":"x"}`, "unexpected data after JSON body"},
		{"trailing garbage", `{"id":"abc","progress":[]} junk`, "unexpected data after JSON body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req SetProgressRequest
			err := Decode(strings.NewReader(tt.body), &req)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestDecodeRegister(t *testing.T) {
	var req RegisterRequest
	require.NoError(t, Decode(strings.NewReader(`{"user_id":"0b5e"}`), &req))
	assert.Equal(t, model.PlayerID("0b5e"), req.UserID)

	req = RegisterRequest{}
	err := Decode(strings.NewReader(`{"id":"0b5e"}`), &req)
	require.Error(t, err)
	assert.Equal(t, "user_id is required", err.Error())
}

func TestDecodeAllowsTrailingWhitespace(t *testing.T) {
	var req RegisterRequest
	require.NoError(t, Decode(strings.NewReader("{\"user_id\":\"abc\"}\n\t "), &req))
	assert.Equal(t, model.PlayerID("abc"), req.UserID)
}

func TestDecodeRequestBodyTooLarge(t *testing.T) {
	body := `{"id":"abc","progress":"` + strings.Repeat("x", MaxBodyBytes) + `"}`
	r := httptest.NewRequest(http.MethodPost, "/progress", strings.NewReader(body))

	var req SetProgressRequest
	err := DecodeRequest(httptest.NewRecorder(), r, &req)
	require.ErrorIs(t, err, ErrBodyTooLarge)
	assert.Contains(t, err.Error(), "limit is 1048576 bytes")
}

func TestDecodeRequestWithinLimit(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/uuid", strings.NewReader(`{"user_id":"abc"}`))

	var req RegisterRequest
	require.NoError(t, DecodeRequest(httptest.NewRecorder(), r, &req))
	assert.Equal(t, model.PlayerID("abc"), req.UserID)
}
