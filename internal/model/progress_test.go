package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerIDUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    PlayerID
		wantErr bool
	}{
		{"string", `"abc"`, "abc", false},
		{"string with spaces inside", `"a b"`, "a b", false},
		{"empty string", `""`, "", false},
		{"leading space", `" abc"`, "", true},
		{"trailing newline", `"abc\n"`, "", true},
		{"whitespace only", `"   "`, "", true},
		{"integer", `12`, "12", false},
		{"negative integer", `-7`, "-7", false},
		{"null", `null`, "", false},
		{"float", `1.5`, "", true},
		{"object", `{"id":1}`, "", true},
		{"bool", `true`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id PlayerID
			err := json.Unmarshal([]byte(tt.input), &id)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestStringAndIntegerIDsMatch(t *testing.T) {
	var fromString, fromInt PlayerID
	require.NoError(t, json.Unmarshal([]byte(`"42"`), &fromString))
	require.NoError(t, json.Unmarshal([]byte(`42`), &fromInt))
	assert.Equal(t, fromString, fromInt)
}

func TestParsePlayerID(t *testing.T) {
	id, err := ParsePlayerID("abc")
	require.NoError(t, err)
	assert.Equal(t, PlayerID("abc"), id)

	for _, raw := range []string{"", "   ", " abc", "abc ", "\tabc"} {
		_, err = ParsePlayerID(raw)
		assert.ErrorIs(t, err, ErrInvalidPlayerID, "raw %q", raw)
	}
}

func TestPaddedIDIsNotAnAliasForTrimmedID(t *testing.T) {
	var id PlayerID
	err := json.Unmarshal([]byte(`" abc"`), &id)
	assert.ErrorIs(t, err, ErrInvalidPlayerID)
	assert.Empty(t, id)
}

func TestParseProgressCompacts(t *testing.T) {
	p, err := ParseProgress([]byte("[\n  \"puzzle1\",\n  \"puzzle3\"\n]"))
	require.NoError(t, err)
	assert.Equal(t, `["puzzle1","puzzle3"]`, p.String())
}

func TestParseProgressRejectsMalformed(t *testing.T) {
	for _, raw := range []string{``, `   `, `nothing`, `["a"`, `{"a":}`} {
		_, err := ParseProgress([]byte(raw))
		assert.ErrorIs(t, err, ErrInvalidProgress, "input %q", raw)
	}
}

func TestParseProgressAcceptsAnyJSONValue(t *testing.T) {
	for _, raw := range []string{`[]`, `{}`, `"nothing"`, `3`, `null`, `[["p1",true]]`} {
		_, err := ParseProgress([]byte(raw))
		assert.NoError(t, err, "input %q", raw)
	}
}

func TestPlayerProgressJSONEmbedsProgress(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	record := PlayerProgress{ID: "abc", Progress: Progress(`{"p1":true}`), UpdatedAt: at}

	data, err := json.Marshal(record)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"abc","completed_puzzles":{"p1":true},"updated_at":"2024-01-01T00:00:00Z"}`, string(data))

	var decoded PlayerProgress
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, record.ID, decoded.ID)
	assert.Equal(t, record.Progress.String(), decoded.Progress.String())
}

func TestNewPlayerProgressDoesNotShareBuffer(t *testing.T) {
	a := NewPlayerProgress("a", time.Now())
	a.Progress[0] = '{'

	b := NewPlayerProgress("b", time.Now())
	assert.Equal(t, EmptyProgressJSON, b.Progress.String())
}
