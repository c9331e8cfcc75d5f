package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// PlayerID uniquely identifies a player's progress record.
// Clients send it either as a JSON string or a JSON integer; both decode to
// the same canonical string form.
type PlayerID string

// EmptyProgressJSON is stored for a player that has registered but not yet
// completed anything.
const EmptyProgressJSON = `[]`

// ParsePlayerID checks a raw identifier. Blank ids and ids with leading or
// trailing whitespace are rejected rather than rewritten.
func ParsePlayerID(raw string) (PlayerID, error) {
	if raw == "" || raw != strings.TrimSpace(raw) {
		return "", ErrInvalidPlayerID
	}
	return PlayerID(raw), nil
}

// UnmarshalJSON accepts a JSON string or a JSON integer
func (id *PlayerID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ErrInvalidPlayerID
		}
		if s == "" {
			*id = ""
			return nil
		}
		parsed, err := ParsePlayerID(s)
		if err != nil {
			return err
		}
		*id = parsed
		return nil
	}

	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return ErrInvalidPlayerID
	}
	*id = PlayerID(strconv.FormatInt(n, 10))
	return nil
}

// Progress is the serialized record of which puzzles a player has completed.
// It holds any JSON value; the server never interprets its contents.
type Progress json.RawMessage

// ParseProgress validates and compacts a serialized progress value
func ParseProgress(raw []byte) (Progress, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || !json.Valid(raw) {
		return nil, ErrInvalidProgress
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return nil, ErrInvalidProgress
	}
	return Progress(buf.Bytes()), nil
}

// MarshalJSON embeds the stored value verbatim
func (p Progress) MarshalJSON() ([]byte, error) {
	if len(p) == 0 {
		return []byte("null"), nil
	}
	return p, nil
}

// UnmarshalJSON keeps a copy of the raw value
func (p *Progress) UnmarshalJSON(data []byte) error {
	*p = append(Progress(nil), data...)
	return nil
}

// EmptyProgress returns a fresh copy of the placeholder progress
func EmptyProgress() Progress {
	return Progress(EmptyProgressJSON)
}

// String returns the serialized text as persisted
func (p Progress) String() string {
	return string(p)
}

// PlayerProgress is a single player's completion record
type PlayerProgress struct {
	ID        PlayerID  `json:"id"`
	Progress  Progress  `json:"completed_puzzles"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewPlayerProgress creates a freshly registered record with empty progress
func NewPlayerProgress(id PlayerID, now time.Time) *PlayerProgress {
	return &PlayerProgress{
		ID:        id,
		Progress:  EmptyProgress(),
		UpdatedAt: now,
	}
}
