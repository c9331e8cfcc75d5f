package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case TimeResult:
		o.printTime(v)
	case PlayerResult:
		fmt.Fprintf(o.w, "Player: %s\n", v.ID)
	case ProgressResult:
		o.printProgress(v)
	case HealthResult:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
		fmt.Fprintf(o.w, "Records: %d\n", v.Records)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// TimeResult response type (matches API)
type TimeResult struct {
	Time float64 `json:"time"`
}

// PlayerResult describes the player a command acted on
type PlayerResult struct {
	ID string `json:"id"`
}

// ProgressResult response type
type ProgressResult struct {
	Progress json.RawMessage `json:"progress"`
}

// HealthResult response type
type HealthResult struct {
	Status  string `json:"status"`
	Records int    `json:"records"`
}

func (o *Output) printTime(t TimeResult) {
	sec := int64(t.Time)
	nsec := int64((t.Time - float64(sec)) * 1e9)
	at := time.Unix(sec, nsec).UTC()
	fmt.Fprintf(o.w, "Server time: %s (%.6f)\n", at.Format(time.RFC3339Nano), t.Time)
}

func (o *Output) printProgress(p ProgressResult) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, p.Progress, "", "  "); err != nil {
		fmt.Fprintln(o.w, string(p.Progress))
		return
	}
	fmt.Fprintln(o.w, buf.String())
}
