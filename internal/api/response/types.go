package response

import (
	"github.com/mcoot/puzzle-progress/internal/model"
)

// OK is the plain-text body of a successful mutating action
const OK = "ok"

// Time is the response for GET /time
type Time struct {
	Time float64 `json:"time"`
}

// Progress is the response for GET /progress
type Progress struct {
	Progress model.Progress `json:"progress"`
}

// ProgressFromModel converts a model.PlayerProgress
func ProgressFromModel(p *model.PlayerProgress) Progress {
	return Progress{Progress: p.Progress}
}

// Health is the response for GET /health
type Health struct {
	Status  string `json:"status"`
	Records int    `json:"records"`
}
