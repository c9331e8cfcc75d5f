package handler

import (
	"net/http"

	"github.com/mcoot/puzzle-progress/internal/api/request"
	"github.com/mcoot/puzzle-progress/internal/api/response"
	"github.com/mcoot/puzzle-progress/internal/model"
	"github.com/mcoot/puzzle-progress/internal/services/progress"
)

// ProgressHandler handles the progress endpoints
type ProgressHandler struct {
	service progress.ServiceInterface
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(service progress.ServiceInterface) *ProgressHandler {
	return &ProgressHandler{
		service: service,
	}
}

// Time handles GET /time
func (h *ProgressHandler) Time(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.Time{Time: h.service.Time()})
}

// GetProgress handles GET /progress
// The optional id query parameter selects a player.
func (h *ProgressHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
	var id model.PlayerID
	if raw, ok := r.URL.Query()["id"]; ok {
		parsed, err := model.ParsePlayerID(raw[0])
		if err != nil {
			WriteError(w, NewInvalidRequestError("id must not be blank or padded with whitespace"))
			return
		}
		id = parsed
	}

	record, err := h.service.GetProgress(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ProgressFromModel(record))
}

// SetProgress handles POST /progress
func (h *ProgressHandler) SetProgress(w http.ResponseWriter, r *http.Request) {
	var req request.SetProgressRequest
	if err := request.DecodeRequest(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if _, err := h.service.SetProgress(r.Context(), req.ID, req.Progress); err != nil {
		WriteError(w, err)
		return
	}

	response.Text(w, http.StatusOK, response.OK)
}

// Register handles POST /uuid
func (h *ProgressHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := request.DecodeRequest(w, r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	if err := h.service.RegisterPlayer(r.Context(), req.UserID); err != nil {
		WriteError(w, err)
		return
	}

	response.Text(w, http.StatusOK, response.OK)
}

// ClearTable handles POST /clear_table
func (h *ProgressHandler) ClearTable(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Reset(r.Context()); err != nil {
		WriteError(w, err)
		return
	}

	response.Text(w, http.StatusOK, response.OK)
}

// Health handles GET /health
func (h *ProgressHandler) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.service.RecordCount(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Health{Status: "ok", Records: count})
}
