package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/hr-tools/punchbook/pkg/adapters"
	"github.com/hr-tools/punchbook/pkg/models/api"
	"github.com/hr-tools/punchbook/pkg/models/domain"
	"github.com/hr-tools/punchbook/pkg/services/attendance"
)

type Handler struct {
	recorder attendance.Recorder
	reporter attendance.Reporter

	// now is swapped out in tests
	now func() time.Time
}

func NewHandler(recorder attendance.Recorder, reporter attendance.Reporter) *Handler {
	return &Handler{
		recorder: recorder,
		reporter: reporter,
		now:      time.Now,
	}
}

// RecordAttendance handles POST /attendance/{action}. The reply body
// carries the recorder's message verbatim, success and warning alike;
// only store failures map to an error status.
func (h *Handler) RecordAttendance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	action, err := domain.ParseAction(chi.URLParam(r, "action"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req api.RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	message, err := h.recorder.Record(ctx, action, req.UserID, h.now())
	if err != nil {
		if errors.Is(err, domain.ErrEmptyUser) || errors.Is(err, domain.ErrUnknownAction) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error().
			Err(err).
			Str("action", string(action)).
			Msg("failed to record attendance")
		writeError(w, http.StatusBadGateway, "ledger temporarily unavailable, please retry")
		return
	}

	writeJSON(ctx, w, api.RecordResponse{Message: message})
}

// GetReport handles GET /report?date=YYYY-MM-DD, defaulting to the
// current period.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	at := h.now()
	if date := r.URL.Query().Get("date"); date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", date, at.Location())
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		at = parsed
	}

	report, err := h.reporter.Report(ctx, at)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build period report")
		writeError(w, http.StatusBadGateway, "ledger temporarily unavailable, please retry")
		return
	}

	writeJSON(ctx, w, adapters.MapDomainReportToAPI(report))
}

func writeJSON(ctx context.Context, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{Error: message})
}
