package notify

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/caretiv/scheduling-service/pkg/httputil"
	"github.com/caretiv/scheduling-service/pkg/logger"
)

// Handler serves the dispatcher adapter's callback endpoints.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new notify handler.
func NewHandler(svc *Service, log *logger.Logger) *Handler {
	return &Handler{service: svc, logger: log}
}

type recordOutcomeRequest struct {
	EventID   string         `json:"eventId"`
	EventType string         `json:"eventType"`
	Channel   string         `json:"channel"`
	Status    DispatchStatus `json:"status"`
	Detail    *string        `json:"detail,omitempty"`
}

// RecordOutcome is called by the out-of-process dispatcher adapter once it
// has attempted delivery, reporting the terminal status.
func (h *Handler) RecordOutcome(w http.ResponseWriter, r *http.Request) {
	var req recordOutcomeRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := h.service.RecordOutcome(r.Context(), req.EventID, req.EventType, req.Channel, req.Status, req.Detail); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.NoContent(w)
}

// ListForEvent returns recorded dispatch attempts for one event.
func (h *Handler) ListForEvent(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "eventId")
	logs, err := h.service.ListForEvent(r.Context(), eventID)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, logs)
}
