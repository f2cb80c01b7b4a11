package ical

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/caretiv/scheduling-service/pkg/httputil"
	"github.com/caretiv/scheduling-service/pkg/logger"
)

// Handler serves the public, token-gated iCal feed. No auth middleware
// runs in front of this route: the token in the URL is the credential.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new ical handler.
func NewHandler(svc *Service, log *logger.Logger) *Handler {
	return &Handler{service: svc, logger: log}
}

// Feed renders GET /ical/{token}.ics.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	body, emp, err := h.service.Feed(r.Context(), token)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", "inline; filename=\""+emp.LastName+".ics\"")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		h.logger.Error().Err(err).Str("employee_id", emp.ID).Msg("failed to write ical feed response")
	}
}
