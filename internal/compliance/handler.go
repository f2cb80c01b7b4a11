package compliance

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/caretiv/scheduling-service/pkg/errors"
	"github.com/caretiv/scheduling-service/pkg/httputil"
	"github.com/caretiv/scheduling-service/pkg/logger"
)

// Handler serves compliance read/re-evaluate endpoints.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new compliance handler.
func NewHandler(svc *Service, log *logger.Logger) *Handler {
	return &Handler{service: svc, logger: log}
}

// Reevaluate re-runs the compliance checks for a shift and persists the
// refreshed flags, returning the full finding list.
func (h *Handler) Reevaluate(w http.ResponseWriter, r *http.Request) {
	shiftID := chi.URLParam(r, "shiftId")
	result, err := h.service.EvaluateAndPersist(r.Context(), shiftID)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, result)
}

// ListViolations returns every currently flagged shift in a date range,
// defaulting to the next 7 days when from/until are omitted.
func (h *Handler) ListViolations(w http.ResponseWriter, r *http.Request) {
	from, until, err := violationsRange(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	shifts, err := h.service.ListViolations(r.Context(), from, until)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, shifts)
}

// Run re-evaluates every assigned shift in a date range, defaulting to the
// next 7 days when from/until are omitted.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	from, until, err := violationsRange(r)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	checked, errs := h.service.RunAll(r.Context(), from, until)
	body := map[string]interface{}{"checked": checked}
	if len(errs) > 0 {
		messages := make([]string, len(errs))
		for i, e := range errs {
			messages[i] = e.Error()
		}
		body["errors"] = messages
	}
	httputil.JSON(w, http.StatusOK, body)
}

func violationsRange(r *http.Request) (time.Time, time.Time, error) {
	from := time.Now()
	until := from.Add(7 * 24 * time.Hour)

	if raw := r.URL.Query().Get("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, errors.BadRequest("invalid from, expected YYYY-MM-DD")
		}
		from = parsed
	}
	if raw := r.URL.Query().Get("until"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return time.Time{}, time.Time{}, errors.BadRequest("invalid until, expected YYYY-MM-DD")
		}
		until = parsed
	}
	return from, until, nil
}
