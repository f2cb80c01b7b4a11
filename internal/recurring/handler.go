package recurring

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/caretiv/scheduling-service/pkg/errors"
	"github.com/caretiv/scheduling-service/pkg/httputil"
	"github.com/caretiv/scheduling-service/pkg/logger"
)

// Handler serves the recurring shift HTTP endpoints.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new recurring shift handler.
func NewHandler(svc *Service, log *logger.Logger) *Handler {
	return &Handler{service: svc, logger: log}
}

// List lists the tenant's recurring shift rules.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	rules, err := h.service.List(r.Context(), activeOnly)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, rules)
}

// Get fetches a single rule.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rule, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, rule)
}

// Create stores a new rule and materialises its shifts.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var rule RecurringShift
	if err := httputil.DecodeJSON(r, &rule); err != nil {
		httputil.Error(w, err)
		return
	}

	result, err := h.service.Create(r.Context(), &rule)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusCreated, map[string]interface{}{"rule": rule, "result": result})
}

// previewRequest is the body for the preview endpoint.
type previewRequest struct {
	Weekday            int     `json:"weekday"`
	FromDate           string  `json:"fromDate"`
	UntilDate          string  `json:"untilDate"`
	HolidayProfileID   *string `json:"holidayProfileId"`
	SkipPublicHolidays bool    `json:"skipPublicHolidays"`
}

// Preview previews how many shifts a candidate rule would generate.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	from, until, err := parseRange(req.FromDate, req.UntilDate)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	result, err := h.service.Preview(r.Context(), req.Weekday, from, until, req.HolidayProfileID, req.SkipPublicHolidays)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, result)
}

// Update persists a rule's own fields without regenerating any shift it has
// already materialised. Use update-from to also regenerate forward.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var rule RecurringShift
	if err := httputil.DecodeJSON(r, &rule); err != nil {
		httputil.Error(w, err)
		return
	}
	rule.ID = id

	if err := h.service.Update(r.Context(), &rule); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, rule)
}

// UpdateFrom regenerates a rule's shifts from a given date forward.
func (h *Handler) UpdateFrom(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		FromDate string `json:"fromDate"`
	}
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	fromDate, err := time.Parse("2006-01-02", req.FromDate)
	if err != nil {
		httputil.Error(w, errors.BadRequest("invalid fromDate, expected YYYY-MM-DD"))
		return
	}

	result, err := h.service.RegenerateFrom(r.Context(), id, fromDate)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, result)
}

// Delete deactivates a rule and removes every planned, non-override shift it
// generated, regardless of date.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.SoftDelete(r.Context(), id); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.NoContent(w)
}

func parseRange(fromRaw, untilRaw string) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", fromRaw)
	if err != nil {
		return time.Time{}, time.Time{}, errors.BadRequest("invalid fromDate, expected YYYY-MM-DD")
	}
	until, err := time.Parse("2006-01-02", untilRaw)
	if err != nil {
		return time.Time{}, time.Time{}, errors.BadRequest("invalid untilDate, expected YYYY-MM-DD")
	}
	return from, until, nil
}
