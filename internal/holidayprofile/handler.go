package holidayprofile

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/caretiv/scheduling-service/pkg/errors"
	"github.com/caretiv/scheduling-service/pkg/httputil"
	"github.com/caretiv/scheduling-service/pkg/logger"
)

// Handler serves the holiday profile HTTP endpoints.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new holiday profile handler.
func NewHandler(svc *Service, log *logger.Logger) *Handler {
	return &Handler{service: svc, logger: log}
}

// List lists all holiday profiles for the tenant.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.service.List(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, profiles)
}

// Get fetches a single holiday profile with its periods and custom holidays.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	detail, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, detail)
}

// GetActive fetches the tenant's currently active holiday profile.
func (h *Handler) GetActive(w http.ResponseWriter, r *http.Request) {
	detail, err := h.service.GetActive(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, detail)
}

// Create creates a new (inactive) holiday profile.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var p HolidayProfile
	if err := httputil.DecodeJSON(r, &p); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := h.service.Create(r.Context(), &p); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.Created(w, p)
}

// Update updates a holiday profile's editable fields.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var p HolidayProfile
	if err := httputil.DecodeJSON(r, &p); err != nil {
		httputil.Error(w, err)
		return
	}
	p.ID = id

	if err := h.service.Update(r.Context(), &p); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, p)
}

// Activate makes a holiday profile the tenant's sole active one.
func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Activate(r.Context(), id); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.NoContent(w)
}

// Delete soft deletes a holiday profile.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.NoContent(w)
}

// AddVacationPeriod attaches a vacation period to a profile.
func (h *Handler) AddVacationPeriod(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "id")

	var req VacationPeriodRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	start, end, err := req.parseDates()
	if err != nil {
		httputil.Error(w, err)
		return
	}

	vp := &VacationPeriod{
		ProfileID: profileID,
		Name:      req.Name,
		StartDate: start,
		EndDate:   end,
	}

	if err := h.service.AddVacationPeriod(r.Context(), vp); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.Created(w, vp)
}

// RemoveVacationPeriod removes a vacation period.
func (h *Handler) RemoveVacationPeriod(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "periodId")
	if err := h.service.RemoveVacationPeriod(r.Context(), id); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.NoContent(w)
}

// AddCustomHoliday attaches a single extra non-working date to a profile.
func (h *Handler) AddCustomHoliday(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "id")

	var req CustomHolidayRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		httputil.Error(w, errors.BadRequest("invalid date format, expected YYYY-MM-DD"))
		return
	}

	ch := &CustomHoliday{
		ProfileID: profileID,
		Name:      req.Name,
		Date:      date,
	}

	if err := h.service.AddCustomHoliday(r.Context(), ch); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.Created(w, ch)
}

// RemoveCustomHoliday removes a custom holiday.
func (h *Handler) RemoveCustomHoliday(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "holidayId")
	if err := h.service.RemoveCustomHoliday(r.Context(), id); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.NoContent(w)
}

// VacationPeriodRequest is the request body for adding a vacation period.
type VacationPeriodRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
}

func (req VacationPeriodRequest) parseDates() (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.BadRequest("invalid start_date format, expected YYYY-MM-DD")
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, errors.BadRequest("invalid end_date format, expected YYYY-MM-DD")
	}
	return start, end, nil
}

// CustomHolidayRequest is the request body for adding a custom holiday.
type CustomHolidayRequest struct {
	Name string `json:"name"`
	Date string `json:"date"` // YYYY-MM-DD
}
