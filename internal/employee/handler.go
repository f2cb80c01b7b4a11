package employee

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/caretiv/scheduling-service/pkg/actor"
	"github.com/caretiv/scheduling-service/pkg/httputil"
	"github.com/caretiv/scheduling-service/pkg/logger"
)

// Handler serves the employee roster HTTP endpoints.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new employee handler.
func NewHandler(svc *Service, log *logger.Logger) *Handler {
	return &Handler{service: svc, logger: log}
}

// List lists employees for the tenant.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	includeInactive, _ := strconv.ParseBool(r.URL.Query().Get("include_inactive"))
	employees, err := h.service.List(r.Context(), includeInactive)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, employees)
}

// Get fetches a single employee.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, e)
}

// GetMe fetches the employee record of the calling, authenticated user.
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	a := actor.MustFromContext(r.Context())
	e, err := h.service.GetByUserID(r.Context(), a.ID)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, e)
}

// UpdateMe lets the calling employee edit their own self-service fields
// (quiet hours, contact details): only email, phone and quiet hours are
// taken from the body; every other field keeps its stored value.
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	a := actor.MustFromContext(r.Context())
	existing, err := h.service.GetByUserID(r.Context(), a.ID)
	if err != nil {
		httputil.Error(w, err)
		return
	}

	in := *existing
	if err := httputil.DecodeJSON(r, &in); err != nil {
		httputil.Error(w, err)
		return
	}
	existing.Email = in.Email
	existing.Phone = in.Phone
	existing.QuietHoursStart = in.QuietHoursStart
	existing.QuietHoursEnd = in.QuietHoursEnd

	if err := h.service.Update(r.Context(), existing); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, existing)
}

// Create onboards a new employee.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var e Employee
	if err := httputil.DecodeJSON(r, &e); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := h.service.Create(r.Context(), &e); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.Created(w, e)
}

// Update edits an employee's profile fields.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var e Employee
	if err := httputil.DecodeJSON(r, &e); err != nil {
		httputil.Error(w, err)
		return
	}
	e.ID = id

	if err := h.service.Update(r.Context(), &e); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, e)
}

// Delete soft deletes an employee.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.NoContent(w)
}

// RegenerateICalToken issues a new iCal export token for an employee.
func (h *Handler) RegenerateICalToken(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	token, err := h.service.RegenerateICalToken(r.Context(), id)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]string{"icalToken": token})
}
