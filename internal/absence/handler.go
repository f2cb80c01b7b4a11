package absence

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/caretiv/scheduling-service/pkg/actor"
	"github.com/caretiv/scheduling-service/pkg/errors"
	"github.com/caretiv/scheduling-service/pkg/httputil"
	"github.com/caretiv/scheduling-service/pkg/logger"
)

// Handler serves the absence coordinator HTTP endpoints.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new absence handler.
func NewHandler(svc *Service, log *logger.Logger) *Handler {
	return &Handler{service: svc, logger: log}
}

// List returns EmployeeAbsences, optionally filtered by employeeId/status.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var f ListFilter
	if employeeID := r.URL.Query().Get("employeeId"); employeeID != "" {
		f.EmployeeID = &employeeID
	}
	if status := r.URL.Query().Get("status"); status != "" {
		s := EmployeeAbsenceStatus(status)
		f.Status = &s
	}

	absences, err := h.service.List(r.Context(), f)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, absences)
}

// Create files a new EmployeeAbsence request.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var a EmployeeAbsence
	if err := httputil.DecodeJSON(r, &a); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := h.service.Create(r.Context(), &a); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.Created(w, a)
}

type decisionRequest struct {
	Status string `json:"status"` // approved | rejected
}

// Update applies an approve/reject decision (or no-op field edits) to an
// EmployeeAbsence, mirroring the generic PUT /absences/{id} endpoint.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req decisionRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	a := actor.FromContext(r.Context())
	approverID := ""
	if a != nil {
		approverID = a.ID
	}

	var (
		updated *EmployeeAbsence
		err     error
	)
	switch req.Status {
	case string(StatusApproved):
		updated, err = h.service.Approve(r.Context(), id, approverID)
	case string(StatusRejected):
		updated, err = h.service.Reject(r.Context(), id, approverID)
	default:
		httputil.Error(w, errors.BadRequest("status must be approved or rejected"))
		return
	}
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, updated)
}

// ListCareAbsences returns every CareRecipientAbsence for the tenant.
func (h *Handler) ListCareAbsences(w http.ResponseWriter, r *http.Request) {
	absences, err := h.service.ListCareAbsences(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, absences)
}

// CreateCareAbsence files a new CareRecipientAbsence and immediately applies
// its shiftHandling to overlapping shifts.
func (h *Handler) CreateCareAbsence(w http.ResponseWriter, r *http.Request) {
	var a CareRecipientAbsence
	if err := httputil.DecodeJSON(r, &a); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := h.service.CreateCareAbsence(r.Context(), &a); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := h.service.ApplyCareAbsence(r.Context(), a.ID); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.Created(w, a)
}
