package payroll

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/caretiv/scheduling-service/pkg/errors"
	"github.com/caretiv/scheduling-service/pkg/httputil"
	"github.com/caretiv/scheduling-service/pkg/logger"
)

// Handler serves the payroll HTTP endpoints.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new payroll handler.
func NewHandler(svc *Service, log *logger.Logger) *Handler {
	return &Handler{service: svc, logger: log}
}

type calculateRequest struct {
	EmployeeID  string   `json:"employeeId"`
	EmployeeIDs []string `json:"employeeIds"`
	Month       string   `json:"month"` // YYYY-MM
}

// Calculate computes one (or, with employeeIds, many) draft payroll entries
// for the requested month.
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	month, err := time.Parse("2006-01", req.Month)
	if err != nil {
		httputil.Error(w, errors.BadRequest("invalid month, expected YYYY-MM"))
		return
	}

	if len(req.EmployeeIDs) > 0 {
		entries, errs := h.service.CalculateAll(r.Context(), req.EmployeeIDs, month)
		messages := make([]string, 0, len(errs))
		for _, e := range errs {
			messages = append(messages, e.Error())
		}
		httputil.JSON(w, http.StatusOK, map[string]interface{}{"entries": entries, "errors": messages})
		return
	}

	if req.EmployeeID == "" {
		httputil.Error(w, errors.BadRequest("employeeId or employeeIds is required"))
		return
	}

	entry, err := h.service.CalculateOne(r.Context(), req.EmployeeID, month)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.Created(w, entry)
}

// List returns every payroll entry for the tenant.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.List(r.Context())
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, entries)
}

// Get fetches a single payroll entry.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	entry, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, entry)
}

// ListForEmployee returns an employee's payroll history.
func (h *Handler) ListForEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	entries, err := h.service.ListForEmployee(r.Context(), employeeID)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, entries)
}

// Approve transitions a draft entry to approved.
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Approve(r.Context(), id); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.NoContent(w)
}

// Reopen transitions an approved entry back to draft.
func (h *Handler) Reopen(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Reopen(r.Context(), id); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.NoContent(w)
}

// MarkPaid transitions an approved entry to paid.
func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.MarkPaid(r.Context(), id); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.NoContent(w)
}
