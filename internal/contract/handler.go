package contract

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/caretiv/scheduling-service/pkg/httputil"
	"github.com/caretiv/scheduling-service/pkg/logger"
)

// Handler serves the contract history HTTP endpoints.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new contract handler.
func NewHandler(svc *Service, log *logger.Logger) *Handler {
	return &Handler{service: svc, logger: log}
}

// List returns an employee's full contract timeline.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")
	rows, err := h.service.ListForEmployee(r.Context(), employeeID)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, rows)
}

// Create records a contract change, effective from the body's validFrom.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeId")

	var history History
	if err := httputil.DecodeJSON(r, &history); err != nil {
		httputil.Error(w, err)
		return
	}
	history.EmployeeID = employeeID

	if err := h.service.RecordChange(r.Context(), &history); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.Created(w, history)
}
