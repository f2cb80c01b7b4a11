package shifttemplate

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/caretiv/scheduling-service/pkg/httputil"
	"github.com/caretiv/scheduling-service/pkg/logger"
)

// Handler serves the shift template HTTP endpoints.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new shift template handler.
func NewHandler(svc *Service, log *logger.Logger) *Handler {
	return &Handler{service: svc, logger: log}
}

// List lists shift templates for the tenant.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	activeOnly, _ := strconv.ParseBool(r.URL.Query().Get("active_only"))
	templates, err := h.service.List(r.Context(), activeOnly)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, templates)
}

// Get fetches a single shift template.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	t, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, t)
}

// Create creates a new shift template.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var t ShiftTemplate
	if err := httputil.DecodeJSON(r, &t); err != nil {
		httputil.Error(w, err)
		return
	}
	if err := h.service.Create(r.Context(), &t); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.Created(w, t)
}

// Update edits a shift template.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var t ShiftTemplate
	if err := httputil.DecodeJSON(r, &t); err != nil {
		httputil.Error(w, err)
		return
	}
	t.ID = id

	if err := h.service.Update(r.Context(), &t); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, t)
}

// Delete soft deletes a shift template.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.NoContent(w)
}
