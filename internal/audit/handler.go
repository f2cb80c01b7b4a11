package audit

import (
	"net/http"
	"strconv"

	"github.com/caretiv/scheduling-service/pkg/httputil"
	"github.com/caretiv/scheduling-service/pkg/logger"
)

// Handler serves the read-only audit log HTTP endpoint.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new audit handler.
func NewHandler(svc *Service, log *logger.Logger) *Handler {
	return &Handler{service: svc, logger: log}
}

// List returns recent audit entries for the tenant, optionally filtered by
// the entity_type query parameter.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	entityType := r.URL.Query().Get("entity_type")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	logs, err := h.service.ListForTenant(r.Context(), entityType, limit)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, logs)
}
