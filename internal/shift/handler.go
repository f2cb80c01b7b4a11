package shift

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/caretiv/scheduling-service/pkg/actor"
	"github.com/caretiv/scheduling-service/pkg/errors"
	"github.com/caretiv/scheduling-service/pkg/httputil"
	"github.com/caretiv/scheduling-service/pkg/logger"
)

// Handler serves the shift HTTP endpoints.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new shift handler.
func NewHandler(svc *Service, log *logger.Logger) *Handler {
	return &Handler{service: svc, logger: log}
}

func actorRole(a *actor.Actor) Role {
	if a == nil {
		return RoleEmployee
	}
	switch a.RoleName {
	case "admin":
		return RoleAdmin
	case "manager":
		return RoleManager
	default:
		return RoleEmployee
	}
}

// List lists shifts matching the provided query filters.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := ListFilter{}

	if v := q.Get("employeeId"); v != "" {
		f.EmployeeID = &v
	}
	if v := q.Get("status"); v != "" {
		st := Status(v)
		f.Status = &st
	}
	if v := q.Get("from"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			httputil.Error(w, errors.BadRequest("invalid from date, expected YYYY-MM-DD"))
			return
		}
		f.From = &t
	}
	if v := q.Get("until"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			httputil.Error(w, errors.BadRequest("invalid until date, expected YYYY-MM-DD"))
			return
		}
		f.Until = &t
	}
	if q.Get("open") == "true" {
		f.OpenOnly = true
	}

	shifts, err := h.service.List(r.Context(), f)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, shifts)
}

// Get fetches a single shift.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	sh, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, sh)
}

// Create creates a new shift. Admin/manager only; the caller's role is
// resolved from the gateway-forwarded actor.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	a := actor.FromContext(r.Context())
	role := actorRole(a)
	if role != RoleAdmin && role != RoleManager {
		httputil.Error(w, errors.Forbidden("only admin or manager may create shifts"))
		return
	}

	var sh Shift
	if err := httputil.DecodeJSON(r, &sh); err != nil {
		httputil.Error(w, err)
		return
	}

	var userID *string
	if a != nil {
		userID = &a.ID
	}
	if err := h.service.Create(r.Context(), userID, &sh); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.Created(w, sh)
}

// CreateBulk creates several ad-hoc shifts in one request, e.g. a manager
// building out a week's roster. Failures are collected per-item rather than
// aborting the batch.
func (h *Handler) CreateBulk(w http.ResponseWriter, r *http.Request) {
	a := actor.FromContext(r.Context())
	role := actorRole(a)
	if role != RoleAdmin && role != RoleManager {
		httputil.Error(w, errors.Forbidden("only admin or manager may create shifts"))
		return
	}

	var shifts []Shift
	if err := httputil.DecodeJSON(r, &shifts); err != nil {
		httputil.Error(w, err)
		return
	}

	var userID *string
	if a != nil {
		userID = &a.ID
	}

	created := make([]Shift, 0, len(shifts))
	messages := make([]string, 0)
	for i := range shifts {
		if err := h.service.Create(r.Context(), userID, &shifts[i]); err != nil {
			messages = append(messages, err.Error())
			continue
		}
		created = append(created, shifts[i])
	}

	body := map[string]interface{}{"shifts": created}
	if len(messages) > 0 {
		body["errors"] = messages
	}
	httputil.JSON(w, http.StatusCreated, body)
}

// Update applies a full field update, routed to the admin/manager path.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a := actor.FromContext(r.Context())
	role := actorRole(a)

	var sh Shift
	if err := httputil.DecodeJSON(r, &sh); err != nil {
		httputil.Error(w, err)
		return
	}
	sh.ID = id

	var userID *string
	if a != nil {
		userID = &a.ID
	}
	if err := h.service.UpdateAsPrivileged(r.Context(), userID, role, &sh); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.JSON(w, http.StatusOK, sh)
}

// selfUpdateRequest is the restricted payload an employee may submit for
// their own shift.
type selfUpdateRequest struct {
	ActualStart *string `json:"actualStart"`
	ActualEnd   *string `json:"actualEnd"`
	Notes       *string `json:"notes"`
}

// UpdateSelf applies the restricted self-service edit an employee may make
// to their own shift (actualStart/actualEnd/notes, planned shifts only).
func (h *Handler) UpdateSelf(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a := actor.FromContext(r.Context())
	if a == nil {
		httputil.Error(w, errors.Unauthorized("missing actor"))
		return
	}

	var req selfUpdateRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}

	employeeID := r.URL.Query().Get("employeeId")
	if employeeID == "" {
		httputil.Error(w, errors.BadRequest("employeeId is required"))
		return
	}

	if err := h.service.UpdateAsEmployee(r.Context(), &a.ID, employeeID, id, req.ActualStart, req.ActualEnd, req.Notes); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.NoContent(w)
}

// claimRequest carries the claiming employee's id.
type claimRequest struct {
	EmployeeID string `json:"employeeId"`
}

// Claim atomically assigns an open shift to the caller's employee id.
func (h *Handler) Claim(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a := actor.FromContext(r.Context())

	var req claimRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.Error(w, err)
		return
	}
	if req.EmployeeID == "" {
		httputil.Error(w, errors.BadRequest("employeeId is required"))
		return
	}

	var userID *string
	if a != nil {
		userID = &a.ID
	}
	if err := h.service.Claim(r.Context(), userID, req.EmployeeID, id); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.NoContent(w)
}

// confirmRequest carries the optional confirmation note.
type confirmRequest struct {
	Note *string `json:"note"`
}

// Confirm transitions a planned shift to confirmed.
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a := actor.FromContext(r.Context())
	role := actorRole(a)

	var req confirmRequest
	_ = httputil.DecodeJSON(r, &req)

	var userID *string
	if a != nil {
		userID = &a.ID
	}
	if err := h.service.Confirm(r.Context(), userID, role, id, requireActorID(a), req.Note); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.NoContent(w)
}

// Unconfirm transitions a confirmed shift back to planned. Admin only.
func (h *Handler) Unconfirm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a := actor.FromContext(r.Context())
	role := actorRole(a)

	var userID *string
	if a != nil {
		userID = &a.ID
	}
	if err := h.service.Unconfirm(r.Context(), userID, role, id); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.NoContent(w)
}

// cancelRequest carries the optional cancellation reason.
type cancelRequest struct {
	Reason *string `json:"reason"`
}

// Cancel transitions a planned or confirmed shift to cancelled.
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a := actor.FromContext(r.Context())
	role := actorRole(a)

	var req cancelRequest
	_ = httputil.DecodeJSON(r, &req)

	var userID *string
	if a != nil {
		userID = &a.ID
	}
	if err := h.service.Cancel(r.Context(), userID, role, id, req.Reason); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.NoContent(w)
}

// Complete transitions a confirmed shift to completed. Admin only.
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a := actor.FromContext(r.Context())
	role := actorRole(a)

	var userID *string
	if a != nil {
		userID = &a.ID
	}
	if err := h.service.Complete(r.Context(), userID, role, id); err != nil {
		httputil.Error(w, err)
		return
	}
	httputil.NoContent(w)
}

func requireActorID(a *actor.Actor) string {
	if a == nil {
		return ""
	}
	return a.ID
}
