package shift

import (
	"context"
	"time"

	"github.com/caretiv/scheduling-service/pkg/errors"
)

// Role is the caller's tenant role, as resolved by the gateway-forwarded
// identity the request arrived with.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// ComplianceEvaluator re-runs the compliance checks for a shift after a
// successful write. Declared here (not imported from internal/compliance)
// to keep the dependency one-directional: compliance depends on shift, not
// the reverse. Wired with an adapter at composition time.
type ComplianceEvaluator interface {
	EvaluateAndPersist(ctx context.Context, shiftID string) error
}

// AuditRecorder appends an audit log entry. Satisfied directly by
// *audit.Service, whose Record method uses the same plain map type.
type AuditRecorder interface {
	Record(ctx context.Context, userID *string, entityType, entityID, action string, oldValues, newValues map[string]interface{}) error
}

// Service implements the shift state machine and its RBAC mutation matrix.
type Service struct {
	repo       *Repository
	compliance ComplianceEvaluator
	audit      AuditRecorder
}

// NewService builds a Service. compliance/audit may be nil in tests that
// don't exercise post-commit side effects.
func NewService(repo *Repository, compliance ComplianceEvaluator, audit AuditRecorder) *Service {
	return &Service{repo: repo, compliance: compliance, audit: audit}
}

// Create creates a new planned shift. Callers must already have verified
// the actor is admin or manager.
func (s *Service) Create(ctx context.Context, actorUserID *string, sh *Shift) error {
	if err := validateTimes(sh); err != nil {
		return err
	}
	sh.Status = StatusPlanned
	if err := s.repo.Create(ctx, sh); err != nil {
		return err
	}
	s.recordAudit(ctx, actorUserID, sh.ID, "create", nil, map[string]interface{}{"status": string(sh.Status)})
	s.reevaluateCompliance(ctx, sh.ID)
	return nil
}

// GetByID returns a single shift.
func (s *Service) GetByID(ctx context.Context, id string) (*Shift, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns shifts matching filter.
func (s *Service) List(ctx context.Context, f ListFilter) ([]*Shift, error) {
	return s.repo.List(ctx, f)
}

// UpdateAsPrivileged applies a full field update. Only valid for admin (any
// state) and manager (planned/confirmed only, never completed/cancelled/
// cancelledAbsence).
func (s *Service) UpdateAsPrivileged(ctx context.Context, actorUserID *string, role Role, updated *Shift) error {
	existing, err := s.repo.GetByID(ctx, updated.ID)
	if err != nil {
		return err
	}

	if role == RoleManager && isTerminalForManager(existing.Status) {
		return errors.Forbidden("managers cannot modify completed or cancelled shifts")
	}
	if role != RoleAdmin && role != RoleManager {
		return errors.Forbidden("only admin or manager may perform a full shift update")
	}
	if role != RoleAdmin {
		// Managers may not set status directly; status changes go through
		// Confirm/Unconfirm/Cancel/Complete.
		updated.Status = existing.Status
	}
	// Admins may jump directly to any status, including transitions the
	// state machine otherwise forbids (e.g. completed back to planned);
	// this is a deliberate administrative escape hatch, not validated
	// against CanTransition the way a manager's edit is.
	if role != RoleAdmin && !CanTransition(existing.Status, updated.Status) {
		return errors.Conflict("invalid shift status transition")
	}

	if err := validateTimes(updated); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, updated); err != nil {
		return err
	}

	s.recordAudit(ctx, actorUserID, updated.ID, "update",
		map[string]interface{}{"status": string(existing.Status)},
		map[string]interface{}{"status": string(updated.Status)})
	s.reevaluateCompliance(ctx, updated.ID)
	return nil
}

// UpdateAsEmployee applies the restricted self-service edit an employee may
// make to their own shift: actualStart, actualEnd, notes, and only while
// the shift is still planned.
func (s *Service) UpdateAsEmployee(ctx context.Context, actorUserID *string, callerEmployeeID string, shiftID string, actualStart, actualEnd, notes *string) error {
	existing, err := s.repo.GetByID(ctx, shiftID)
	if err != nil {
		return err
	}
	if existing.EmployeeID == nil || *existing.EmployeeID != callerEmployeeID {
		return errors.NotFound("shift")
	}
	if existing.Status != StatusPlanned {
		return errors.Forbidden("shift can no longer be edited by the assigned employee")
	}

	existing.ActualStart = actualStart
	existing.ActualEnd = actualEnd
	existing.Notes = notes

	if err := s.repo.Update(ctx, existing); err != nil {
		return err
	}
	s.recordAudit(ctx, actorUserID, shiftID, "update", nil, map[string]interface{}{"actualStart": actualStart, "actualEnd": actualEnd})
	return nil
}

// Claim atomically assigns an open shift to the caller's linked employee.
func (s *Service) Claim(ctx context.Context, actorUserID *string, employeeID, shiftID string) error {
	if err := s.repo.Claim(ctx, shiftID, employeeID); err != nil {
		return err
	}
	s.recordAudit(ctx, actorUserID, shiftID, "claim", nil, map[string]interface{}{"employeeId": employeeID})
	s.reevaluateCompliance(ctx, shiftID)
	return nil
}

// Confirm transitions planned -> confirmed. Manager or admin only.
func (s *Service) Confirm(ctx context.Context, actorUserID *string, role Role, shiftID string, confirmedBy string, note *string) error {
	if role != RoleAdmin && role != RoleManager {
		return errors.Forbidden("only admin or manager may confirm a shift")
	}
	existing, err := s.repo.GetByID(ctx, shiftID)
	if err != nil {
		return err
	}
	if existing.Status != StatusPlanned {
		return errors.Conflict("only a planned shift can be confirmed")
	}

	now := time.Now()
	existing.Status = StatusConfirmed
	existing.ConfirmedBy = &confirmedBy
	existing.ConfirmedAt = &now
	existing.ConfirmationNote = note

	if err := s.repo.Update(ctx, existing); err != nil {
		return err
	}
	s.recordAudit(ctx, actorUserID, shiftID, "confirm",
		map[string]interface{}{"status": string(StatusPlanned)},
		map[string]interface{}{"status": string(StatusConfirmed)})
	return nil
}

// Unconfirm transitions confirmed -> planned. Admin only.
func (s *Service) Unconfirm(ctx context.Context, actorUserID *string, role Role, shiftID string) error {
	if role != RoleAdmin {
		return errors.Forbidden("only admin may unconfirm a shift")
	}
	existing, err := s.repo.GetByID(ctx, shiftID)
	if err != nil {
		return err
	}
	if existing.Status != StatusConfirmed {
		return errors.Conflict("only a confirmed shift can be unconfirmed")
	}

	existing.Status = StatusPlanned
	existing.ConfirmedBy = nil
	existing.ConfirmedAt = nil
	existing.ConfirmationNote = nil

	if err := s.repo.Update(ctx, existing); err != nil {
		return err
	}
	s.recordAudit(ctx, actorUserID, shiftID, "update",
		map[string]interface{}{"status": string(StatusConfirmed)},
		map[string]interface{}{"status": string(StatusPlanned)})
	return nil
}

// Cancel transitions planned|confirmed -> cancelled. Manager or admin only.
func (s *Service) Cancel(ctx context.Context, actorUserID *string, role Role, shiftID string, reason *string) error {
	if role != RoleAdmin && role != RoleManager {
		return errors.Forbidden("only admin or manager may cancel a shift")
	}
	existing, err := s.repo.GetByID(ctx, shiftID)
	if err != nil {
		return err
	}
	if existing.Status != StatusPlanned && existing.Status != StatusConfirmed {
		return errors.Conflict("only a planned or confirmed shift can be cancelled")
	}

	oldStatus := existing.Status
	existing.Status = StatusCancelled
	existing.CancellationReason = reason

	if err := s.repo.Update(ctx, existing); err != nil {
		return err
	}
	s.recordAudit(ctx, actorUserID, shiftID, "update",
		map[string]interface{}{"status": string(oldStatus)},
		map[string]interface{}{"status": string(StatusCancelled)})
	return nil
}

// Complete transitions confirmed -> completed, typically as part of an
// administrator's month-close sweep.
func (s *Service) Complete(ctx context.Context, actorUserID *string, role Role, shiftID string) error {
	if role != RoleAdmin {
		return errors.Forbidden("only admin may complete a shift")
	}
	existing, err := s.repo.GetByID(ctx, shiftID)
	if err != nil {
		return err
	}
	if existing.Status != StatusConfirmed {
		return errors.Conflict("only a confirmed shift can be completed")
	}

	existing.Status = StatusCompleted
	if err := s.repo.Update(ctx, existing); err != nil {
		return err
	}
	s.recordAudit(ctx, actorUserID, shiftID, "update",
		map[string]interface{}{"status": string(StatusConfirmed)},
		map[string]interface{}{"status": string(StatusCompleted)})
	return nil
}

func (s *Service) recordAudit(ctx context.Context, actorUserID *string, shiftID, action string, oldValues, newValues map[string]interface{}) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, actorUserID, "shift", shiftID, action, oldValues, newValues)
}

func (s *Service) reevaluateCompliance(ctx context.Context, shiftID string) {
	if s.compliance == nil {
		return
	}
	_ = s.compliance.EvaluateAndPersist(ctx, shiftID)
}

func isTerminalForManager(status Status) bool {
	return status == StatusCompleted || status == StatusCancelled || status == StatusCancelledAbsence
}

func validateTimes(sh *Shift) error {
	if sh.StartTime == "" || sh.EndTime == "" {
		return errors.Validation(map[string]string{"startTime/endTime": "are required"})
	}
	if sh.Date.IsZero() {
		return errors.Validation(map[string]string{"date": "is required"})
	}
	return nil
}
