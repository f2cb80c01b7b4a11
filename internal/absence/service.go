package absence

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/caretiv/scheduling-service/internal/shift"
	"github.com/caretiv/scheduling-service/pkg/errors"
	"github.com/caretiv/scheduling-service/pkg/messaging"
)

// ShiftTransitioner is the narrow slice of shift.Repository the absence
// coordinator drives. Declared locally to avoid a shift->absence import.
type ShiftTransitioner interface {
	TransitionRangeToAbsence(ctx context.Context, employeeID string, startDate, endDate time.Time) (int64, error)
	RestoreRangeFromAbsence(ctx context.Context, employeeID string, startDate, endDate time.Time) (int64, error)
	TransitionTenantRangeToAbsence(ctx context.Context, startDate, endDate time.Time) (int64, error)
	List(ctx context.Context, f shift.ListFilter) ([]*shift.Shift, error)
}

// CarryoverRecorder is the narrow slice of payroll.Repository needed to
// record a shift's hours carried forward by a carry_over care absence.
type CarryoverRecorder interface {
	RecordCarryover(ctx context.Context, employeeID string, fromMonth, toMonth time.Time, hours decimal.Decimal) error
}

// AuditRecorder is satisfied by audit.Service.
type AuditRecorder interface {
	Record(ctx context.Context, userID *string, entityType, entityID, action string, oldValues, newValues map[string]interface{}) error
}

// EventPublisher is the narrow slice of messaging.Publisher used to offer
// decision events to the notification adapter. Failure to publish never
// aborts the coordinator operation.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
}

// Service implements the absence coordinator: approval/rejection of
// employee leave requests, and application of care-recipient absences.
type Service struct {
	repo      *Repository
	shifts    ShiftTransitioner
	carryover CarryoverRecorder
	audit     AuditRecorder
	events    EventPublisher
}

// NewService builds a Service.
func NewService(repo *Repository, shifts ShiftTransitioner, carryover CarryoverRecorder, audit AuditRecorder, events EventPublisher) *Service {
	return &Service{repo: repo, shifts: shifts, carryover: carryover, audit: audit, events: events}
}

// Create files a new pending EmployeeAbsence.
func (s *Service) Create(ctx context.Context, a *EmployeeAbsence) error {
	if a.EndDate.Before(a.StartDate) {
		return errors.BadRequest("endDate must not be before startDate")
	}
	return s.repo.Create(ctx, a)
}

// GetByID fetches a single EmployeeAbsence.
func (s *Service) GetByID(ctx context.Context, id string) (*EmployeeAbsence, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns EmployeeAbsences matching filter.
func (s *Service) List(ctx context.Context, f ListFilter) ([]*EmployeeAbsence, error) {
	return s.repo.List(ctx, f)
}

// Approve transitions a pending EmployeeAbsence to approved and cancels every
// overlapping shift of the employee to cancelledAbsence.
func (s *Service) Approve(ctx context.Context, id string, approverID string) (*EmployeeAbsence, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.repo.Approve(ctx, id, approverID, now); err != nil {
		return nil, err
	}

	if _, err := s.shifts.TransitionRangeToAbsence(ctx, a.EmployeeID, a.StartDate, a.EndDate); err != nil {
		return nil, err
	}

	a.Status = StatusApproved
	a.ApprovedBy = &approverID
	a.ApprovedAt = &now
	s.recordAudit(ctx, &approverID, a.ID, "approve", nil, map[string]interface{}{"status": string(StatusApproved)})
	s.publish(ctx, messaging.EventAbsenceApproved, messaging.AbsenceApprovedEvent{AbsenceID: a.ID, ReviewerID: approverID})
	return a, nil
}

// Reject transitions a pending or previously-approved EmployeeAbsence to
// rejected. Rejecting an approval restores any shifts already moved to
// cancelledAbsence back to planned.
func (s *Service) Reject(ctx context.Context, id string, approverID string) (*EmployeeAbsence, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	wasApproved := a.Status == StatusApproved
	now := time.Now()

	if err := s.repo.Reject(ctx, id, approverID, now); err != nil {
		return nil, err
	}

	if wasApproved {
		if _, err := s.shifts.RestoreRangeFromAbsence(ctx, a.EmployeeID, a.StartDate, a.EndDate); err != nil {
			return nil, err
		}
	}

	a.Status = StatusRejected
	a.ApprovedBy = &approverID
	a.ApprovedAt = &now
	s.recordAudit(ctx, &approverID, a.ID, "reject", nil, map[string]interface{}{"status": string(StatusRejected)})
	s.publish(ctx, messaging.EventAbsenceRejected, messaging.AbsenceRejectedEvent{AbsenceID: a.ID, ReviewerID: approverID})
	return a, nil
}

// CreateCareAbsence files a new CareRecipientAbsence.
func (s *Service) CreateCareAbsence(ctx context.Context, a *CareRecipientAbsence) error {
	if a.EndDate.Before(a.StartDate) {
		return errors.BadRequest("endDate must not be before startDate")
	}
	return s.repo.CreateCareAbsence(ctx, a)
}

// ListCareAbsences returns every CareRecipientAbsence for the tenant.
func (s *Service) ListCareAbsences(ctx context.Context) ([]*CareRecipientAbsence, error) {
	return s.repo.ListCareAbsences(ctx)
}

// ApplyCareAbsence enacts a.ShiftHandling against every shift in
// [a.StartDate, a.EndDate] across the tenant.
func (s *Service) ApplyCareAbsence(ctx context.Context, id string) error {
	a, err := s.repo.GetCareAbsenceByID(ctx, id)
	if err != nil {
		return err
	}

	switch a.ShiftHandling {
	case ShiftHandlingPaidAnyway:
		s.publish(ctx, messaging.EventCareAbsenceApplied, messaging.CareAbsenceAppliedEvent{
			CareAbsenceID: a.ID, ShiftHandling: string(a.ShiftHandling), AffectedShifts: 0,
		})
		return nil

	case ShiftHandlingCarryOver:
		affected, err := s.shifts.List(ctx, shift.ListFilter{From: &a.StartDate, Until: &a.EndDate})
		if err != nil {
			return err
		}
		carried := 0
		for _, sh := range affected {
			if sh.Status == shift.StatusCancelled || sh.Status == shift.StatusCancelledAbsence || sh.EmployeeID == nil {
				continue
			}
			netHours, err := sh.NetHours()
			if err != nil {
				return err
			}
			fromMonth := firstOfMonth(sh.Date)
			toMonth := firstOfMonth(fromMonth.AddDate(0, 1, 0))
			if err := s.carryover.RecordCarryover(ctx, *sh.EmployeeID, fromMonth, toMonth, decimal.NewFromFloat(netHours)); err != nil {
				return err
			}
			carried++
		}
		if _, err := s.shifts.TransitionTenantRangeToAbsence(ctx, a.StartDate, a.EndDate); err != nil {
			return err
		}
		s.publish(ctx, messaging.EventCareAbsenceApplied, messaging.CareAbsenceAppliedEvent{
			CareAbsenceID: a.ID, ShiftHandling: string(a.ShiftHandling), AffectedShifts: carried,
		})
		return nil

	case ShiftHandlingCancelledUnpaid, "":
		affected, err := s.shifts.TransitionTenantRangeToAbsence(ctx, a.StartDate, a.EndDate)
		if err != nil {
			return err
		}
		s.publish(ctx, messaging.EventCareAbsenceApplied, messaging.CareAbsenceAppliedEvent{
			CareAbsenceID: a.ID, ShiftHandling: string(ShiftHandlingCancelledUnpaid), AffectedShifts: int(affected),
		})
		return nil

	default:
		return errors.BadRequest("unknown shiftHandling: " + string(a.ShiftHandling))
	}
}

func (s *Service) recordAudit(ctx context.Context, userID *string, entityID, action string, oldValues, newValues map[string]interface{}) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, userID, "absence", entityID, action, oldValues, newValues)
}

// publish offers an event to the notification adapter. Dispatch failures
// never abort the coordinator operation.
func (s *Service) publish(ctx context.Context, eventType string, data interface{}) {
	if s.events == nil {
		return
	}
	_ = s.events.Publish(ctx, eventType, data)
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
