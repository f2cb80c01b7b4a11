package messaging

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event types
const (
	// Shift events
	EventShiftCreated   = "scheduling.shift.created"
	EventShiftClaimed   = "scheduling.shift.claimed"
	EventShiftConfirmed = "scheduling.shift.confirmed"
	EventShiftCompleted = "scheduling.shift.completed"
	EventShiftCancelled = "scheduling.shift.cancelled"
	EventShiftUpdated   = "scheduling.shift.updated"
	EventShiftReminder  = "scheduling.shift.reminder"

	// Recurring shift events
	EventRecurringShiftCreated    = "scheduling.recurring_shift.created"
	EventRecurringShiftRegenerated = "scheduling.recurring_shift.regenerated"
	EventRecurringShiftDeleted    = "scheduling.recurring_shift.deleted"

	// Absence events
	EventAbsenceCreated     = "scheduling.absence.created"
	EventAbsenceApproved    = "scheduling.absence.approved"
	EventAbsenceRejected    = "scheduling.absence.rejected"
	EventAbsenceCancelled   = "scheduling.absence.cancelled"
	EventCareAbsenceApplied = "scheduling.care_absence.applied"

	// Compliance events
	EventComplianceViolationRaised = "scheduling.compliance.violation_raised"
	EventComplianceWarningRaised   = "scheduling.compliance.warning_raised"

	// Payroll events
	EventPayrollCalculated = "scheduling.payroll.calculated"
	EventPayrollApproved   = "scheduling.payroll.approved"
	EventPayrollPaid       = "scheduling.payroll.paid"

	// Audit events
	EventAuditLogCreated = "scheduling.audit.created"
)

// Exchange name for all domain events published by the scheduling core.
const ExchangeSchedulingEvents = "scheduling.events"

// Event is the base event envelope published to the scheduling exchange.
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            GenerateEventID(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// Shift Events

// ShiftCreatedEvent is published when a shift is created (ad-hoc or from a
// recurring shift expansion).
type ShiftCreatedEvent struct {
	ShiftID          string    `json:"shift_id"`
	EmployeeID       *string   `json:"employee_id,omitempty"`
	ShiftDate        time.Time `json:"shift_date"`
	StartTime        string    `json:"start_time"`
	EndTime          string    `json:"end_time"`
	RecurringShiftID *string   `json:"recurring_shift_id,omitempty"`
}

// ShiftClaimedEvent is published when an open shift is claimed by an employee.
type ShiftClaimedEvent struct {
	ShiftID    string `json:"shift_id"`
	EmployeeID string `json:"employee_id"`
}

// ShiftConfirmedEvent is published when a manager confirms a planned shift.
type ShiftConfirmedEvent struct {
	ShiftID    string `json:"shift_id"`
	ConfirmedBy string `json:"confirmed_by"`
}

// ShiftCompletedEvent is published when a shift is marked completed.
type ShiftCompletedEvent struct {
	ShiftID    string `json:"shift_id"`
	EmployeeID string `json:"employee_id"`
}

// ShiftCancelledEvent is published when a shift is cancelled.
type ShiftCancelledEvent struct {
	ShiftID    string  `json:"shift_id"`
	EmployeeID *string `json:"employee_id,omitempty"`
	Reason     string  `json:"reason,omitempty"`
}

// ShiftUpdatedEvent is published when shift fields are edited.
type ShiftUpdatedEvent struct {
	ShiftID string         `json:"shift_id"`
	Fields  map[string]any `json:"fields"`
}

// ShiftReminderEvent is offered by the reminder sweep for a shift starting
// soon, picked up by the notification dispatcher adapter.
type ShiftReminderEvent struct {
	ShiftID    string    `json:"shift_id"`
	EmployeeID string    `json:"employee_id"`
	ShiftDate  time.Time `json:"shift_date"`
	StartTime  string    `json:"start_time"`
}

// Recurring Shift Events

// RecurringShiftCreatedEvent is published when a new recurring shift series is defined.
type RecurringShiftCreatedEvent struct {
	RecurringShiftID string `json:"recurring_shift_id"`
	EmployeeID       string `json:"employee_id"`
	Weekday          int    `json:"weekday"`
	GeneratedCount   int    `json:"generated_count"`
	SkippedCount     int    `json:"skipped_count"`
}

// RecurringShiftRegeneratedEvent is published after regenerating future occurrences.
type RecurringShiftRegeneratedEvent struct {
	RecurringShiftID string `json:"recurring_shift_id"`
	DeletedCount     int    `json:"deleted_count"`
	GeneratedCount   int    `json:"generated_count"`
	SkippedCount     int    `json:"skipped_count"`
}

// RecurringShiftDeletedEvent is published when a recurring shift series is soft-deleted.
type RecurringShiftDeletedEvent struct {
	RecurringShiftID string `json:"recurring_shift_id"`
	DeletedCount     int    `json:"deleted_count"`
}

// Absence Events

// AbsenceCreatedEvent is published when an employee absence request is created.
type AbsenceCreatedEvent struct {
	AbsenceID   string    `json:"absence_id"`
	EmployeeID  string    `json:"employee_id"`
	AbsenceType string    `json:"absence_type"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Status      string    `json:"status"`
}

// AbsenceApprovedEvent is published when an absence request is approved.
type AbsenceApprovedEvent struct {
	AbsenceID  string `json:"absence_id"`
	ReviewerID string `json:"reviewer_id"`
}

// AbsenceRejectedEvent is published when an absence request is rejected.
type AbsenceRejectedEvent struct {
	AbsenceID  string `json:"absence_id"`
	ReviewerID string `json:"reviewer_id"`
	Reason     string `json:"reason"`
}

// AbsenceCancelledEvent is published when an approved absence is cancelled/restored.
type AbsenceCancelledEvent struct {
	AbsenceID string `json:"absence_id"`
}

// CareAbsenceAppliedEvent is published after a care-recipient absence is
// applied to the schedule (shifts cancelled, carried over, or left untouched).
type CareAbsenceAppliedEvent struct {
	CareAbsenceID  string `json:"care_absence_id"`
	ShiftHandling  string `json:"shift_handling"`
	AffectedShifts int    `json:"affected_shifts"`
}

// Compliance Events

// ComplianceViolationRaisedEvent is published when a shift fails a compliance check.
type ComplianceViolationRaisedEvent struct {
	ShiftID    string   `json:"shift_id"`
	EmployeeID string   `json:"employee_id"`
	Violations []string `json:"violations"`
}

// ComplianceWarningRaisedEvent is published when a shift triggers a compliance warning.
type ComplianceWarningRaisedEvent struct {
	ShiftID    string   `json:"shift_id"`
	EmployeeID string   `json:"employee_id"`
	Warnings   []string `json:"warnings"`
}

// Payroll Events

// PayrollCalculatedEvent is published when a monthly payroll entry is computed.
type PayrollCalculatedEvent struct {
	PayrollEntryID string `json:"payroll_entry_id"`
	EmployeeID     string `json:"employee_id"`
	Month          string `json:"month"`
	TotalGross     string `json:"total_gross"`
}

// PayrollApprovedEvent is published when a payroll entry is approved.
type PayrollApprovedEvent struct {
	PayrollEntryID string `json:"payroll_entry_id"`
	ApprovedBy     string `json:"approved_by"`
}

// PayrollPaidEvent is published when a payroll entry is marked paid.
type PayrollPaidEvent struct {
	PayrollEntryID string `json:"payroll_entry_id"`
}

// Audit Events

// AuditLogCreatedEvent is published when an audit log entry is appended.
type AuditLogCreatedEvent struct {
	LogID      string         `json:"log_id"`
	ActorID    string         `json:"actor_id"`
	Action     string         `json:"action"`
	Resource   string         `json:"resource"`
	ResourceID string         `json:"resource_id"`
	Changes    map[string]any `json:"changes,omitempty"`
}

// GenerateEventID generates a unique event ID
func GenerateEventID() string {
	return fmt.Sprintf("%d-%d", time.Now().UnixNano(), time.Now().Nanosecond()%10000)
}
