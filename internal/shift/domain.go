// Package shift implements the shift state machine: creation, the RBAC
// mutation matrix, the atomic claim operation, and the derived flags every
// write recomputes.
package shift

import "time"

// Status is a shift's lifecycle state.
type Status string

const (
	StatusPlanned          Status = "planned"
	StatusConfirmed        Status = "confirmed"
	StatusCompleted        Status = "completed"
	StatusCancelled        Status = "cancelled"
	StatusCancelledAbsence Status = "cancelledAbsence"
)

// Shift is a single scheduled work block.
type Shift struct {
	ID               string  `db:"id" json:"id"`
	TenantID         string  `db:"tenant_id" json:"tenantId"`
	EmployeeID       *string `db:"employee_id" json:"employeeId,omitempty"`
	TemplateID       *string `db:"template_id" json:"templateId,omitempty"`
	RecurringShiftID *string `db:"recurring_shift_id" json:"recurringShiftId,omitempty"`

	Date         time.Time `db:"date" json:"date"`
	StartTime    string    `db:"start_time" json:"startTime"` // HH:MM:SS
	EndTime      string    `db:"end_time" json:"endTime"`     // HH:MM:SS
	BreakMinutes int       `db:"break_minutes" json:"breakMinutes"`

	Location *string `db:"location" json:"location,omitempty"`
	Notes    *string `db:"notes" json:"notes,omitempty"`

	Status             Status  `db:"status" json:"status"`
	CancellationReason *string `db:"cancellation_reason" json:"cancellationReason,omitempty"`

	ActualStart      *string    `db:"actual_start" json:"actualStart,omitempty"`
	ActualEnd        *string    `db:"actual_end" json:"actualEnd,omitempty"`
	ConfirmedBy      *string    `db:"confirmed_by" json:"confirmedBy,omitempty"`
	ConfirmedAt      *time.Time `db:"confirmed_at" json:"confirmedAt,omitempty"`
	ConfirmationNote *string    `db:"confirmation_note" json:"confirmationNote,omitempty"`

	IsHoliday bool `db:"is_holiday" json:"isHoliday"`
	IsWeekend bool `db:"is_weekend" json:"isWeekend"`
	IsSunday  bool `db:"is_sunday" json:"isSunday"`

	RestPeriodOk    bool `db:"rest_period_ok" json:"restPeriodOk"`
	BreakOk         bool `db:"break_ok" json:"breakOk"`
	MinijobLimitOk  bool `db:"minijob_limit_ok" json:"minijobLimitOk"`
	HoursCarriedOver bool `db:"hours_carried_over" json:"hoursCarriedOver"`

	IsOverride bool `db:"is_override" json:"isOverride"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// ApplyDerivedFlags recomputes isWeekend/isSunday from Date. weekday 0=Sunday
// .. 6=Saturday, matching spec.md's weekday convention.
func (s *Shift) ApplyDerivedFlags() {
	weekday := int(s.Date.Weekday())
	s.IsWeekend = weekday == 0 || weekday == 6
	s.IsSunday = weekday == 0
}

// NetHours computes (end - start - breakMinutes)/60, handling a midnight
// crossing when endTime <= startTime.
func (s *Shift) NetHours() (float64, error) {
	start, err := time.Parse("15:04:05", s.StartTime)
	if err != nil {
		return 0, err
	}
	end, err := time.Parse("15:04:05", s.EndTime)
	if err != nil {
		return 0, err
	}
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	hours := end.Sub(start).Hours() - float64(s.BreakMinutes)/60
	if hours < 0 {
		hours = 0
	}
	return hours, nil
}

// CrossesMidnight reports whether EndTime <= StartTime, meaning the shift's
// end is interpreted on Date+1.
func (s *Shift) CrossesMidnight() bool {
	return s.EndTime <= s.StartTime
}

// transitions is the allowed-transition table from spec.md §4.E, keyed by
// (from, to), independent of the actor's role (role gating happens
// separately in the service layer).
var transitions = map[Status]map[Status]bool{
	StatusPlanned: {
		StatusConfirmed:        true,
		StatusCancelled:        true,
		StatusCancelledAbsence: true,
	},
	StatusConfirmed: {
		StatusPlanned:          true, // admin-only unconfirm
		StatusCompleted:        true,
		StatusCancelled:        true,
		StatusCancelledAbsence: true,
	},
	StatusCancelledAbsence: {
		StatusPlanned: true, // absence rejection restore only
	},
}

// CanTransition reports whether from -> to is a structurally valid
// transition, ignoring caller role.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	allowed, ok := transitions[from]
	return ok && allowed[to]
}
