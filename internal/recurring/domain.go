// Package recurring materialises weekly recurring shift rules into concrete
// Shift rows, with holiday/vacation skipping and selective regeneration that
// preserves confirmed, completed, cancelled, and override instances.
package recurring

import "time"

// RecurringShift is a weekly-periodic rule that expands into Shift rows over
// [ValidFrom, ValidUntil].
type RecurringShift struct {
	ID               string  `db:"id" json:"id"`
	TenantID         string  `db:"tenant_id" json:"tenantId"`
	Weekday          int     `db:"weekday" json:"weekday"` // 0=Sunday .. 6=Saturday
	StartTime        string  `db:"start_time" json:"startTime"`
	EndTime          string  `db:"end_time" json:"endTime"`
	BreakMinutes     int     `db:"break_minutes" json:"breakMinutes"`
	EmployeeID       *string `db:"employee_id" json:"employeeId,omitempty"`
	TemplateID       *string `db:"template_id" json:"templateId,omitempty"`
	ValidFrom        time.Time `db:"valid_from" json:"validFrom"`
	ValidUntil       time.Time `db:"valid_until" json:"validUntil"`
	HolidayProfileID *string `db:"holiday_profile_id" json:"holidayProfileId,omitempty"`
	SkipPublicHolidays bool  `db:"skip_public_holidays" json:"skipPublicHolidays"`
	Label            *string `db:"label" json:"label,omitempty"`
	Active           bool    `db:"active" json:"active"`
	CreatedBy        *string `db:"created_by" json:"createdBy,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"createdAt"`
}

// PreviewResult is the read-only projection of what Generate would do.
type PreviewResult struct {
	GeneratedCount int      `json:"generatedCount"`
	SkippedCount   int      `json:"skippedCount"`
	SkippedDates   []string `json:"skippedDates"`
}

// GenerateResult is the outcome of materialising a rule's shifts.
type GenerateResult struct {
	NewShiftIDs  []string `json:"newShiftIds"`
	SkippedCount int      `json:"skippedCount"`
}
