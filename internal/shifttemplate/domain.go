// Package shifttemplate manages reusable shift definitions referenced by
// recurring shift rules and ad-hoc shift creation. Templates are never
// copied into shifts; shifts hold a templateId and look up the template's
// fields when needed.
package shifttemplate

import (
	"time"

	"github.com/caretiv/scheduling-service/internal/employee"
)

// WeekdaySet is an unordered set of weekdays (0=Sunday .. 6=Saturday),
// stored as a Postgres smallint array.
type WeekdaySet []int

// ShiftTemplate is a reusable shift definition.
type ShiftTemplate struct {
	ID       string `db:"id" json:"id"`
	TenantID string `db:"tenant_id" json:"tenantId"`
	Name     string `db:"name" json:"name"`

	Weekdays     WeekdaySet `db:"weekdays" json:"weekdays"`
	StartTime    string     `db:"start_time" json:"startTime"` // HH:MM:SS
	EndTime      string     `db:"end_time" json:"endTime"`     // HH:MM:SS
	BreakMinutes int        `db:"break_minutes" json:"breakMinutes"`

	Location       *string           `db:"location" json:"location,omitempty"`
	RequiredSkills employee.StringSet `db:"required_skills" json:"requiredSkills"`
	Color          string            `db:"color" json:"color"`
	Active         bool              `db:"active" json:"active"`
	ValidFrom      *time.Time        `db:"valid_from" json:"validFrom,omitempty"`
	ValidUntil     *time.Time        `db:"valid_until" json:"validUntil,omitempty"`

	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
}

// HasWeekday reports whether the template applies on the given weekday
// (0=Sunday .. 6=Saturday).
func (t *ShiftTemplate) HasWeekday(weekday int) bool {
	for _, w := range t.Weekdays {
		if w == weekday {
			return true
		}
	}
	return false
}
