// Package holidayprofile manages a tenant's holiday profile: the active
// set of vacation periods and custom (non-statutory) holidays that the
// recurring-shift expander and the compliance/payroll calculators treat as
// non-working days, alongside whether statutory public holidays for a
// region should also be skipped.
package holidayprofile

import "time"

// HolidayProfile is a named, tenant-scoped collection of skip-dates. Only
// one profile per tenant may be active at a time.
type HolidayProfile struct {
	ID                 string    `db:"id" json:"id"`
	Name               string    `db:"name" json:"name"`
	Region             string    `db:"region" json:"region"`
	SkipPublicHolidays bool      `db:"skip_public_holidays" json:"skip_public_holidays"`
	IsActive           bool      `db:"is_active" json:"is_active"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time `db:"updated_at" json:"updated_at"`
}

// VacationPeriod is an inclusive date range (e.g. a school break) attached
// to a holiday profile.
type VacationPeriod struct {
	ID        string    `db:"id" json:"id"`
	ProfileID string    `db:"holiday_profile_id" json:"holiday_profile_id"`
	Name      string    `db:"name" json:"name"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CustomHoliday is a single extra non-working date (a bridge day, a
// regional event) attached to a holiday profile.
type CustomHoliday struct {
	ID        string    `db:"id" json:"id"`
	ProfileID string    `db:"holiday_profile_id" json:"holiday_profile_id"`
	Name      string    `db:"name" json:"name"`
	Date      time.Time `db:"date" json:"date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Detail bundles a profile with its vacation periods and custom holidays,
// the shape the skip-set builder and the API consume.
type Detail struct {
	Profile         *HolidayProfile   `json:"profile"`
	VacationPeriods []*VacationPeriod `json:"vacation_periods"`
	CustomHolidays  []*CustomHoliday  `json:"custom_holidays"`
}

// bwSchoolVacations2025_26 is the fixed Baden-Württemberg school vacation
// calendar for the 2025/26 school year, used by NewProfileWithSchoolVacations
// to seed a ready-made profile without per-tenant configuration.
var bwSchoolVacations2025_26 = []struct {
	Name  string
	Start time.Time
	End   time.Time
}{
	{"Herbstferien", date(2025, time.October, 27), date(2025, time.October, 30)},
	{"Weihnachten", date(2025, time.December, 22), date(2026, time.January, 5)},
	{"Ostern", date(2026, time.March, 30), date(2026, time.April, 11)},
	{"Pfingsten", date(2026, time.May, 26), date(2026, time.June, 5)},
	{"Sommer", date(2026, time.July, 30), date(2026, time.September, 12)},
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
