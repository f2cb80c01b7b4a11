// Package employee manages the workforce roster: the people shifts get
// assigned to, their contract cache fields, and the settings that drive
// notification delivery (quiet hours, iCal export, Telegram linkage).
package employee

import "time"

// ContractType mirrors the three German employment contract categories the
// scheduling domain cares about.
type ContractType string

const (
	ContractMinijob   ContractType = "minijob"
	ContractPartTime  ContractType = "part_time"
	ContractFullTime  ContractType = "full_time"
)

// DefaultAnnualSalaryLimit is the statutory minijob yearly earnings ceiling
// used when an employee has no explicit override.
const DefaultAnnualSalaryLimit = 6672.00

// Employee is a tenant's roster entry. HourlyRate, WeeklyHours,
// FullTimePercentage, MonthlyHoursLimit and AnnualSalaryLimit are a cache of
// the currently-valid ContractHistory row for this employee; they are kept
// in sync by the contract package whenever a new contract entry takes effect.
type Employee struct {
	ID       string  `db:"id" json:"id"`
	TenantID string  `db:"tenant_id" json:"tenantId"`
	UserID   *string `db:"user_id" json:"userId,omitempty"`

	FirstName string  `db:"first_name" json:"firstName"`
	LastName  string  `db:"last_name" json:"lastName"`
	Email     *string `db:"email" json:"email,omitempty"`
	Phone     *string `db:"phone" json:"phone,omitempty"`

	ContractType       ContractType `db:"contract_type" json:"contractType"`
	HourlyRate         float64      `db:"hourly_rate" json:"hourlyRate"`
	WeeklyHours        *float64     `db:"weekly_hours" json:"weeklyHours,omitempty"`
	FullTimePercentage *float64     `db:"full_time_percentage" json:"fullTimePercentage,omitempty"`
	MonthlyHoursLimit  *float64     `db:"monthly_hours_limit" json:"monthlyHoursLimit,omitempty"`
	AnnualSalaryLimit  *float64     `db:"annual_salary_limit" json:"annualSalaryLimit,omitempty"`

	VacationDays    int        `db:"vacation_days" json:"vacationDays"`
	Qualifications  StringSet  `db:"qualifications" json:"qualifications"`

	ICalToken       string  `db:"ical_token" json:"icalToken"`
	TelegramChatID  *string `db:"telegram_chat_id" json:"telegramChatId,omitempty"`

	QuietHoursStart string `db:"quiet_hours_start" json:"quietHoursStart"`
	QuietHoursEnd   string `db:"quiet_hours_end" json:"quietHoursEnd"`

	NotificationPrefs NotificationPrefs `db:"notification_prefs" json:"notificationPrefs"`

	Active bool `db:"active" json:"active"`

	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `db:"updated_at" json:"updatedAt"`
	DeletedAt *time.Time `db:"deleted_at" json:"-"`
}

// EffectiveAnnualSalaryLimit returns AnnualSalaryLimit if set, otherwise the
// statutory default.
func (e *Employee) EffectiveAnnualSalaryLimit() float64 {
	if e.AnnualSalaryLimit != nil {
		return *e.AnnualSalaryLimit
	}
	return DefaultAnnualSalaryLimit
}

// IsMinijob reports whether the employee's current contract cache is a
// minijob, the only contract type subject to the monthly/annual earnings
// ceilings.
func (e *Employee) IsMinijob() bool {
	return e.ContractType == ContractMinijob
}
