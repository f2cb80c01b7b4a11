// Package contract resolves the rate/limit snapshot that applies to an
// employee at a given point in time, and keeps the employee's cache fields
// in sync as new contract entries are recorded.
package contract

import (
	"time"

	"github.com/caretiv/scheduling-service/internal/employee"
)

// History is one entry in an employee's contract timeline. ValidTo == nil
// means the entry is currently open-ended.
type History struct {
	ID       string `db:"id" json:"id"`
	TenantID string `db:"tenant_id" json:"tenantId"`

	EmployeeID string     `db:"employee_id" json:"employeeId"`
	ValidFrom  time.Time  `db:"valid_from" json:"validFrom"`
	ValidTo    *time.Time `db:"valid_to" json:"validTo,omitempty"`

	ContractType       employee.ContractType `db:"contract_type" json:"contractType"`
	HourlyRate         float64               `db:"hourly_rate" json:"hourlyRate"`
	WeeklyHours        *float64              `db:"weekly_hours" json:"weeklyHours,omitempty"`
	FullTimePercentage *float64              `db:"full_time_percentage" json:"fullTimePercentage,omitempty"`
	MonthlyHoursLimit  *float64              `db:"monthly_hours_limit" json:"monthlyHoursLimit,omitempty"`
	AnnualSalaryLimit  *float64              `db:"annual_salary_limit" json:"annualSalaryLimit,omitempty"`

	Note            *string `db:"note" json:"note,omitempty"`
	CreatedByUserID *string `db:"created_by_user_id" json:"createdByUserId,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Snapshot is the rate/limit view resolved for a particular month, used by
// the payroll calculator.
type Snapshot struct {
	ContractType      employee.ContractType
	HourlyRate        float64
	MonthlyHoursLimit *float64
	AnnualSalaryLimit float64
}

// SnapshotFromHistory builds a Snapshot from a resolved ContractHistory row.
func SnapshotFromHistory(h *History) Snapshot {
	limit := employee.DefaultAnnualSalaryLimit
	if h.AnnualSalaryLimit != nil {
		limit = *h.AnnualSalaryLimit
	}
	return Snapshot{
		ContractType:      h.ContractType,
		HourlyRate:        h.HourlyRate,
		MonthlyHoursLimit: h.MonthlyHoursLimit,
		AnnualSalaryLimit: limit,
	}
}

// SnapshotFromEmployee falls back to the Employee cache fields when no
// ContractHistory row covers the requested month.
func SnapshotFromEmployee(e *employee.Employee) Snapshot {
	return Snapshot{
		ContractType:      e.ContractType,
		HourlyRate:        e.HourlyRate,
		MonthlyHoursLimit: e.MonthlyHoursLimit,
		AnnualSalaryLimit: e.EffectiveAnnualSalaryLimit(),
	}
}
