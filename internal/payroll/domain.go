// Package payroll calculates monthly gross pay from confirmed and completed shifts,
// applying the statutory §3b EStG surcharge rates on top of the employee's
// contract-of-record hourly rate, carrying unpaid hours into the following
// month when a monthly hours limit is set, and tracking year-to-date gross
// against the minijob annual ceiling.
package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is a payroll entry's approval lifecycle state.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusApproved Status = "approved"
	StatusPaid     Status = "paid"
)

// SurchargeRates are the statutory §3b EStG income-tax-favoured surcharge
// multipliers applied on top of the base hourly rate.
var SurchargeRates = map[string]decimal.Decimal{
	"early":   decimal.NewFromFloat(0.125),
	"late":    decimal.NewFromFloat(0.125),
	"night":   decimal.NewFromFloat(0.25),
	"weekend": decimal.NewFromFloat(0.25),
	"sunday":  decimal.NewFromFloat(0.50),
	"holiday": decimal.NewFromFloat(1.25),
}

// Entry is one employee's monthly payroll calculation.
type Entry struct {
	ID       string    `db:"id" json:"id"`
	TenantID string    `db:"tenant_id" json:"tenantId"`
	EmployeeID string  `db:"employee_id" json:"employeeId"`
	Month    time.Time `db:"month" json:"month"` // first of month

	PlannedHours  *decimal.Decimal `db:"planned_hours" json:"plannedHours,omitempty"`
	ActualHours   decimal.Decimal  `db:"actual_hours" json:"actualHours"`
	CarryoverHours decimal.Decimal `db:"carryover_hours" json:"carryoverHours"`
	PaidHours     decimal.Decimal  `db:"paid_hours" json:"paidHours"`

	EarlyHours   decimal.Decimal `db:"early_hours" json:"earlyHours"`
	LateHours    decimal.Decimal `db:"late_hours" json:"lateHours"`
	NightHours   decimal.Decimal `db:"night_hours" json:"nightHours"`
	WeekendHours decimal.Decimal `db:"weekend_hours" json:"weekendHours"`
	SundayHours  decimal.Decimal `db:"sunday_hours" json:"sundayHours"`
	HolidayHours decimal.Decimal `db:"holiday_hours" json:"holidayHours"`

	BaseWage         decimal.Decimal `db:"base_wage" json:"baseWage"`
	EarlySurcharge   decimal.Decimal `db:"early_surcharge" json:"earlySurcharge"`
	LateSurcharge    decimal.Decimal `db:"late_surcharge" json:"lateSurcharge"`
	NightSurcharge   decimal.Decimal `db:"night_surcharge" json:"nightSurcharge"`
	WeekendSurcharge decimal.Decimal `db:"weekend_surcharge" json:"weekendSurcharge"`
	SundaySurcharge  decimal.Decimal `db:"sunday_surcharge" json:"sundaySurcharge"`
	HolidaySurcharge decimal.Decimal `db:"holiday_surcharge" json:"holidaySurcharge"`

	TotalGross           decimal.Decimal `db:"total_gross" json:"totalGross"`
	YTDGross             decimal.Decimal `db:"ytd_gross" json:"ytdGross"`
	AnnualLimitRemaining decimal.Decimal `db:"annual_limit_remaining" json:"annualLimitRemaining"`

	Status Status `db:"status" json:"status"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// CanTransition reports whether a payroll entry may move from one status to
// another: draft->approved, approved->draft (reopen), approved->paid
// (terminal).
func CanTransition(from, to Status) bool {
	switch from {
	case StatusDraft:
		return to == StatusApproved
	case StatusApproved:
		return to == StatusDraft || to == StatusPaid
	default:
		return false
	}
}

// round2 applies banker's rounding (round-half-to-even) at two decimal
// places, matching the "rounded to two decimals when written" invariant
// without accumulating float drift across the surcharge walk.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.RoundBank(2)
}
