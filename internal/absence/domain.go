package absence

import "time"

// EmployeeAbsenceStatus is the review state of an employee's leave request.
type EmployeeAbsenceStatus string

const (
	StatusPending  EmployeeAbsenceStatus = "pending"
	StatusApproved EmployeeAbsenceStatus = "approved"
	StatusRejected EmployeeAbsenceStatus = "rejected"
)

// EmployeeAbsence is a leave request against a single employee's schedule.
type EmployeeAbsence struct {
	ID         string                `db:"id" json:"id"`
	TenantID   string                `db:"tenant_id" json:"tenantId"`
	EmployeeID string                `db:"employee_id" json:"employeeId"`
	Type       string                `db:"type" json:"type"` // vacation, sick, school_holiday, other
	StartDate  time.Time             `db:"start_date" json:"startDate"`
	EndDate    time.Time             `db:"end_date" json:"endDate"`
	DaysCount  *float64              `db:"days_count" json:"daysCount,omitempty"`
	Status     EmployeeAbsenceStatus `db:"status" json:"status"`
	Notes      *string               `db:"notes" json:"notes,omitempty"`
	ApprovedBy *string               `db:"approved_by" json:"approvedBy,omitempty"`
	ApprovedAt *time.Time            `db:"approved_at" json:"approvedAt,omitempty"`
	CreatedAt  time.Time             `db:"created_at" json:"createdAt"`
}

// ShiftHandling governs how a care recipient's absence affects overlapping
// shifts.
type ShiftHandling string

const (
	ShiftHandlingCancelledUnpaid ShiftHandling = "cancelled_unpaid"
	ShiftHandlingCarryOver       ShiftHandling = "carry_over"
	ShiftHandlingPaidAnyway      ShiftHandling = "paid_anyway"
)

// CareRecipientAbsence is an absence of the person being cared for, not of an
// employee. It has no single employeeId: ShiftHandling governs what happens
// to every shift in range across the tenant.
type CareRecipientAbsence struct {
	ID              string        `db:"id" json:"id"`
	TenantID        string        `db:"tenant_id" json:"tenantId"`
	Type            string        `db:"type" json:"type"` // vacation, rehab, hospital, sick, other
	StartDate       time.Time     `db:"start_date" json:"startDate"`
	EndDate         time.Time     `db:"end_date" json:"endDate"`
	Description     *string       `db:"description" json:"description,omitempty"`
	Notes           *string       `db:"notes" json:"notes,omitempty"`
	ShiftHandling   ShiftHandling `db:"shift_handling" json:"shiftHandling"`
	NotifyEmployees bool          `db:"notify_employees" json:"notifyEmployees"`
	CreatedAt       time.Time     `db:"created_at" json:"createdAt"`
}
