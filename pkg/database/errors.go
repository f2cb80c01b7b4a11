package database

import (
	"strings"

	"github.com/lib/pq"
	"github.com/caretiv/scheduling-service/pkg/errors"
)

// MapPQError converts a PostgreSQL error to an AppError with meaningful messages.
// Returns nil if the error is not a pq.Error.
func MapPQError(err error) *errors.AppError {
	pqErr, ok := err.(*pq.Error)
	if !ok {
		return nil
	}

	switch pqErr.Code {
	// Check constraint violation (23514)
	case "23514":
		return mapCheckConstraint(pqErr)

	// Unique constraint violation (23505)
	case "23505":
		return errors.Conflict(formatConstraintMessage(pqErr))

	// Foreign key violation (23503)
	case "23503":
		return errors.BadRequest("referenced record does not exist")

	// Not null violation (23502)
	case "23502":
		col := pqErr.Column
		if col == "" {
			col = "required field"
		}
		return errors.Validation(map[string]string{
			col: "must not be empty",
		})

	default:
		return nil
	}
}

// mapCheckConstraint maps specific CHECK constraint names to user-friendly messages.
func mapCheckConstraint(pqErr *pq.Error) *errors.AppError {
	constraint := pqErr.Constraint

	switch {
	case strings.Contains(constraint, "email_format"):
		return errors.Validation(map[string]string{
			"email": "must be a valid email address",
		})

	case strings.Contains(constraint, "contract_type_valid"):
		return errors.Validation(map[string]string{
			"contract_type": "must be one of: minijob, part_time, full_time",
		})

	case strings.Contains(constraint, "shift_status_valid"):
		return errors.Validation(map[string]string{
			"status": "must be one of: planned, confirmed, completed, cancelled, cancelledAbsence",
		})

	case strings.Contains(constraint, "absence_status_valid"):
		return errors.Validation(map[string]string{
			"status": "must be one of: pending, approved, rejected",
		})

	case strings.Contains(constraint, "shift_handling_valid"):
		return errors.Validation(map[string]string{
			"shift_handling": "must be one of: cancelled_unpaid, carry_over, paid_anyway",
		})

	case strings.Contains(constraint, "payroll_status_valid"):
		return errors.Validation(map[string]string{
			"status": "must be one of: draft, approved, paid",
		})

	case strings.Contains(constraint, "shift_time_order") || strings.Contains(constraint, "vacation_period_dates") ||
		strings.Contains(constraint, "recurring_shift_dates") || strings.Contains(constraint, "contract_history_dates"):
		return errors.Validation(map[string]string{
			"date_range": "end must be on or after start",
		})

	default:
		return errors.BadRequest("data validation failed: " + constraint)
	}
}

// formatConstraintMessage creates a user-friendly message for unique constraint violations.
func formatConstraintMessage(pqErr *pq.Error) string {
	constraint := pqErr.Constraint

	switch {
	case strings.Contains(constraint, "employee_number"):
		return "an employee with this employee number already exists"
	case strings.Contains(constraint, "email"):
		return "an employee with this email already exists"
	case strings.Contains(constraint, "payroll_entries_employee_month"):
		return "a payroll entry for this employee and month already exists"
	case strings.Contains(constraint, "holiday_profiles_one_active"):
		return "a tenant may only have one active holiday profile"
	default:
		return "a record with these values already exists"
	}
}
