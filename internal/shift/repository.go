package shift

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/caretiv/scheduling-service/pkg/database"
	"github.com/caretiv/scheduling-service/pkg/errors"
	"github.com/caretiv/scheduling-service/pkg/tenant"
)

// Repository persists shifts under RLS-scoped transactions.
type Repository struct {
	db *database.DB
}

// NewRepository builds a Repository.
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new shift in planned status, computing its derived
// weekday flags first.
func (r *Repository) Create(ctx context.Context, s *Shift) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	s.ID = uuid.New().String()
	s.TenantID = tenantID
	if s.Status == "" {
		s.Status = StatusPlanned
	}
	s.ApplyDerivedFlags()

	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			INSERT INTO shifts (
				id, tenant_id, employee_id, template_id, recurring_shift_id,
				date, start_time, end_time, break_minutes, location, notes,
				status, is_holiday, is_weekend, is_sunday, is_override
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16
			)
			RETURNING created_at, updated_at
		`
		return r.db.QueryRowxContext(ctx, query,
			s.ID, s.TenantID, s.EmployeeID, s.TemplateID, s.RecurringShiftID,
			s.Date, s.StartTime, s.EndTime, s.BreakMinutes, s.Location, s.Notes,
			s.Status, s.IsHoliday, s.IsWeekend, s.IsSunday, s.IsOverride,
		).Scan(&s.CreatedAt, &s.UpdatedAt)
	})
}

// GetByID fetches a single shift.
func (r *Repository) GetByID(ctx context.Context, id string) (*Shift, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return nil, err
	}

	var s Shift
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `SELECT * FROM shifts WHERE id = $1`
		return r.db.GetContext(ctx, &s, query, id)
	})
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("shift")
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListFilter narrows a shift listing.
type ListFilter struct {
	EmployeeID *string
	From       *time.Time
	Until      *time.Time
	Status     *Status
	OpenOnly   bool // employee_id IS NULL, status = planned
	ViolationsOnly bool // rest_period_ok, break_ok, or minijob_limit_ok is false
}

// List returns shifts matching filter, ordered by date then start_time.
func (r *Repository) List(ctx context.Context, f ListFilter) ([]*Shift, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return nil, err
	}

	var shifts []*Shift
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `SELECT * FROM shifts WHERE 1=1`
		var args []interface{}
		arg := func(v interface{}) string {
			args = append(args, v)
			return "$" + strconv.Itoa(len(args))
		}

		if f.EmployeeID != nil {
			query += ` AND employee_id = ` + arg(*f.EmployeeID)
		}
		if f.From != nil {
			query += ` AND date >= ` + arg(*f.From)
		}
		if f.Until != nil {
			query += ` AND date <= ` + arg(*f.Until)
		}
		if f.Status != nil {
			query += ` AND status = ` + arg(*f.Status)
		}
		if f.OpenOnly {
			query += ` AND employee_id IS NULL AND status = ` + arg(StatusPlanned)
		}
		if f.ViolationsOnly {
			query += ` AND (rest_period_ok = false OR break_ok = false OR minijob_limit_ok = false)`
		}
		query += ` ORDER BY date, start_time`

		return r.db.SelectContext(ctx, &shifts, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return shifts, nil
}

// PriorShift returns the employee's last non-cancelled shift strictly
// before beforeDate, ordered descending by (date, start_time). Used by the
// rest-period compliance check.
func (r *Repository) PriorShift(ctx context.Context, employeeID string, beforeDate time.Time) (*Shift, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return nil, err
	}

	var s Shift
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			SELECT * FROM shifts
			WHERE employee_id = $1 AND date < $2
			  AND status NOT IN ('cancelled', 'cancelledAbsence')
			ORDER BY date DESC, start_time DESC
			LIMIT 1
		`
		return r.db.GetContext(ctx, &s, query, employeeID, beforeDate)
	})
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("shift")
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Update persists the full mutable field set of a shift. The service layer
// is responsible for only setting fields the caller's role is allowed to
// change before calling Update.
func (r *Repository) Update(ctx context.Context, s *Shift) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	s.ApplyDerivedFlags()

	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			UPDATE shifts SET
				employee_id = $1, template_id = $2, date = $3, start_time = $4,
				end_time = $5, break_minutes = $6, location = $7, notes = $8,
				status = $9, cancellation_reason = $10, actual_start = $11,
				actual_end = $12, confirmed_by = $13, confirmed_at = $14,
				confirmation_note = $15, is_holiday = $16, is_weekend = $17,
				is_sunday = $18, rest_period_ok = $19, break_ok = $20,
				minijob_limit_ok = $21, hours_carried_over = $22,
				is_override = $23, updated_at = now()
			WHERE id = $24
			RETURNING updated_at
		`
		row := r.db.QueryRowxContext(ctx, query,
			s.EmployeeID, s.TemplateID, s.Date, s.StartTime, s.EndTime,
			s.BreakMinutes, s.Location, s.Notes, s.Status, s.CancellationReason,
			s.ActualStart, s.ActualEnd, s.ConfirmedBy, s.ConfirmedAt,
			s.ConfirmationNote, s.IsHoliday, s.IsWeekend, s.IsSunday,
			s.RestPeriodOk, s.BreakOk, s.MinijobLimitOk, s.HoursCarriedOver,
			s.IsOverride, s.ID,
		)
		if scanErr := row.Scan(&s.UpdatedAt); scanErr != nil {
			if scanErr == sql.ErrNoRows {
				return errors.NotFound("shift")
			}
			return scanErr
		}
		return nil
	})
}

// UpdateComplianceFlags persists only the three compliance-derived booleans,
// used by the compliance evaluator after it runs post-commit.
func (r *Repository) UpdateComplianceFlags(ctx context.Context, id string, restPeriodOk, breakOk, minijobLimitOk bool) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			UPDATE shifts SET rest_period_ok = $1, break_ok = $2, minijob_limit_ok = $3
			WHERE id = $4
		`
		_, execErr := r.db.ExecContext(ctx, query, restPeriodOk, breakOk, minijobLimitOk, id)
		return execErr
	})
}

// Claim atomically assigns employeeID to an open shift (status=planned,
// employee_id IS NULL). Zero rows affected means the shift was already
// claimed or is no longer open: reported as a conflict.
func (r *Repository) Claim(ctx context.Context, shiftID, employeeID string) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			UPDATE shifts SET employee_id = $1, updated_at = now()
			WHERE id = $2 AND employee_id IS NULL AND status = $3
		`
		result, execErr := r.db.ExecContext(ctx, query, employeeID, shiftID, StatusPlanned)
		if execErr != nil {
			return execErr
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return errors.Conflict("shift is no longer open")
		}
		return nil
	})
}

// DeleteByRecurringRule removes every planned, non-override shift generated
// by ruleID with date >= fromDate. Used by the recurring shift expander's
// RegenerateFrom and SoftDelete operations.
func (r *Repository) DeleteByRecurringRule(ctx context.Context, ruleID string, fromDate *time.Time) (int64, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return 0, err
	}

	var affected int64
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			DELETE FROM shifts
			WHERE recurring_shift_id = $1 AND status = $2 AND is_override = false
		`
		args := []interface{}{ruleID, StatusPlanned}
		if fromDate != nil {
			query += ` AND date >= $3`
			args = append(args, *fromDate)
		}
		result, execErr := r.db.ExecContext(ctx, query, args...)
		if execErr != nil {
			return execErr
		}
		affected, _ = result.RowsAffected()
		return nil
	})
	return affected, err
}

// TransitionRangeToAbsence moves every non-cancelled shift of employeeID in
// [startDate, endDate] to cancelledAbsence. Used by the absence coordinator
// on approval.
func (r *Repository) TransitionRangeToAbsence(ctx context.Context, employeeID string, startDate, endDate time.Time) (int64, error) {
	return r.transitionRange(ctx, employeeID, startDate, endDate,
		`status NOT IN ('cancelled', 'cancelledAbsence')`, StatusCancelledAbsence)
}

// RestoreRangeFromAbsence moves every cancelledAbsence shift of employeeID in
// [startDate, endDate] back to planned. Used on absence rejection.
func (r *Repository) RestoreRangeFromAbsence(ctx context.Context, employeeID string, startDate, endDate time.Time) (int64, error) {
	return r.transitionRange(ctx, employeeID, startDate, endDate,
		`status = 'cancelledAbsence'`, StatusPlanned)
}

// TransitionTenantRangeToAbsence moves every non-cancelled shift in
// [startDate, endDate] across the whole tenant to cancelledAbsence,
// regardless of employee. Used by the care-recipient absence coordinator,
// which has no single employeeId to scope by.
func (r *Repository) TransitionTenantRangeToAbsence(ctx context.Context, startDate, endDate time.Time) (int64, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return 0, err
	}

	var affected int64
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			UPDATE shifts SET status = $1, updated_at = now()
			WHERE date >= $2 AND date <= $3 AND status NOT IN ('cancelled', 'cancelledAbsence')
		`
		result, execErr := r.db.ExecContext(ctx, query, StatusCancelledAbsence, startDate, endDate)
		if execErr != nil {
			return execErr
		}
		affected, _ = result.RowsAffected()
		return nil
	})
	return affected, err
}

func (r *Repository) transitionRange(ctx context.Context, employeeID string, startDate, endDate time.Time, guard string, newStatus Status) (int64, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return 0, err
	}

	var affected int64
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			UPDATE shifts SET status = $1, updated_at = now()
			WHERE employee_id = $2 AND date >= $3 AND date <= $4 AND ` + guard
		result, execErr := r.db.ExecContext(ctx, query, newStatus, employeeID, startDate, endDate)
		if execErr != nil {
			return execErr
		}
		affected, _ = result.RowsAffected()
		return nil
	})
	return affected, err
}
