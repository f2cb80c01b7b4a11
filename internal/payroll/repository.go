package payroll

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/caretiv/scheduling-service/pkg/database"
	"github.com/caretiv/scheduling-service/pkg/errors"
	"github.com/caretiv/scheduling-service/pkg/tenant"
)

// Repository persists payroll entries and the hours-carryover ledger under
// RLS-scoped transactions.
type Repository struct {
	db *database.DB
}

// NewRepository builds a Repository.
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new draft payroll entry.
func (r *Repository) Create(ctx context.Context, e *Entry) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	e.ID = uuid.New().String()
	e.TenantID = tenantID
	e.Status = StatusDraft

	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			INSERT INTO payroll_entries (
				id, tenant_id, employee_id, month, planned_hours, actual_hours,
				carryover_hours, paid_hours, early_hours, late_hours, night_hours,
				weekend_hours, sunday_hours, holiday_hours, base_wage,
				early_surcharge, late_surcharge, night_surcharge, weekend_surcharge,
				sunday_surcharge, holiday_surcharge, total_gross, ytd_gross,
				annual_limit_remaining, status
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
				$16, $17, $18, $19, $20, $21, $22, $23, $24, $25
			)
			RETURNING created_at, updated_at
		`
		return r.db.QueryRowxContext(ctx, query,
			e.ID, e.TenantID, e.EmployeeID, e.Month, e.PlannedHours, e.ActualHours,
			e.CarryoverHours, e.PaidHours, e.EarlyHours, e.LateHours, e.NightHours,
			e.WeekendHours, e.SundayHours, e.HolidayHours, e.BaseWage,
			e.EarlySurcharge, e.LateSurcharge, e.NightSurcharge, e.WeekendSurcharge,
			e.SundaySurcharge, e.HolidaySurcharge, e.TotalGross, e.YTDGross,
			e.AnnualLimitRemaining, e.Status,
		).Scan(&e.CreatedAt, &e.UpdatedAt)
	})
}

// GetByID fetches a single payroll entry.
func (r *Repository) GetByID(ctx context.Context, id string) (*Entry, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return nil, err
	}

	var e Entry
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		return r.db.GetContext(ctx, &e, `SELECT * FROM payroll_entries WHERE id = $1`, id)
	})
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("payroll entry")
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetByEmployeeAndMonth fetches the entry for employeeID and month, if one
// has already been calculated. Returns NotFound if none exists yet.
func (r *Repository) GetByEmployeeAndMonth(ctx context.Context, employeeID string, month time.Time) (*Entry, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return nil, err
	}

	var e Entry
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		return r.db.GetContext(ctx, &e, `SELECT * FROM payroll_entries WHERE employee_id = $1 AND month = $2`, employeeID, month)
	})
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("payroll entry")
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Update overwrites a draft entry's computed fields in place. Fails with
// Conflict if the row is no longer a draft, e.g. approved concurrently
// between the caller's read and this write.
func (r *Repository) Update(ctx context.Context, e *Entry) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			UPDATE payroll_entries SET
				planned_hours = $1, actual_hours = $2, carryover_hours = $3,
				paid_hours = $4, early_hours = $5, late_hours = $6, night_hours = $7,
				weekend_hours = $8, sunday_hours = $9, holiday_hours = $10,
				base_wage = $11, early_surcharge = $12, late_surcharge = $13,
				night_surcharge = $14, weekend_surcharge = $15, sunday_surcharge = $16,
				holiday_surcharge = $17, total_gross = $18, ytd_gross = $19,
				annual_limit_remaining = $20, updated_at = now()
			WHERE id = $21 AND status = 'draft'
			RETURNING updated_at
		`
		row := r.db.QueryRowxContext(ctx, query,
			e.PlannedHours, e.ActualHours, e.CarryoverHours, e.PaidHours,
			e.EarlyHours, e.LateHours, e.NightHours, e.WeekendHours, e.SundayHours, e.HolidayHours,
			e.BaseWage, e.EarlySurcharge, e.LateSurcharge, e.NightSurcharge, e.WeekendSurcharge,
			e.SundaySurcharge, e.HolidaySurcharge, e.TotalGross, e.YTDGross, e.AnnualLimitRemaining,
			e.ID,
		)
		scanErr := row.Scan(&e.UpdatedAt)
		if scanErr == sql.ErrNoRows {
			return errors.Conflict("payroll entry is no longer a draft")
		}
		return scanErr
	})
}

// ListForEmployee returns an employee's payroll entries, most recent month first.
func (r *Repository) ListForEmployee(ctx context.Context, employeeID string) ([]*Entry, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return nil, err
	}

	var entries []*Entry
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `SELECT * FROM payroll_entries WHERE employee_id = $1 ORDER BY month DESC`
		return r.db.SelectContext(ctx, &entries, query, employeeID)
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// List returns every payroll entry for the tenant, most recent month first.
func (r *Repository) List(ctx context.Context) ([]*Entry, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return nil, err
	}

	var entries []*Entry
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `SELECT * FROM payroll_entries ORDER BY month DESC, employee_id`
		return r.db.SelectContext(ctx, &entries, query)
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// YTDApprovedGross sums total_gross of approved/paid entries in
// [yearStart, beforeMonth).
func (r *Repository) YTDApprovedGross(ctx context.Context, employeeID string, yearStart, beforeMonth time.Time) (decimal.Decimal, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	var sum sql.NullString
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			SELECT COALESCE(SUM(total_gross), 0) FROM payroll_entries
			WHERE employee_id = $1 AND month >= $2 AND month < $3
			  AND status IN ('approved', 'paid')
		`
		return r.db.GetContext(ctx, &sum, query, employeeID, yearStart, beforeMonth)
	})
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid || sum.String == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(sum.String)
}

// CarryoverHoursInto returns the most recent carryover hours recorded for
// toMonth, or zero if none exists yet.
func (r *Repository) CarryoverHoursInto(ctx context.Context, employeeID string, toMonth time.Time) (decimal.Decimal, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	var hours sql.NullString
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			SELECT hours FROM hours_carryover
			WHERE employee_id = $1 AND to_month = $2
			ORDER BY created_at DESC LIMIT 1
		`
		getErr := r.db.GetContext(ctx, &hours, query, employeeID, toMonth)
		if getErr == sql.ErrNoRows {
			return nil
		}
		return getErr
	})
	if err != nil {
		return decimal.Zero, err
	}
	if !hours.Valid || hours.String == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(hours.String)
}

// RecordCarryover writes the carryover ledger row for the month following
// month, carrying the excess (or deficit) paid hours forward. Idempotent per
// (employeeID, toMonth): recalculating the same month replaces its prior
// carryover row rather than appending a duplicate that would double-count
// through CarryoverHoursInto.
func (r *Repository) RecordCarryover(ctx context.Context, employeeID string, fromMonth, toMonth time.Time, hours decimal.Decimal) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			INSERT INTO hours_carryover (id, tenant_id, employee_id, from_month, to_month, hours)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (employee_id, to_month) DO UPDATE SET
				from_month = EXCLUDED.from_month, hours = EXCLUDED.hours, created_at = now()
		`
		_, execErr := r.db.ExecContext(ctx, query, uuid.New().String(), tenantID, employeeID, fromMonth, toMonth, hours)
		return execErr
	})
}

// UpdateStatus performs a guarded status transition: the UPDATE only
// succeeds if the row's current status matches from.
func (r *Repository) UpdateStatus(ctx context.Context, id string, from, to Status) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `UPDATE payroll_entries SET status = $1, updated_at = now() WHERE id = $2 AND status = $3`
		result, execErr := r.db.ExecContext(ctx, query, to, id, from)
		if execErr != nil {
			return execErr
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return errors.Conflict("payroll entry is not in the expected status")
		}
		return nil
	})
}
