package recurring

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/caretiv/scheduling-service/pkg/database"
	"github.com/caretiv/scheduling-service/pkg/errors"
	"github.com/caretiv/scheduling-service/pkg/tenant"
)

// Repository persists recurring shift rules under RLS-scoped transactions.
type Repository struct {
	db *database.DB
}

// NewRepository builds a Repository.
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new active recurring shift rule.
func (r *Repository) Create(ctx context.Context, rs *RecurringShift) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	rs.ID = uuid.New().String()
	rs.TenantID = tenantID
	rs.Active = true

	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			INSERT INTO recurring_shifts (
				id, tenant_id, weekday, start_time, end_time, break_minutes,
				employee_id, template_id, valid_from, valid_until,
				holiday_profile_id, skip_public_holidays, label, active, created_by
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
			)
			RETURNING created_at
		`
		return r.db.QueryRowxContext(ctx, query,
			rs.ID, rs.TenantID, rs.Weekday, rs.StartTime, rs.EndTime, rs.BreakMinutes,
			rs.EmployeeID, rs.TemplateID, rs.ValidFrom, rs.ValidUntil,
			rs.HolidayProfileID, rs.SkipPublicHolidays, rs.Label, rs.Active, rs.CreatedBy,
		).Scan(&rs.CreatedAt)
	})
}

// GetByID fetches a single recurring shift rule.
func (r *Repository) GetByID(ctx context.Context, id string) (*RecurringShift, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return nil, err
	}

	var rs RecurringShift
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		return r.db.GetContext(ctx, &rs, `SELECT * FROM recurring_shifts WHERE id = $1`, id)
	})
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("recurring shift")
	}
	if err != nil {
		return nil, err
	}
	return &rs, nil
}

// List returns recurring shift rules for the tenant.
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]*RecurringShift, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return nil, err
	}

	var rules []*RecurringShift
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `SELECT * FROM recurring_shifts`
		if activeOnly {
			query += ` WHERE active = true`
		}
		query += ` ORDER BY weekday, start_time`
		return r.db.SelectContext(ctx, &rules, query)
	})
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// Update persists a rule's mutable fields.
func (r *Repository) Update(ctx context.Context, rs *RecurringShift) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			UPDATE recurring_shifts SET
				weekday = $1, start_time = $2, end_time = $3, break_minutes = $4,
				employee_id = $5, template_id = $6, valid_from = $7, valid_until = $8,
				holiday_profile_id = $9, skip_public_holidays = $10, label = $11, active = $12
			WHERE id = $13
			RETURNING created_at
		`
		row := r.db.QueryRowxContext(ctx, query,
			rs.Weekday, rs.StartTime, rs.EndTime, rs.BreakMinutes,
			rs.EmployeeID, rs.TemplateID, rs.ValidFrom, rs.ValidUntil,
			rs.HolidayProfileID, rs.SkipPublicHolidays, rs.Label, rs.Active, rs.ID,
		)
		if scanErr := row.Scan(&rs.CreatedAt); scanErr != nil {
			if scanErr == sql.ErrNoRows {
				return errors.NotFound("recurring shift")
			}
			return scanErr
		}
		return nil
	})
}

// Deactivate sets active=false, leaving the row (and any shifts still
// referencing it) in place.
func (r *Repository) Deactivate(ctx context.Context, id string) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		result, execErr := r.db.ExecContext(ctx, `UPDATE recurring_shifts SET active = false WHERE id = $1`, id)
		if execErr != nil {
			return execErr
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return errors.NotFound("recurring shift")
		}
		return nil
	})
}
