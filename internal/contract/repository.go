package contract

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/caretiv/scheduling-service/pkg/database"
	"github.com/caretiv/scheduling-service/pkg/errors"
	"github.com/caretiv/scheduling-service/pkg/tenant"
)

// Repository persists ContractHistory rows.
type Repository struct {
	db *database.DB
}

// NewRepository builds a Repository.
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Insert closes the employee's currently-open entry (if any) at h.ValidFrom,
// then inserts h as the new open entry. Both writes happen in the same RLS
// transaction so the non-overlap invariant always holds.
func (r *Repository) Insert(ctx context.Context, h *History) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	h.ID = uuid.New().String()
	h.TenantID = tenantID

	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		closeQuery := `
			UPDATE contract_history SET valid_to = $1
			WHERE employee_id = $2 AND valid_to IS NULL
		`
		if _, err := r.db.ExecContext(ctx, closeQuery, h.ValidFrom, h.EmployeeID); err != nil {
			return err
		}

		insertQuery := `
			INSERT INTO contract_history (
				id, tenant_id, employee_id, valid_from, valid_to, contract_type,
				hourly_rate, weekly_hours, full_time_percentage,
				monthly_hours_limit, annual_salary_limit, note, created_by_user_id
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING created_at
		`
		return r.db.QueryRowxContext(ctx, insertQuery,
			h.ID, h.TenantID, h.EmployeeID, h.ValidFrom, h.ValidTo, h.ContractType,
			h.HourlyRate, h.WeeklyHours, h.FullTimePercentage,
			h.MonthlyHoursLimit, h.AnnualSalaryLimit, h.Note, h.CreatedByUserID,
		).Scan(&h.CreatedAt)
	})
}

// ResolveAt returns the unique entry covering monthStart, or NotFound if no
// entry exists yet (the caller falls back to the Employee cache).
func (r *Repository) ResolveAt(ctx context.Context, employeeID string, monthStart time.Time) (*History, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return nil, err
	}

	var h History
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			SELECT * FROM contract_history
			WHERE employee_id = $1
			  AND valid_from <= $2
			  AND (valid_to IS NULL OR valid_to > $2)
			ORDER BY valid_from DESC
			LIMIT 1
		`
		return r.db.GetContext(ctx, &h, query, employeeID, monthStart)
	})
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("contract_history")
	}
	if err != nil {
		return nil, err
	}
	return &h, nil
}

// ListForEmployee returns the full contract timeline, most recent first.
func (r *Repository) ListForEmployee(ctx context.Context, employeeID string) ([]*History, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return nil, err
	}

	var rows []*History
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `SELECT * FROM contract_history WHERE employee_id = $1 ORDER BY valid_from DESC`
		return r.db.SelectContext(ctx, &rows, query, employeeID)
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}
