package compliance

import (
	"context"
	"time"

	"github.com/caretiv/scheduling-service/pkg/database"
	"github.com/caretiv/scheduling-service/pkg/tenant"
)

// Repository reads the committed-PayrollEntry sums the minijob checks need.
// It intentionally queries the payroll_entries table directly rather than
// depending on the payroll package's types, keeping the compliance ⇄
// payroll relationship one-directional (payroll resolves contract and
// shifts; compliance only reads payroll's committed totals).
type Repository struct {
	db *database.DB
}

// NewRepository builds a Repository.
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// MonthGross sums totalGross of committed (approved|paid) PayrollEntry rows
// for employeeID in the given first-of-month date.
func (r *Repository) MonthGross(ctx context.Context, employeeID string, month time.Time) (float64, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return 0, err
	}

	var total float64
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			SELECT COALESCE(SUM(total_gross), 0) FROM payroll_entries
			WHERE employee_id = $1 AND month = $2 AND status IN ('approved', 'paid')
		`
		return r.db.QueryRowxContext(ctx, query, employeeID, month).Scan(&total)
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

// YearToDateGross sums totalGross of committed PayrollEntry rows for
// employeeID from the first of year through the month before upToMonth.
func (r *Repository) YearToDateGross(ctx context.Context, employeeID string, upToMonth time.Time) (float64, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return 0, err
	}

	yearStart := time.Date(upToMonth.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	var total float64
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			SELECT COALESCE(SUM(total_gross), 0) FROM payroll_entries
			WHERE employee_id = $1 AND month >= $2 AND month < $3
			  AND status IN ('approved', 'paid')
		`
		return r.db.QueryRowxContext(ctx, query, employeeID, yearStart, upToMonth).Scan(&total)
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}
