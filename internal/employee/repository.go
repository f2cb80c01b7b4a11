package employee

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/caretiv/scheduling-service/pkg/database"
	"github.com/caretiv/scheduling-service/pkg/errors"
	"github.com/caretiv/scheduling-service/pkg/tenant"
)

// Repository persists employees under RLS-scoped transactions.
type Repository struct {
	db *database.DB
}

// NewRepository builds a Repository.
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new employee, generating its ID and iCal token.
func (r *Repository) Create(ctx context.Context, e *Employee) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	e.ID = uuid.New().String()
	e.TenantID = tenantID
	if e.ICalToken == "" {
		e.ICalToken = uuid.New().String()
	}

	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			INSERT INTO employees (
				id, tenant_id, user_id, first_name, last_name, email, phone,
				contract_type, hourly_rate, weekly_hours, full_time_percentage,
				monthly_hours_limit, annual_salary_limit, vacation_days,
				qualifications, ical_token, telegram_chat_id,
				quiet_hours_start, quiet_hours_end, notification_prefs, active
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
				$15, $16, $17, $18, $19, $20, $21
			)
			RETURNING created_at, updated_at
		`
		return r.db.QueryRowxContext(ctx, query,
			e.ID, e.TenantID, e.UserID, e.FirstName, e.LastName, e.Email, e.Phone,
			e.ContractType, e.HourlyRate, e.WeeklyHours, e.FullTimePercentage,
			e.MonthlyHoursLimit, e.AnnualSalaryLimit, e.VacationDays,
			e.Qualifications, e.ICalToken, e.TelegramChatID,
			e.QuietHoursStart, e.QuietHoursEnd, e.NotificationPrefs, e.Active,
		).Scan(&e.CreatedAt, &e.UpdatedAt)
	})
}

// GetByID fetches a single employee by ID.
func (r *Repository) GetByID(ctx context.Context, id string) (*Employee, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return nil, err
	}

	var e Employee
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `SELECT * FROM employees WHERE id = $1 AND deleted_at IS NULL`
		return r.db.GetContext(ctx, &e, query, id)
	})
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("employee")
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetByUserID resolves the employee linked to a platform user account, used
// to find "my own employee record" for self-service RBAC checks (claiming a
// shift, editing one's own notes).
func (r *Repository) GetByUserID(ctx context.Context, userID string) (*Employee, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return nil, err
	}

	var e Employee
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `SELECT * FROM employees WHERE user_id = $1 AND deleted_at IS NULL`
		return r.db.GetContext(ctx, &e, query, userID)
	})
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("employee")
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetByICalToken fetches an employee by their iCal export token, used by the
// unauthenticated iCal feed endpoint.
func (r *Repository) GetByICalToken(ctx context.Context, token string) (*Employee, error) {
	var e Employee
	query := `SELECT * FROM employees WHERE ical_token = $1 AND deleted_at IS NULL`
	if err := r.db.GetContext(ctx, &e, query, token); err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("employee")
		}
		return nil, err
	}
	return &e, nil
}

// List returns all non-deleted employees for the tenant, optionally
// including inactive ones.
func (r *Repository) List(ctx context.Context, includeInactive bool) ([]*Employee, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return nil, err
	}

	var employees []*Employee
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `SELECT * FROM employees WHERE deleted_at IS NULL`
		if !includeInactive {
			query += ` AND active = true`
		}
		query += ` ORDER BY last_name, first_name`
		return r.db.SelectContext(ctx, &employees, query)
	})
	if err != nil {
		return nil, err
	}
	return employees, nil
}

// Update persists the editable fields of an employee. Contract cache fields
// (ContractType, HourlyRate, WeeklyHours, FullTimePercentage,
// MonthlyHoursLimit, AnnualSalaryLimit) are intentionally excluded: they are
// only ever written by the contract package, never by a direct profile edit.
func (r *Repository) Update(ctx context.Context, e *Employee) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			UPDATE employees SET
				first_name = $1, last_name = $2, email = $3, phone = $4,
				vacation_days = $5, qualifications = $6, telegram_chat_id = $7,
				quiet_hours_start = $8, quiet_hours_end = $9,
				notification_prefs = $10, active = $11, updated_at = now()
			WHERE id = $12 AND deleted_at IS NULL
			RETURNING updated_at
		`
		row := r.db.QueryRowxContext(ctx, query,
			e.FirstName, e.LastName, e.Email, e.Phone, e.VacationDays,
			e.Qualifications, e.TelegramChatID, e.QuietHoursStart, e.QuietHoursEnd,
			e.NotificationPrefs, e.Active, e.ID,
		)
		if scanErr := row.Scan(&e.UpdatedAt); scanErr != nil {
			if scanErr == sql.ErrNoRows {
				return errors.NotFound("employee")
			}
			return scanErr
		}
		return nil
	})
}

// UpdateContractCache overwrites the employee's contract cache fields. Called
// exclusively by the contract package after inserting a new ContractHistory
// entry, so that Employee always mirrors the currently-valid contract.
func (r *Repository) UpdateContractCache(ctx context.Context, employeeID string, contractType ContractType, hourlyRate float64, weeklyHours, fullTimePercentage, monthlyHoursLimit, annualSalaryLimit *float64) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			UPDATE employees SET
				contract_type = $1, hourly_rate = $2, weekly_hours = $3,
				full_time_percentage = $4, monthly_hours_limit = $5,
				annual_salary_limit = $6, updated_at = now()
			WHERE id = $7 AND deleted_at IS NULL
		`
		result, execErr := r.db.ExecContext(ctx, query,
			contractType, hourlyRate, weeklyHours, fullTimePercentage,
			monthlyHoursLimit, annualSalaryLimit, employeeID,
		)
		if execErr != nil {
			return execErr
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return errors.NotFound("employee")
		}
		return nil
	})
}

// SoftDelete marks an employee as deleted without removing history.
func (r *Repository) SoftDelete(ctx context.Context, id string) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `UPDATE employees SET deleted_at = now(), active = false WHERE id = $1 AND deleted_at IS NULL`
		result, execErr := r.db.ExecContext(ctx, query, id)
		if execErr != nil {
			return execErr
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return errors.NotFound("employee")
		}
		return nil
	})
}

// RegenerateICalToken replaces an employee's iCal export token, invalidating
// any previously shared calendar URL.
func (r *Repository) RegenerateICalToken(ctx context.Context, id string) (string, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return "", err
	}

	newToken := uuid.New().String()
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `UPDATE employees SET ical_token = $1, updated_at = now() WHERE id = $2 AND deleted_at IS NULL`
		result, execErr := r.db.ExecContext(ctx, query, newToken, id)
		if execErr != nil {
			return execErr
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return errors.NotFound("employee")
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return newToken, nil
}
