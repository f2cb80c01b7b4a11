package absence

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

// Repository persists absences under RLS-scoped transactions.
type Repository struct {
	db *database.DB
}

// NewRepository builds a Repository.
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// ListFilter narrows an EmployeeAbsence listing.
type ListFilter struct {
	EmployeeID *string
	Status     *EmployeeAbsenceStatus
}

// Create inserts a new pending EmployeeAbsence.
func (r *Repository) Create(ctx context.Context, a *EmployeeAbsence) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	a.ID = uuid.New().String()
	a.TenantID = tenantID
	if a.Status == "" {
		a.Status = StatusPending
	}

	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			INSERT INTO employee_absences (
				id, tenant_id, employee_id, type, start_date, end_date,
				days_count, status, notes
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING created_at
		`
		return r.db.QueryRowxContext(ctx, query,
			a.ID, a.TenantID, a.EmployeeID, a.Type, a.StartDate, a.EndDate,
			a.DaysCount, a.Status, a.Notes,
		).Scan(&a.CreatedAt)
	})
}

// GetByID fetches a single EmployeeAbsence.
func (r *Repository) GetByID(ctx context.Context, id string) (*EmployeeAbsence, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return nil, err
	}

	var a EmployeeAbsence
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `SELECT * FROM employee_absences WHERE id = $1`
		return r.db.GetContext(ctx, &a, query, id)
	})
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("absence")
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns EmployeeAbsences matching filter, newest start date first.
func (r *Repository) List(ctx context.Context, f ListFilter) ([]*EmployeeAbsence, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return nil, err
	}

	var absences []*EmployeeAbsence
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `SELECT * FROM employee_absences WHERE 1=1`
		var args []interface{}
		arg := func(v interface{}) string {
			args = append(args, v)
			return "$" + strconv.Itoa(len(args))
		}
		if f.EmployeeID != nil {
			query += ` AND employee_id = ` + arg(*f.EmployeeID)
		}
		if f.Status != nil {
			query += ` AND status = ` + arg(*f.Status)
		}
		query += ` ORDER BY start_date DESC`
		return r.db.SelectContext(ctx, &absences, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return absences, nil
}

// Approve persists the approval decision. Only a pending absence can be
// approved.
func (r *Repository) Approve(ctx context.Context, id string, approvedBy string, approvedAt time.Time) error {
	return r.updateDecision(ctx, id, StatusApproved, approvedBy, approvedAt, `status = 'pending'`)
}

// Reject persists the rejection decision. A pending or previously-approved
// absence can be rejected; an admin may reverse an earlier approval.
func (r *Repository) Reject(ctx context.Context, id string, approvedBy string, approvedAt time.Time) error {
	return r.updateDecision(ctx, id, StatusRejected, approvedBy, approvedAt, `status IN ('pending', 'approved')`)
}

func (r *Repository) updateDecision(ctx context.Context, id string, status EmployeeAbsenceStatus, approvedBy string, approvedAt time.Time, guard string) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			UPDATE employee_absences SET status = $1, approved_by = $2, approved_at = $3
			WHERE id = $4 AND ` + guard
		result, execErr := r.db.ExecContext(ctx, query, status, approvedBy, approvedAt, id)
		if execErr != nil {
			return execErr
		}
		affected, _ := result.RowsAffected()
		if affected == 0 {
			return errors.Conflict("absence is not pending")
		}
		return nil
	})
}

// CreateCareAbsence inserts a new CareRecipientAbsence.
func (r *Repository) CreateCareAbsence(ctx context.Context, a *CareRecipientAbsence) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	a.ID = uuid.New().String()
	a.TenantID = tenantID
	if a.ShiftHandling == "" {
		a.ShiftHandling = ShiftHandlingCancelledUnpaid
	}

	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			INSERT INTO care_recipient_absences (
				id, tenant_id, type, start_date, end_date, description, notes,
				shift_handling, notify_employees
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING created_at
		`
		return r.db.QueryRowxContext(ctx, query,
			a.ID, a.TenantID, a.Type, a.StartDate, a.EndDate, a.Description, a.Notes,
			a.ShiftHandling, a.NotifyEmployees,
		).Scan(&a.CreatedAt)
	})
}

// GetCareAbsenceByID fetches a single CareRecipientAbsence.
func (r *Repository) GetCareAbsenceByID(ctx context.Context, id string) (*CareRecipientAbsence, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return nil, err
	}

	var a CareRecipientAbsence
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `SELECT * FROM care_recipient_absences WHERE id = $1`
		return r.db.GetContext(ctx, &a, query, id)
	})
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("care absence")
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListCareAbsences returns every CareRecipientAbsence, newest first.
func (r *Repository) ListCareAbsences(ctx context.Context) ([]*CareRecipientAbsence, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return nil, err
	}

	var absences []*CareRecipientAbsence
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `SELECT * FROM care_recipient_absences ORDER BY start_date DESC`
		return r.db.SelectContext(ctx, &absences, query)
	})
	if err != nil {
		return nil, err
	}
	return absences, nil
}
