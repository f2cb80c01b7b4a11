package shifttemplate

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/caretiv/scheduling-service/pkg/database"
	"github.com/caretiv/scheduling-service/pkg/errors"
	"github.com/caretiv/scheduling-service/pkg/tenant"
)

// Repository persists shift templates under RLS-scoped transactions.
type Repository struct {
	db *database.DB
}

// NewRepository builds a Repository.
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new shift template.
func (r *Repository) Create(ctx context.Context, t *ShiftTemplate) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	t.ID = uuid.New().String()
	t.TenantID = tenantID
	if t.Color == "" {
		t.Color = "#22c55e"
	}

	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			INSERT INTO shift_templates (
				id, tenant_id, name, weekdays, start_time, end_time,
				break_minutes, location, required_skills, color, active,
				valid_from, valid_until
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			RETURNING created_at, updated_at
		`
		return r.db.QueryRowxContext(ctx, query,
			t.ID, t.TenantID, t.Name, t.Weekdays, t.StartTime, t.EndTime,
			t.BreakMinutes, t.Location, t.RequiredSkills, t.Color, t.Active,
			t.ValidFrom, t.ValidUntil,
		).Scan(&t.CreatedAt, &t.UpdatedAt)
	})
}

// GetByID fetches a single shift template.
func (r *Repository) GetByID(ctx context.Context, id string) (*ShiftTemplate, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return nil, err
	}

	var t ShiftTemplate
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `SELECT * FROM shift_templates WHERE id = $1 AND deleted_at IS NULL`
		return r.db.GetContext(ctx, &t, query, id)
	})
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("shift_template")
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns shift templates for the tenant.
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]*ShiftTemplate, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return nil, err
	}

	var templates []*ShiftTemplate
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `SELECT * FROM shift_templates WHERE deleted_at IS NULL`
		if activeOnly {
			query += ` AND active = true`
		}
		query += ` ORDER BY name`
		return r.db.SelectContext(ctx, &templates, query)
	})
	if err != nil {
		return nil, err
	}
	return templates, nil
}

// Update persists a shift template's editable fields.
func (r *Repository) Update(ctx context.Context, t *ShiftTemplate) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			UPDATE shift_templates SET
				name = $1, weekdays = $2, start_time = $3, end_time = $4,
				break_minutes = $5, location = $6, required_skills = $7,
				color = $8, active = $9, valid_from = $10, valid_until = $11,
				updated_at = now()
			WHERE id = $12 AND deleted_at IS NULL
			RETURNING updated_at
		`
		row := r.db.QueryRowxContext(ctx, query,
			t.Name, t.Weekdays, t.StartTime, t.EndTime, t.BreakMinutes,
			t.Location, t.RequiredSkills, t.Color, t.Active, t.ValidFrom,
			t.ValidUntil, t.ID,
		)
		if scanErr := row.Scan(&t.UpdatedAt); scanErr != nil {
			if scanErr == sql.ErrNoRows {
				return errors.NotFound("shift_template")
			}
			return scanErr
		}
		return nil
	})
}

// SoftDelete marks a shift template as deleted.
func (r *Repository) SoftDelete(ctx context.Context, id string) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `UPDATE shift_templates SET deleted_at = now(), active = false WHERE id = $1 AND deleted_at IS NULL`
		result, execErr := r.db.ExecContext(ctx, query, id)
		if execErr != nil {
			return execErr
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return errors.NotFound("shift_template")
		}
		return nil
	})
}
