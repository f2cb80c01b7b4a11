package holidayprofile

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/caretiv/scheduling-service/pkg/database"
	"github.com/caretiv/scheduling-service/pkg/errors"
	"github.com/caretiv/scheduling-service/pkg/tenant"
)

// Repository handles holiday profile persistence.
type Repository struct {
	db *database.DB
}

// NewRepository creates a new holiday profile repository.
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new holiday profile. New profiles start inactive; use
// Activate to make one the tenant's active profile.
func (r *Repository) Create(ctx context.Context, p *HolidayProfile) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			INSERT INTO holiday_profiles (
				id, tenant_id, name, region, skip_public_holidays, is_active
			) VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING created_at, updated_at
		`
		return r.db.QueryRowxContext(ctx, query,
			p.ID, tenantID, p.Name, p.Region, p.SkipPublicHolidays, p.IsActive,
		).Scan(&p.CreatedAt, &p.UpdatedAt)
	})
}

// GetByID fetches a holiday profile by ID.
func (r *Repository) GetByID(ctx context.Context, id string) (*HolidayProfile, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return nil, err
	}

	var p HolidayProfile
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			SELECT id, name, region, skip_public_holidays, is_active, created_at, updated_at
			FROM holiday_profiles
			WHERE id = $1 AND deleted_at IS NULL
		`
		return r.db.GetContext(ctx, &p, query, id)
	})

	if err == sql.ErrNoRows {
		return nil, errors.NotFound("holiday_profile")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// GetActive fetches the tenant's currently active holiday profile, if any.
func (r *Repository) GetActive(ctx context.Context) (*HolidayProfile, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return nil, err
	}

	var p HolidayProfile
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			SELECT id, name, region, skip_public_holidays, is_active, created_at, updated_at
			FROM holiday_profiles
			WHERE is_active = true AND deleted_at IS NULL
		`
		return r.db.GetContext(ctx, &p, query)
	})

	if err == sql.ErrNoRows {
		return nil, errors.NotFound("active_holiday_profile")
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List lists all non-deleted holiday profiles for the tenant.
func (r *Repository) List(ctx context.Context) ([]*HolidayProfile, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return nil, err
	}

	var profiles []*HolidayProfile
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			SELECT id, name, region, skip_public_holidays, is_active, created_at, updated_at
			FROM holiday_profiles
			WHERE deleted_at IS NULL
			ORDER BY name
		`
		return r.db.SelectContext(ctx, &profiles, query)
	})
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

// Update updates a holiday profile's editable fields. Activation state is
// changed only through Activate, never through Update.
func (r *Repository) Update(ctx context.Context, p *HolidayProfile) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			UPDATE holiday_profiles SET
				name = $2, region = $3, skip_public_holidays = $4
			WHERE id = $1 AND deleted_at IS NULL
		`
		result, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.Region, p.SkipPublicHolidays)
		if err != nil {
			return err
		}
		affected, _ := result.RowsAffected()
		if affected == 0 {
			return errors.NotFound("holiday_profile")
		}
		return nil
	})
}

// Activate deactivates every other profile for the tenant and activates the
// given one, inside a single transaction so the tenant never briefly has
// zero or two active profiles.
func (r *Repository) Activate(ctx context.Context, id string) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		if _, err := r.db.ExecContext(ctx,
			`UPDATE holiday_profiles SET is_active = false WHERE is_active = true AND deleted_at IS NULL AND id != $1`,
			id,
		); err != nil {
			return err
		}

		result, err := r.db.ExecContext(ctx,
			`UPDATE holiday_profiles SET is_active = true WHERE id = $1 AND deleted_at IS NULL`,
			id,
		)
		if err != nil {
			return err
		}
		affected, _ := result.RowsAffected()
		if affected == 0 {
			return errors.NotFound("holiday_profile")
		}
		return nil
	})
}

// Delete soft deletes a holiday profile. Fails with Conflict if an active
// (non-deleted) recurring shift references it.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		var refCount int
		refQuery := `
			SELECT COUNT(*) FROM recurring_shifts
			WHERE holiday_profile_id = $1 AND active = true
		`
		if err := r.db.GetContext(ctx, &refCount, refQuery, id); err != nil {
			return err
		}
		if refCount > 0 {
			return errors.Conflict("holiday profile is referenced by an active recurring shift")
		}

		result, err := r.db.ExecContext(ctx,
			`UPDATE holiday_profiles SET deleted_at = NOW(), is_active = false WHERE id = $1 AND deleted_at IS NULL`,
			id,
		)
		if err != nil {
			return err
		}
		affected, _ := result.RowsAffected()
		if affected == 0 {
			return errors.NotFound("holiday_profile")
		}
		return nil
	})
}

// AddVacationPeriod attaches a vacation period to a profile.
func (r *Repository) AddVacationPeriod(ctx context.Context, vp *VacationPeriod) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	if vp.ID == "" {
		vp.ID = uuid.New().String()
	}

	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			INSERT INTO holiday_profile_vacation_periods (
				id, tenant_id, holiday_profile_id, name, start_date, end_date
			) VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING created_at
		`
		return r.db.QueryRowxContext(ctx, query,
			vp.ID, tenantID, vp.ProfileID, vp.Name, vp.StartDate, vp.EndDate,
		).Scan(&vp.CreatedAt)
	})
}

// RemoveVacationPeriod deletes a vacation period outright (vacation periods
// are not soft-deleted; they carry no history worth preserving).
func (r *Repository) RemoveVacationPeriod(ctx context.Context, id string) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		result, err := r.db.ExecContext(ctx, `DELETE FROM holiday_profile_vacation_periods WHERE id = $1`, id)
		if err != nil {
			return err
		}
		affected, _ := result.RowsAffected()
		if affected == 0 {
			return errors.NotFound("vacation_period")
		}
		return nil
	})
}

// ListVacationPeriods lists the vacation periods attached to a profile.
func (r *Repository) ListVacationPeriods(ctx context.Context, profileID string) ([]*VacationPeriod, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return nil, err
	}

	var periods []*VacationPeriod
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			SELECT id, holiday_profile_id, name, start_date, end_date, created_at
			FROM holiday_profile_vacation_periods
			WHERE holiday_profile_id = $1
			ORDER BY start_date
		`
		return r.db.SelectContext(ctx, &periods, query, profileID)
	})
	if err != nil {
		return nil, err
	}
	return periods, nil
}

// AddCustomHoliday attaches a single extra non-working date to a profile.
func (r *Repository) AddCustomHoliday(ctx context.Context, ch *CustomHoliday) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	if ch.ID == "" {
		ch.ID = uuid.New().String()
	}

	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			INSERT INTO holiday_profile_custom_holidays (
				id, tenant_id, holiday_profile_id, name, date
			) VALUES ($1, $2, $3, $4, $5)
			RETURNING created_at
		`
		return r.db.QueryRowxContext(ctx, query,
			ch.ID, tenantID, ch.ProfileID, ch.Name, ch.Date,
		).Scan(&ch.CreatedAt)
	})
}

// RemoveCustomHoliday deletes a custom holiday outright.
func (r *Repository) RemoveCustomHoliday(ctx context.Context, id string) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		result, err := r.db.ExecContext(ctx, `DELETE FROM holiday_profile_custom_holidays WHERE id = $1`, id)
		if err != nil {
			return err
		}
		affected, _ := result.RowsAffected()
		if affected == 0 {
			return errors.NotFound("custom_holiday")
		}
		return nil
	})
}

// ListCustomHolidays lists the custom holidays attached to a profile.
func (r *Repository) ListCustomHolidays(ctx context.Context, profileID string) ([]*CustomHoliday, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return nil, err
	}

	var holidays []*CustomHoliday
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			SELECT id, holiday_profile_id, name, date, created_at
			FROM holiday_profile_custom_holidays
			WHERE holiday_profile_id = $1
			ORDER BY date
		`
		return r.db.SelectContext(ctx, &holidays, query, profileID)
	})
	if err != nil {
		return nil, err
	}
	return holidays, nil
}
