package notify

import (
	"context"

	"github.com/google/uuid"
	"github.com/caretiv/scheduling-service/pkg/database"
	"github.com/caretiv/scheduling-service/pkg/tenant"
)

// Repository persists dispatch outcomes under RLS-scoped transactions.
type Repository struct {
	db *database.DB
}

// NewRepository builds a Repository.
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// RecordDispatchOutcome appends one dispatch_log row. Called by the
// out-of-process adapter once it has attempted delivery on a channel and
// knows the terminal status.
func (r *Repository) RecordDispatchOutcome(ctx context.Context, eventID, eventType, channel string, status DispatchStatus, detail *string) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	id := uuid.New().String()
	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			INSERT INTO dispatch_log (id, tenant_id, event_id, event_type, channel, status, detail)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`
		_, execErr := r.db.ExecContext(ctx, query, id, tenantID, eventID, eventType, channel, status, detail)
		return execErr
	})
}

// ListForEvent returns every dispatch attempt recorded for eventID.
func (r *Repository) ListForEvent(ctx context.Context, eventID string) ([]*DispatchLog, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return nil, err
	}

	var logs []*DispatchLog
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `SELECT * FROM dispatch_log WHERE event_id = $1 ORDER BY created_at`
		return r.db.SelectContext(ctx, &logs, query, eventID)
	})
	if err != nil {
		return nil, err
	}
	return logs, nil
}
