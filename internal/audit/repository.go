package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/caretiv/scheduling-service/pkg/database"
	"github.com/caretiv/scheduling-service/pkg/tenant"
)

// Repository appends to and lists the audit log.
type Repository struct {
	db *database.DB
}

// NewRepository builds a Repository.
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// Append writes one audit entry. It never fails the caller's primary
// operation silently: callers that want best-effort audit logging should
// log and swallow the returned error themselves.
func (r *Repository) Append(ctx context.Context, l *Log) error {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return err
	}

	l.ID = uuid.New().String()
	l.TenantID = &tenantID

	return r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `
			INSERT INTO audit_logs (
				id, tenant_id, user_id, entity_type, entity_id, action,
				old_values, new_values, ip_address
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING created_at
		`
		return r.db.QueryRowxContext(ctx, query,
			l.ID, l.TenantID, l.UserID, l.EntityType, l.EntityID, l.Action,
			l.OldValues, l.NewValues, l.IPAddress,
		).Scan(&l.CreatedAt)
	})
}

// ListForTenant returns audit entries for the tenant, most recent first,
// optionally filtered to a single entity type.
func (r *Repository) ListForTenant(ctx context.Context, entityType string, limit int) ([]*Log, error) {
	tenantID, err := tenant.TenantID(ctx)
	if err != nil {
		return nil, err
	}

	var logs []*Log
	err = r.db.WithTenantRLS(ctx, tenantID, func(ctx context.Context) error {
		query := `SELECT * FROM audit_logs WHERE tenant_id = $1`
		args := []interface{}{tenantID}
		if entityType != "" {
			query += ` AND entity_type = $2`
			args = append(args, entityType)
		}
		query += ` ORDER BY created_at DESC LIMIT ` + limitClause(limit)
		return r.db.SelectContext(ctx, &logs, query, args...)
	})
	if err != nil {
		return nil, err
	}
	return logs, nil
}

func limitClause(limit int) string {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return fmt.Sprintf("%d", limit)
}
