// Package audit is the append-only record of privileged mutations across
// the scheduling domain. Entries are written, never updated or deleted,
// except as part of a tenant-offboarding cascade.
package audit

import "time"

// Log is a single audit entry.
type Log struct {
	ID       string  `db:"id" json:"id"`
	TenantID *string `db:"tenant_id" json:"tenantId,omitempty"`
	UserID   *string `db:"user_id" json:"userId,omitempty"`

	EntityType string  `db:"entity_type" json:"entityType"`
	EntityID   *string `db:"entity_id" json:"entityId,omitempty"`
	Action     string  `db:"action" json:"action"`

	OldValues JSONMap `db:"old_values" json:"oldValues,omitempty"`
	NewValues JSONMap `db:"new_values" json:"newValues,omitempty"`

	IPAddress *string   `db:"ip_address" json:"ipAddress,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
