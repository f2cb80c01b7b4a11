// Package notify implements the core's side of the notification dispatcher
// boundary: it offers domain events to the messaging exchange and records
// the terminal outcome of each delivery attempt the adapter reports back.
// The quiet-hours gate is pure and shared with the adapter so both sides
// agree on when a channel is suppressed without a network round trip.
package notify

import "time"

// DispatchStatus is the terminal outcome of one (event, channel) delivery
// attempt.
type DispatchStatus string

const (
	StatusSent              DispatchStatus = "sent"
	StatusFailed            DispatchStatus = "failed"
	StatusSkippedQuietHours DispatchStatus = "skipped_quiet_hours"
)

// DispatchLog is one row per (event, channel) delivery attempt.
type DispatchLog struct {
	ID        string         `db:"id" json:"id"`
	TenantID  string         `db:"tenant_id" json:"tenantId"`
	EventID   string         `db:"event_id" json:"eventId"`
	EventType string         `db:"event_type" json:"eventType"`
	Channel   string         `db:"channel" json:"channel"`
	Status    DispatchStatus `db:"status" json:"status"`
	Detail    *string        `db:"detail" json:"detail,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
}
