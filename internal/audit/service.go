package audit

import "context"

// Service is a thin wrapper over Repository; audit has no business rules
// beyond append-only persistence.
type Service struct {
	repo *Repository
}

// NewService builds a Service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Record appends an audit entry for entityType/entityID, attributing it to
// userID (nil for system-initiated actions) with the given action name and
// changed-key diff. oldValues/newValues use the plain map type so callers in
// other packages can satisfy a local AuditRecorder interface without
// importing this package's named JSONMap type.
func (s *Service) Record(ctx context.Context, userID *string, entityType, entityID, action string, oldValues, newValues map[string]interface{}) error {
	l := &Log{
		UserID:     userID,
		EntityType: entityType,
		EntityID:   &entityID,
		Action:     action,
		OldValues:  JSONMap(oldValues),
		NewValues:  JSONMap(newValues),
	}
	return s.repo.Append(ctx, l)
}

// ListForTenant returns recent audit entries, optionally filtered by entity type.
func (s *Service) ListForTenant(ctx context.Context, entityType string, limit int) ([]*Log, error) {
	return s.repo.ListForTenant(ctx, entityType, limit)
}
