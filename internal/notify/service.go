package notify

import (
	"context"

	"github.com/caretiv/scheduling-service/pkg/errors"
	"github.com/caretiv/scheduling-service/pkg/logger"
	"github.com/caretiv/scheduling-service/pkg/messaging"
)

// Service is the core's half of the dispatcher boundary: it offers domain
// events onto the exchange and records the terminal outcome the adapter
// reports back. It never decides delivery itself — that, and the
// channel/quiet-hours resolution, is the adapter's job.
type Service struct {
	repo      *Repository
	publisher *messaging.Publisher
	logger    *logger.Logger
}

// NewService builds a Service.
func NewService(repo *Repository, publisher *messaging.Publisher, log *logger.Logger) *Service {
	return &Service{repo: repo, publisher: publisher, logger: log}
}

// Offer publishes eventType/data onto the scheduling exchange. Publish
// failures are logged, not returned: a notification hiccup never aborts the
// caller's primary write.
func (s *Service) Offer(ctx context.Context, eventType string, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, eventType, data); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Msg("failed to offer event to dispatcher")
	}
}

// Publish satisfies the narrow EventPublisher interface declared by
// internal/absence. Unlike Offer, it returns the publish error to the caller.
func (s *Service) Publish(ctx context.Context, eventType string, data interface{}) error {
	if s.publisher == nil {
		return nil
	}
	return s.publisher.Publish(ctx, eventType, data)
}

// RecordOutcome appends one dispatch attempt's terminal status.
func (s *Service) RecordOutcome(ctx context.Context, eventID, eventType, channel string, status DispatchStatus, detail *string) error {
	switch status {
	case StatusSent, StatusFailed, StatusSkippedQuietHours:
	default:
		return errors.BadRequest("unknown dispatch status: " + string(status))
	}
	return s.repo.RecordDispatchOutcome(ctx, eventID, eventType, channel, status, detail)
}

// ListForEvent returns every recorded dispatch attempt for eventID.
func (s *Service) ListForEvent(ctx context.Context, eventID string) ([]*DispatchLog, error) {
	return s.repo.ListForEvent(ctx, eventID)
}
