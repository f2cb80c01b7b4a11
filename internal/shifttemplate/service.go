package shifttemplate

import (
	"context"

	"github.com/caretiv/scheduling-service/pkg/errors"
)

// Service implements shift template business rules.
type Service struct {
	repo *Repository
}

// NewService builds a Service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new template.
func (s *Service) Create(ctx context.Context, t *ShiftTemplate) error {
	if err := validateTemplate(t); err != nil {
		return err
	}
	t.Active = true
	return s.repo.Create(ctx, t)
}

// GetByID returns a single template.
func (s *Service) GetByID(ctx context.Context, id string) (*ShiftTemplate, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns the tenant's templates.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]*ShiftTemplate, error) {
	return s.repo.List(ctx, activeOnly)
}

// Update validates and persists template edits.
func (s *Service) Update(ctx context.Context, t *ShiftTemplate) error {
	if err := validateTemplate(t); err != nil {
		return err
	}
	return s.repo.Update(ctx, t)
}

// Delete soft-deletes a template.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id)
}

func validateTemplate(t *ShiftTemplate) error {
	if t.Name == "" {
		return errors.Validation(map[string]string{"name": "is required"})
	}
	if len(t.Weekdays) == 0 {
		return errors.Validation(map[string]string{"weekdays": "must contain at least one weekday"})
	}
	for _, w := range t.Weekdays {
		if w < 0 || w > 6 {
			return errors.Validation(map[string]string{"weekdays": "must be in range 0-6"})
		}
	}
	if t.StartTime == "" || t.EndTime == "" {
		return errors.Validation(map[string]string{"startTime/endTime": "are required"})
	}
	if t.ValidFrom != nil && t.ValidUntil != nil && t.ValidUntil.Before(*t.ValidFrom) {
		return errors.Validation(map[string]string{"validUntil": "must not be before validFrom"})
	}
	return nil
}
