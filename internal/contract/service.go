package contract

import (
	"context"
	"time"

	"github.com/caretiv/scheduling-service/internal/employee"
	"github.com/caretiv/scheduling-service/pkg/errors"
)

// Service records contract changes and keeps the Employee cache in sync.
type Service struct {
	repo         *Repository
	employeeRepo *employee.Repository
}

// NewService builds a Service.
func NewService(repo *Repository, employeeRepo *employee.Repository) *Service {
	return &Service{repo: repo, employeeRepo: employeeRepo}
}

// RecordChange inserts a new open-ended contract entry effective at
// h.ValidFrom, closing the employee's previously-open entry, then mirrors
// the new entry onto the Employee cache fields. Both writes must succeed
// for the cache-mirror invariant to hold; the cache update runs after the
// history insert commits.
func (s *Service) RecordChange(ctx context.Context, h *History) error {
	if err := validateHistory(h); err != nil {
		return err
	}
	h.ValidTo = nil

	if err := s.repo.Insert(ctx, h); err != nil {
		return err
	}

	return s.employeeRepo.UpdateContractCache(
		ctx, h.EmployeeID, h.ContractType, h.HourlyRate,
		h.WeeklyHours, h.FullTimePercentage, h.MonthlyHoursLimit, h.AnnualSalaryLimit,
	)
}

// ListForEmployee returns an employee's full contract timeline.
func (s *Service) ListForEmployee(ctx context.Context, employeeID string) ([]*History, error) {
	return s.repo.ListForEmployee(ctx, employeeID)
}

// Resolve returns the rate/limit snapshot in effect at monthStart, falling
// back to the Employee cache fields when no ContractHistory row covers the
// month (e.g. an employee onboarded before contract tracking existed).
func (s *Service) Resolve(ctx context.Context, e *employee.Employee, monthStart time.Time) (Snapshot, error) {
	h, err := s.repo.ResolveAt(ctx, e.ID, monthStart)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return SnapshotFromEmployee(e), nil
		}
		return Snapshot{}, err
	}
	return SnapshotFromHistory(h), nil
}

func validateHistory(h *History) error {
	if h.EmployeeID == "" {
		return errors.Validation(map[string]string{"employeeId": "is required"})
	}
	if h.ValidFrom.IsZero() {
		return errors.Validation(map[string]string{"validFrom": "is required"})
	}
	switch h.ContractType {
	case employee.ContractMinijob, employee.ContractPartTime, employee.ContractFullTime:
	default:
		return errors.Validation(map[string]string{"contractType": "must be one of: minijob, part_time, full_time"})
	}
	if h.HourlyRate <= 0 {
		return errors.Validation(map[string]string{"hourlyRate": "must be greater than zero"})
	}
	return nil
}
