package employee

import (
	"context"

	"github.com/caretiv/scheduling-service/pkg/errors"
)

// Service implements employee roster business rules on top of Repository.
type Service struct {
	repo *Repository
}

// NewService builds a Service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new employee. New hires always start
// active, with the default quiet hours (21:00–07:00) and notification
// preferences where none are given. Their hourly rate and contract type are
// stored on the employee record only; a ContractHistory entry is recorded
// separately through the contract package.
func (s *Service) Create(ctx context.Context, e *Employee) error {
	if err := validateEmployee(e); err != nil {
		return err
	}
	if e.QuietHoursStart == "" {
		e.QuietHoursStart = "21:00"
	}
	if e.QuietHoursEnd == "" {
		e.QuietHoursEnd = "07:00"
	}
	if e.NotificationPrefs == (NotificationPrefs{}) {
		e.NotificationPrefs = DefaultNotificationPrefs()
	}
	e.Active = true
	return s.repo.Create(ctx, e)
}

// GetByID returns a single employee.
func (s *Service) GetByID(ctx context.Context, id string) (*Employee, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByICalToken resolves an employee by their iCal export token.
func (s *Service) GetByICalToken(ctx context.Context, token string) (*Employee, error) {
	return s.repo.GetByICalToken(ctx, token)
}

// GetByUserID resolves the employee linked to a platform user account.
func (s *Service) GetByUserID(ctx context.Context, userID string) (*Employee, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// List returns the tenant's roster.
func (s *Service) List(ctx context.Context, includeInactive bool) ([]*Employee, error) {
	return s.repo.List(ctx, includeInactive)
}

// Update validates and persists profile edits.
func (s *Service) Update(ctx context.Context, e *Employee) error {
	if err := validateEmployee(e); err != nil {
		return err
	}
	return s.repo.Update(ctx, e)
}

// Delete soft-deletes an employee.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.SoftDelete(ctx, id)
}

// RegenerateICalToken invalidates the employee's existing calendar feed URL
// and issues a new one.
func (s *Service) RegenerateICalToken(ctx context.Context, id string) (string, error) {
	return s.repo.RegenerateICalToken(ctx, id)
}

func validateEmployee(e *Employee) error {
	if e.FirstName == "" || e.LastName == "" {
		return errors.Validation(map[string]string{
			"firstName/lastName": "first name and last name are required",
		})
	}
	switch e.ContractType {
	case ContractMinijob, ContractPartTime, ContractFullTime:
	default:
		return errors.Validation(map[string]string{
			"contractType": "must be one of: minijob, part_time, full_time",
		})
	}
	if e.HourlyRate <= 0 {
		return errors.Validation(map[string]string{
			"hourlyRate": "must be greater than zero",
		})
	}
	if e.VacationDays < 0 {
		return errors.Validation(map[string]string{
			"vacationDays": "cannot be negative",
		})
	}
	return nil
}
