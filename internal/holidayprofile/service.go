package holidayprofile

import (
	"context"

	"github.com/caretiv/scheduling-service/internal/holiday"
	"github.com/caretiv/scheduling-service/pkg/errors"
)

// Service implements holiday profile business rules on top of Repository.
type Service struct {
	repo *Repository
}

// NewService creates a new holiday profile service.
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create validates and persists a new holiday profile. It never activates
// the profile; callers must call Activate explicitly.
func (s *Service) Create(ctx context.Context, p *HolidayProfile) error {
	if p.Name == "" {
		return errors.Validation(map[string]string{"name": "is required"})
	}
	if p.Region == "" {
		p.Region = holiday.RegionBW
	}
	p.IsActive = false

	return s.repo.Create(ctx, p)
}

// GetByID fetches a holiday profile with its vacation periods and custom
// holidays attached.
func (s *Service) GetByID(ctx context.Context, id string) (*Detail, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, p)
}

// GetActive fetches the tenant's active holiday profile with its vacation
// periods and custom holidays attached. Returns NotFound if the tenant has
// not activated a profile.
func (s *Service) GetActive(ctx context.Context) (*Detail, error) {
	p, err := s.repo.GetActive(ctx)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, p)
}

func (s *Service) detail(ctx context.Context, p *HolidayProfile) (*Detail, error) {
	periods, err := s.repo.ListVacationPeriods(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	customs, err := s.repo.ListCustomHolidays(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	return &Detail{Profile: p, VacationPeriods: periods, CustomHolidays: customs}, nil
}

// List lists all holiday profiles for the tenant.
func (s *Service) List(ctx context.Context) ([]*HolidayProfile, error) {
	return s.repo.List(ctx)
}

// Update updates a profile's name, region, and public-holiday skip flag.
func (s *Service) Update(ctx context.Context, p *HolidayProfile) error {
	if p.Name == "" {
		return errors.Validation(map[string]string{"name": "is required"})
	}
	return s.repo.Update(ctx, p)
}

// Activate makes the given profile the tenant's sole active one.
func (s *Service) Activate(ctx context.Context, id string) error {
	return s.repo.Activate(ctx, id)
}

// Delete soft deletes a profile. Fails with Conflict if an active recurring
// shift still references it.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// AddVacationPeriod validates and attaches a vacation period to a profile.
func (s *Service) AddVacationPeriod(ctx context.Context, vp *VacationPeriod) error {
	if vp.EndDate.Before(vp.StartDate) {
		return errors.Validation(map[string]string{"end_date": "must be on or after start_date"})
	}
	return s.repo.AddVacationPeriod(ctx, vp)
}

// RemoveVacationPeriod removes a vacation period from its profile.
func (s *Service) RemoveVacationPeriod(ctx context.Context, id string) error {
	return s.repo.RemoveVacationPeriod(ctx, id)
}

// AddCustomHoliday validates and attaches a single extra non-working date.
func (s *Service) AddCustomHoliday(ctx context.Context, ch *CustomHoliday) error {
	if ch.Name == "" {
		return errors.Validation(map[string]string{"name": "is required"})
	}
	return s.repo.AddCustomHoliday(ctx, ch)
}

// RemoveCustomHoliday removes a custom holiday from its profile.
func (s *Service) RemoveCustomHoliday(ctx context.Context, id string) error {
	return s.repo.RemoveCustomHoliday(ctx, id)
}

// NewProfileWithSchoolVacations builds an unsaved profile pre-populated with
// the Baden-Württemberg 2025/26 school vacation calendar, for tenants that
// want a ready-made starting point instead of entering periods by hand.
// Callers still need to Create and then Activate the returned profile.
func NewProfileWithSchoolVacations(name string) (*HolidayProfile, []*VacationPeriod) {
	profile := &HolidayProfile{
		Name:               name,
		Region:             holiday.RegionBW,
		SkipPublicHolidays: true,
	}

	periods := make([]*VacationPeriod, 0, len(bwSchoolVacations2025_26))
	for _, v := range bwSchoolVacations2025_26 {
		periods = append(periods, &VacationPeriod{
			Name:      v.Name,
			StartDate: v.Start,
			EndDate:   v.End,
		})
	}
	return profile, periods
}
