package recurring

import (
	"context"
	"time"

	"github.com/caretiv/scheduling-service/internal/holidayprofile"
	"github.com/caretiv/scheduling-service/internal/shift"
	"github.com/caretiv/scheduling-service/internal/skipset"
	"github.com/caretiv/scheduling-service/pkg/errors"
)

// ProfileLookup resolves a holiday profile's skip-set detail. Satisfied by
// *holidayprofile.Service.
type ProfileLookup interface {
	GetByID(ctx context.Context, id string) (*holidayprofile.Detail, error)
}

// ShiftCreator creates a concrete shift row.
type ShiftCreator interface {
	Create(ctx context.Context, s *shift.Shift) error
	DeleteByRecurringRule(ctx context.Context, ruleID string, fromDate *time.Time) (int64, error)
}

// Service implements the recurring-shift expander.
type Service struct {
	repo     *Repository
	shifts   ShiftCreator
	profiles ProfileLookup
}

// NewService builds a Service.
func NewService(repo *Repository, shifts ShiftCreator, profiles ProfileLookup) *Service {
	return &Service{repo: repo, shifts: shifts, profiles: profiles}
}

func (s *Service) resolveDetail(ctx context.Context, profileID *string) (*holidayprofile.Detail, string, error) {
	if profileID == nil {
		return nil, "BW", nil
	}
	detail, err := s.profiles.GetByID(ctx, *profileID)
	if err != nil {
		return nil, "", err
	}
	region := "BW"
	if detail.Profile != nil && detail.Profile.Region != "" {
		region = detail.Profile.Region
	}
	return detail, region, nil
}

// Preview computes, without writing, how many shifts Generate would produce
// for the given parameters.
func (s *Service) Preview(ctx context.Context, weekday int, fromDate, untilDate time.Time, profileID *string, skipPublicHolidays bool) (*PreviewResult, error) {
	result := &PreviewResult{SkippedDates: []string{}}
	if fromDate.After(untilDate) {
		return result, nil
	}

	detail, region, err := s.resolveDetail(ctx, profileID)
	if err != nil {
		return nil, err
	}
	skip, err := skipset.Build(detail, region, skipPublicHolidays, skipset.YearsBetween(fromDate, untilDate))
	if err != nil {
		return nil, err
	}

	for d := fromDate; !d.After(untilDate); d = d.AddDate(0, 0, 1) {
		if int(d.Weekday()) != weekday {
			continue
		}
		if skip.Contains(d) {
			result.SkippedCount++
			result.SkippedDates = append(result.SkippedDates, d.Format("2006-01-02"))
			continue
		}
		result.GeneratedCount++
	}
	return result, nil
}

// Generate materialises rule's shifts over [fromDate, untilDate].
func (s *Service) Generate(ctx context.Context, rule *RecurringShift, fromDate, untilDate time.Time) (*GenerateResult, error) {
	result := &GenerateResult{NewShiftIDs: []string{}}
	if fromDate.After(untilDate) {
		return result, nil
	}

	detail, region, err := s.resolveDetail(ctx, rule.HolidayProfileID)
	if err != nil {
		return nil, err
	}
	skip, err := skipset.Build(detail, region, rule.SkipPublicHolidays, skipset.YearsBetween(fromDate, untilDate))
	if err != nil {
		return nil, err
	}

	for d := fromDate; !d.After(untilDate); d = d.AddDate(0, 0, 1) {
		if int(d.Weekday()) != rule.Weekday {
			continue
		}
		if skip.Contains(d) {
			result.SkippedCount++
			continue
		}

		sh := &shift.Shift{
			EmployeeID:       rule.EmployeeID,
			TemplateID:       rule.TemplateID,
			RecurringShiftID: &rule.ID,
			Date:             d,
			StartTime:        rule.StartTime,
			EndTime:          rule.EndTime,
			BreakMinutes:     rule.BreakMinutes,
			Status:           shift.StatusPlanned,
			IsOverride:       false,
		}
		if err := s.shifts.Create(ctx, sh); err != nil {
			return nil, err
		}
		result.NewShiftIDs = append(result.NewShiftIDs, sh.ID)
	}
	return result, nil
}

// Create stores a new rule then materialises it over its full validity
// window.
func (s *Service) Create(ctx context.Context, rule *RecurringShift) (*GenerateResult, error) {
	if err := validateRule(rule); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, rule); err != nil {
		return nil, err
	}
	return s.Generate(ctx, rule, rule.ValidFrom, rule.ValidUntil)
}

// RegenerateFrom deletes every planned, non-override shift of rule on or
// after fromDate, then regenerates them from fromDate through the rule's
// validUntil. Confirmed, completed, cancelled, and override shifts are
// untouched.
func (s *Service) RegenerateFrom(ctx context.Context, ruleID string, fromDate time.Time) (*GenerateResult, error) {
	rule, err := s.repo.GetByID(ctx, ruleID)
	if err != nil {
		return nil, err
	}

	if _, err := s.shifts.DeleteByRecurringRule(ctx, ruleID, &fromDate); err != nil {
		return nil, err
	}
	return s.Generate(ctx, rule, fromDate, rule.ValidUntil)
}

// SoftDelete deactivates rule and removes every planned, non-override shift
// it generated, regardless of date.
func (s *Service) SoftDelete(ctx context.Context, ruleID string) error {
	if err := s.repo.Deactivate(ctx, ruleID); err != nil {
		return err
	}
	_, err := s.shifts.DeleteByRecurringRule(ctx, ruleID, nil)
	return err
}

// Update persists a rule's own fields (schedule, assignment, validity
// window) without touching any shift it has already generated. Callers that
// need to regenerate instances from the new parameters forward use
// RegenerateFrom instead.
func (s *Service) Update(ctx context.Context, rule *RecurringShift) error {
	if err := validateRule(rule); err != nil {
		return err
	}
	return s.repo.Update(ctx, rule)
}

// GetByID fetches a single rule.
func (s *Service) GetByID(ctx context.Context, id string) (*RecurringShift, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns the tenant's rules.
func (s *Service) List(ctx context.Context, activeOnly bool) ([]*RecurringShift, error) {
	return s.repo.List(ctx, activeOnly)
}

func validateRule(rule *RecurringShift) error {
	if rule.Weekday < 0 || rule.Weekday > 6 {
		return errors.Validation(map[string]string{"weekday": "must be between 0 and 6"})
	}
	if rule.StartTime == "" || rule.EndTime == "" {
		return errors.Validation(map[string]string{"startTime/endTime": "are required"})
	}
	if rule.ValidFrom.After(rule.ValidUntil) {
		return errors.Validation(map[string]string{"validFrom": "must not be after validUntil"})
	}
	return nil
}
