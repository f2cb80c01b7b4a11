package compliance

import (
	"context"
	"fmt"
	"time"

	"github.com/caretiv/scheduling-service/internal/employee"
	"github.com/caretiv/scheduling-service/internal/holiday"
	"github.com/caretiv/scheduling-service/internal/shift"
	"github.com/caretiv/scheduling-service/pkg/errors"
)

const (
	minijobMonthlyCeiling = 556.00
	minijobWarningRatio   = 0.95
)

// Service evaluates compliance for a shift and persists the derived flags.
type Service struct {
	shiftRepo    *shift.Repository
	employeeRepo *employee.Repository
	payrollRepo  *Repository
}

// NewService builds a Service.
func NewService(shiftRepo *shift.Repository, employeeRepo *employee.Repository, payrollRepo *Repository) *Service {
	return &Service{shiftRepo: shiftRepo, employeeRepo: employeeRepo, payrollRepo: payrollRepo}
}

// Evaluate runs all three checks for a shift and employee, without
// persisting anything. Exposed separately from EvaluateAndPersist so
// callers (e.g. a dry-run preview endpoint) can inspect findings without
// a write.
func (s *Service) Evaluate(ctx context.Context, sh *shift.Shift, emp *employee.Employee) (Result, error) {
	var result Result

	isHoliday, holidayName, err := holiday.IsHoliday(holiday.RegionBW, sh.Date)
	if err != nil {
		return Result{}, err
	}
	if isHoliday {
		result.Warnings = append(result.Warnings, Finding{
			Severity: SeverityWarning,
			Category: CategoryHoliday,
			Message:  fmt.Sprintf("shift falls on a public holiday (%s)", holidayName),
		})
	}

	if sh.EmployeeID != nil {
		restFinding, err := s.checkRestPeriod(ctx, sh)
		if err != nil {
			return Result{}, err
		}
		if restFinding != nil {
			result.Violations = append(result.Violations, *restFinding)
		}
	}

	if breakFinding := s.checkBreak(sh); breakFinding != nil {
		result.Violations = append(result.Violations, *breakFinding)
	}

	if emp != nil && emp.IsMinijob() {
		findings, err := s.checkMinijobLimits(ctx, sh, emp)
		if err != nil {
			return Result{}, err
		}
		result.Violations = append(result.Violations, findings.Violations...)
		result.Warnings = append(result.Warnings, findings.Warnings...)
	}

	return result, nil
}

// EvaluateAndPersist evaluates a shift and writes the three derived boolean
// flags. Called after commit; failures here never roll back the caller's
// primary write.
func (s *Service) EvaluateAndPersist(ctx context.Context, shiftID string) (Result, error) {
	sh, err := s.shiftRepo.GetByID(ctx, shiftID)
	if err != nil {
		return Result{}, err
	}

	var emp *employee.Employee
	if sh.EmployeeID != nil {
		emp, err = s.employeeRepo.GetByID(ctx, *sh.EmployeeID)
		if err != nil && !errors.Is(err, errors.ErrNotFound) {
			return Result{}, err
		}
	}

	result, err := s.Evaluate(ctx, sh, emp)
	if err != nil {
		return Result{}, err
	}

	if err := s.shiftRepo.UpdateComplianceFlags(ctx, shiftID, result.RestPeriodOk(), result.BreakOk(), result.MinijobLimitOk()); err != nil {
		return Result{}, err
	}
	return result, nil
}

// ListViolations returns every shift in [from, until] currently flagged with
// a rest-period, break, or minijob-limit violation.
func (s *Service) ListViolations(ctx context.Context, from, until time.Time) ([]*shift.Shift, error) {
	return s.shiftRepo.List(ctx, shift.ListFilter{From: &from, Until: &until, ViolationsOnly: true})
}

// RunAll re-evaluates every assigned shift in [from, until] and persists the
// refreshed flags, returning how many shifts were checked. Per-shift
// failures are collected rather than aborting the run.
func (s *Service) RunAll(ctx context.Context, from, until time.Time) (int, []error) {
	shifts, err := s.shiftRepo.List(ctx, shift.ListFilter{From: &from, Until: &until})
	if err != nil {
		return 0, []error{err}
	}

	var errs []error
	checked := 0
	for _, sh := range shifts {
		if sh.EmployeeID == nil {
			continue
		}
		if _, err := s.EvaluateAndPersist(ctx, sh.ID); err != nil {
			errs = append(errs, fmt.Errorf("shift %s: %w", sh.ID, err))
			continue
		}
		checked++
	}
	return checked, errs
}

func (s *Service) checkRestPeriod(ctx context.Context, sh *shift.Shift) (*Finding, error) {
	prior, err := s.shiftRepo.PriorShift(ctx, *sh.EmployeeID, sh.Date)
	if errors.Is(err, errors.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	priorEnd, err := combineDateTime(prior.Date, prior.EndTime)
	if err != nil {
		return nil, err
	}
	if prior.CrossesMidnight() {
		priorEnd = priorEnd.AddDate(0, 0, 1)
	}

	shiftStart, err := combineDateTime(sh.Date, sh.StartTime)
	if err != nil {
		return nil, err
	}

	gapHours := shiftStart.Sub(priorEnd).Hours()
	if gapHours < 11 {
		return &Finding{
			Severity: SeverityViolation,
			Category: CategoryRestPeriod,
			Message:  fmt.Sprintf("rest period of %.2fh is below the 11h minimum", gapHours),
		}, nil
	}
	return nil, nil
}

func (s *Service) checkBreak(sh *shift.Shift) *Finding {
	hours, err := sh.NetHours()
	if err != nil {
		return nil
	}
	breakMin := sh.BreakMinutes

	switch {
	case hours > 9 && breakMin < 45:
		return &Finding{
			Severity: SeverityViolation,
			Category: CategoryBreak,
			Message:  fmt.Sprintf("shift of %.2fh requires a 45min break, has %dmin", hours, breakMin),
		}
	case hours > 6 && breakMin < 30:
		return &Finding{
			Severity: SeverityViolation,
			Category: CategoryBreak,
			Message:  fmt.Sprintf("shift of %.2fh requires a 30min break, has %dmin", hours, breakMin),
		}
	}
	return nil
}

func (s *Service) checkMinijobLimits(ctx context.Context, sh *shift.Shift, emp *employee.Employee) (Result, error) {
	var result Result

	monthStart := firstOfMonth(sh.Date)
	monthGross, err := s.payrollRepo.MonthGross(ctx, emp.ID, monthStart)
	if err != nil {
		return Result{}, err
	}
	if monthGross > minijobMonthlyCeiling {
		result.Warnings = append(result.Warnings, Finding{
			Severity: SeverityWarning,
			Category: CategoryMinijob,
			Message:  fmt.Sprintf("monthly earnings %.2f exceed the %.2f minijob ceiling", monthGross, minijobMonthlyCeiling),
		})
	}

	annualLimit := emp.EffectiveAnnualSalaryLimit()
	// YearToDateGross already sums [yearStart, monthStart), i.e. strictly
	// before the current month; it is the year-to-date figure on its own,
	// not a term to add the current month's (typically still-draft) gross
	// on top of.
	projected, err := s.payrollRepo.YearToDateGross(ctx, emp.ID, monthStart)
	if err != nil {
		return Result{}, err
	}
	switch {
	case projected > annualLimit:
		result.Violations = append(result.Violations, Finding{
			Severity: SeverityViolation,
			Category: CategoryMinijob,
			Message:  fmt.Sprintf("year-to-date earnings %.2f exceed the annual limit %.2f", projected, annualLimit),
		})
	case projected > annualLimit*minijobWarningRatio:
		result.Warnings = append(result.Warnings, Finding{
			Severity: SeverityWarning,
			Category: CategoryMinijob,
			Message:  fmt.Sprintf("year-to-date earnings %.2f exceed %.0f%% of the annual limit %.2f", projected, minijobWarningRatio*100, annualLimit),
		})
	}

	return result, nil
}

func combineDateTime(date time.Time, hhmmss string) (time.Time, error) {
	t, err := time.Parse("15:04:05", hhmmss)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
}

func firstOfMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}
