package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/caretiv/scheduling-service/internal/contract"
	"github.com/caretiv/scheduling-service/internal/employee"
	"github.com/caretiv/scheduling-service/internal/holiday"
	"github.com/caretiv/scheduling-service/internal/shift"
	"github.com/caretiv/scheduling-service/pkg/errors"
)

// EmployeeGetter resolves an employee record by id.
type EmployeeGetter interface {
	GetByID(ctx context.Context, id string) (*employee.Employee, error)
}

// ContractResolver resolves the rate/limit snapshot in effect for a given
// month. Satisfied by *contract.Service.
type ContractResolver interface {
	Resolve(ctx context.Context, e *employee.Employee, monthStart time.Time) (contract.Snapshot, error)
}

// ShiftLister lists shifts matching a filter. Satisfied by *shift.Repository.
type ShiftLister interface {
	List(ctx context.Context, f shift.ListFilter) ([]*shift.Shift, error)
}

// Service computes monthly payroll entries.
type Service struct {
	repo       *Repository
	employees  EmployeeGetter
	contracts  ContractResolver
	shifts     ShiftLister
}

// NewService builds a Service.
func NewService(repo *Repository, employees EmployeeGetter, contracts ContractResolver, shifts ShiftLister) *Service {
	return &Service{repo: repo, employees: employees, contracts: contracts, shifts: shifts}
}

// CalculateOne computes and persists the draft payroll entry for one
// employee for the given month (any day within the target month).
func (s *Service) CalculateOne(ctx context.Context, employeeID string, month time.Time) (*Entry, error) {
	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	monthStart := firstOfMonth(month)
	monthEnd := lastOfMonth(month)

	existing, err := s.repo.GetByEmployeeAndMonth(ctx, employeeID, monthStart)
	if err != nil && !errors.Is(err, errors.ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.Status != StatusDraft {
		return nil, errors.Conflict("payroll entry for this month is already " + string(existing.Status))
	}

	snap, err := s.contracts.Resolve(ctx, emp, monthStart)
	if err != nil {
		return nil, err
	}
	hourlyRate := decimal.NewFromFloat(snap.HourlyRate)

	statusCompleted := shift.StatusCompleted
	completed, err := s.shifts.List(ctx, shift.ListFilter{EmployeeID: &employeeID, From: &monthStart, Until: &monthEnd, Status: &statusCompleted})
	if err != nil {
		return nil, err
	}
	statusConfirmed := shift.StatusConfirmed
	confirmed, err := s.shifts.List(ctx, shift.ListFilter{EmployeeID: &employeeID, From: &monthStart, Until: &monthEnd, Status: &statusConfirmed})
	if err != nil {
		return nil, err
	}
	shifts := append(completed, confirmed...)

	totalHours := decimal.Zero
	totalGross := decimal.Zero
	hoursByType := map[string]decimal.Decimal{}
	amountsByType := map[string]decimal.Decimal{}

	for _, sh := range shifts {
		netHours, err := calcNetHours(sh)
		if err != nil {
			return nil, err
		}
		hours, amounts, err := calcSurcharges(sh, hourlyRate)
		if err != nil {
			return nil, err
		}

		totalHours = totalHours.Add(netHours)

		for k, v := range hours {
			hoursByType[k] = hoursByType[k].Add(v)
		}
		for k, v := range amounts {
			amountsByType[k] = amountsByType[k].Add(v)
		}
	}

	carryoverHours, err := s.repo.CarryoverHoursInto(ctx, employeeID, monthStart)
	if err != nil {
		return nil, err
	}

	paidHours := totalHours.Add(carryoverHours)
	newCarryover := decimal.Zero
	var plannedHours *decimal.Decimal
	if snap.MonthlyHoursLimit != nil {
		limit := decimal.NewFromFloat(*snap.MonthlyHoursLimit)
		plannedHours = &limit
		newCarryover = paidHours.Sub(limit)
		if paidHours.GreaterThan(limit) {
			paidHours = limit
		}
	}

	totalGross = paidHours.Mul(hourlyRate)
	for _, amt := range amountsByType {
		totalGross = totalGross.Add(amt)
	}

	yearStart := time.Date(monthStart.Year(), time.January, 1, 0, 0, 0, 0, monthStart.Location())
	ytdPrior, err := s.repo.YTDApprovedGross(ctx, employeeID, yearStart, monthStart)
	if err != nil {
		return nil, err
	}
	ytdGross := ytdPrior.Add(totalGross)
	annualLimitRemaining := decimal.NewFromFloat(snap.AnnualSalaryLimit).Sub(ytdGross)

	entry := &Entry{
		EmployeeID:     employeeID,
		Month:          monthStart,
		PlannedHours:   plannedHours,
		ActualHours:    round2(totalHours),
		CarryoverHours: round2(carryoverHours),
		PaidHours:      round2(paidHours),

		EarlyHours:   round2(hoursByType["early"]),
		LateHours:    round2(hoursByType["late"]),
		NightHours:   round2(hoursByType["night"]),
		WeekendHours: round2(hoursByType["weekend"]),
		SundayHours:  round2(hoursByType["sunday"]),
		HolidayHours: round2(hoursByType["holiday"]),

		BaseWage:         round2(paidHours.Mul(hourlyRate)),
		EarlySurcharge:   round2(amountsByType["early"]),
		LateSurcharge:    round2(amountsByType["late"]),
		NightSurcharge:   round2(amountsByType["night"]),
		WeekendSurcharge: round2(amountsByType["weekend"]),
		SundaySurcharge:  round2(amountsByType["sunday"]),
		HolidaySurcharge: round2(amountsByType["holiday"]),

		TotalGross:           round2(totalGross),
		YTDGross:             round2(ytdGross),
		AnnualLimitRemaining: round2(annualLimitRemaining),
	}

	if existing != nil {
		entry.ID = existing.ID
		entry.TenantID = existing.TenantID
		entry.CreatedAt = existing.CreatedAt
		entry.Status = StatusDraft
		if err := s.repo.Update(ctx, entry); err != nil {
			return nil, err
		}
	} else {
		if err := s.repo.Create(ctx, entry); err != nil {
			return nil, err
		}
	}

	if snap.MonthlyHoursLimit != nil {
		nextMonth := monthStart.AddDate(0, 1, 0)
		if err := s.repo.RecordCarryover(ctx, employeeID, monthStart, nextMonth, round2(newCarryover)); err != nil {
			return nil, err
		}
	}

	return entry, nil
}

// CalculateAll computes and persists payroll entries for every given
// employee for month without aborting on a single employee's error: each
// failing employee (including one whose entry is already approved or paid)
// is left out of the returned entries and its error is appended to the
// returned error slice.
func (s *Service) CalculateAll(ctx context.Context, employeeIDs []string, month time.Time) ([]*Entry, []error) {
	entries := make([]*Entry, 0, len(employeeIDs))
	var errs []error
	for _, id := range employeeIDs {
		entry, err := s.CalculateOne(ctx, id, month)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		entries = append(entries, entry)
	}
	return entries, errs
}

// Approve transitions a draft entry to approved.
func (s *Service) Approve(ctx context.Context, id string) error {
	return s.repo.UpdateStatus(ctx, id, StatusDraft, StatusApproved)
}

// Reopen transitions an approved entry back to draft.
func (s *Service) Reopen(ctx context.Context, id string) error {
	return s.repo.UpdateStatus(ctx, id, StatusApproved, StatusDraft)
}

// MarkPaid transitions an approved entry to paid, its terminal state.
func (s *Service) MarkPaid(ctx context.Context, id string) error {
	return s.repo.UpdateStatus(ctx, id, StatusApproved, StatusPaid)
}

// ListForEmployee returns an employee's payroll history.
func (s *Service) ListForEmployee(ctx context.Context, employeeID string) ([]*Entry, error) {
	return s.repo.ListForEmployee(ctx, employeeID)
}

// List returns every payroll entry for the tenant.
func (s *Service) List(ctx context.Context) ([]*Entry, error) {
	return s.repo.List(ctx)
}

// GetByID fetches a single payroll entry.
func (s *Service) GetByID(ctx context.Context, id string) (*Entry, error) {
	return s.repo.GetByID(ctx, id)
}

func calcNetHours(sh *shift.Shift) (decimal.Decimal, error) {
	start, end, err := shiftBounds(sh)
	if err != nil {
		return decimal.Zero, err
	}
	grossMinutes := decimal.NewFromInt(int64(end.Sub(start).Seconds())).Div(decimal.NewFromInt(60))
	netMinutes := grossMinutes.Sub(decimal.NewFromInt(int64(sh.BreakMinutes)))
	netHours := netMinutes.Div(decimal.NewFromInt(60))
	if netHours.IsNegative() {
		return decimal.Zero, nil
	}
	return netHours, nil
}

func calcSurcharges(sh *shift.Shift, hourlyRate decimal.Decimal) (map[string]decimal.Decimal, map[string]decimal.Decimal, error) {
	hours := map[string]decimal.Decimal{}
	amounts := map[string]decimal.Decimal{}

	start, end, err := shiftBounds(sh)
	if err != nil {
		return nil, nil, err
	}
	netHours, err := calcNetHours(sh)
	if err != nil {
		return nil, nil, err
	}

	weekday := sh.Date.Weekday()
	isSunday := weekday == time.Sunday
	isSaturday := weekday == time.Saturday

	isHoliday, _, err := holiday.IsHoliday(holiday.RegionBW, sh.Date)
	if err != nil {
		return nil, nil, err
	}

	switch {
	case isHoliday:
		add(hours, "holiday", netHours)
		add(amounts, "holiday", netHours.Mul(hourlyRate).Mul(SurchargeRates["holiday"]))
	case isSunday:
		add(hours, "sunday", netHours)
		add(amounts, "sunday", netHours.Mul(hourlyRate).Mul(SurchargeRates["sunday"]))
	case isSaturday:
		add(hours, "weekend", netHours)
		add(amounts, "weekend", netHours.Mul(hourlyRate).Mul(SurchargeRates["weekend"]))
	}

	current := start
	for current.Before(end) {
		nextTick := current.Add(time.Hour)
		if nextTick.After(end) {
			nextTick = end
		}
		h := current.Hour()
		fraction := decimal.NewFromInt(int64(nextTick.Sub(current).Seconds())).Div(decimal.NewFromInt(3600))

		if h < 6 {
			add(hours, "early", fraction)
			add(amounts, "early", fraction.Mul(hourlyRate).Mul(SurchargeRates["early"]))
		}
		if h >= 20 {
			add(hours, "late", fraction)
			add(amounts, "late", fraction.Mul(hourlyRate).Mul(SurchargeRates["late"]))
		}
		if h >= 23 || h < 6 {
			add(hours, "night", fraction)
			add(amounts, "night", fraction.Mul(hourlyRate).Mul(SurchargeRates["night"]))
		}

		current = nextTick
	}

	return hours, amounts, nil
}

func add(m map[string]decimal.Decimal, key string, v decimal.Decimal) {
	m[key] = m[key].Add(v)
}

func shiftBounds(sh *shift.Shift) (time.Time, time.Time, error) {
	start, err := combineDateTime(sh.Date, sh.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := combineDateTime(sh.Date, sh.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, nil
}

func combineDateTime(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04:05", clock)
	if err != nil {
		return time.Time{}, errors.Internal("invalid shift time format")
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), t.Second(), 0, date.Location()), nil
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func lastOfMonth(t time.Time) time.Time {
	return firstOfMonth(t).AddDate(0, 1, 0).Add(-24 * time.Hour)
}
