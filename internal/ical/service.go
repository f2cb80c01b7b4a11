package ical

import (
	"context"
	"time"

	"github.com/caretiv/scheduling-service/internal/employee"
	"github.com/caretiv/scheduling-service/internal/shift"
	"github.com/caretiv/scheduling-service/internal/shifttemplate"
	"github.com/caretiv/scheduling-service/pkg/tenant"
)

// ShiftLister is the narrow slice of shift.Repository the feed needs.
type ShiftLister interface {
	List(ctx context.Context, f shift.ListFilter) ([]*shift.Shift, error)
}

// TemplateGetter is the narrow slice of shifttemplate.Repository the feed's
// eager-load needs: one lookup by ID per distinct template referenced.
type TemplateGetter interface {
	GetByID(ctx context.Context, id string) (*shifttemplate.ShiftTemplate, error)
}

// EmployeeByTokenGetter resolves an iCal token to its owning employee.
// Deliberately not tenant-RLS-scoped: the token itself is the credential,
// issued before the caller has any session.
type EmployeeByTokenGetter interface {
	GetByICalToken(ctx context.Context, token string) (*employee.Employee, error)
}

// Window bounds the feed to a rolling window around "now" so a calendar
// client resyncing daily never pulls the tenant's entire shift history.
const (
	windowPast   = 30 * 24 * time.Hour
	windowFuture = 180 * 24 * time.Hour
)

// Service resolves an iCal token into a rendered VCALENDAR feed scoped to
// the owning employee's own shifts.
type Service struct {
	employees EmployeeByTokenGetter
	shifts    ShiftLister
	templates TemplateGetter
}

// NewService builds a Service.
func NewService(employees EmployeeByTokenGetter, shifts ShiftLister, templates TemplateGetter) *Service {
	return &Service{employees: employees, shifts: shifts, templates: templates}
}

// Feed resolves token and renders the associated employee's shift feed.
// The returned employee name lets the handler set a friendly filename.
func (s *Service) Feed(ctx context.Context, token string) (string, *employee.Employee, error) {
	emp, err := s.employees.GetByICalToken(ctx, token)
	if err != nil {
		return "", nil, err
	}

	scoped := tenant.WithTenantID(ctx, emp.TenantID)
	now := time.Now()
	from := now.Add(-windowPast)
	until := now.Add(windowFuture)
	shifts, err := s.shifts.List(scoped, shift.ListFilter{
		EmployeeID: &emp.ID,
		From:       &from,
		Until:      &until,
	})
	if err != nil {
		return "", nil, err
	}

	templates, err := s.templateLookup(scoped, shifts)
	if err != nil {
		return "", nil, err
	}

	lookup := Context{
		Employees: map[string]EmployeeInfo{
			emp.ID: {FirstName: emp.FirstName, LastName: emp.LastName},
		},
		Templates: templates,
	}

	body, err := Render(shifts, lookup)
	if err != nil {
		return "", nil, err
	}
	return body, emp, nil
}

// templateLookup eager-loads the distinct templates referenced by shifts,
// one GetByID per distinct ID rather than per shift.
func (s *Service) templateLookup(ctx context.Context, shifts []*shift.Shift) (map[string]TemplateInfo, error) {
	out := make(map[string]TemplateInfo)
	for _, sh := range shifts {
		if sh.TemplateID == nil {
			continue
		}
		if _, ok := out[*sh.TemplateID]; ok {
			continue
		}
		tpl, err := s.templates.GetByID(ctx, *sh.TemplateID)
		if err != nil {
			continue // a deleted template falls back to the "Dienst" default
		}
		out[*sh.TemplateID] = TemplateInfo{Name: tpl.Name}
	}
	return out, nil
}
