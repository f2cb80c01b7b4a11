package ical_test

import (
	"context"
	"testing"
	"time"

	"github.com/caretiv/scheduling-service/internal/employee"
	"github.com/caretiv/scheduling-service/internal/ical"
	"github.com/caretiv/scheduling-service/internal/shift"
	"github.com/caretiv/scheduling-service/internal/shifttemplate"
	"github.com/caretiv/scheduling-service/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeGetter struct {
	byToken map[string]*employee.Employee
}

func (f *fakeEmployeeGetter) GetByICalToken(ctx context.Context, token string) (*employee.Employee, error) {
	e, ok := f.byToken[token]
	if !ok {
		return nil, errors.NotFound("employee")
	}
	return e, nil
}

type fakeShiftLister struct {
	shifts    []*shift.Shift
	gotFilter shift.ListFilter
}

func (f *fakeShiftLister) List(ctx context.Context, filter shift.ListFilter) ([]*shift.Shift, error) {
	f.gotFilter = filter
	return f.shifts, nil
}

type fakeTemplateGetter struct {
	byID map[string]*shifttemplate.ShiftTemplate
}

func (f *fakeTemplateGetter) GetByID(ctx context.Context, id string) (*shifttemplate.ShiftTemplate, error) {
	t, ok := f.byID[id]
	if !ok {
		return nil, errors.NotFound("shift template")
	}
	return t, nil
}

func TestService_Feed_ResolvesTokenAndRendersOwnShifts(t *testing.T) {
	emp := &employee.Employee{ID: "emp-1", TenantID: "tenant-1", FirstName: "Anna", LastName: "Keller"}
	tplID := "tpl-1"
	sh := &shift.Shift{
		ID:         "shift-1",
		EmployeeID: &emp.ID,
		TemplateID: &tplID,
		Date:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:  "08:00:00",
		EndTime:    "16:00:00",
		Status:     shift.StatusConfirmed,
	}

	employees := &fakeEmployeeGetter{byToken: map[string]*employee.Employee{"tok-1": emp}}
	shifts := &fakeShiftLister{shifts: []*shift.Shift{sh}}
	templates := &fakeTemplateGetter{byID: map[string]*shifttemplate.ShiftTemplate{tplID: {Name: "Frühdienst"}}}

	svc := ical.NewService(employees, shifts, templates)

	body, gotEmp, err := svc.Feed(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, emp, gotEmp)
	assert.Contains(t, body, "SUMMARY:Frühdienst")
	require.NotNil(t, shifts.gotFilter.EmployeeID)
	assert.Equal(t, "emp-1", *shifts.gotFilter.EmployeeID)
}

func TestService_Feed_UnknownTokenIsNotFound(t *testing.T) {
	svc := ical.NewService(&fakeEmployeeGetter{byToken: map[string]*employee.Employee{}}, &fakeShiftLister{}, &fakeTemplateGetter{})

	_, _, err := svc.Feed(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
