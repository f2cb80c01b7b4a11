package absence_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/caretiv/scheduling-service/internal/absence"
	"github.com/caretiv/scheduling-service/internal/shift"
	"github.com/caretiv/scheduling-service/pkg/tenant"
	"github.com/caretiv/scheduling-service/pkg/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeShiftTransitioner struct {
	transitionedEmployee string
	restoredEmployee     string
	tenantRangeCalls     int
	listResult           []*shift.Shift
}

func (f *fakeShiftTransitioner) TransitionRangeToAbsence(ctx context.Context, employeeID string, startDate, endDate time.Time) (int64, error) {
	f.transitionedEmployee = employeeID
	return 2, nil
}

func (f *fakeShiftTransitioner) RestoreRangeFromAbsence(ctx context.Context, employeeID string, startDate, endDate time.Time) (int64, error) {
	f.restoredEmployee = employeeID
	return 2, nil
}

func (f *fakeShiftTransitioner) TransitionTenantRangeToAbsence(ctx context.Context, startDate, endDate time.Time) (int64, error) {
	f.tenantRangeCalls++
	return int64(len(f.listResult)), nil
}

func (f *fakeShiftTransitioner) List(ctx context.Context, filter shift.ListFilter) ([]*shift.Shift, error) {
	return f.listResult, nil
}

type fakeCarryoverRecorder struct {
	recorded []decimal.Decimal
}

func (f *fakeCarryoverRecorder) RecordCarryover(ctx context.Context, employeeID string, fromMonth, toMonth time.Time, hours decimal.Decimal) error {
	f.recorded = append(f.recorded, hours)
	return nil
}

func TestService_Approve_CancelsOverlappingShifts(t *testing.T) {
	repo, mockDB := newRepo(t)
	tenantID := "44444444-4444-4444-4444-444444444444"
	ctx := tenant.WithTenantID(context.Background(), tenantID)

	absenceID := "absence-1"
	startDate := time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2025, 9, 4, 0, 0, 0, 0, time.UTC)

	expectTenantBegin(mockDB)
	mockDB.Mock.ExpectQuery("SELECT \\* FROM employee_absences").
		WillReturnRows(testutil.MockRows(
			"id", "tenant_id", "employee_id", "type", "start_date", "end_date",
			"days_count", "status", "notes", "approved_by", "approved_at", "created_at",
		).AddRow(absenceID, tenantID, "employee-A", "vacation", startDate, endDate, nil, absence.StatusPending, nil, nil, nil, time.Now()))
	mockDB.Mock.ExpectCommit()

	expectTenantBegin(mockDB)
	mockDB.Mock.ExpectExec("UPDATE employee_absences SET status").WillReturnResult(sqlmock.NewResult(0, 1))
	mockDB.Mock.ExpectCommit()

	shifts := &fakeShiftTransitioner{}
	svc := absence.NewService(repo, shifts, nil, nil, nil)

	updated, err := svc.Approve(ctx, absenceID, "manager-1")
	require.NoError(t, err)
	assert.Equal(t, absence.StatusApproved, updated.Status)
	assert.Equal(t, "employee-A", shifts.transitionedEmployee)
	mockDB.ExpectationsWereMet(t)
}

func TestService_ApplyCareAbsence_CarryOverRecordsHoursThenCancels(t *testing.T) {
	repo, mockDB := newRepo(t)
	tenantID := "55555555-5555-5555-5555-555555555555"
	ctx := tenant.WithTenantID(context.Background(), tenantID)

	careID := "care-1"
	startDate := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC)

	expectTenantBegin(mockDB)
	mockDB.Mock.ExpectQuery("SELECT \\* FROM care_recipient_absences").
		WillReturnRows(testutil.MockRows(
			"id", "tenant_id", "type", "start_date", "end_date", "description", "notes",
			"shift_handling", "notify_employees", "created_at",
		).AddRow(careID, tenantID, "hospital", startDate, endDate, nil, nil, absence.ShiftHandlingCarryOver, true, time.Now()))
	mockDB.Mock.ExpectCommit()

	employeeID := "employee-B"
	affected := []*shift.Shift{
		{
			ID:           "shift-1",
			EmployeeID:   &employeeID,
			Date:         time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC),
			StartTime:    "08:00:00",
			EndTime:      "16:00:00",
			BreakMinutes: 30,
			Status:       shift.StatusPlanned,
		},
	}
	shifts := &fakeShiftTransitioner{listResult: affected}
	carryover := &fakeCarryoverRecorder{}
	svc := absence.NewService(repo, shifts, carryover, nil, nil)

	err := svc.ApplyCareAbsence(ctx, careID)
	require.NoError(t, err)
	require.Len(t, carryover.recorded, 1)
	assert.True(t, decimal.NewFromFloat(7.5).Equal(carryover.recorded[0]))
	assert.Equal(t, 1, shifts.tenantRangeCalls)
	mockDB.ExpectationsWereMet(t)
}

func TestService_ApplyCareAbsence_PaidAnywayDoesNothing(t *testing.T) {
	repo, mockDB := newRepo(t)
	tenantID := "66666666-6666-6666-6666-666666666666"
	ctx := tenant.WithTenantID(context.Background(), tenantID)

	careID := "care-2"
	startDate := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC)

	expectTenantBegin(mockDB)
	mockDB.Mock.ExpectQuery("SELECT \\* FROM care_recipient_absences").
		WillReturnRows(testutil.MockRows(
			"id", "tenant_id", "type", "start_date", "end_date", "description", "notes",
			"shift_handling", "notify_employees", "created_at",
		).AddRow(careID, tenantID, "vacation", startDate, endDate, nil, nil, absence.ShiftHandlingPaidAnyway, true, time.Now()))
	mockDB.Mock.ExpectCommit()

	shifts := &fakeShiftTransitioner{}
	svc := absence.NewService(repo, shifts, nil, nil, nil)

	err := svc.ApplyCareAbsence(ctx, careID)
	require.NoError(t, err)
	assert.Equal(t, 0, shifts.tenantRangeCalls)
	mockDB.ExpectationsWereMet(t)
}
