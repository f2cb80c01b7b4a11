package shift_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/caretiv/scheduling-service/internal/shift"
	"github.com/caretiv/scheduling-service/pkg/tenant"
	"github.com/caretiv/scheduling-service/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestService_UpdateAsPrivileged_ManagerRejectedOnCompleted(t *testing.T) {
	repo, mockDB := newRepo(t)
	svc := shift.NewService(repo, nil, nil)
	tenantID := "55555555-5555-5555-5555-555555555555"
	ctx := tenant.WithTenantID(context.Background(), tenantID)

	expectTenantBegin(mockDB)
	mockDB.Mock.ExpectQuery("SELECT \\* FROM shifts WHERE id").
		WillReturnRows(testutil.MockRows("id", "status", "date", "start_time", "end_time").
			AddRow("shift-1", string(shift.StatusCompleted), time.Now(), "08:00:00", "16:00:00"))
	mockDB.Mock.ExpectCommit()

	err := svc.UpdateAsPrivileged(ctx, nil, shift.RoleManager, &shift.Shift{ID: "shift-1", StartTime: "08:00:00", EndTime: "16:00:00", Date: time.Now()})
	require.Error(t, err)
	mockDB.ExpectationsWereMet(t)
}

func TestService_UpdateAsEmployee_RejectsOtherEmployeesShift(t *testing.T) {
	repo, mockDB := newRepo(t)
	svc := shift.NewService(repo, nil, nil)
	tenantID := "66666666-6666-6666-6666-666666666666"
	ctx := tenant.WithTenantID(context.Background(), tenantID)
	owner := "employee-a"

	expectTenantBegin(mockDB)
	mockDB.Mock.ExpectQuery("SELECT \\* FROM shifts WHERE id").
		WillReturnRows(testutil.MockRows("id", "employee_id", "status").
			AddRow("shift-1", owner, string(shift.StatusPlanned)))
	mockDB.Mock.ExpectCommit()

	err := svc.UpdateAsEmployee(ctx, nil, "employee-b", "shift-1", nil, nil, nil)
	require.Error(t, err)
	mockDB.ExpectationsWereMet(t)
}

func TestService_Claim_ConflictPropagates(t *testing.T) {
	repo, mockDB := newRepo(t)
	svc := shift.NewService(repo, nil, nil)
	tenantID := "77777777-7777-7777-7777-777777777777"
	ctx := tenant.WithTenantID(context.Background(), tenantID)

	expectTenantBegin(mockDB)
	mockDB.Mock.ExpectExec("UPDATE shifts SET employee_id").WillReturnResult(sqlmock.NewResult(0, 0))
	mockDB.Mock.ExpectRollback()

	err := svc.Claim(ctx, nil, "employee-1", "shift-1")
	require.Error(t, err)
	mockDB.ExpectationsWereMet(t)
}

func TestCanTransition_PlannedToCancelledAbsence(t *testing.T) {
	require.True(t, shift.CanTransition(shift.StatusPlanned, shift.StatusCancelledAbsence))
	require.False(t, shift.CanTransition(shift.StatusCompleted, shift.StatusPlanned))
}
