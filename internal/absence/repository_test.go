package absence_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/caretiv/scheduling-service/internal/absence"
	"github.com/caretiv/scheduling-service/pkg/database"
	"github.com/caretiv/scheduling-service/pkg/tenant"
	"github.com/caretiv/scheduling-service/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSearchPath = "scheduling, public"

func newRepo(t *testing.T) (*absence.Repository, *testutil.MockDB) {
	mockDB := testutil.NewMockDB(t)
	t.Cleanup(func() { mockDB.Close() })

	db := database.NewForTesting(mockDB.DB, testSearchPath)
	return absence.NewRepository(db), mockDB
}

func expectTenantBegin(mockDB *testutil.MockDB) {
	mockDB.Mock.ExpectBegin()
	mockDB.Mock.ExpectExec("SET LOCAL search_path TO").WillReturnResult(sqlmock.NewResult(0, 0))
	mockDB.Mock.ExpectExec("SET LOCAL app.current_tenant").WillReturnResult(sqlmock.NewResult(0, 0))
}

func TestRepository_Create(t *testing.T) {
	repo, mockDB := newRepo(t)
	tenantID := "11111111-1111-1111-1111-111111111111"
	ctx := tenant.WithTenantID(context.Background(), tenantID)

	expectTenantBegin(mockDB)
	mockDB.Mock.ExpectQuery("INSERT INTO employee_absences").
		WillReturnRows(testutil.MockRows("created_at").AddRow(time.Now()))
	mockDB.Mock.ExpectCommit()

	a := &absence.EmployeeAbsence{
		EmployeeID: "employee-1",
		Type:       "vacation",
		StartDate:  time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 9, 4, 0, 0, 0, 0, time.UTC),
	}
	err := repo.Create(ctx, a)
	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, absence.StatusPending, a.Status)
	mockDB.ExpectationsWereMet(t)
}

func TestRepository_Approve_ConflictWhenNotPending(t *testing.T) {
	repo, mockDB := newRepo(t)
	tenantID := "22222222-2222-2222-2222-222222222222"
	ctx := tenant.WithTenantID(context.Background(), tenantID)

	expectTenantBegin(mockDB)
	mockDB.Mock.ExpectExec("UPDATE employee_absences SET status").WillReturnResult(sqlmock.NewResult(0, 0))
	mockDB.Mock.ExpectRollback()

	err := repo.Approve(ctx, "absence-1", "manager-1", time.Now())
	require.Error(t, err)
	mockDB.ExpectationsWereMet(t)
}

func TestRepository_CreateCareAbsence_DefaultsShiftHandling(t *testing.T) {
	repo, mockDB := newRepo(t)
	tenantID := "33333333-3333-3333-3333-333333333333"
	ctx := tenant.WithTenantID(context.Background(), tenantID)

	expectTenantBegin(mockDB)
	mockDB.Mock.ExpectQuery("INSERT INTO care_recipient_absences").
		WillReturnRows(testutil.MockRows("created_at").AddRow(time.Now()))
	mockDB.Mock.ExpectCommit()

	a := &absence.CareRecipientAbsence{
		Type:      "hospital",
		StartDate: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 10, 5, 0, 0, 0, 0, time.UTC),
	}
	err := repo.CreateCareAbsence(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, absence.ShiftHandlingCancelledUnpaid, a.ShiftHandling)
	mockDB.ExpectationsWereMet(t)
}
