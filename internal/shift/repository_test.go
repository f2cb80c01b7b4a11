package shift_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/caretiv/scheduling-service/internal/shift"
	"github.com/caretiv/scheduling-service/pkg/database"
	"github.com/caretiv/scheduling-service/pkg/tenant"
	"github.com/caretiv/scheduling-service/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSearchPath = "scheduling, public"

func newRepo(t *testing.T) (*shift.Repository, *testutil.MockDB) {
	mockDB := testutil.NewMockDB(t)
	t.Cleanup(func() { mockDB.Close() })

	db := database.NewForTesting(mockDB.DB, testSearchPath)
	return shift.NewRepository(db), mockDB
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

	now := time.Now()
	expectTenantBegin(mockDB)
	mockDB.Mock.ExpectQuery("INSERT INTO shifts").
		WillReturnRows(testutil.MockRows("created_at", "updated_at").AddRow(now, now))
	mockDB.Mock.ExpectCommit()

	sh := &shift.Shift{
		Date:      time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), // a Monday
		StartTime: "08:00:00",
		EndTime:   "16:00:00",
	}
	err := repo.Create(ctx, sh)
	require.NoError(t, err)
	assert.NotEmpty(t, sh.ID)
	assert.Equal(t, shift.StatusPlanned, sh.Status)
	assert.False(t, sh.IsWeekend)
	mockDB.ExpectationsWereMet(t)
}

func TestRepository_Claim_Conflict(t *testing.T) {
	repo, mockDB := newRepo(t)
	tenantID := "22222222-2222-2222-2222-222222222222"
	ctx := tenant.WithTenantID(context.Background(), tenantID)

	expectTenantBegin(mockDB)
	mockDB.Mock.ExpectExec("UPDATE shifts SET employee_id").WillReturnResult(sqlmock.NewResult(0, 0))
	mockDB.Mock.ExpectRollback()

	err := repo.Claim(ctx, "shift-1", "employee-1")
	require.Error(t, err)
	mockDB.ExpectationsWereMet(t)
}

func TestRepository_Claim_Success(t *testing.T) {
	repo, mockDB := newRepo(t)
	tenantID := "33333333-3333-3333-3333-333333333333"
	ctx := tenant.WithTenantID(context.Background(), tenantID)

	expectTenantBegin(mockDB)
	mockDB.Mock.ExpectExec("UPDATE shifts SET employee_id").WillReturnResult(sqlmock.NewResult(0, 1))
	mockDB.Mock.ExpectCommit()

	err := repo.Claim(ctx, "shift-1", "employee-1")
	require.NoError(t, err)
	mockDB.ExpectationsWereMet(t)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mockDB := newRepo(t)
	tenantID := "44444444-4444-4444-4444-444444444444"
	ctx := tenant.WithTenantID(context.Background(), tenantID)

	expectTenantBegin(mockDB)
	mockDB.Mock.ExpectQuery("SELECT \\* FROM shifts WHERE id").
		WillReturnError(sql.ErrNoRows)
	mockDB.Mock.ExpectRollback()

	_, err := repo.GetByID(ctx, "missing")
	require.Error(t, err)
}
