package payroll_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/caretiv/scheduling-service/internal/payroll"
	"github.com/caretiv/scheduling-service/pkg/database"
	"github.com/caretiv/scheduling-service/pkg/tenant"
	"github.com/caretiv/scheduling-service/pkg/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSearchPath = "scheduling, public"

func newRepo(t *testing.T) (*payroll.Repository, *testutil.MockDB) {
	mockDB := testutil.NewMockDB(t)
	t.Cleanup(func() { mockDB.Close() })

	db := database.NewForTesting(mockDB.DB, testSearchPath)
	return payroll.NewRepository(db), mockDB
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
	mockDB.Mock.ExpectQuery("INSERT INTO payroll_entries").
		WillReturnRows(testutil.MockRows("created_at", "updated_at").AddRow(now, now))
	mockDB.Mock.ExpectCommit()

	entry := &payroll.Entry{EmployeeID: "employee-1", Month: time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), TotalGross: decimal.NewFromInt(100)}
	err := repo.Create(ctx, entry)
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, payroll.StatusDraft, entry.Status)
	mockDB.ExpectationsWereMet(t)
}

func TestRepository_UpdateStatus_Conflict(t *testing.T) {
	repo, mockDB := newRepo(t)
	tenantID := "22222222-2222-2222-2222-222222222222"
	ctx := tenant.WithTenantID(context.Background(), tenantID)

	expectTenantBegin(mockDB)
	mockDB.Mock.ExpectExec("UPDATE payroll_entries SET status").WillReturnResult(sqlmock.NewResult(0, 0))
	mockDB.Mock.ExpectRollback()

	err := repo.UpdateStatus(ctx, "entry-1", payroll.StatusDraft, payroll.StatusApproved)
	require.Error(t, err)
	mockDB.ExpectationsWereMet(t)
}

func TestCanTransition(t *testing.T) {
	assert.True(t, payroll.CanTransition(payroll.StatusDraft, payroll.StatusApproved))
	assert.True(t, payroll.CanTransition(payroll.StatusApproved, payroll.StatusPaid))
	assert.True(t, payroll.CanTransition(payroll.StatusApproved, payroll.StatusDraft))
	assert.False(t, payroll.CanTransition(payroll.StatusPaid, payroll.StatusDraft))
}
