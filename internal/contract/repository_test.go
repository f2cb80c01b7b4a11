package contract_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/caretiv/scheduling-service/internal/contract"
	"github.com/caretiv/scheduling-service/internal/employee"
	"github.com/caretiv/scheduling-service/pkg/database"
	"github.com/caretiv/scheduling-service/pkg/tenant"
	"github.com/caretiv/scheduling-service/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSearchPath = "scheduling, public"

func newRepo(t *testing.T) (*contract.Repository, *testutil.MockDB) {
	mockDB := testutil.NewMockDB(t)
	t.Cleanup(func() { mockDB.Close() })

	db := database.NewForTesting(mockDB.DB, testSearchPath)
	return contract.NewRepository(db), mockDB
}

func expectTenantBegin(mockDB *testutil.MockDB) {
	mockDB.Mock.ExpectBegin()
	mockDB.Mock.ExpectExec("SET LOCAL search_path TO").WillReturnResult(sqlmock.NewResult(0, 0))
	mockDB.Mock.ExpectExec("SET LOCAL app.current_tenant").WillReturnResult(sqlmock.NewResult(0, 0))
}

func TestRepository_Insert_ClosesPriorOpenEntry(t *testing.T) {
	repo, mockDB := newRepo(t)
	tenantID := "11111111-1111-1111-1111-111111111111"
	ctx := tenant.WithTenantID(context.Background(), tenantID)

	now := time.Now()
	expectTenantBegin(mockDB)
	mockDB.Mock.ExpectExec("UPDATE contract_history SET valid_to").WillReturnResult(sqlmock.NewResult(0, 1))
	mockDB.Mock.ExpectQuery("INSERT INTO contract_history").
		WillReturnRows(testutil.MockRows("created_at").AddRow(now))
	mockDB.Mock.ExpectCommit()

	h := &contract.History{
		EmployeeID:   "emp-1",
		ValidFrom:    time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
		ContractType: employee.ContractPartTime,
		HourlyRate:   15.0,
	}
	err := repo.Insert(ctx, h)
	require.NoError(t, err)
	assert.NotEmpty(t, h.ID)
	mockDB.ExpectationsWereMet(t)
}

func TestRepository_ResolveAt_NotFound(t *testing.T) {
	repo, mockDB := newRepo(t)
	tenantID := "22222222-2222-2222-2222-222222222222"
	ctx := tenant.WithTenantID(context.Background(), tenantID)

	expectTenantBegin(mockDB)
	mockDB.Mock.ExpectQuery("SELECT \\* FROM contract_history").WillReturnError(sql.ErrNoRows)
	mockDB.Mock.ExpectRollback()

	_, err := repo.ResolveAt(ctx, "emp-1", time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	mockDB.ExpectationsWereMet(t)
}
