package employee_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/caretiv/scheduling-service/internal/employee"
	"github.com/caretiv/scheduling-service/pkg/database"
	"github.com/caretiv/scheduling-service/pkg/tenant"
	"github.com/caretiv/scheduling-service/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSearchPath = "scheduling, public"

func newRepo(t *testing.T) (*employee.Repository, *testutil.MockDB) {
	mockDB := testutil.NewMockDB(t)
	t.Cleanup(func() { mockDB.Close() })

	db := database.NewForTesting(mockDB.DB, testSearchPath)
	return employee.NewRepository(db), mockDB
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
	mockDB.Mock.ExpectQuery("INSERT INTO employees").
		WillReturnRows(testutil.MockRows("created_at", "updated_at").AddRow(now, now))
	mockDB.Mock.ExpectCommit()

	e := &employee.Employee{
		FirstName:    "Anna",
		LastName:     "Schmidt",
		ContractType: employee.ContractMinijob,
		HourlyRate:   13.50,
	}
	err := repo.Create(ctx, e)
	require.NoError(t, err)
	assert.NotEmpty(t, e.ID)
	assert.NotEmpty(t, e.ICalToken)
	mockDB.ExpectationsWereMet(t)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	repo, mockDB := newRepo(t)
	tenantID := "22222222-2222-2222-2222-222222222222"
	ctx := tenant.WithTenantID(context.Background(), tenantID)

	expectTenantBegin(mockDB)
	mockDB.Mock.ExpectQuery("SELECT \\* FROM employees").WillReturnError(sql.ErrNoRows)
	mockDB.Mock.ExpectRollback()

	_, err := repo.GetByID(ctx, "missing")
	require.Error(t, err)
	mockDB.ExpectationsWereMet(t)
}

func TestRepository_UpdateContractCache_NotFound(t *testing.T) {
	repo, mockDB := newRepo(t)
	tenantID := "33333333-3333-3333-3333-333333333333"
	ctx := tenant.WithTenantID(context.Background(), tenantID)

	expectTenantBegin(mockDB)
	mockDB.Mock.ExpectExec("UPDATE employees SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mockDB.Mock.ExpectRollback()

	err := repo.UpdateContractCache(ctx, "missing", employee.ContractFullTime, 18.0, nil, nil, nil, nil)
	require.Error(t, err)
	mockDB.ExpectationsWereMet(t)
}

func TestRepository_SoftDelete(t *testing.T) {
	repo, mockDB := newRepo(t)
	tenantID := "44444444-4444-4444-4444-444444444444"
	ctx := tenant.WithTenantID(context.Background(), tenantID)

	expectTenantBegin(mockDB)
	mockDB.Mock.ExpectExec("UPDATE employees SET deleted_at").WillReturnResult(sqlmock.NewResult(0, 1))
	mockDB.Mock.ExpectCommit()

	err := repo.SoftDelete(ctx, "emp-1")
	require.NoError(t, err)
	mockDB.ExpectationsWereMet(t)
}
