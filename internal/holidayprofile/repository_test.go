package holidayprofile_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/caretiv/scheduling-service/internal/holidayprofile"
	"github.com/caretiv/scheduling-service/pkg/database"
	"github.com/caretiv/scheduling-service/pkg/tenant"
	"github.com/caretiv/scheduling-service/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSearchPath = "scheduling, public"

func newRepo(t *testing.T) (*holidayprofile.Repository, *testutil.MockDB) {
	mockDB := testutil.NewMockDB(t)
	t.Cleanup(func() { mockDB.Close() })

	db := database.NewForTesting(mockDB.DB, testSearchPath)
	return holidayprofile.NewRepository(db), mockDB
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
	mockDB.Mock.ExpectQuery("INSERT INTO holiday_profiles").
		WillReturnRows(testutil.MockRows("created_at", "updated_at").AddRow(now, now))
	mockDB.Mock.ExpectCommit()

	p := &holidayprofile.HolidayProfile{Name: "Standard", Region: "BW"}
	err := repo.Create(ctx, p)
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	mockDB.ExpectationsWereMet(t)
}

func TestRepository_Activate(t *testing.T) {
	repo, mockDB := newRepo(t)
	tenantID := "22222222-2222-2222-2222-222222222222"
	ctx := tenant.WithTenantID(context.Background(), tenantID)

	expectTenantBegin(mockDB)
	mockDB.Mock.ExpectExec("UPDATE holiday_profiles SET is_active = false").WillReturnResult(sqlmock.NewResult(0, 0))
	mockDB.Mock.ExpectExec("UPDATE holiday_profiles SET is_active = true").WillReturnResult(sqlmock.NewResult(0, 1))
	mockDB.Mock.ExpectCommit()

	err := repo.Activate(ctx, "profile-1")
	require.NoError(t, err)
	mockDB.ExpectationsWereMet(t)
}

func TestRepository_Activate_NotFound(t *testing.T) {
	repo, mockDB := newRepo(t)
	tenantID := "33333333-3333-3333-3333-333333333333"
	ctx := tenant.WithTenantID(context.Background(), tenantID)

	expectTenantBegin(mockDB)
	mockDB.Mock.ExpectExec("UPDATE holiday_profiles SET is_active = false").WillReturnResult(sqlmock.NewResult(0, 0))
	mockDB.Mock.ExpectExec("UPDATE holiday_profiles SET is_active = true").WillReturnResult(sqlmock.NewResult(0, 0))
	mockDB.Mock.ExpectRollback()

	err := repo.Activate(ctx, "missing-profile")
	require.Error(t, err)
	mockDB.ExpectationsWereMet(t)
}

func TestRepository_Delete_ConflictWhenReferenced(t *testing.T) {
	repo, mockDB := newRepo(t)
	tenantID := "44444444-4444-4444-4444-444444444444"
	ctx := tenant.WithTenantID(context.Background(), tenantID)

	expectTenantBegin(mockDB)
	mockDB.Mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM recurring_shifts").
		WillReturnRows(testutil.MockRows("count").AddRow(1))
	mockDB.Mock.ExpectRollback()

	err := repo.Delete(ctx, "profile-in-use")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "referenced")
	mockDB.ExpectationsWereMet(t)
}

func TestRepository_Delete_NotReferenced(t *testing.T) {
	repo, mockDB := newRepo(t)
	tenantID := "55555555-5555-5555-5555-555555555555"
	ctx := tenant.WithTenantID(context.Background(), tenantID)

	expectTenantBegin(mockDB)
	mockDB.Mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM recurring_shifts").
		WillReturnRows(testutil.MockRows("count").AddRow(0))
	mockDB.Mock.ExpectExec("UPDATE holiday_profiles SET deleted_at").WillReturnResult(sqlmock.NewResult(0, 1))
	mockDB.Mock.ExpectCommit()

	err := repo.Delete(ctx, "profile-unused")
	require.NoError(t, err)
	mockDB.ExpectationsWereMet(t)
}
