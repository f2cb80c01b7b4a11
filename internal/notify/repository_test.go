package notify_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/caretiv/scheduling-service/internal/notify"
	"github.com/caretiv/scheduling-service/pkg/database"
	"github.com/caretiv/scheduling-service/pkg/tenant"
	"github.com/caretiv/scheduling-service/pkg/testutil"
	"github.com/stretchr/testify/require"
)

const testSearchPath = "scheduling, public"

func newRepo(t *testing.T) (*notify.Repository, *testutil.MockDB) {
	mockDB := testutil.NewMockDB(t)
	t.Cleanup(func() { mockDB.Close() })

	db := database.NewForTesting(mockDB.DB, testSearchPath)
	return notify.NewRepository(db), mockDB
}

func expectTenantBegin(mockDB *testutil.MockDB) {
	mockDB.Mock.ExpectBegin()
	mockDB.Mock.ExpectExec("SET LOCAL search_path TO").WillReturnResult(sqlmock.NewResult(0, 0))
	mockDB.Mock.ExpectExec("SET LOCAL app.current_tenant").WillReturnResult(sqlmock.NewResult(0, 0))
}

func TestRepository_RecordDispatchOutcome(t *testing.T) {
	repo, mockDB := newRepo(t)
	tenantID := "11111111-1111-1111-1111-111111111111"
	ctx := tenant.WithTenantID(context.Background(), tenantID)

	expectTenantBegin(mockDB)
	mockDB.Mock.ExpectExec("INSERT INTO dispatch_log").WillReturnResult(sqlmock.NewResult(1, 1))
	mockDB.Mock.ExpectCommit()

	err := repo.RecordDispatchOutcome(ctx, "event-1", "scheduling.absence.approved", "telegram", notify.StatusSent, nil)
	require.NoError(t, err)
	mockDB.ExpectationsWereMet(t)
}
