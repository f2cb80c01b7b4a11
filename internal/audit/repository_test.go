package audit_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/caretiv/scheduling-service/internal/audit"
	"github.com/caretiv/scheduling-service/pkg/database"
	"github.com/caretiv/scheduling-service/pkg/tenant"
	"github.com/caretiv/scheduling-service/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSearchPath = "scheduling, public"

func newRepo(t *testing.T) (*audit.Repository, *testutil.MockDB) {
	mockDB := testutil.NewMockDB(t)
	t.Cleanup(func() { mockDB.Close() })

	db := database.NewForTesting(mockDB.DB, testSearchPath)
	return audit.NewRepository(db), mockDB
}

func expectTenantBegin(mockDB *testutil.MockDB) {
	mockDB.Mock.ExpectBegin()
	mockDB.Mock.ExpectExec("SET LOCAL search_path TO").WillReturnResult(sqlmock.NewResult(0, 0))
	mockDB.Mock.ExpectExec("SET LOCAL app.current_tenant").WillReturnResult(sqlmock.NewResult(0, 0))
}

func TestRepository_Append(t *testing.T) {
	repo, mockDB := newRepo(t)
	tenantID := "11111111-1111-1111-1111-111111111111"
	ctx := tenant.WithTenantID(context.Background(), tenantID)

	now := time.Now()
	expectTenantBegin(mockDB)
	mockDB.Mock.ExpectQuery("INSERT INTO audit_logs").
		WillReturnRows(testutil.MockRows("created_at").AddRow(now))
	mockDB.Mock.ExpectCommit()

	l := &audit.Log{EntityType: "shift", Action: "claim"}
	err := repo.Append(ctx, l)
	require.NoError(t, err)
	assert.NotEmpty(t, l.ID)
	mockDB.ExpectationsWereMet(t)
}
