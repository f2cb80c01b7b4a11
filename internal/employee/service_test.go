package employee_test

import (
	"context"
	"testing"
	"time"

	"github.com/caretiv/scheduling-service/internal/employee"
	"github.com/caretiv/scheduling-service/pkg/errors"
	"github.com/caretiv/scheduling-service/pkg/tenant"
	"github.com/caretiv/scheduling-service/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Create_RejectsMissingName(t *testing.T) {
	repo, mockDB := newRepo(t)
	svc := employee.NewService(repo)

	ctx := tenant.WithTenantID(context.Background(), "11111111-1111-1111-1111-111111111111")
	e := &employee.Employee{ContractType: employee.ContractMinijob, HourlyRate: 13.5}

	err := svc.Create(ctx, e)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrValidation))
	mockDB.ExpectationsWereMet(t)
}

func TestService_Create_RejectsInvalidContractType(t *testing.T) {
	repo, mockDB := newRepo(t)
	svc := employee.NewService(repo)

	ctx := tenant.WithTenantID(context.Background(), "11111111-1111-1111-1111-111111111111")
	e := &employee.Employee{FirstName: "Anna", LastName: "Schmidt", ContractType: "temp", HourlyRate: 13.5}

	err := svc.Create(ctx, e)
	require.Error(t, err)
	mockDB.ExpectationsWereMet(t)
}

func TestService_Create_DefaultsQuietHoursAndPrefs(t *testing.T) {
	repo, mockDB := newRepo(t)
	svc := employee.NewService(repo)

	ctx := tenant.WithTenantID(context.Background(), "11111111-1111-1111-1111-111111111111")
	now := time.Now()
	expectTenantBegin(mockDB)
	mockDB.Mock.ExpectQuery("INSERT INTO employees").
		WillReturnRows(testutil.MockRows("created_at", "updated_at").AddRow(now, now))
	mockDB.Mock.ExpectCommit()

	e := &employee.Employee{FirstName: "Anna", LastName: "Schmidt", ContractType: employee.ContractMinijob, HourlyRate: 13.5}
	err := svc.Create(ctx, e)
	require.NoError(t, err)
	assert.Equal(t, "21:00", e.QuietHoursStart)
	assert.Equal(t, "07:00", e.QuietHoursEnd)
	assert.Equal(t, employee.DefaultNotificationPrefs(), e.NotificationPrefs)
	assert.True(t, e.Active)
	mockDB.ExpectationsWereMet(t)
}
