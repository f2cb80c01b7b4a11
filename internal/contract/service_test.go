package contract_test

import (
	"testing"
	"time"

	"github.com/caretiv/scheduling-service/internal/contract"
	"github.com/caretiv/scheduling-service/internal/employee"
	"github.com/stretchr/testify/assert"
)

func TestSnapshotFromEmployee_DefaultsAnnualLimit(t *testing.T) {
	e := &employee.Employee{ContractType: employee.ContractMinijob, HourlyRate: 12.0}
	snap := contract.SnapshotFromEmployee(e)
	assert.Equal(t, employee.DefaultAnnualSalaryLimit, snap.AnnualSalaryLimit)
	assert.Equal(t, 12.0, snap.HourlyRate)
}

func TestSnapshotFromHistory_UsesOverride(t *testing.T) {
	limit := 7200.0
	h := &contract.History{
		ContractType:      employee.ContractMinijob,
		HourlyRate:        13.0,
		AnnualSalaryLimit: &limit,
	}
	snap := contract.SnapshotFromHistory(h)
	assert.Equal(t, 7200.0, snap.AnnualSalaryLimit)
}

func TestHistory_ZeroValidFromIsZeroTime(t *testing.T) {
	h := &contract.History{ValidFrom: time.Time{}}
	assert.True(t, h.ValidFrom.IsZero())
}
