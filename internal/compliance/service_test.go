package compliance_test

import (
	"context"
	"testing"
	"time"

	"github.com/caretiv/scheduling-service/internal/compliance"
	"github.com/caretiv/scheduling-service/internal/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_BreakViolation_Over6Hours(t *testing.T) {
	svc := compliance.NewService(nil, nil, nil)

	sh := &shift.Shift{
		Date:         time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime:    "08:00:00",
		EndTime:      "14:30:00",
		BreakMinutes: 20,
	}
	result, err := svc.Evaluate(context.Background(), sh, nil)
	require.NoError(t, err)
	assert.False(t, result.BreakOk())
}

func TestEvaluate_BreakOk_With30MinBreak(t *testing.T) {
	svc := compliance.NewService(nil, nil, nil)

	sh := &shift.Shift{
		Date:         time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime:    "08:00:00",
		EndTime:      "14:30:00",
		BreakMinutes: 30,
	}
	result, err := svc.Evaluate(context.Background(), sh, nil)
	require.NoError(t, err)
	assert.True(t, result.BreakOk())
}

func TestEvaluate_HolidayWarning(t *testing.T) {
	svc := compliance.NewService(nil, nil, nil)

	sh := &shift.Shift{
		Date:         time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC),
		StartTime:    "08:00:00",
		EndTime:      "12:00:00",
		BreakMinutes: 30,
		IsHoliday:    true,
	}
	result, err := svc.Evaluate(context.Background(), sh, nil)
	require.NoError(t, err)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, compliance.CategoryHoliday, result.Warnings[0].Category)
}
