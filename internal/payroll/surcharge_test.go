package payroll

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/caretiv/scheduling-service/internal/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcSurcharges_HolidayMidnightCrossing(t *testing.T) {
	sh := &shift.Shift{
		Date:         time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC), // Saturday, All Saints
		StartTime:    "22:00:00",
		EndTime:      "02:00:00",
		BreakMinutes: 0,
		IsHoliday:    true,
	}
	rate := decimal.NewFromInt(10)

	netHours, err := calcNetHours(sh)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(4).Equal(netHours), "expected 4 net hours, got %s", netHours)

	hours, amounts, err := calcSurcharges(sh, rate)
	require.NoError(t, err)

	assertDecimalEqual(t, "50.00", amounts["holiday"])
	assertDecimalEqual(t, "2.50", amounts["late"])
	assertDecimalEqual(t, "7.50", amounts["night"])
	assertDecimalEqual(t, "2.50", amounts["early"])
	assert.True(t, amounts["sunday"].IsZero())
	assert.True(t, amounts["weekend"].IsZero())

	assertDecimalEqual(t, "4", hours["holiday"])
	assertDecimalEqual(t, "2", hours["late"])
	assertDecimalEqual(t, "3", hours["night"])
	assertDecimalEqual(t, "2", hours["early"])
}

func TestCalcNetHours_MidnightCrossing(t *testing.T) {
	sh := &shift.Shift{
		Date:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		StartTime:    "22:00:00",
		EndTime:      "06:00:00",
		BreakMinutes: 30,
	}
	netHours, err := calcNetHours(sh)
	require.NoError(t, err)
	assertDecimalEqual(t, "7.5", netHours)
}

func assertDecimalEqual(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	exp, err := decimal.NewFromString(expected)
	require.NoError(t, err)
	assert.True(t, exp.Equal(actual), "expected %s, got %s", expected, actual)
}
