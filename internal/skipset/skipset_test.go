package skipset_test

import (
	"testing"
	"time"

	"github.com/caretiv/scheduling-service/internal/holidayprofile"
	"github.com/caretiv/scheduling-service/internal/skipset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBuild_VacationPeriodsAndCustomHolidays(t *testing.T) {
	detail := &holidayprofile.Detail{
		Profile: &holidayprofile.HolidayProfile{Region: "BW"},
		VacationPeriods: []*holidayprofile.VacationPeriod{
			{StartDate: date(2025, time.October, 27), EndDate: date(2025, time.October, 30)},
		},
		CustomHolidays: []*holidayprofile.CustomHoliday{
			{Date: date(2025, time.November, 11)},
		},
	}

	skip, err := skipset.Build(detail, "BW", false, nil)
	require.NoError(t, err)

	assert.True(t, skip.Contains(date(2025, time.October, 28)))
	assert.True(t, skip.Contains(date(2025, time.November, 11)))
	assert.False(t, skip.Contains(date(2025, time.November, 12)))
}

func TestBuild_WithPublicHolidays(t *testing.T) {
	skip, err := skipset.Build(nil, "BW", true, []int{2025})
	require.NoError(t, err)

	assert.True(t, skip.Contains(date(2025, time.January, 1)))
	assert.True(t, skip.Contains(date(2025, time.October, 3)))
	assert.False(t, skip.Contains(date(2025, time.January, 2)))
}

func TestBuild_SkipPublicHolidaysFalse(t *testing.T) {
	skip, err := skipset.Build(nil, "BW", false, []int{2025})
	require.NoError(t, err)
	assert.False(t, skip.Contains(date(2025, time.January, 1)))
}

func TestYearsBetween(t *testing.T) {
	years := skipset.YearsBetween(date(2025, time.November, 1), date(2026, time.February, 1))
	assert.Equal(t, []int{2025, 2026}, years)
}
