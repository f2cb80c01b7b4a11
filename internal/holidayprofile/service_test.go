package holidayprofile_test

import (
	"testing"
	"time"

	"github.com/caretiv/scheduling-service/internal/holidayprofile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfileWithSchoolVacations(t *testing.T) {
	profile, periods := holidayprofile.NewProfileWithSchoolVacations("BW School Year 2025/26")

	assert.Equal(t, "BW School Year 2025/26", profile.Name)
	assert.Equal(t, "BW", profile.Region)
	assert.True(t, profile.SkipPublicHolidays)
	assert.False(t, profile.IsActive)

	require.Len(t, periods, 5)

	byName := make(map[string]*holidayprofile.VacationPeriod, len(periods))
	for _, p := range periods {
		byName[p.Name] = p
	}

	herbst, ok := byName["Herbstferien"]
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.October, 27, 0, 0, 0, 0, time.UTC), herbst.StartDate)
	assert.Equal(t, time.Date(2025, time.October, 30, 0, 0, 0, 0, time.UTC), herbst.EndDate)

	weihnachten, ok := byName["Weihnachten"]
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.December, 22, 0, 0, 0, 0, time.UTC), weihnachten.StartDate)
	assert.Equal(t, time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC), weihnachten.EndDate)

	sommer, ok := byName["Sommer"]
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, time.July, 30, 0, 0, 0, 0, time.UTC), sommer.StartDate)
	assert.Equal(t, time.Date(2026, time.September, 12, 0, 0, 0, 0, time.UTC), sommer.EndDate)
}
