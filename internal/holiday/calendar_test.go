package holiday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHolidays_BW2025(t *testing.T) {
	holidays, err := Holidays(RegionBW, 2025)
	require.NoError(t, err)

	assert.Equal(t, "Neujahr", holidays[time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)])
	assert.Equal(t, "Tag der Deutschen Einheit", holidays[time.Date(2025, time.October, 3, 0, 0, 0, 0, time.UTC)])

	// Easter Sunday 2025 is April 20.
	assert.Equal(t, "Ostersonntag", holidays[time.Date(2025, time.April, 20, 0, 0, 0, 0, time.UTC)])
	assert.Equal(t, "Karfreitag", holidays[time.Date(2025, time.April, 18, 0, 0, 0, 0, time.UTC)])
	assert.Equal(t, "Ostermontag", holidays[time.Date(2025, time.April, 21, 0, 0, 0, 0, time.UTC)])
	assert.Equal(t, "Christi Himmelfahrt", holidays[time.Date(2025, time.May, 29, 0, 0, 0, 0, time.UTC)])
	assert.Equal(t, "Fronleichnam", holidays[time.Date(2025, time.June, 19, 0, 0, 0, 0, time.UTC)])
}

func TestHolidays_BW2026(t *testing.T) {
	holidays, err := Holidays(RegionBW, 2026)
	require.NoError(t, err)

	// Easter Sunday 2026 is April 5.
	assert.Equal(t, "Ostersonntag", holidays[time.Date(2026, time.April, 5, 0, 0, 0, 0, time.UTC)])
}

func TestHolidays_UnsupportedRegion(t *testing.T) {
	_, err := Holidays("BY", 2025)
	require.Error(t, err)

	var regionErr *ErrUnsupportedRegion
	assert.ErrorAs(t, err, &regionErr)
}

func TestIsHoliday(t *testing.T) {
	ok, name, err := IsHoliday(RegionBW, time.Date(2025, time.January, 1, 12, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Neujahr", name)

	ok, _, err = IsHoliday(RegionBW, time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, ok)
}
