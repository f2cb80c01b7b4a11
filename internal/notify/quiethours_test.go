package notify_test

import (
	"testing"

	"github.com/caretiv/scheduling-service/internal/notify"
	"github.com/stretchr/testify/assert"
)

func TestInQuietHours_WrapAroundMidnight(t *testing.T) {
	// Default quiet hours 21:00..07:00: suppressed from 21:00 through 06:59,
	// active again from 07:00.
	assert.True(t, notify.InQuietHours("22:00:00", "21:00:00", "07:00:00"))
	assert.True(t, notify.InQuietHours("03:30:00", "21:00:00", "07:00:00"))
	assert.True(t, notify.InQuietHours("21:00:00", "21:00:00", "07:00:00"))
	assert.False(t, notify.InQuietHours("07:00:00", "21:00:00", "07:00:00"))
	assert.False(t, notify.InQuietHours("12:00:00", "21:00:00", "07:00:00"))
}

func TestInQuietHours_NonWrapping(t *testing.T) {
	assert.True(t, notify.InQuietHours("13:00:00", "12:00:00", "14:00:00"))
	assert.False(t, notify.InQuietHours("11:00:00", "12:00:00", "14:00:00"))
	assert.False(t, notify.InQuietHours("14:00:00", "12:00:00", "14:00:00"))
}

func TestInQuietHours_EqualBoundsNeverSuppresses(t *testing.T) {
	assert.False(t, notify.InQuietHours("09:00:00", "09:00:00", "09:00:00"))
}

func TestInQuietHours_MalformedBoundsNeverSuppresses(t *testing.T) {
	assert.False(t, notify.InQuietHours("22:00:00", "not-a-time", "07:00:00"))
}
