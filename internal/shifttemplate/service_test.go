package shifttemplate_test

import (
	"testing"

	"github.com/caretiv/scheduling-service/internal/shifttemplate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Create_RejectsEmptyWeekdays(t *testing.T) {
	repo, mockDB := newRepo(t)
	svc := shifttemplate.NewService(repo)

	err := svc.Create(nil, &shifttemplate.ShiftTemplate{Name: "x", StartTime: "06:00:00", EndTime: "14:00:00"})
	require.Error(t, err)
	mockDB.ExpectationsWereMet(t)
}

func TestService_Create_RejectsOutOfRangeWeekday(t *testing.T) {
	repo, mockDB := newRepo(t)
	svc := shifttemplate.NewService(repo)

	err := svc.Create(nil, &shifttemplate.ShiftTemplate{
		Name: "x", Weekdays: shifttemplate.WeekdaySet{7}, StartTime: "06:00:00", EndTime: "14:00:00",
	})
	require.Error(t, err)
	mockDB.ExpectationsWereMet(t)
}

func TestHasWeekday(t *testing.T) {
	tmpl := &shifttemplate.ShiftTemplate{Weekdays: shifttemplate.WeekdaySet{0, 6}}
	assert.True(t, tmpl.HasWeekday(0))
	assert.True(t, tmpl.HasWeekday(6))
	assert.False(t, tmpl.HasWeekday(3))
}
