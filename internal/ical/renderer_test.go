package ical_test

import (
	"strings"
	"testing"
	"time"

	"github.com/caretiv/scheduling-service/internal/ical"
	"github.com/caretiv/scheduling-service/internal/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestRender_UIDAndStatusMapping(t *testing.T) {
	empID := "emp-1"
	tplID := "tpl-1"
	sh := &shift.Shift{
		ID:         "shift-1",
		EmployeeID: &empID,
		TemplateID: &tplID,
		Date:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:  "08:00:00",
		EndTime:    "16:00:00",
		Status:     shift.StatusConfirmed,
	}

	lookup := ical.Context{
		Employees: map[string]ical.EmployeeInfo{empID: {FirstName: "Anna", LastName: "Keller"}},
		Templates: map[string]ical.TemplateInfo{tplID: {Name: "Frühdienst"}},
	}

	out, err := ical.Render([]*shift.Shift{sh}, lookup)
	require.NoError(t, err)

	assert.Contains(t, out, "UID:vera-shift-shift-1@vera")
	assert.Contains(t, out, "STATUS:CONFIRMED")
	assert.Contains(t, out, "SUMMARY:Frühdienst")
	assert.Contains(t, out, "DTSTART;TZID=Europe/Berlin:20260310T080000")
	assert.Contains(t, out, "DTEND;TZID=Europe/Berlin:20260310T160000")
	assert.True(t, strings.HasPrefix(out, "BEGIN:VCALENDAR"))
	assert.True(t, strings.HasSuffix(out, "END:VCALENDAR\r\n"))
}

func TestRender_MidnightCrossingAdvancesDTEND(t *testing.T) {
	empID := "emp-1"
	sh := &shift.Shift{
		ID:         "shift-night",
		EmployeeID: &empID,
		Date:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:  "22:00:00",
		EndTime:    "06:00:00",
		Status:     shift.StatusPlanned,
	}

	out, err := ical.Render([]*shift.Shift{sh}, ical.Context{})
	require.NoError(t, err)

	assert.Contains(t, out, "DTSTART;TZID=Europe/Berlin:20260310T220000")
	assert.Contains(t, out, "DTEND;TZID=Europe/Berlin:20260311T060000")
	assert.Contains(t, out, "STATUS:TENTATIVE")
	assert.Contains(t, out, "SUMMARY:Dienst")
}

func TestRender_SkipsUnassignedShifts(t *testing.T) {
	sh := &shift.Shift{
		ID:        "shift-open",
		Date:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime: "08:00:00",
		EndTime:   "16:00:00",
		Status:    shift.StatusPlanned,
	}

	out, err := ical.Render([]*shift.Shift{sh}, ical.Context{})
	require.NoError(t, err)
	assert.NotContains(t, out, "shift-open")
}

func TestRender_DescriptionEscapesAndJoinsLines(t *testing.T) {
	empID := "emp-1"
	sh := &shift.Shift{
		ID:           "shift-notes",
		EmployeeID:   &empID,
		Date:         time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:    "08:00:00",
		EndTime:      "16:00:00",
		BreakMinutes: 30,
		Notes:        strPtr("Vertretung, bitte pünktlich"),
		Status:       shift.StatusPlanned,
	}

	lookup := ical.Context{Employees: map[string]ical.EmployeeInfo{empID: {FirstName: "Max", LastName: "Muster"}}}
	out, err := ical.Render([]*shift.Shift{sh}, lookup)
	require.NoError(t, err)

	assert.Contains(t, out, `Vertretung\, bitte pünktlich`)
	assert.Contains(t, out, `Pause: 30 Min.\nNotiz`)
}
