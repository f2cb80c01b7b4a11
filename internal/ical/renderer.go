package ical

import (
	"fmt"
	"strings"
	"time"

	"github.com/caretiv/scheduling-service/internal/shift"
)

const dateTimeLayout = "20060102T150405"

// Render builds a complete VCALENDAR document for shifts, resolving each
// shift's template/employee names against lookup. Shifts with no employee
// assigned are skipped: an open, unclaimed shift has nothing to notify
// anyone about.
func Render(shifts []*shift.Shift, lookup Context) (string, error) {
	var b strings.Builder
	b.WriteString("BEGIN:VCALENDAR\r\n")
	b.WriteString("VERSION:2.0\r\n")
	b.WriteString("PRODID:-//vera//scheduling-service//DE\r\n")
	b.WriteString("CALSCALE:GREGORIAN\r\n")

	for _, sh := range shifts {
		if sh.EmployeeID == nil {
			continue
		}
		event, err := renderEvent(sh, lookup)
		if err != nil {
			return "", fmt.Errorf("shift %s: %w", sh.ID, err)
		}
		b.WriteString(event)
	}

	b.WriteString("END:VCALENDAR\r\n")
	return b.String(), nil
}

func renderEvent(sh *shift.Shift, lookup Context) (string, error) {
	start, end, err := shiftBounds(sh)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("BEGIN:VEVENT\r\n")
	fmt.Fprintf(&b, "UID:vera-shift-%s@vera\r\n", sh.ID)
	fmt.Fprintf(&b, "DTSTAMP:%s\r\n", time.Now().UTC().Format(dateTimeLayout)+"Z")
	fmt.Fprintf(&b, "DTSTART;TZID=Europe/Berlin:%s\r\n", start.Format(dateTimeLayout))
	fmt.Fprintf(&b, "DTEND;TZID=Europe/Berlin:%s\r\n", end.Format(dateTimeLayout))
	fmt.Fprintf(&b, "SUMMARY:%s\r\n", escapeText(summaryFor(sh, lookup)))
	fmt.Fprintf(&b, "STATUS:%s\r\n", statusFor(sh))
	fmt.Fprintf(&b, "DESCRIPTION:%s\r\n", descriptionFor(sh, lookup))
	b.WriteString("END:VEVENT\r\n")
	return b.String(), nil
}

// shiftBounds combines a shift's Date with its HH:MM:SS start/end times in
// Europe/Berlin, advancing DTEND by a day when the shift crosses midnight
// (end time not after start time).
func shiftBounds(sh *shift.Shift) (time.Time, time.Time, error) {
	start, err := combineDateTime(sh.Date, sh.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start_time: %w", err)
	}
	end, err := combineDateTime(sh.Date, sh.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end_time: %w", err)
	}
	if !end.After(start) {
		end = end.AddDate(0, 0, 1)
	}
	return start, end, nil
}

func combineDateTime(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04:05", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), t.Second(), 0, berlin), nil
}

func summaryFor(sh *shift.Shift, lookup Context) string {
	if sh.TemplateID != nil {
		if tpl, ok := lookup.Templates[*sh.TemplateID]; ok && tpl.Name != "" {
			return tpl.Name
		}
	}
	return "Dienst"
}

// statusFor maps confirmed/completed shifts to CONFIRMED and everything
// else (planned, cancelled, cancelledAbsence) to TENTATIVE: a calendar
// client has no use for a cancelled-but-still-CONFIRMED entry.
func statusFor(sh *shift.Shift) string {
	switch sh.Status {
	case shift.StatusConfirmed, shift.StatusCompleted:
		return "CONFIRMED"
	default:
		return "TENTATIVE"
	}
}

// descriptionFor builds the multi-line DESCRIPTION block. Each line is
// escaped on its own before joining with a literal "\n" token, since that
// token is itself the RFC 5545 newline escape and must survive
// escapeText's backslash-doubling untouched.
func descriptionFor(sh *shift.Shift, lookup Context) string {
	lines := []string{
		"Status: " + statusLabel(sh.Status),
	}
	if sh.EmployeeID != nil {
		if emp, ok := lookup.Employees[*sh.EmployeeID]; ok {
			lines = append(lines, "Mitarbeiter: "+emp.FirstName+" "+emp.LastName)
		}
	}
	if sh.BreakMinutes > 0 {
		lines = append(lines, fmt.Sprintf("Pause: %d Min.", sh.BreakMinutes))
	}
	if sh.Notes != nil && *sh.Notes != "" {
		lines = append(lines, "Notiz: "+*sh.Notes)
	}
	for i, l := range lines {
		lines[i] = escapeText(l)
	}
	return strings.Join(lines, "\\n")
}

func statusLabel(s shift.Status) string {
	switch s {
	case shift.StatusPlanned:
		return "geplant"
	case shift.StatusConfirmed:
		return "bestätigt"
	case shift.StatusCompleted:
		return "abgeschlossen"
	case shift.StatusCancelled:
		return "storniert"
	case shift.StatusCancelledAbsence:
		return "storniert (Abwesenheit)"
	default:
		return string(s)
	}
}

// escapeText escapes the characters RFC 5545 §3.3.11 requires for TEXT
// values. Newlines are expected to already be encoded as literal "\n" by
// the caller, so only backslash/comma/semicolon need handling here.
func escapeText(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`,`, `\,`,
		`;`, `\;`,
	)
	return r.Replace(s)
}
