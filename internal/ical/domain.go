// Package ical renders a tenant or employee's shifts as an RFC 5545
// VCALENDAR feed. The only consumer is the unauthenticated iCal export
// endpoint: possession of the token is the access control, so nothing in
// here touches RLS or the authenticated actor.
package ical

import "time"

// berlin is loaded once; every DTSTART/DTEND is rendered in this zone
// regardless of the tenant's configured timezone, matching the calendar
// apps most of vera's German customers actually use.
var berlin *time.Location

func init() {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		// Europe/Berlin ships with every tzdata build Go targets; a
		// missing entry means a broken container image, not bad input.
		panic("ical: failed to load Europe/Berlin: " + err.Error())
	}
	berlin = loc
}

// EmployeeInfo is the slice of employee.Employee the renderer needs for one
// shift's DESCRIPTION line.
type EmployeeInfo struct {
	FirstName string
	LastName  string
}

// TemplateInfo is the slice of shifttemplate.ShiftTemplate the renderer
// needs for SUMMARY.
type TemplateInfo struct {
	Name string
}

// Context bundles the eager-loaded lookups a batch of shifts is rendered
// against: shift.EmployeeID/TemplateID index into these maps, never a
// second round trip per event.
type Context struct {
	Employees map[string]EmployeeInfo
	Templates map[string]TemplateInfo
}
