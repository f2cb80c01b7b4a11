// Package holiday computes statutory public holidays for the German states
// this service supports. Calculation is pure and closed-form: no database,
// no network calls, so the results are deterministic for a given year.
package holiday

import (
	"fmt"
	"time"
)

// ErrUnsupportedRegion is returned by Holidays for a region this package
// does not carry a holiday table for.
type ErrUnsupportedRegion struct {
	Region string
}

func (e *ErrUnsupportedRegion) Error() string {
	return fmt.Sprintf("unsupported holiday region: %s", e.Region)
}

// RegionBW is the only region currently wired: Baden-Württemberg.
const RegionBW = "BW"

// Holidays returns the statutory public holidays for the given region and
// year, keyed by date at UTC midnight, with German display names as values.
func Holidays(region string, year int) (map[time.Time]string, error) {
	switch region {
	case RegionBW:
		return bwHolidays(year), nil
	default:
		return nil, &ErrUnsupportedRegion{Region: region}
	}
}

// IsHoliday reports whether d is a statutory public holiday in region, and
// its display name if so.
func IsHoliday(region string, d time.Time) (bool, string, error) {
	holidays, err := Holidays(region, d.Year())
	if err != nil {
		return false, "", err
	}
	name, ok := holidays[dateOnly(d)]
	return ok, name, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// bwHolidays returns the fixed and Easter-derived statutory holidays for
// Baden-Württemberg in the given year.
func bwHolidays(year int) map[time.Time]string {
	e := easterSunday(year)

	d := func(month time.Month, day int) time.Time {
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	}

	holidays := map[time.Time]string{
		d(time.January, 1):     "Neujahr",
		d(time.January, 6):     "Heilige Drei Könige",
		e.AddDate(0, 0, -2):    "Karfreitag",
		e:                      "Ostersonntag",
		e.AddDate(0, 0, 1):     "Ostermontag",
		d(time.May, 1):         "Tag der Arbeit",
		e.AddDate(0, 0, 39):    "Christi Himmelfahrt",
		e.AddDate(0, 0, 49):    "Pfingstsonntag",
		e.AddDate(0, 0, 50):    "Pfingstmontag",
		e.AddDate(0, 0, 60):    "Fronleichnam",
		d(time.October, 3):     "Tag der Deutschen Einheit",
		d(time.November, 1):   "Allerheiligen",
		d(time.December, 25):  "1. Weihnachtstag",
		d(time.December, 26):  "2. Weihnachtstag",
	}
	return holidays
}

// easterSunday computes the date of Easter Sunday for the Gregorian
// calendar using the Gauss algorithm.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h+l-7*m+114)%31 + 1)

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
