// Package skipset builds the set of calendar dates that the recurring-shift
// expander must not generate a shift on: vacation periods, custom holidays,
// and (optionally) statutory public holidays. It is pure: no database, no
// network, deterministic given a profile detail and a set of years.
package skipset

import (
	"time"

	"github.com/caretiv/scheduling-service/internal/holiday"
	"github.com/caretiv/scheduling-service/internal/holidayprofile"
)

// Set is a lookup of skip-dates at UTC midnight.
type Set map[time.Time]struct{}

// Contains reports whether d falls on a skip-date.
func (s Set) Contains(d time.Time) bool {
	_, ok := s[dateOnly(d)]
	return ok
}

// Build assembles the skip set for a holiday profile detail across the given
// years. A nil detail yields a skip set containing only statutory public
// holidays (if skipPublicHolidays is true and a region is given), matching
// the behavior of a tenant with no active profile.
func Build(detail *holidayprofile.Detail, region string, skipPublicHolidays bool, years []int) (Set, error) {
	skip := make(Set)

	if detail != nil {
		for _, period := range detail.VacationPeriods {
			for d := dateOnly(period.StartDate); !d.After(dateOnly(period.EndDate)); d = d.AddDate(0, 0, 1) {
				skip[d] = struct{}{}
			}
		}
		for _, ch := range detail.CustomHolidays {
			skip[dateOnly(ch.Date)] = struct{}{}
		}
	}

	if skipPublicHolidays && region != "" {
		for _, year := range years {
			holidays, err := holiday.Holidays(region, year)
			if err != nil {
				return nil, err
			}
			for d := range holidays {
				skip[d] = struct{}{}
			}
		}
	}

	return skip, nil
}

// YearsBetween returns the distinct calendar years spanned by [start, end],
// inclusive, for use as Build's years argument.
func YearsBetween(start, end time.Time) []int {
	if end.Before(start) {
		start, end = end, start
	}
	years := make([]int, 0, end.Year()-start.Year()+1)
	for y := start.Year(); y <= end.Year(); y++ {
		years = append(years, y)
	}
	return years
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
