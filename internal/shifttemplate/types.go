package shifttemplate

import (
	"database/sql/driver"

	"github.com/lib/pq"
)

// Value implements driver.Valuer for lib/pq smallint array encoding.
func (s WeekdaySet) Value() (driver.Value, error) {
	ints := make([]int64, len(s))
	for i, w := range s {
		ints[i] = int64(w)
	}
	return pq.Array(ints).Value()
}

// Scan implements sql.Scanner for lib/pq smallint array decoding.
func (s *WeekdaySet) Scan(src interface{}) error {
	var ints []int64
	if err := pq.Array(&ints).Scan(src); err != nil {
		return err
	}
	weekdays := make(WeekdaySet, len(ints))
	for i, v := range ints {
		weekdays[i] = int(v)
	}
	*s = weekdays
	return nil
}
