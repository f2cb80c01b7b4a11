package employee

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"
)

// StringSet is a small unordered collection of strings (qualifications,
// required skills) stored as a Postgres text array.
type StringSet []string

// Value implements driver.Valuer for lib/pq text array encoding.
func (s StringSet) Value() (driver.Value, error) {
	return pq.Array([]string(s)).Value()
}

// Scan implements sql.Scanner for lib/pq text array decoding.
func (s *StringSet) Scan(src interface{}) error {
	return pq.Array((*[]string)(s)).Scan(src)
}

// Has reports whether value is a member of the set.
func (s StringSet) Has(value string) bool {
	for _, v := range s {
		if v == value {
			return true
		}
	}
	return false
}

// NotificationPrefs are the per-event-type delivery toggles for an employee,
// stored as a JSONB column. The zero value means "use the defaults".
type NotificationPrefs struct {
	ShiftAssigned    bool `json:"shiftAssigned"`
	ShiftReminder    bool `json:"shiftReminder"`
	ShiftCancelled   bool `json:"shiftCancelled"`
	AbsenceDecided   bool `json:"absenceDecided"`
	ComplianceAlert  bool `json:"complianceAlert"`
}

// DefaultNotificationPrefs is what a newly created employee is opted into.
func DefaultNotificationPrefs() NotificationPrefs {
	return NotificationPrefs{
		ShiftAssigned:   true,
		ShiftReminder:   true,
		ShiftCancelled:  true,
		AbsenceDecided:  true,
		ComplianceAlert: true,
	}
}

// Value implements driver.Valuer, marshaling to JSON for a jsonb column.
func (p NotificationPrefs) Value() (driver.Value, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner, unmarshaling a jsonb column.
func (p *NotificationPrefs) Scan(src interface{}) error {
	if src == nil {
		*p = NotificationPrefs{}
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("employee: cannot scan %T into NotificationPrefs", src)
	}
	if len(b) == 0 {
		*p = NotificationPrefs{}
		return nil
	}
	return json.Unmarshal(b, p)
}
