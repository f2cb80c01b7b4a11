package notify

import "time"

// InQuietHours reports whether clockTime (the employee's local wall clock,
// "HH:MM" or "HH:MM:SS") falls in [start, end). When start > end the window
// wraps past midnight (e.g. 21:00..07:00 covers the whole night). Malformed
// bounds never suppress delivery.
func InQuietHours(clockTime, start, end string) bool {
	now, err := parseClock(clockTime)
	if err != nil {
		return false
	}
	s, err := parseClock(start)
	if err != nil {
		return false
	}
	e, err := parseClock(end)
	if err != nil {
		return false
	}

	if s.Equal(e) {
		return false
	}
	if s.Before(e) {
		return !now.Before(s) && now.Before(e)
	}
	// Wraps past midnight: in-window if at or after start, or before end.
	return !now.Before(s) || now.Before(e)
}

func parseClock(s string) (time.Time, error) {
	if t, err := time.Parse("15:04:05", s); err == nil {
		return t, nil
	}
	return time.Parse("15:04", s)
}
