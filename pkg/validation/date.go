package validation

import "time"

const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD field, recording a field-scoped error on
// failure.
func ParseDate(e *Errors, field, value string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		e.Add(field, "must be a valid date (YYYY-MM-DD)")
		return time.Time{}, false
	}
	return t.UTC(), true
}
