package diary

import (
	"fmt"
	"strings"
	"time"
)

// ParseDate parses user date input for a new entry. It accepts "today" or
// DD/MM/YY and rejects dates after now.
func ParseDate(input string, now time.Time) (time.Time, error) {
	date, err := ParseDateText(input, now)
	if err != nil {
		return time.Time{}, err
	}
	if date.After(truncateDay(now)) {
		return time.Time{}, &ValidationError{
			Fields:  []string{"date"},
			Message: "cannot enter a future date",
		}
	}
	return date, nil
}

// ParseDateText parses "today" or a strict DD/MM/YY string without any
// range check. Empty input means today.
func ParseDateText(input string, now time.Time) (time.Time, error) {
	value := strings.ToLower(strings.TrimSpace(input))
	if value == "" || value == "today" {
		return truncateDay(now), nil
	}
	invalid := &ValidationError{
		Fields:  []string{"date"},
		Message: fmt.Sprintf("invalid date %q; use dd/mm/yy", input),
	}
	if !isStrictDate(value) {
		return time.Time{}, invalid
	}
	date, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, invalid
	}
	return date, nil
}
