// Package diary provides the entry schema, validation, and the LaTeX record
// codec for the quill journal.
package diary

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the strict two-digit day/month/year layout embedded in record headers.
const DateLayout = "02/01/06"

// MaxSideNotes is the largest number of side-note boxes an entry can carry.
const MaxSideNotes = 2

// Entry represents a single diary entry.
type Entry struct {
	Date      time.Time `json:"date"`
	DayName   string    `json:"day_name"`
	Mood      Mood      `json:"mood"`
	Body      string    `json:"body"`
	SideNotes []string  `json:"side_notes,omitempty"`
}

// ValidationError is returned when entry validation fails.
type ValidationError struct {
	Fields  []string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
}

// AsValidationError checks if err is a ValidationError and extracts it.
func AsValidationError(err error, target **ValidationError) bool {
	return errors.As(err, target)
}

// NewEntry builds a validated entry. Body and notes are trimmed; blank notes
// are dropped so that a lone second note becomes the only note.
func NewEntry(date time.Time, mood Mood, body string, notes ...string) (*Entry, error) {
	entry := &Entry{
		Date:    truncateDay(date),
		DayName: date.Weekday().String(),
		Mood:    ParseMood(string(mood)),
		Body:    strings.TrimSpace(body),
	}
	for _, note := range notes {
		if note = strings.TrimSpace(note); note != "" {
			entry.SideNotes = append(entry.SideNotes, note)
		}
	}
	if err := entry.Validate(); err != nil {
		return nil, err
	}
	return entry, nil
}

// Validate checks that the entry can be encoded.
func (e *Entry) Validate() error {
	var missing []string
	if e.Date.IsZero() {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(e.Body) == "" {
		missing = append(missing, "body")
	}
	if len(missing) > 0 {
		return &ValidationError{
			Fields:  missing,
			Message: "missing required fields",
		}
	}
	if len(e.SideNotes) > MaxSideNotes {
		return &ValidationError{
			Fields:  []string{"side_notes"},
			Message: fmt.Sprintf("at most %d side notes allowed, got %d", MaxSideNotes, len(e.SideNotes)),
		}
	}
	return nil
}

// DateText returns the entry date in the header layout.
func (e *Entry) DateText() string {
	return e.Date.Format(DateLayout)
}

// truncateDay drops the time-of-day component, keeping the calendar date.
func truncateDay(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
