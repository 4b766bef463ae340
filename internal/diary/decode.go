package diary

import (
	"strings"
	"time"
)

// Decoded holds the fields recovered from a serialized record.
type Decoded struct {
	DayName   string    `json:"day"`
	Date      time.Time `json:"date"`
	DateText  string    `json:"date_text"`
	Mood      Mood      `json:"mood"`
	Body      string    `json:"body"`
	SideNotes []string  `json:"side_notes,omitempty"`
	// Closed reports whether the record ended with the closing marker.
	Closed bool `json:"-"`
}

// Entry converts the decoded fields back into an Entry.
func (d Decoded) Entry() *Entry {
	return &Entry{
		Date:      d.Date,
		DayName:   d.DayName,
		Mood:      d.Mood,
		Body:      d.Body,
		SideNotes: d.SideNotes,
	}
}

// cursor walks a record left to right, locating delimiters in order.
type cursor struct {
	src string
	pos int
}

func (c *cursor) rest() string {
	return c.src[c.pos:]
}

// seek advances past the next occurrence of delim.
func (c *cursor) seek(delim string) bool {
	idx := strings.Index(c.rest(), delim)
	if idx < 0 {
		return false
	}
	c.pos += idx + len(delim)
	return true
}

// until returns the text up to the next delim and advances past it.
func (c *cursor) until(delim string) (string, bool) {
	idx := strings.Index(c.rest(), delim)
	if idx < 0 {
		return "", false
	}
	text := c.rest()[:idx]
	c.pos += idx + len(delim)
	return text, true
}

// skipLine advances to the start of the next line, or to the end.
func (c *cursor) skipLine() {
	idx := strings.IndexByte(c.rest(), '\n')
	if idx < 0 {
		c.pos = len(c.src)
		return
	}
	c.pos += idx + 1
}

// header is the fixed-position part of a record.
type header struct {
	dayName  string
	dateText string
	date     time.Time
}

// parseHeader reads \begin{diary}{Day}{DD/MM/YY}, leaving the cursor just
// after the date's closing brace.
func parseHeader(c *cursor) (header, bool) {
	if !c.seek(HeaderMarker) {
		return header{}, false
	}
	day, ok := c.until("}")
	if !ok || day == "" || strings.ContainsAny(day, "{\n") {
		return header{}, false
	}
	if !strings.HasPrefix(c.rest(), "{") {
		return header{}, false
	}
	c.pos++
	dateText, ok := c.until("}")
	if !ok || !isStrictDate(dateText) {
		return header{}, false
	}
	date, err := time.Parse(DateLayout, dateText)
	if err != nil {
		return header{}, false
	}
	return header{dayName: day, dateText: dateText, date: date}, true
}

// isStrictDate reports whether s has the shape DD/MM/YY with digits only.
func isStrictDate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if i == 2 || i == 5 {
			if s[i] != '/' {
				return false
			}
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// DecodeDate extracts the header date from a record. It reports false when
// the header is absent or its date is malformed; such records sort last.
func DecodeDate(record string) (time.Time, bool) {
	h, ok := parseHeader(&cursor{src: record})
	if !ok {
		return time.Time{}, false
	}
	return h.date, true
}

// DecodeFull recovers the structured fields of a record. It reports false
// when the header cannot be located. The scan is positional: the body runs
// from the line after the mood box to the first container or the closing
// marker, whichever comes first.
func DecodeFull(record string) (Decoded, bool) {
	c := &cursor{src: record}
	h, ok := parseHeader(c)
	if !ok {
		return Decoded{}, false
	}
	c.skipLine()

	// Everything after the closing marker belongs to some other record.
	limit := len(record)
	closed := false
	if idx := strings.Index(c.rest(), ClosingMarker); idx >= 0 {
		limit = c.pos + idx
		closed = true
	}
	c = &cursor{src: record[:limit], pos: c.pos}

	decoded := Decoded{
		DayName:  h.dayName,
		Date:     h.date,
		DateText: h.dateText,
		Mood:     DefaultMood,
		Closed:   closed,
	}
	decoded.Mood = decodeMood(c)

	bodyEnd := len(c.src)
	if idx := strings.Index(c.rest(), ContainerMarker); idx >= 0 {
		bodyEnd = c.pos + idx
	}
	decoded.Body = strings.TrimSpace(c.src[c.pos:bodyEnd])

	c.pos = bodyEnd
	decoded.SideNotes = decodeSideNotes(c)
	return decoded, true
}

// decodeMood reads the mood box when it is the first non-blank line after
// the header and leaves the cursor at the start of the body.
func decodeMood(c *cursor) Mood {
	ahead := &cursor{src: c.src, pos: c.pos}
	for {
		line := ahead.rest()
		if idx := strings.IndexByte(line, '\n'); idx >= 0 {
			line = line[:idx]
		}
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			if ahead.pos >= len(ahead.src) {
				return DefaultMood
			}
			ahead.skipLine()
			continue
		}
		if !strings.HasPrefix(trimmed, MoodMarker) {
			return DefaultMood
		}
		inner := strings.TrimPrefix(trimmed, MoodMarker)
		end := strings.IndexByte(inner, '}')
		if end < 0 {
			return DefaultMood
		}
		ahead.skipLine()
		c.pos = ahead.pos
		return ParseMood(inner[:end])
	}
}

// decodeSideNotes collects every minipage body in order.
func decodeSideNotes(c *cursor) []string {
	var notes []string
	for c.seek(minipageMarker) {
		// Skip the optional [t] and the width argument.
		if !c.seek("{") {
			break
		}
		if _, ok := c.until("}"); !ok {
			break
		}
		note, ok := c.until(minipageEnd)
		if !ok {
			break
		}
		notes = append(notes, strings.TrimSpace(note))
	}
	return notes
}
