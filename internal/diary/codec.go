package diary

import (
	"fmt"
	"strings"
)

// Fixed delimiters of the record format. The format has no escaping: a body
// or note that contains one of these literals will be mis-split on decode.
const (
	HeaderMarker    = `\begin{diary}{`
	MoodMarker      = `\mybox{`
	ClosingMarker   = `\end{diary}`
	ContainerMarker = `\noindent\fcolorbox`
	minipageMarker  = `\minipage`
	minipageEnd     = `\endminipage`
)

// Container widths as a fraction of \linewidth.
const (
	fullWidth = "0.98"
	halfWidth = "0.48"
)

// Encode renders the entry as a LaTeX diary record. The output always ends
// with the closing marker followed by a newline.
func Encode(entry *Entry) (string, error) {
	if entry == nil {
		return "", &ValidationError{Fields: []string{"entry"}, Message: "missing required fields"}
	}
	if err := entry.Validate(); err != nil {
		return "", err
	}

	var builder strings.Builder
	writeHeader(&builder, entry)
	writeSideNotes(&builder, entry.SideNotes)
	builder.WriteString("\n" + ClosingMarker + "\n")
	return builder.String(), nil
}

// writeHeader writes the comment line, the diary header, the mood box and the body.
func writeHeader(builder *strings.Builder, entry *Entry) {
	date := entry.DateText()
	dayName := entry.DayName
	if dayName == "" {
		dayName = entry.Date.Weekday().String()
	}
	mood := ParseMood(string(entry.Mood))

	fmt.Fprintf(builder, "%% %s - %s Notes\n\n", date, entry.Date.Format("2006 January"))
	fmt.Fprintf(builder, "%s%s}{%s}\n", HeaderMarker, dayName, date)
	fmt.Fprintf(builder, "    %s\\%s}\n", MoodMarker, mood)
	builder.WriteString(strings.TrimSpace(entry.Body))
	builder.WriteString("\n")
}

// writeSideNotes writes one full-width box for a single note or two
// half-width boxes side by side for two notes. No notes writes nothing.
func writeSideNotes(builder *strings.Builder, notes []string) {
	switch len(notes) {
	case 1:
		builder.WriteString("\n")
		writeBox(builder, fullWidth, notes[0], true)
	case 2:
		builder.WriteString("\n")
		writeBox(builder, halfWidth, notes[0], true)
		builder.WriteString(`\hfill` + "\n")
		writeBox(builder, halfWidth, notes[1], false)
	}
}

// writeBox writes a single coloured minipage container without a trailing newline.
func writeBox(builder *strings.Builder, width, note string, noindent bool) {
	if noindent {
		builder.WriteString(`\noindent`)
	}
	builder.WriteString(`\fcolorbox{red}{yellow}{%` + "\n")
	fmt.Fprintf(builder, "    %s[t]{\\dimexpr%s\\linewidth-2\\fboxsep-2\\fboxrule\\relax}\n", minipageMarker, width)
	fmt.Fprintf(builder, "    %s\n", strings.TrimSpace(note))
	builder.WriteString("    " + minipageEnd + "}")
}

// SplitRecords cuts file content into records on the closing marker. Each
// record keeps its closing marker and is trimmed; chunks without a header
// are discarded. A header-bearing tail after the last closing marker is kept
// as a record and closed. Any other text after the last closing marker is
// returned as trailing so callers can report it.
func SplitRecords(content string) (records []string, trailing string) {
	rest := content
	for {
		idx := strings.Index(rest, ClosingMarker)
		if idx < 0 {
			break
		}
		end := idx + len(ClosingMarker)
		chunk := strings.TrimSpace(rest[:end])
		rest = rest[end:]
		if strings.Contains(chunk, HeaderMarker) {
			records = append(records, chunk)
		}
	}
	tail := strings.TrimSpace(rest)
	if strings.Contains(tail, HeaderMarker) {
		return append(records, tail+"\n"+ClosingMarker), ""
	}
	return records, tail
}

// JoinRecords joins trimmed records with a single blank line and terminates
// the content with a newline. An empty slice yields an empty string.
func JoinRecords(records []string) string {
	if len(records) == 0 {
		return ""
	}
	trimmed := make([]string, len(records))
	for i, r := range records {
		trimmed[i] = strings.TrimSpace(r)
	}
	return strings.Join(trimmed, "\n\n") + "\n"
}
