// Package search finds diary entries by date across a year's partitions.
package search

import (
	"errors"
	"os"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/gorewood/quill/internal/catalog"
	"github.com/gorewood/quill/internal/diary"
)

// Result is one matching entry, decoded for display.
type Result struct {
	Path      string     `json:"path"`
	Date      string     `json:"date"`
	Day       string     `json:"day"`
	Mood      diary.Mood `json:"mood"`
	Emoji     string     `json:"emoji"`
	Body      string     `json:"body"`
	SideNotes []string   `json:"side_notes,omitempty"`
}

// Stats describes what a search scanned.
type Stats struct {
	Files      int // Partition files read
	Records    int // Records found in those files
	Skipped    int // Records whose header could not be decoded
	Unreadable int // Files that could not be read
}

// Engine searches the partitions of one diary root.
type Engine struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// New creates an Engine. A nil logger disables logging.
func New(cat *catalog.Catalog, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{catalog: cat, logger: logger}
}

// FindByDate returns every entry dated date, in file-encounter order.
func (e *Engine) FindByDate(date time.Time) ([]Result, error) {
	results, _, err := e.FindByDateWithStats(date)
	return results, err
}

// FindByDateWithStats is FindByDate plus scan statistics.
//
// All partitions of the date's year are scanned, not only the month's,
// so entries filed under the wrong month are still found. A missing year
// directory is an empty result. Unreadable files and undecodable records
// are skipped and counted.
func (e *Engine) FindByDateWithStats(date time.Time) ([]Result, *Stats, error) {
	stats := &Stats{}
	query := date.Format(diary.DateLayout)

	files, err := e.catalog.YearFiles(date.Year())
	if err != nil {
		return nil, stats, err
	}

	var results []Result
	e.scan(files, stats, func(path string, d diary.Decoded) {
		if d.DateText == query {
			results = append(results, toResult(path, d))
		}
	})
	return results, stats, nil
}

// FindInRange returns the entries dated from..to inclusive, ordered by date
// and then by file-encounter order. Only the years the range touches are
// scanned.
func (e *Engine) FindInRange(from, to time.Time) ([]Result, *Stats, error) {
	stats := &Stats{}
	from, to = midnight(from), midnight(to)
	if to.Before(from) {
		return nil, stats, nil
	}

	type dated struct {
		date   time.Time
		result Result
	}
	var found []dated
	for year := from.Year(); year <= to.Year(); year++ {
		files, err := e.catalog.YearFiles(year)
		if err != nil {
			return nil, stats, err
		}
		e.scan(files, stats, func(path string, d diary.Decoded) {
			if d.Date.Before(from) || d.Date.After(to) {
				return
			}
			found = append(found, dated{date: d.Date, result: toResult(path, d)})
		})
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].date.Before(found[j].date)
	})
	results := make([]Result, len(found))
	for i, f := range found {
		results[i] = f.result
	}
	return results, stats, nil
}

// scan decodes every record of files, calling visit for each decodable one.
func (e *Engine) scan(files []string, stats *Stats, visit func(path string, d diary.Decoded)) {
	for _, path := range files {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			if !errors.Is(readErr, os.ErrNotExist) {
				e.logger.Warn("skipping unreadable partition",
					zap.String("path", path), zap.Error(readErr))
			}
			stats.Unreadable++
			continue
		}
		stats.Files++

		records, _ := diary.SplitRecords(string(data))
		for _, record := range records {
			stats.Records++
			decoded, ok := diary.DecodeFull(record)
			if !ok {
				stats.Skipped++
				e.logger.Debug("skipping undecodable record", zap.String("path", path))
				continue
			}
			visit(path, decoded)
		}
	}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func toResult(path string, d diary.Decoded) Result {
	return Result{
		Path:      path,
		Date:      d.DateText,
		Day:       d.DayName,
		Mood:      d.Mood,
		Emoji:     d.Mood.Symbol(),
		Body:      d.Body,
		SideNotes: d.SideNotes,
	}
}
