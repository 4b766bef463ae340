// Package catalog discovers the year/month partitions of a quill diary and
// owns the month-name table shared by the store and search.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultExt is the partition file extension used when none is configured.
const DefaultExt = ".tex"

// monthNumbers maps full and three-letter month names to their number.
// Partitions are written with full names; abbreviations are read for
// hand-made files.
var monthNumbers = map[string]time.Month{
	"January": time.January, "Jan": time.January,
	"February": time.February, "Feb": time.February,
	"March": time.March, "Mar": time.March,
	"April": time.April, "Apr": time.April,
	"May":  time.May,
	"June": time.June, "Jun": time.June,
	"July": time.July, "Jul": time.July,
	"August": time.August, "Aug": time.August,
	"September": time.September, "Sep": time.September,
	"October": time.October, "Oct": time.October,
	"November": time.November, "Nov": time.November,
	"December": time.December, "Dec": time.December,
}

// MonthNumber resolves a full or abbreviated English month name.
func MonthNumber(name string) (time.Month, bool) {
	m, ok := monthNumbers[name]
	return m, ok
}

// PartitionName returns the file name of a month partition,
// e.g. "March_2025.tex".
func PartitionName(year int, month time.Month, ext string) string {
	return fmt.Sprintf("%s_%d%s", month.String(), year, normalizeExt(ext))
}

// YearDir returns the directory name for a year.
func YearDir(year int) string {
	return strconv.Itoa(year)
}

// Partition is one month file on disk.
type Partition struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	Path  string     `json:"path"`
}

// Name returns the partition file name without extension, e.g. "March_2025".
func (p Partition) Name() string {
	base := filepath.Base(p.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Catalog reads the partition layout under a diary root.
type Catalog struct {
	root string
	ext  string
}

// New creates a Catalog for root. An empty ext uses DefaultExt.
func New(root, ext string) *Catalog {
	return &Catalog{root: root, ext: normalizeExt(ext)}
}

// Root returns the diary root directory.
func (c *Catalog) Root() string {
	return c.root
}

// Ext returns the partition file extension, including the dot.
func (c *Catalog) Ext() string {
	return c.ext
}

// PartitionPath returns the path of the partition for year and month.
func (c *Catalog) PartitionPath(year int, month time.Month) string {
	return filepath.Join(c.root, YearDir(year), PartitionName(year, month, c.ext))
}

// Years returns the numeric year directories in ascending order.
// A missing root yields no years.
func (c *Catalog) Years() ([]int, error) {
	dirEntries, err := os.ReadDir(c.root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("catalog: read root: %w", err)
	}

	var years []int
	for _, d := range dirEntries {
		if !d.IsDir() || !isDigits(d.Name()) {
			continue
		}
		year, convErr := strconv.Atoi(d.Name())
		if convErr != nil {
			continue
		}
		years = append(years, year)
	}
	sort.Ints(years)
	return years, nil
}

// ListPartitionsChronological returns every <Month>_<year> partition,
// years ascending and months ascending within a year. Files whose month
// prefix is not in the table are ignored.
func (c *Catalog) ListPartitionsChronological() ([]Partition, error) {
	years, err := c.Years()
	if err != nil {
		return nil, err
	}

	var out []Partition
	for _, year := range years {
		parts, _, err := c.scanYear(year)
		if err != nil {
			return nil, err
		}
		out = append(out, parts...)
	}
	return out, nil
}

// YearFiles returns every file with the partition extension in the year's
// directory: recognised partitions in month order first, then any other
// files by name. A missing year directory yields nothing.
func (c *Catalog) YearFiles(year int) ([]string, error) {
	parts, others, err := c.scanYear(year)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(parts)+len(others))
	for _, p := range parts {
		files = append(files, p.Path)
	}
	return append(files, others...), nil
}

// scanYear splits a year directory into named partitions and other files.
func (c *Catalog) scanYear(year int) ([]Partition, []string, error) {
	dir := filepath.Join(c.root, YearDir(year))
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("catalog: read year %d: %w", year, err)
	}

	suffix := "_" + strconv.Itoa(year) + c.ext
	var parts []Partition
	var others []string
	for _, d := range dirEntries {
		name := d.Name()
		if d.IsDir() || !strings.HasSuffix(name, c.ext) {
			continue
		}
		path := filepath.Join(dir, name)
		month, ok := MonthNumber(strings.TrimSuffix(name, suffix))
		if !strings.HasSuffix(name, suffix) || !ok {
			others = append(others, path)
			continue
		}
		parts = append(parts, Partition{Year: year, Month: month, Path: path})
	}

	// ReadDir is name-ordered, so a stable sort keeps March_ and Mar_ in
	// name order when both exist.
	sort.SliceStable(parts, func(i, j int) bool {
		return parts[i].Month < parts[j].Month
	})
	return parts, others, nil
}

func normalizeExt(ext string) string {
	if ext == "" {
		return DefaultExt
	}
	if !strings.HasPrefix(ext, ".") {
		return "." + ext
	}
	return ext
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
