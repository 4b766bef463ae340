package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/quill/internal/diary"
	"github.com/gorewood/quill/internal/output"
	"github.com/gorewood/quill/internal/search"
)

// Schema identifies the export layout in frontmatter.
const Schema = "quill.export/v1"

// frontmatter is the YAML header of an exported entry.
type frontmatter struct {
	Schema string `yaml:"schema"`
	Date   string `yaml:"date"`
	Day    string `yaml:"day"`
	Mood   string `yaml:"mood"`
	Source string `yaml:"source,omitempty"`
}

// FormatMarkdown formats a single entry as a markdown document. root, when
// not empty, makes the source path relative to the diary root.
func FormatMarkdown(entry search.Result, root string) string {
	var builder strings.Builder

	writeFrontmatter(&builder, entry, root)
	fmt.Fprintf(&builder, "# %s %s %s\n\n", entry.Day, entry.Date, entry.Emoji)
	builder.WriteString(entry.Body)
	builder.WriteString("\n")
	for _, note := range entry.SideNotes {
		builder.WriteString("\n")
		for _, line := range strings.Split(note, "\n") {
			builder.WriteString(strings.TrimRight("> "+line, " ") + "\n")
		}
	}
	return builder.String()
}

func writeFrontmatter(builder *strings.Builder, entry search.Result, root string) {
	meta := frontmatter{
		Schema: Schema,
		Date:   isoDate(entry.Date),
		Day:    entry.Day,
		Mood:   string(entry.Mood),
		Source: sourcePath(entry.Path, root),
	}
	data, err := yaml.Marshal(meta)
	if err != nil {
		// A struct of strings always marshals.
		panic(fmt.Sprintf("marshal frontmatter: %v", err))
	}
	builder.WriteString("---\n")
	builder.Write(data)
	builder.WriteString("---\n\n")
}

// WriteMarkdownFiles writes each entry as a separate markdown file to dir.
func WriteMarkdownFiles(entries []search.Result, dir, root string) ([]string, error) {
	names := FileNames(entries, ".md")
	paths := make([]string, 0, len(entries))
	for i, entry := range entries {
		path := filepath.Join(dir, names[i])
		if err := os.WriteFile(path, []byte(FormatMarkdown(entry, root)), 0o600); err != nil {
			return paths, output.NewSystemErrorWithCause("failed to write file "+path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// FileNames returns one file name per entry: the ISO date plus ext, with a
// counter for repeated days.
func FileNames(entries []search.Result, ext string) []string {
	seen := make(map[string]int, len(entries))
	names := make([]string, len(entries))
	for i, entry := range entries {
		base := isoDate(entry.Date)
		seen[base]++
		if n := seen[base]; n > 1 {
			base = fmt.Sprintf("%s-%d", base, n)
		}
		names[i] = base + ext
	}
	return names
}

// isoDate converts a DD/MM/YY header date to YYYY-MM-DD, returning the
// input unchanged if it does not parse.
func isoDate(dateText string) string {
	date, err := time.Parse(diary.DateLayout, dateText)
	if err != nil {
		return dateText
	}
	return date.Format(time.DateOnly)
}

func sourcePath(path, root string) string {
	if root == "" || path == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
