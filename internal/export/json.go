package export

import (
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/gorewood/quill/internal/output"
	"github.com/gorewood/quill/internal/search"
)

// FormatJSON outputs the entries as a JSON array to the printer.
func FormatJSON(printer *output.Printer, entries []search.Result) error {
	if entries == nil {
		entries = []search.Result{}
	}
	return printer.WriteJSON(entries)
}

// WriteJSONFiles writes each entry as a separate JSON file to dir.
func WriteJSONFiles(entries []search.Result, dir string) ([]string, error) {
	names := FileNames(entries, ".json")
	paths := make([]string, 0, len(entries))
	for i, entry := range entries {
		path := filepath.Join(dir, names[i])

		data, err := json.MarshalIndent(entry, "", "  ")
		if err != nil {
			return paths, output.NewSystemErrorWithCause("failed to marshal entry for "+entry.Date, err)
		}
		if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
			return paths, output.NewSystemErrorWithCause("failed to write file "+path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
