package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"

	"github.com/gorewood/quill/internal/output"
	"github.com/gorewood/quill/internal/search"
)

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	printer := output.NewPrinter(&buf, true, false)

	if err := FormatJSON(printer, []search.Result{testEntry()}); err != nil {
		t.Fatalf("FormatJSON() error = %v", err)
	}

	var got []search.Result
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("failed to parse JSON: %v\n%s", err, buf.String())
	}
	if diff := cmp.Diff([]search.Result{testEntry()}, got); diff != "" {
		t.Errorf("FormatJSON() mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatJSON_NilEntries(t *testing.T) {
	var buf bytes.Buffer
	printer := output.NewPrinter(&buf, true, false)

	if err := FormatJSON(printer, nil); err != nil {
		t.Fatalf("FormatJSON() error = %v", err)
	}
	if got := bytes.TrimSpace(buf.Bytes()); string(got) != "[]" {
		t.Errorf("FormatJSON(nil) = %s, want []", got)
	}
}

func TestWriteJSONFiles(t *testing.T) {
	dir := t.TempDir()
	entries := []search.Result{testEntry(), testEntry()}

	paths, err := WriteJSONFiles(entries, dir)
	if err != nil {
		t.Fatalf("WriteJSONFiles() error = %v", err)
	}
	want := []string{filepath.Join(dir, "2025-03-01.json"), filepath.Join(dir, "2025-03-01-2.json")}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Errorf("paths mismatch (-want +got):\n%s", diff)
	}

	data, err := os.ReadFile(paths[1])
	if err != nil {
		t.Fatal(err)
	}
	var got search.Result
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("file is not JSON: %v", err)
	}
	if got.Body != testEntry().Body {
		t.Errorf("body = %q", got.Body)
	}

	info, err := os.Stat(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("file mode = %o, want 600", perm)
	}
}
