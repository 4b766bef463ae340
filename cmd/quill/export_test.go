package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorewood/quill/internal/output"
)

// seedEntries writes a few entries across two months.
func seedEntries(t *testing.T, root string) {
	t.Helper()
	for _, args := range [][]string{
		{"write", "Late winter walk.", "--date", "28/02/25", "--mood", "relaxed"},
		{"write", "Coffee and code.", "--date", "03/03/25", "--mood", "tired"},
		{"write", "Release day.", "--date", "01/03/25", "--mood", "coding", "--note", "ship it"},
	} {
		if result := execute(t, root, "", args...); result.err != nil {
			t.Fatalf("%v error = %v\nstderr: %s", args, result.err, result.stderr)
		}
	}
}

func TestExport_JSONStdout(t *testing.T) {
	root := t.TempDir()
	seedEntries(t, root)

	result := execute(t, root, "", "export", "--from", "01/03/25", "--to", "31/03/25")
	if result.err != nil {
		t.Fatalf("export error = %v", result.err)
	}
	if !strings.HasPrefix(strings.TrimSpace(result.stdout), "[") {
		t.Fatalf("stdout should be a JSON array: %q", result.stdout)
	}
	for _, want := range []string{`"date": "01/03/25"`, `"date": "03/03/25"`, `"ship it"`} {
		if !strings.Contains(result.stdout, want) {
			t.Errorf("stdout missing %s:\n%s", want, result.stdout)
		}
	}
	if strings.Contains(result.stdout, "28/02/25") {
		t.Errorf("entry outside the range exported:\n%s", result.stdout)
	}
	if strings.Index(result.stdout, "01/03/25") > strings.Index(result.stdout, "03/03/25") {
		t.Errorf("entries should be oldest first:\n%s", result.stdout)
	}
}

func TestExport_MarkdownStdout(t *testing.T) {
	root := t.TempDir()
	seedEntries(t, root)

	result := execute(t, root, "", "export", "--from", "28/02/25", "--to", "01/03/25", "--format", "md")
	if result.err != nil {
		t.Fatalf("export error = %v", result.err)
	}
	for _, want := range []string{
		"# Friday 28/02/25 🍺",
		"# Saturday 01/03/25 💻",
		"source: 2025/March_2025.tex",
		"> ship it",
	} {
		if !strings.Contains(result.stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, result.stdout)
		}
	}
}

func TestExport_MarkdownDirectory(t *testing.T) {
	root := t.TempDir()
	seedEntries(t, root)
	out := filepath.Join(t.TempDir(), "notes")

	result := execute(t, root, "", "export", "--from", "01/02/25", "--to", "31/03/25", "--out", out)
	if result.err != nil {
		t.Fatalf("export error = %v", result.err)
	}
	if !strings.Contains(result.stdout, "Exported 3 entries to "+out) {
		t.Errorf("stdout = %q", result.stdout)
	}
	for _, name := range []string{"2025-02-28.md", "2025-03-01.md", "2025-03-03.md"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
}

func TestExport_JSONDirectorySummary(t *testing.T) {
	root := t.TempDir()
	seedEntries(t, root)
	out := t.TempDir()

	result := execute(t, root, "", "export", "--json", "--from", "01/03/25", "--to", "02/03/25",
		"--format", "json", "--out", out)
	if result.err != nil {
		t.Fatalf("export error = %v", result.err)
	}
	parsed := decodeJSON(t, result.stdout)
	if parsed["count"] != float64(1) || parsed["status"] != "ok" {
		t.Errorf("result = %v", parsed)
	}
	if _, err := os.Stat(filepath.Join(out, "2025-03-01.json")); err != nil {
		t.Errorf("json file not written: %v", err)
	}
}

func TestExport_EmptyRange(t *testing.T) {
	root := t.TempDir()

	result := execute(t, root, "", "export", "--from", "01/01/24", "--to", "31/01/24")
	if result.err != nil {
		t.Fatalf("export error = %v", result.err)
	}
	if strings.TrimSpace(result.stdout) != "[]" {
		t.Errorf("stdout = %q, want []", result.stdout)
	}
}

func TestExport_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{name: "bad format", args: []string{"--format", "pdf"}, wantMsg: "--format"},
		{name: "bad from", args: []string{"--from", "31/02/25", "--to", "01/03/25"}, wantMsg: "invalid date"},
		{name: "reversed", args: []string{"--from", "05/03/25", "--to", "01/03/25"}, wantMsg: "is after"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := execute(t, t.TempDir(), "", append([]string{"export"}, tt.args...)...)
			if result.err == nil {
				t.Fatal("expected error")
			}
			if code := output.GetExitCode(result.err); code != output.ExitUserError {
				t.Errorf("exit code = %d, want %d", code, output.ExitUserError)
			}
			if !strings.Contains(result.stderr, tt.wantMsg) {
				t.Errorf("stderr = %q, want it to contain %q", result.stderr, tt.wantMsg)
			}
		})
	}
}
