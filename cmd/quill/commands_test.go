package main

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/gorewood/quill/internal/output"
)

func TestWrite_StoresEntryAndRebuilds(t *testing.T) {
	root := t.TempDir()

	result := execute(t, root, "", "write", "Went for a run.", "--date", "15/01/25", "--mood", "excited")
	if result.err != nil {
		t.Fatalf("write error = %v\nstderr: %s", result.err, result.stderr)
	}
	if !strings.Contains(result.stdout, "Wednesday 15/01/25") {
		t.Errorf("stdout = %q", result.stdout)
	}

	data, err := os.ReadFile(filepath.Join(root, "2025", "January_2025.tex"))
	if err != nil {
		t.Fatalf("partition not written: %v", err)
	}
	if !strings.Contains(string(data), `\mybox{\emoamazed}`) {
		t.Errorf("partition should carry the mood marker:\n%s", data)
	}

	main, err := os.ReadFile(filepath.Join(root, "MainFile.tex"))
	if err != nil {
		t.Fatalf("master document not written: %v", err)
	}
	if !strings.Contains(string(main), `\include{./2025/January_2025}`) {
		t.Errorf("master document should include the partition")
	}
}

func TestWrite_BodyFromStdinWithNotes(t *testing.T) {
	root := t.TempDir()

	result := execute(t, root, "Line one.\nLine two.\n", "write", "--json",
		"--date", "01/03/25", "--mood", "7", "--note", "left", "--note", "right")
	if result.err != nil {
		t.Fatalf("write error = %v", result.err)
	}
	parsed := decodeJSON(t, result.stdout)
	if parsed["status"] != "written" || parsed["day"] != "Saturday" || parsed["mood"] != "emocode" {
		t.Errorf("result = %v", parsed)
	}

	found := execute(t, root, "", "find", "01/03/25", "--json")
	if found.err != nil {
		t.Fatalf("find error = %v", found.err)
	}
	entries, _ := decodeJSON(t, found.stdout)["entries"].([]any)
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	entry, _ := entries[0].(map[string]any)
	if entry["body"] != "Line one.\nLine two." {
		t.Errorf("body = %q", entry["body"])
	}
	notes, _ := entry["side_notes"].([]any)
	if len(notes) != 2 || notes[0] != "left" || notes[1] != "right" {
		t.Errorf("side_notes = %v", entry["side_notes"])
	}
}

func TestWrite_Idempotent(t *testing.T) {
	root := t.TempDir()
	for range 2 {
		if result := execute(t, root, "", "write", "Same.", "--date", "02/02/25"); result.err != nil {
			t.Fatalf("write error = %v", result.err)
		}
	}

	data, err := os.ReadFile(filepath.Join(root, "2025", "February_2025.tex"))
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), `\begin{diary}`); n != 1 {
		t.Errorf("partition holds %d records, want 1", n)
	}
}

func TestWrite_Errors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{"empty body", "", []string{"write", "--date", "01/03/25"}, "body"},
		{"future date", "", []string{"write", "later", "--date", "01/01/60"}, "future"},
		{"bad date", "", []string{"write", "x", "--date", "2025-03-01"}, "invalid date"},
		{"three notes", "", []string{"write", "x", "--note", "a", "--note", "b", "--note", "c"}, "side notes"},
		{"body twice", "", []string{"write", "x", "--body", "y"}, "not both"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := execute(t, t.TempDir(), tt.stdin, append(tt.args, "--json")...)
			if result.err == nil {
				t.Fatal("expected error")
			}
			if code := output.GetExitCode(result.err); code != output.ExitUserError {
				t.Errorf("exit code = %d, want %d", code, output.ExitUserError)
			}
			parsed := decodeJSON(t, result.stdout)
			msg, _ := parsed["error"].(string)
			if !strings.Contains(msg, tt.want) {
				t.Errorf("error %q should mention %q", msg, tt.want)
			}
		})
	}
}

func TestWrite_DryRun(t *testing.T) {
	root := t.TempDir()
	result := execute(t, root, "", "write", "Preview only.", "--date", "01/03/25", "--mood", "emocode", "--dry-run")
	if result.err != nil {
		t.Fatalf("write error = %v", result.err)
	}
	if !strings.HasPrefix(result.stdout, "% 01/03/25 - 2025 March Notes") {
		t.Errorf("dry run should print the record, got %q", result.stdout)
	}
	if _, err := os.Stat(filepath.Join(root, "2025")); !os.IsNotExist(err) {
		t.Errorf("dry run should not write anything")
	}
}

func TestFind_NoEntries(t *testing.T) {
	result := execute(t, t.TempDir(), "", "find", "01/03/25")
	if result.err != nil {
		t.Fatalf("find error = %v", result.err)
	}
	if !strings.Contains(result.stdout, "No entries found for 01/03/25.") {
		t.Errorf("stdout = %q", result.stdout)
	}
}

func TestFind_HumanOutput(t *testing.T) {
	root := t.TempDir()
	if result := execute(t, root, "", "write", "Coffee and code.", "--date", "03/03/25", "--mood", "tired", "--note", "decaf next time"); result.err != nil {
		t.Fatalf("write error = %v", result.err)
	}

	result := execute(t, root, "", "find", "03/03/25")
	if result.err != nil {
		t.Fatalf("find error = %v", result.err)
	}
	want := "☕ Monday 03/03/25\nCoffee and code.\n\n> decaf next time\n"
	if result.stdout != want {
		t.Errorf("find output = %q, want %q", result.stdout, want)
	}
}

func TestFind_NumbersMultipleEntries(t *testing.T) {
	root := t.TempDir()
	for _, body := range []string{"Morning run.", "Evening read."} {
		if result := execute(t, root, "", "write", body, "--date", "04/03/25", "--mood", "relaxed"); result.err != nil {
			t.Fatalf("write error = %v", result.err)
		}
	}

	result := execute(t, root, "", "find", "04/03/25")
	if result.err != nil {
		t.Fatalf("find error = %v", result.err)
	}
	want := "Entry #1: 🍺 Tuesday 04/03/25\nMorning run.\n\nEntry #2: 🍺 Tuesday 04/03/25\nEvening read.\n"
	if result.stdout != want {
		t.Errorf("find output = %q, want %q", result.stdout, want)
	}
}

func TestRootFlag_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	result := execute(t, "~/journal", "", "write", "From home.", "--date", "05/03/25")
	if result.err != nil {
		t.Fatalf("write error = %v\nstderr: %s", result.err, result.stderr)
	}
	if _, err := os.Stat(filepath.Join(home, "journal", "2025", "March_2025.tex")); err != nil {
		t.Errorf("partition should be written under the home directory: %v", err)
	}
}

func TestFind_BadDate(t *testing.T) {
	result := execute(t, t.TempDir(), "", "find", "31/02/25")
	if code := output.GetExitCode(result.err); code != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", code, output.ExitUserError)
	}
}

func TestPartitions(t *testing.T) {
	root := t.TempDir()
	for _, date := range []string{"05/03/25", "20/12/24"} {
		if result := execute(t, root, "", "write", "entry", "--date", date); result.err != nil {
			t.Fatalf("write error = %v", result.err)
		}
	}

	result := execute(t, root, "", "partitions")
	if result.err != nil {
		t.Fatalf("partitions error = %v", result.err)
	}
	want := "YEAR  MONTH     FILE\n2024  December  December_2024.tex\n2025  March     March_2025.tex\n"
	if result.stdout != want {
		t.Errorf("partitions output = %q, want %q", result.stdout, want)
	}
}

func TestMoods_JSON(t *testing.T) {
	result := execute(t, t.TempDir(), "", "moods", "--json")
	if result.err != nil {
		t.Fatalf("moods error = %v", result.err)
	}
	parsed := decodeJSON(t, result.stdout)
	moods, _ := parsed["moods"].([]any)
	if len(moods) != 7 || parsed["default"] != "emoheadbang" {
		t.Errorf("moods = %v", parsed)
	}
}

func TestInit_ThenConflict(t *testing.T) {
	root := t.TempDir()

	result := execute(t, root, "", "init", "--title", "Field Notes", "--author", "Ada")
	if result.err != nil {
		t.Fatalf("init error = %v", result.err)
	}
	data, err := os.ReadFile(filepath.Join(root, "MainFile.tex"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `\title{\Huge Field Notes}`) {
		t.Errorf("title missing from master document")
	}

	again := execute(t, root, "", "init")
	if code := output.GetExitCode(again.err); code != output.ExitConflict {
		t.Errorf("second init exit code = %d, want %d", code, output.ExitConflict)
	}
}

func TestRebuild(t *testing.T) {
	root := t.TempDir()
	partition := filepath.Join(root, "2024", "Jul_2024.tex")
	if err := os.MkdirAll(filepath.Dir(partition), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(partition, nil, 0o600); err != nil {
		t.Fatal(err)
	}

	result := execute(t, root, "", "rebuild", "--json")
	if result.err != nil {
		t.Fatalf("rebuild error = %v", result.err)
	}
	parsed := decodeJSON(t, result.stdout)
	if parsed["partitions"] != float64(1) {
		t.Errorf("partitions = %v, want 1", parsed["partitions"])
	}
	data, err := os.ReadFile(filepath.Join(root, "MainFile.tex"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `\include{./2024/Jul_2024}`) {
		t.Errorf("hand-made partition not included")
	}
}

func TestCompile_WithConfiguredCompiler(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	root := t.TempDir()
	dir := t.TempDir()
	tool := filepath.Join(dir, "fake-latex")
	script := "#!/bin/sh\nfor f; do :; done\ntouch \"${f%.tex}.pdf\"\n"
	if err := os.WriteFile(tool, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("compiler:\n  command: "+tool+"\n  passes: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	result := execute(t, root, "", "--config", configPath, "compile")
	if result.err != nil {
		t.Fatalf("compile error = %v\nstdout: %s", result.err, result.stdout)
	}
	if _, err := os.Stat(filepath.Join(root, "MainFile.pdf")); err != nil {
		t.Errorf("PDF not produced: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "MainFile.tex")); err != nil {
		t.Errorf("master document should be created before compiling: %v", err)
	}
}

func TestCompile_FailureIsSystemError(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("compiler:\n  command: quill-missing-latex\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	result := execute(t, t.TempDir(), "", "--config", configPath, "compile")
	if code := output.GetExitCode(result.err); code != output.ExitSystemError {
		t.Errorf("exit code = %d, want %d", code, output.ExitSystemError)
	}
}

func TestConfig_InvalidFileIsUserError(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("compiler:\n  passes: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	result := execute(t, t.TempDir(), "", "--config", configPath, "partitions")
	if code := output.GetExitCode(result.err); code != output.ExitUserError {
		t.Errorf("exit code = %d, want %d", code, output.ExitUserError)
	}
}
