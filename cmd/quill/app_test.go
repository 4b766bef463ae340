package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gorewood/quill/internal/diary"
	"github.com/gorewood/quill/internal/document"
	"github.com/gorewood/quill/internal/output"
	"github.com/gorewood/quill/internal/store"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, output.ExitSuccess},
		{"validation", &diary.ValidationError{Fields: []string{"body"}, Message: "missing required fields"}, output.ExitUserError},
		{"wrapped validation", fmt.Errorf("writing: %w", &diary.ValidationError{Message: "bad"}), output.ExitUserError},
		{"locked", store.ErrLocked, output.ExitConflict},
		{"document exists", document.ErrExists, output.ExitConflict},
		{"io", &store.IOError{Op: "write partition", Path: "x", Err: errors.New("disk full")}, output.ExitSystemError},
		{"exit error kept", output.NewUserError("already coded"), output.ExitUserError},
		{"unknown", errors.New("boom"), output.ExitSystemError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := output.GetExitCode(classify(tt.err)); got != tt.want {
				t.Errorf("exit code = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestClassify_KeepsCause(t *testing.T) {
	err := classify(store.ErrLocked)
	if !errors.Is(err, store.ErrLocked) {
		t.Error("classified error should wrap the original")
	}
}

func TestNewLogger(t *testing.T) {
	for _, verbose := range []bool{false, true} {
		logger, err := newLogger(verbose)
		if err != nil {
			t.Fatalf("newLogger(%v) error = %v", verbose, err)
		}
		if got := logger.Core().Enabled(-1); got != verbose {
			t.Errorf("newLogger(%v) debug enabled = %v", verbose, got)
		}
	}
}
