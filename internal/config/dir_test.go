package config

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestDir_Default(t *testing.T) {
	t.Setenv("QUILL_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")

	dir := Dir()
	if dir == "" {
		t.Fatal("Dir() returned empty string")
	}

	if runtime.GOOS != "windows" {
		if filepath.Base(dir) != "quill" {
			t.Errorf("Dir() = %q, want path ending in 'quill'", dir)
		}
	}
}

func TestDir_ExplicitOverride(t *testing.T) {
	t.Setenv("QUILL_CONFIG_HOME", "/custom/path")
	if got := Dir(); got != "/custom/path" {
		t.Errorf("Dir() = %q, want %q", got, "/custom/path")
	}
	if got := File(); got != filepath.Join("/custom/path", "config.yaml") {
		t.Errorf("File() = %q", got)
	}
}

func TestDir_XDGOverride(t *testing.T) {
	t.Setenv("QUILL_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	if got := Dir(); got != filepath.Join("/xdg/config", "quill") {
		t.Errorf("Dir() = %q, want %q", got, filepath.Join("/xdg/config", "quill"))
	}
}
