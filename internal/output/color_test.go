package output

import (
	"bytes"
	"strings"
	"testing"
)

func TestResolveColorMode(t *testing.T) {
	tests := []struct {
		name    string
		mode    string
		isTTY   bool
		noColor string
		want    bool
	}{
		{name: "never on terminal", mode: "never", isTTY: true, want: false},
		{name: "always off terminal", mode: "always", isTTY: false, want: true},
		{name: "always ignores NO_COLOR", mode: "always", isTTY: true, noColor: "1", want: true},
		{name: "auto follows terminal", mode: "auto", isTTY: true, want: true},
		{name: "auto off terminal", mode: "auto", isTTY: false, want: false},
		{name: "auto honours NO_COLOR", mode: "auto", isTTY: true, noColor: "1", want: false},
		{name: "empty mode is auto", mode: "", isTTY: true, want: true},
		{name: "unknown mode is auto", mode: "rainbow", isTTY: true, noColor: "yes", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)
			if got := ResolveColorMode(tt.mode, tt.isTTY); got != tt.want {
				t.Errorf("ResolveColorMode(%q, %v) with NO_COLOR=%q = %v, want %v",
					tt.mode, tt.isTTY, tt.noColor, got, tt.want)
			}
		})
	}
}

func TestIsTTY_Buffer(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("a buffer is never a terminal")
	}
}

func TestColorNever_EntryHasNoEscapes(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf, false, ResolveColorMode("never", true))

	printer.Entry("☕ Monday 03/03/25", "Coffee and code.", []string{"decaf next time"})
	printer.Error(NewUserError("invalid date"))

	if out := buf.String(); strings.Contains(out, "\x1b[") {
		t.Errorf("color=never output contains escape codes: %q", out)
	}
	if printer.IsTTY() {
		t.Error("printer should report non-TTY when color=never")
	}
}

func TestColorAlways_KeepsStyles(t *testing.T) {
	printer := NewPrinter(&bytes.Buffer{}, false, ResolveColorMode("always", false))

	if !printer.IsTTY() {
		t.Error("printer should report TTY when color=always")
	}
	if printer.styles.NoteRim == "" {
		t.Error("side-note border color should be set when color=always")
	}
	if !printer.styles.Title.GetBold() {
		t.Error("entry headers should be bold when color=always")
	}
}
