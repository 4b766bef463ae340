// Package latex runs the external LaTeX compiler and PDF viewer.
package latex

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/gorewood/quill/internal/output"
)

// maxLogLines bounds how much compiler output is kept in an error.
const maxLogLines = 12

// Compiler runs a LaTeX compiler over the master document.
type Compiler struct {
	Command string
	Args    []string
	Passes  int
	Logger  *zap.Logger
}

// Compile runs the compiler Passes times on mainFile, inside the file's
// directory so relative \include paths resolve. Each pass must succeed.
func (c *Compiler) Compile(ctx context.Context, mainFile string) error {
	passes := c.Passes
	if passes < 1 {
		passes = 1
	}
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	args := append(append([]string{}, c.Args...), filepath.Base(mainFile))
	for pass := 1; pass <= passes; pass++ {
		logger.Debug("running compiler",
			zap.String("command", c.Command), zap.Int("pass", pass))
		if _, err := run(ctx, filepath.Dir(mainFile), c.Command, args...); err != nil {
			return err
		}
	}
	return nil
}

// Viewer opens a compiled PDF. An empty Command uses the platform opener.
type Viewer struct {
	Command string
	Args    []string
}

// Open shows path in the viewer.
func (v *Viewer) Open(ctx context.Context, path string) error {
	name, args := v.command()
	_, err := run(ctx, "", name, append(args, path)...)
	return err
}

func (v *Viewer) command() (string, []string) {
	if v.Command != "" {
		return v.Command, append([]string{}, v.Args...)
	}
	return platformOpener(runtime.GOOS)
}

// platformOpener returns the command that opens a file with its default
// application on goos.
func platformOpener(goos string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", nil
	case "windows":
		return "cmd", []string{"/c", "start", ""}
	default:
		return "xdg-open", nil
	}
}

// run executes name in dir and returns its stdout. Failures are
// *output.ExitError system errors carrying the tail of the tool's output.
func run(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) {
			return "", output.NewSystemErrorWithCause(name+" not found: ensure it is installed and in PATH", err)
		}
		msg := tail(stderr.String(), maxLogLines)
		if msg == "" {
			msg = tail(stdout.String(), maxLogLines)
		}
		if msg == "" {
			msg = err.Error()
		}
		return "", output.NewSystemErrorWithCause(name+" failed: "+msg, err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// tail returns the last n non-empty lines of s.
func tail(s string, n int) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, strings.TrimRight(line, "\r"))
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
