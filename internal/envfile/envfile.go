// Package envfile loads environment variables from .env files.
// Variables already set in the environment take precedence.
package envfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Load reads a .env file and sets any variables that are unset or empty in
// the environment. Returns nil if the file doesn't exist.
func Load(path string) error {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading env file %s: %w", path, err)
	}

	for key, value := range values {
		if os.Getenv(key) == "" {
			_ = os.Setenv(key, value)
		}
	}
	return nil
}

// LoadAll loads each file in order. A variable set by an earlier file is
// not replaced by a later one.
func LoadAll(paths ...string) error {
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := Load(path); err != nil {
			return err
		}
	}
	return nil
}

// Candidates returns the env files quill reads, highest precedence first:
// .env.local and .env in the working directory, then <configDir>/env.
func Candidates(configDir string) []string {
	paths := []string{".env.local", ".env"}
	if configDir != "" {
		paths = append(paths, filepath.Join(configDir, "env"))
	}
	return paths
}
