package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// RootEnv overrides the configured diary root.
const RootEnv = "QUILL_ROOT"

// Config is the quill configuration file.
type Config struct {
	Root      string         `yaml:"root"`
	Extension string         `yaml:"extension"`
	Document  DocumentConfig `yaml:"document"`
	Compiler  CompilerConfig `yaml:"compiler"`
	Viewer    ViewerConfig   `yaml:"viewer"`
	Store     StoreConfig    `yaml:"store"`
}

// DocumentConfig controls the master document.
type DocumentConfig struct {
	MainFile string `yaml:"main_file"`
	Title    string `yaml:"title"`
	Author   string `yaml:"author"`
}

// CompilerConfig controls the LaTeX compiler.
type CompilerConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
	Passes  int      `yaml:"passes"`
}

// ViewerConfig controls how the compiled PDF is opened. An empty command
// uses the platform opener.
type ViewerConfig struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
}

// StoreConfig controls partition writes.
type StoreConfig struct {
	Lock        bool          `yaml:"lock"`
	LockTimeout time.Duration `yaml:"lock_timeout"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	root := "diary"
	if home, err := os.UserHomeDir(); err == nil {
		root = filepath.Join(home, "diary")
	}
	return &Config{
		Root:      root,
		Extension: ".tex",
		Document: DocumentConfig{
			MainFile: "MainFile.tex",
			Title:    "My Diary",
			Author:   "Anonymous",
		},
		Compiler: CompilerConfig{
			Command: "pdflatex",
			Args:    []string{"-interaction=nonstopmode"},
			Passes:  2,
		},
		Store: StoreConfig{
			Lock:        true,
			LockTimeout: 5 * time.Second,
		},
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Root, validation.Required),
		validation.Field(&c.Extension, validation.Required, validation.By(validExtension)),
	); err != nil {
		return err
	}
	if err := c.Document.Validate(); err != nil {
		return fmt.Errorf("document: %w", err)
	}
	if err := c.Compiler.Validate(); err != nil {
		return fmt.Errorf("compiler: %w", err)
	}
	if err := c.Store.Validate(); err != nil {
		return fmt.Errorf("store: %w", err)
	}
	return nil
}

// Validate checks the document configuration.
func (c *DocumentConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.MainFile, validation.Required),
	)
}

// Validate checks the compiler configuration.
func (c *CompilerConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Command, validation.Required),
		validation.Field(&c.Passes, validation.Required, validation.Min(1), validation.Max(5)),
	)
}

// Validate checks the store configuration.
func (c *StoreConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.LockTimeout, validation.Min(time.Duration(0))),
	)
}

func validExtension(value any) error {
	ext, _ := value.(string)
	if strings.ContainsAny(ext, `/\`) {
		return errors.New("must not contain a path separator")
	}
	return nil
}

// Load reads the YAML file at path over the defaults, expanding
// environment variables first. A missing file is not an error when
// optional is true. QUILL_ROOT, when set, replaces the root.
func Load(path string, optional bool) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			expanded := os.ExpandEnv(string(data))
			if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && optional:
		default:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if root := os.Getenv(RootEnv); root != "" {
		cfg.Root = root
	}
	cfg.Root = ExpandHome(cfg.Root)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// ExpandHome replaces a leading ~ with the user's home directory. Other
// paths are returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
