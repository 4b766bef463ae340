package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/gorewood/quill/internal/catalog"
	"github.com/gorewood/quill/internal/config"
	"github.com/gorewood/quill/internal/diary"
	"github.com/gorewood/quill/internal/document"
	"github.com/gorewood/quill/internal/latex"
	"github.com/gorewood/quill/internal/output"
	"github.com/gorewood/quill/internal/search"
	"github.com/gorewood/quill/internal/store"
)

// app wires the diary components for one command invocation.
type app struct {
	cfg      *config.Config
	logger   *zap.Logger
	catalog  *catalog.Catalog
	store    *store.Store
	search   *search.Engine
	document *document.Assembler
	compiler *latex.Compiler
	viewer   *latex.Viewer
	now      func() time.Time
}

// loadApp reads --config, --root and --verbose and builds the components.
func loadApp(cmd *cobra.Command) (*app, error) {
	configPath, _ := cmd.Flags().GetString("config")
	optional := configPath == ""
	if optional {
		configPath = config.File()
	}

	cfg, err := config.Load(configPath, optional)
	if err != nil {
		return nil, output.NewUserErrorWithCause(err.Error(), err)
	}
	if root, _ := cmd.Flags().GetString("root"); root != "" {
		cfg.Root = config.ExpandHome(root)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	logger, err := newLogger(verbose)
	if err != nil {
		return nil, output.NewSystemErrorWithCause("failed to initialize logger", err)
	}
	return newApp(cfg, logger), nil
}

// newApp builds the components from a validated config.
func newApp(cfg *config.Config, logger *zap.Logger) *app {
	cat := catalog.New(cfg.Root, cfg.Extension)
	doc := document.NewAssembler(cat, cfg.Document.MainFile, logger.Named("document"))

	return &app{
		cfg:      cfg,
		logger:   logger,
		catalog:  cat,
		document: doc,
		store: store.New(cat,
			store.WithLogger(logger.Named("store")),
			store.WithRebuilder(doc),
			store.WithLocking(cfg.Store.Lock, cfg.Store.LockTimeout)),
		search: search.New(cat, logger.Named("search")),
		compiler: &latex.Compiler{
			Command: cfg.Compiler.Command,
			Args:    cfg.Compiler.Args,
			Passes:  cfg.Compiler.Passes,
			Logger:  logger.Named("latex"),
		},
		viewer: &latex.Viewer{Command: cfg.Viewer.Command, Args: cfg.Viewer.Args},
		now:    time.Now,
	}
}

func (a *app) close() {
	_ = a.logger.Sync()
}

// newLogger builds the production logger. Only warnings and errors are
// shown unless verbose is set.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = !verbose
	return cfg.Build()
}

// classify converts component errors into exit-coded errors.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var exitErr *output.ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}

	var validationErr *diary.ValidationError
	if diary.AsValidationError(err, &validationErr) {
		return output.NewUserErrorWithCause(validationErr.Error(), err)
	}

	switch {
	case errors.Is(err, store.ErrLocked):
		return output.NewConflictErrorWithCause(err.Error()+"; try again shortly", err)
	case errors.Is(err, document.ErrExists):
		return output.NewConflictErrorWithCause(err.Error(), err)
	}

	var ioErr *store.IOError
	if errors.As(err, &ioErr) {
		return output.NewSystemErrorWithCause(ioErr.Error(), err)
	}
	return output.NewSystemErrorWithCause(fmt.Sprintf("unexpected error: %v", err), err)
}

// fail prints err through printer and returns it exit-coded.
func fail(printer *output.Printer, err error) error {
	err = classify(err)
	printer.Error(err)
	return err
}
