package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/quill/internal/document"
)

// newInitCmd creates the init command.
func newInitCmd() *cobra.Command {
	var titleFlag, authorFlag string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the master document",
		Long: `Create the master document and the Emoji/ image directory in the diary root.

Put the mood images (` + emojiList() + `) in Emoji/ so the
diary compiles. Title and author default to the config values.

Examples:
  quill init --title "Field Notes" --author "Ada"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, titleFlag, authorFlag)
		},
	}

	cmd.Flags().StringVar(&titleFlag, "title", "", "Diary title")
	cmd.Flags().StringVar(&authorFlag, "author", "", "Diary author")
	return cmd
}

func emojiList() string {
	return strings.Join(document.EmojiImages(), ", ")
}

// runInit executes the init command.
func runInit(cmd *cobra.Command, title, author string) error {
	printer := newPrinter(cmd)

	a, err := loadApp(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	defer a.close()

	if title == "" {
		title = a.cfg.Document.Title
	}
	if author == "" {
		author = a.cfg.Document.Author
	}
	if err := a.document.Init(title, author); err != nil {
		return fail(printer, err)
	}

	return printer.Success(map[string]any{
		"message":   "Created " + a.document.Path(),
		"path":      a.document.Path(),
		"title":     title,
		"author":    author,
		"emoji":     document.EmojiImages(),
		"emoji_dir": document.EmojiDir,
	})
}

// newRebuildCmd creates the rebuild command.
func newRebuildCmd() *cobra.Command {
	var watchFlag bool

	cmd := &cobra.Command{
		Use:   "rebuild",
		Short: "Regenerate the master document",
		Long: `Regenerate the master document so it includes every monthly file in order,
keeping its title and author.

With --watch, keep running and rebuild whenever monthly files are added,
removed or renamed, for example after editing the diary by hand.

Examples:
  quill rebuild
  quill rebuild --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRebuild(cmd, watchFlag)
		},
	}

	cmd.Flags().BoolVar(&watchFlag, "watch", false, "Rebuild on file changes until interrupted")
	return cmd
}

// runRebuild executes the rebuild command.
func runRebuild(cmd *cobra.Command, watch bool) error {
	printer := newPrinter(cmd)

	a, err := loadApp(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	defer a.close()

	if err := a.document.Rebuild(); err != nil {
		return fail(printer, err)
	}
	parts, err := a.catalog.ListPartitionsChronological()
	if err != nil {
		return fail(printer, err)
	}
	if err := printer.Success(map[string]any{
		"message":    "Rebuilt " + a.document.Path() + " with " + strconv.Itoa(len(parts)) + " month(s)",
		"path":       a.document.Path(),
		"partitions": len(parts),
	}); err != nil {
		return err
	}

	if !watch {
		return nil
	}
	printer.Stderr("Watching %s (Ctrl-C to stop)\n", a.catalog.Root())
	err = a.document.Watch(cmd.Context(), document.DefaultDebounce, func(rebuildErr error) {
		if rebuildErr != nil {
			printer.Warn("rebuild failed: %v", rebuildErr)
			return
		}
		printer.Stderr("Rebuilt %s\n", a.document.Path())
	})
	if err != nil {
		return fail(printer, err)
	}
	return nil
}
