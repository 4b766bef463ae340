package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gorewood/quill/internal/diary"
	"github.com/gorewood/quill/internal/export"
	"github.com/gorewood/quill/internal/output"
	"github.com/gorewood/quill/internal/search"
)

// exportFlags holds the export command flags.
type exportFlags struct {
	from   string
	to     string
	format string
	out    string
}

// newExportCmd creates the export command.
func newExportCmd() *cobra.Command {
	var flags exportFlags

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entries to Markdown or JSON",
		Long: `Export the entries dated within a range, oldest first.

--to defaults to today and --from to the first day of the --to month.
Without --out the entries go to stdout; with --out each entry becomes one
file named after its date.

Examples:
  quill export                                   # This month as JSON
  quill export --from 01/01/25 --to 31/03/25 --format md
  quill export --from 01/01/25 --out ./notes/    # One markdown file per entry`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.from, "from", "", "First day to export (dd/mm/yy)")
	cmd.Flags().StringVar(&flags.to, "to", "today", "Last day to export (dd/mm/yy or today)")
	cmd.Flags().StringVar(&flags.format, "format", "", "Output format: json or md (default: json for stdout, md for --out)")
	cmd.Flags().StringVar(&flags.out, "out", "", "Output directory (if omitted, writes to stdout)")

	return cmd
}

// runExport executes the export command.
func runExport(cmd *cobra.Command, flags exportFlags) error {
	printer := newPrinter(cmd)

	format := determineFormat(flags.format, flags.out)
	if format != "json" && format != "md" {
		return fail(printer, output.NewUserError("--format must be 'json' or 'md'"))
	}

	a, err := loadApp(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	defer a.close()

	from, to, err := exportRange(flags, a.now())
	if err != nil {
		return fail(printer, err)
	}

	entries, stats, err := a.search.FindInRange(from, to)
	if err != nil {
		return fail(printer, err)
	}
	if stats.Skipped > 0 && !printer.IsJSON() {
		printer.Warn("%d unreadable record(s) skipped", stats.Skipped)
	}

	if flags.out == "" {
		return writeExportStdout(printer, entries, format, a.cfg.Root)
	}
	return writeExportDirectory(printer, entries, format, flags.out, a.cfg.Root)
}

// determineFormat returns the format to use based on flags.
func determineFormat(formatFlag, outFlag string) string {
	if formatFlag != "" {
		return formatFlag
	}
	if outFlag == "" {
		return "json"
	}
	return "md"
}

// exportRange resolves the --from and --to flags into a day range.
func exportRange(flags exportFlags, now time.Time) (time.Time, time.Time, error) {
	to, err := diary.ParseDateText(flags.to, now)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	from := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, to.Location())
	if flags.from != "" {
		if from, err = diary.ParseDateText(flags.from, now); err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, output.NewUserError(fmt.Sprintf(
			"--from %s is after --to %s", from.Format(diary.DateLayout), to.Format(diary.DateLayout)))
	}
	return from, to, nil
}

// writeExportStdout writes entries to stdout in the specified format.
func writeExportStdout(printer *output.Printer, entries []search.Result, format, root string) error {
	if format == "json" {
		return export.FormatJSON(printer, entries)
	}
	for i, entry := range entries {
		if i > 0 {
			printer.Println()
		}
		printer.Print("%s", export.FormatMarkdown(entry, root))
	}
	return nil
}

// writeExportDirectory writes one file per entry into dir.
func writeExportDirectory(printer *output.Printer, entries []search.Result, format, dir, root string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fail(printer, output.NewSystemErrorWithCause("failed to create output directory "+dir, err))
	}

	var paths []string
	var err error
	if format == "json" {
		paths, err = export.WriteJSONFiles(entries, dir)
	} else {
		paths, err = export.WriteMarkdownFiles(entries, dir, root)
	}
	if err != nil {
		return fail(printer, err)
	}

	if printer.IsJSON() {
		if paths == nil {
			paths = []string{}
		}
		return printer.WriteJSON(map[string]any{
			"status": "ok",
			"count":  len(paths),
			"dir":    dir,
			"files":  paths,
		})
	}
	printer.Print("Exported %d entries to %s\n", len(paths), dir)
	return nil
}
