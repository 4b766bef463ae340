package main

import (
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gorewood/quill/internal/diary"
	"github.com/gorewood/quill/internal/output"
)

// writeFlags holds the write command's flag values.
type writeFlags struct {
	date    string
	mood    string
	body    string
	notes   []string
	dryRun  bool
	compile bool
	open    bool
}

// newWriteCmd creates the write command.
func newWriteCmd() *cobra.Command {
	flags := &writeFlags{}

	cmd := &cobra.Command{
		Use:   "write [body]",
		Short: "Write a diary entry",
		Long: `Write a diary entry into its monthly file and update the master document.

The body comes from the argument, --body, or standard input. The mood is a
marker name, a menu number (see 'quill moods') or a word describing how you
feel. Up to two --note flags add boxed side notes under the body.

Writing the same entry twice stores it once.

Examples:
  quill write "Fixed the flaky test." --mood coding
  quill write --date 01/03/25 --mood 2 --note "with the team" < entry.txt
  quill write "Long day." --mood tired --compile --open
  quill write "Draft" --dry-run              # Print the LaTeX without saving`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				if flags.body != "" {
					err := output.NewUserError("give the body as an argument or with --body, not both")
					newPrinter(cmd).Error(err)
					return err
				}
				flags.body = args[0]
			}
			return runWrite(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.date, "date", "today", "Entry date as dd/mm/yy or 'today'")
	cmd.Flags().StringVar(&flags.mood, "mood", "", "Mood marker, menu number 1-7, or a feeling")
	cmd.Flags().StringVar(&flags.body, "body", "", "Entry text (default: read from stdin)")
	cmd.Flags().StringArrayVar(&flags.notes, "note", nil, "Side note (repeat up to twice)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Print the encoded entry without saving")
	cmd.Flags().BoolVar(&flags.compile, "compile", false, "Compile the diary after writing")
	cmd.Flags().BoolVar(&flags.open, "open", false, "Open the compiled PDF (implies --compile)")

	return cmd
}

// runWrite executes the write command.
func runWrite(cmd *cobra.Command, flags *writeFlags) error {
	printer := newPrinter(cmd)

	a, err := loadApp(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	defer a.close()

	body := flags.body
	if strings.TrimSpace(body) == "" {
		body, err = readBody(cmd, printer)
		if err != nil {
			return fail(printer, err)
		}
	}

	date, err := diary.ParseDate(flags.date, a.now())
	if err != nil {
		return fail(printer, err)
	}
	entry, err := diary.NewEntry(date, diary.MoodForFeeling(flags.mood), body, flags.notes...)
	if err != nil {
		return fail(printer, err)
	}

	if flags.dryRun {
		return outputDryRun(printer, entry)
	}

	path, err := a.store.AppendEntry(entry)
	if err != nil {
		return fail(printer, err)
	}

	result := map[string]any{
		"status": "written",
		"path":   path,
		"date":   entry.DateText(),
		"day":    entry.DayName,
		"mood":   string(entry.Mood),
		"emoji":  entry.Mood.Symbol(),
	}

	if flags.compile || flags.open {
		if err := compileDocument(cmd, a, flags.open); err != nil {
			return fail(printer, err)
		}
		result["pdf"] = a.document.PDFPath()
	}

	if printer.IsJSON() {
		return printer.WriteJSON(result)
	}
	printer.Print("%s %s %s written to %s\n", entry.Mood.Symbol(), entry.DayName, entry.DateText(), path)
	if pdf, ok := result["pdf"].(string); ok {
		printer.KeyValue("PDF", pdf)
	}
	return nil
}

// readBody reads the entry body from stdin, prompting on a terminal.
func readBody(cmd *cobra.Command, printer *output.Printer) (string, error) {
	in := cmd.InOrStdin()
	if file, ok := in.(*os.File); ok && output.IsTTY(file) {
		printer.Print("Write your entry, then press Ctrl-D:\n")
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", output.NewSystemErrorWithCause("failed to read entry from stdin", err)
	}
	return string(data), nil
}

// outputDryRun prints the record that would be stored.
func outputDryRun(printer *output.Printer, entry *diary.Entry) error {
	record, err := diary.Encode(entry)
	if err != nil {
		return fail(printer, err)
	}
	if printer.IsJSON() {
		return printer.WriteJSON(map[string]any{
			"status": "dry_run",
			"date":   entry.DateText(),
			"record": record,
		})
	}
	printer.Print("%s", record)
	return nil
}
