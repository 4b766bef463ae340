package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gorewood/quill/internal/diary"
	"github.com/gorewood/quill/internal/output"
	"github.com/gorewood/quill/internal/search"
)

// newFindCmd creates the find command.
func newFindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "find [dd/mm/yy|today]",
		Short: "Show the entries written for a day",
		Long: `Show every entry dated the given day, searching all monthly files of
that year. Defaults to today.

Examples:
  quill find                 # Today's entries
  quill find 01/03/25
  quill find 01/03/25 --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := "today"
			if len(args) == 1 {
				query = args[0]
			}
			return runFind(cmd, query)
		},
	}
}

// runFind executes the find command.
func runFind(cmd *cobra.Command, query string) error {
	printer := newPrinter(cmd)

	a, err := loadApp(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	defer a.close()

	date, err := diary.ParseDateText(query, a.now())
	if err != nil {
		return fail(printer, err)
	}

	results, stats, err := a.search.FindByDateWithStats(date)
	if err != nil {
		return fail(printer, err)
	}
	return outputFindResults(printer, date.Format(diary.DateLayout), results, stats)
}

// outputFindResults renders results in JSON or human form.
func outputFindResults(printer *output.Printer, dateText string, results []search.Result, stats *search.Stats) error {
	if printer.IsJSON() {
		if results == nil {
			results = []search.Result{}
		}
		return printer.WriteJSON(map[string]any{
			"date":    dateText,
			"count":   len(results),
			"entries": results,
			"skipped": stats.Skipped,
		})
	}

	if len(results) == 0 {
		printer.Println("No entries found for " + dateText + ".")
		return nil
	}

	for i, result := range results {
		if i > 0 {
			printer.Println()
		}
		header := fmt.Sprintf("%s %s %s", result.Emoji, result.Day, result.Date)
		if len(results) > 1 {
			header = fmt.Sprintf("Entry #%d: %s", i+1, header)
		}
		printer.Entry(header, result.Body, result.SideNotes)
	}
	if stats.Skipped > 0 {
		printer.Warn("%d unreadable record(s) skipped", stats.Skipped)
	}
	return nil
}
