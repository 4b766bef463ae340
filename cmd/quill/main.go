// Package main provides the entry point for the quill CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gorewood/quill/internal/config"
	"github.com/gorewood/quill/internal/envfile"
	"github.com/gorewood/quill/internal/output"
)

// Build info set via ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// isJSONMode reads the --json persistent flag from the command hierarchy.
func isJSONMode(cmd *cobra.Command) bool {
	flag := cmd.Flags().Lookup("json")
	if flag == nil {
		flag = cmd.Root().PersistentFlags().Lookup("json")
	}
	return flag != nil && flag.Value.String() == "true"
}

// newPrinter returns a printer honouring --json and --color.
func newPrinter(cmd *cobra.Command) *output.Printer {
	colorMode, _ := cmd.Flags().GetString("color")
	isTTY := output.ResolveColorMode(colorMode, output.IsTTY(cmd.OutOrStdout()))
	return output.NewPrinter(cmd.OutOrStdout(), isJSONMode(cmd), isTTY).WithStderr(cmd.ErrOrStderr())
}

// buildVersion returns the full version string including commit and date.
func buildVersion() string {
	if commit == "none" && date == "unknown" {
		return version
	}
	shortCommit := commit
	if len(commit) > 7 {
		shortCommit = commit[:7]
	}
	return fmt.Sprintf("%s (%s, %s)", version, shortCommit, date)
}

func main() {
	os.Exit(run())
}

func run() int {
	cmd := newRootCmd()
	err := fang.Execute(context.Background(), cmd, fang.WithVersion(buildVersion()))
	return output.GetExitCode(err)
}

// newRootCmd creates the root command for the quill CLI.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quill",
		Short: "A LaTeX diary kept in monthly files",
		Long: `Quill - a personal diary written as LaTeX.

Each entry is stored in a monthly file under <root>/<year>/, sorted by date,
and a master document including every month is kept up to date so the whole
diary compiles into one book.

All commands support --json for structured output.`,
		Version:       buildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isJSONMode(cmd) {
				err := output.NewUserError("no command specified. Run 'quill --help' for usage")
				newPrinter(cmd).Error(err)
				return err
			}
			return cmd.Help()
		},
	}

	// Environment variables always take precedence over env file values.
	cmd.PersistentPreRunE = func(_ *cobra.Command, _ []string) error {
		_ = envfile.LoadAll(envfile.Candidates(config.Dir())...)
		return nil
	}

	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().String("color", "auto", "Color output: auto, always, never")
	cmd.PersistentFlags().String("root", "", "Diary root directory (overrides config and $QUILL_ROOT)")
	cmd.PersistentFlags().String("config", "", "Config file (default <config dir>/config.yaml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	lipgloss.SetHasDarkBackground(true)

	addCommandGroups(cmd)
	addCommands(cmd)

	return cmd
}

// addCommandGroups defines the command groups for help output.
func addCommandGroups(cmd *cobra.Command) {
	cmd.AddGroup(&cobra.Group{ID: "core", Title: "Diary Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "document", Title: "Document Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "info", Title: "Info Commands:"})
	cmd.AddGroup(&cobra.Group{ID: "agent", Title: "Agent Commands:"})
}

// addCommands adds all subcommands with their group assignments.
func addCommands(cmd *cobra.Command) {
	addGroupedCommand(cmd, newWriteCmd(), "core")
	addGroupedCommand(cmd, newFindCmd(), "core")
	addGroupedCommand(cmd, newExportCmd(), "core")

	addGroupedCommand(cmd, newInitCmd(), "document")
	addGroupedCommand(cmd, newRebuildCmd(), "document")
	addGroupedCommand(cmd, newCompileCmd(), "document")

	addGroupedCommand(cmd, newPartitionsCmd(), "info")
	addGroupedCommand(cmd, newMoodsCmd(), "info")

	addGroupedCommand(cmd, newServeCmd(), "agent")
}

// addGroupedCommand adds a subcommand with a group assignment.
func addGroupedCommand(parent *cobra.Command, child *cobra.Command, groupID string) {
	child.GroupID = groupID
	parent.AddCommand(child)
}
