package main

import (
	"github.com/spf13/cobra"
)

// newCompileCmd creates the compile command.
func newCompileCmd() *cobra.Command {
	var openFlag bool

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Compile the diary to PDF",
		Long: `Compile the master document with the configured LaTeX compiler
(pdflatex by default, two passes) in the diary root.

Examples:
  quill compile
  quill compile --open`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCompile(cmd, openFlag)
		},
	}

	cmd.Flags().BoolVar(&openFlag, "open", false, "Open the PDF when done")
	return cmd
}

// runCompile executes the compile command.
func runCompile(cmd *cobra.Command, open bool) error {
	printer := newPrinter(cmd)

	a, err := loadApp(cmd)
	if err != nil {
		printer.Error(err)
		return err
	}
	defer a.close()

	if err := compileDocument(cmd, a, open); err != nil {
		return fail(printer, err)
	}
	return printer.Success(map[string]any{
		"message": "Compiled " + a.document.PDFPath(),
		"pdf":     a.document.PDFPath(),
	})
}

// compileDocument compiles the master document, creating it first if
// missing, and optionally opens the result.
func compileDocument(cmd *cobra.Command, a *app, open bool) error {
	if !a.document.Exists() {
		if err := a.document.Rebuild(); err != nil {
			return err
		}
	}
	if err := a.compiler.Compile(cmd.Context(), a.document.Path()); err != nil {
		return err
	}
	if open {
		return a.viewer.Open(cmd.Context(), a.document.PDFPath())
	}
	return nil
}
