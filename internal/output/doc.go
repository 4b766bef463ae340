// Package output renders quill command results for people and for agents.
//
// Every command writes through a Printer, which switches between styled
// terminal output and JSON with the --json flag:
//
//	printer := output.NewPrinter(cmd.OutOrStdout(), jsonFlag, output.IsTTY(cmd.OutOrStdout()))
//	printer.Success(map[string]any{"message": "Entry written", "path": path})
//
// In JSON mode errors are written as {"error": "...", "code": N} on stdout;
// in human mode they go to stderr when WithStderr is set.
//
// Entries are shown with Entry, which draws side notes as bordered boxes
// next to each other, the way they appear in the compiled diary.
//
// Errors that reach the process boundary should be ExitErrors, built with
// NewUserError, NewSystemError or NewConflictError and their WithCause
// variants. GetExitCode maps any error to the process exit status.
package output
