package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"rdv-generator/internal/diagnostic"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow)
	okColor   = color.New(color.FgGreen)
)

// printSummary reports the outcome of a run the way an operator reads it:
// every error and warning, then the flow counts and the verdict.
func printSummary(w io.Writer, out *diagnostic.Outcome, logFile string) {
	for _, d := range out.Errors {
		errColor.Fprintf(w, "ERROR   %s\n", d)
	}

	for _, d := range out.Warnings {
		warnColor.Fprintf(w, "WARNING %s\n", d)
	}

	generated := out.FlowsWith(diagnostic.FlowGenerated)
	failed := out.FlowsWith(diagnostic.FlowFailed)

	fmt.Fprintf(w, "run %s: %d flow(s) generated, %d failed\n", out.RunID, len(generated), len(failed))

	if len(failed) > 0 {
		errColor.Fprintf(w, "not generated: %s\n", strings.Join(failed, ", "))
	}

	switch {
	case out.HasError():
		errColor.Fprintf(w, "finished with errors, see %s\n", logFile)
	case out.HasWarning():
		warnColor.Fprintf(w, "finished with warnings, see %s\n", logFile)
	default:
		okColor.Fprintln(w, "finished")
	}
}
