package main

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"rdv-generator/internal/build"
	"rdv-generator/internal/diagnostic"
	"rdv-generator/internal/gen"
)

func newGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Validate the workbook and write the files of every valid flow",
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer a.cleanup()

			renderer, err := gen.LoadRenderer(a.fs, a.settings.Templates)
			if err != nil {
				return err
			}

			out, err := a.run(cmd, gen.NewExporter(a.fs, a.settings.OutPath, renderer, a.log))
			if a.dump && out != nil {
				spew.Fdump(cmd.OutOrStdout(), out)
			}

			return verdict(out, err)
		},
	}

	cmd.Flags().BoolVar(&a.dump, "dump", false, "print the run outcome")

	return cmd
}

func newValidateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the workbook without writing files",
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer a.cleanup()

			var sink build.FlowSink = build.DiscardSink{}

			collected := &build.CollectSink{}
			if a.dump {
				sink = collected
			}

			out, err := a.run(cmd, sink)
			if a.dump && err == nil {
				spew.Fdump(cmd.OutOrStdout(), collected.Flows)
			}

			return verdict(out, err)
		},
	}

	cmd.Flags().BoolVar(&a.dump, "dump", false, "print the built flows")

	return cmd
}

// run builds every flow into sink and prints the summary.
func (a *app) run(cmd *cobra.Command, sink build.FlowSink) (*diagnostic.Outcome, error) {
	wb, err := a.workbook()
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	out, err := build.Run(cmd.Context(), wb, a.settings, sink, a.log)
	if out != nil {
		printSummary(cmd.OutOrStdout(), out, a.settings.LogFile)
	}

	return out, err
}

// verdict maps a finished run to the command result. Errors already shown
// in the summary become errRunFailed so they are not printed twice.
func verdict(out *diagnostic.Outcome, err error) error {
	switch {
	case out != nil && out.HasError():
		return errRunFailed
	case err != nil:
		return err
	default:
		return nil
	}
}
