// Package cmd - report command
package cmd

import (
	"github.com/spf13/cobra"

	"foody7-pricing/core/output"
)

type reportOptions struct {
	format  string
	noColor bool
	quiet   bool
}

func (a *app) newReportCmd() *cobra.Command {
	opts := &reportOptions{}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the full pricing report",
		Long: `Evaluate every report section in order and print it.

Formats:
  cli       aligned tables for a terminal (default)
  markdown  GitHub-flavoured markdown tables
  json      the raw report, decimals encoded as strings`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runReport(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format (cli, markdown, json)")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "disable colored output")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "hide explanatory notes (cli format)")
	return cmd
}

func (a *app) runReport(cmd *cobra.Command, opts *reportOptions) error {
	format := opts.format
	if format == "" {
		format = a.cfg.Output.DefaultFormat
	}

	registry := output.NewRegistry(output.Options{
		NoColor: opts.noColor || a.cfg.Output.NoColor,
		Quiet:   opts.quiet,
	})
	formatter, err := registry.GetFormatter(output.Format(format))
	if err != nil {
		return err
	}

	report, err := a.buildReport()
	if err != nil {
		return err
	}
	return formatter.Render(cmd.OutOrStdout(), report)
}
