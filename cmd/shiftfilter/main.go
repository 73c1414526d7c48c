// Command shiftfilter runs the shift filter on local timeclock exports
// without the HTTP server.
//
// Usage:
//
//	shiftfilter filter -o filtered.xlsx jan.xlsx feb.xlsx
//	shiftfilter locate jan.xlsx
package main

import (
	"fmt"
	"os"

	"Backend-ShiftFilter/src/logger"
	"Backend-ShiftFilter/src/services/timeclock"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type cliFlags struct {
	verbose  bool
	anchor   string
	scanRows int
	fallback int
	gapHours float64
	output   string
}

func (f *cliFlags) options() timeclock.Options {
	return timeclock.Options{
		AnchorLabel:       f.anchor,
		MaxHeaderScanRows: f.scanRows,
		FallbackHeaderRow: f.fallback,
		ShiftGapHours:     f.gapHours,
	}
}

func newRootCmd() *cobra.Command {
	flags := &cliFlags{}
	defaults := timeclock.DefaultOptions()
	var syncLog func()

	root := &cobra.Command{
		Use:           "shiftfilter",
		Short:         "Collapse timeclock exports into first-In / last-Out shifts",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if flags.verbose {
				level = "debug"
			}
			_, sync, err := logger.Init(level, true)
			if err != nil {
				return err
			}
			syncLog = sync
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if syncLog != nil {
				syncLog()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	root.PersistentFlags().StringVar(&flags.anchor, "anchor", defaults.AnchorLabel, "Header cell that marks the header row")
	root.PersistentFlags().IntVar(&flags.scanRows, "scan-rows", defaults.MaxHeaderScanRows, "Rows to scan for the header")
	root.PersistentFlags().IntVar(&flags.fallback, "fallback-row", defaults.FallbackHeaderRow, "Zero-based header row used when the anchor is not found")

	filterCmd := &cobra.Command{
		Use:   "filter [file...]",
		Short: "Filter one or more exports into a single workbook",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFilter(cmd, flags, args)
		},
	}
	filterCmd.Flags().StringVarP(&flags.output, "output", "o", "filtered_shift_data.xlsx", "Output workbook")
	filterCmd.Flags().Float64Var(&flags.gapHours, "gap-hours", defaults.ShiftGapHours, "Gap in hours that starts a new shift")

	locateCmd := &cobra.Command{
		Use:   "locate [file]",
		Short: "Print the zero-based header row of an export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), flags.options().FindHeaderRow(content))
			return nil
		},
	}

	root.AddCommand(filterCmd, locateCmd)
	return root
}

func runFilter(cmd *cobra.Command, flags *cliFlags, paths []string) error {
	files := make([]timeclock.Upload, 0, len(paths))
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		files = append(files, timeclock.Upload{Name: p, Content: content})
	}

	res, err := flags.options().Process(files)
	if err != nil {
		return err
	}

	out, err := os.Create(flags.output)
	if err != nil {
		return err
	}
	if err := timeclock.WriteWorkbook(out, res.Sheet); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	zap.L().Debug("filter done", zap.Strings("files", paths), zap.String("output", flags.output))
	fmt.Fprintf(cmd.OutOrStdout(), "%d rows in, %d rows out, %d employees -> %s\n",
		res.InputRows, res.OutputRows, res.Employees, flags.output)
	return nil
}
