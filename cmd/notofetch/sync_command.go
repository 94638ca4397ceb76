package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"notofetch/internal/logging"
	"notofetch/internal/run"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch the catalog and download all missing animations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if workers > 0 {
				cfg.Download.Workers = workers
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("build logger: %w", err)
			}

			out := cmd.OutOrStdout()
			runner, err := run.New(cfg, logger, out)
			if err != nil {
				return err
			}

			report, err := runner.Sync(cmd.Context())
			if err != nil {
				return err
			}

			writeSyncReport(out, report)
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent download workers (default from config)")
	return cmd
}

func writeSyncReport(out io.Writer, report *run.Report) {
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Downloaded: %d\n", report.Summary.Downloaded)
	fmt.Fprintf(out, "Skipped (existing): %d\n", report.Summary.Skipped)
	fmt.Fprintf(out, "Failed: %d\n", report.Summary.Failed)
	fmt.Fprintf(out, "Total size: %s\n", humanize.IBytes(uint64(report.Summary.TotalBytes)))
	fmt.Fprintf(out, "Location: %s\n", report.OutputDir)
	fmt.Fprintln(out)
	fmt.Fprintln(out, renderCategoryCounts(report.Counts))
}
