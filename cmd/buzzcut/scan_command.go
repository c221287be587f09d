package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"buzzcut/internal/buzz"
	"buzzcut/internal/logging"
	"buzzcut/internal/scanner"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Run one scan cycle over the watched channels",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			s, closeJournal, err := buildScanner(cfg, logger)
			if err != nil {
				return err
			}
			defer closeJournal() //nolint:errcheck

			summary, err := s.Scan(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Scanned %d videos, queued %d clips\n", summary.VideosScanned, summary.ClipsCreated)
			if len(summary.Report) == 0 {
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Channel", "Title", "Verdict", "Views/h", "Buzz", "Engagement", "Growth"},
				buildReportRows(summary.Report),
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func buildReportRows(report []scanner.ReportLine) [][]string {
	rows := make([][]string, 0, len(report))
	for _, line := range report {
		rows = append(rows, []string{
			fmt.Sprintf("%d", line.Rank),
			line.Channel,
			truncate(line.Title, 48),
			line.Verdict,
			fmt.Sprintf("%.0f", line.ViewsPerHour),
			fmt.Sprintf("%.1f", line.BuzzScore),
			line.Engagement,
			formatAcceleration(line.Acceleration),
		})
	}
	return rows
}

func formatAcceleration(accel buzz.Acceleration) string {
	if accel.Tier == buzz.AccelInsufficient {
		return "n/a"
	}
	return fmt.Sprintf("%s %+.0f%%", accel.Tier, accel.Growth*100)
}

func truncate(value string, limit int) string {
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	return string(runes[:limit-1]) + "…"
}
