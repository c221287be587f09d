package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"buzzcut/internal/scanlog"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history <video-id>",
		Short: "Show how a video's verdict evolved across scans",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			journal, err := scanlog.Open(cfg.ScanLogPath())
			if err != nil {
				return err
			}
			defer journal.Close() //nolint:errcheck

			entries, err := journal.History(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(out, "No scan history for %s\n", args[0])
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.ScannedAt.Local().Format("2006-01-02 15:04"),
					entry.ChannelName,
					entry.VerdictTier,
					fmt.Sprintf("%.0f", entry.ViewsPerHour),
					fmt.Sprintf("%.1f", entry.BuzzScore),
					fmt.Sprintf("%d", entry.ClipsCreated),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Scanned", "Channel", "Verdict", "Views/h", "Buzz", "Clips"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of journal rows to show")
	return cmd
}
