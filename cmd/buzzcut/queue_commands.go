package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"buzzcut/internal/publishqueue"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect the publish queue",
	}

	queueCmd.AddCommand(newQueueListCommand(ctx))
	queueCmd.AddCommand(newQueueStatsCommand(ctx))

	return queueCmd
}

func newQueueListCommand(ctx *commandContext) *cobra.Command {
	var statusFilter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List queued clips",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store := publishqueue.NewStore(cfg.QueuePath())

			var tasks []publishqueue.ClipTask
			if strings.TrimSpace(statusFilter) == "" {
				tasks, err = store.List()
			} else {
				status, ok := publishqueue.ParseStatus(statusFilter)
				if !ok {
					return fmt.Errorf("unknown status %q (expected one of %s)", statusFilter, statusNames())
				}
				tasks, err = store.ClipsByStatus(status)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(tasks) == 0 {
				fmt.Fprintln(out, "Queue is empty")
				return nil
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Creator", "Video", "Moment", "Status", "Edited", "Created"},
				buildQueueListRows(tasks),
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&statusFilter, "status", "", "Only show clips in this status")
	return cmd
}

func newQueueStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show publish queue counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store := publishqueue.NewStore(cfg.QueuePath())
			stats, err := store.Stats()
			if err != nil {
				return err
			}

			rows := [][]string{
				{"total", fmt.Sprintf("%d", stats.Total)},
				{"pending", fmt.Sprintf("%d", stats.Pending)},
				{"approved", fmt.Sprintf("%d", stats.Approved)},
				{"rejected", fmt.Sprintf("%d", stats.Rejected)},
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Status", "Count"},
				rows,
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}
}

func buildQueueListRows(tasks []publishqueue.ClipTask) [][]string {
	rows := make([][]string, 0, len(tasks))
	for _, task := range tasks {
		rows = append(rows, []string{
			task.ID,
			task.Creator,
			task.VideoID,
			formatMoment(task.MomentSec),
			string(task.Status),
			yesNo(task.Edited),
			task.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	return rows
}

func formatMoment(seconds int) string {
	return time.Duration(seconds * int(time.Second)).String()
}

func statusNames() string {
	statuses := publishqueue.AllStatuses()
	names := make([]string, 0, len(statuses))
	for _, status := range statuses {
		names = append(names, string(status))
	}
	return strings.Join(names, ", ")
}
