package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"buzzcut/internal/logging"
	"buzzcut/internal/publishqueue"
	"buzzcut/internal/review"
)

func newReviewCommand(ctx *commandContext) *cobra.Command {
	reviewCmd := &cobra.Command{
		Use:   "review",
		Short: "Moderate queued clips",
	}

	reviewCmd.AddCommand(newReviewNextCommand(ctx))
	reviewCmd.AddCommand(newReviewApproveCommand(ctx))
	reviewCmd.AddCommand(newReviewRejectCommand(ctx))
	reviewCmd.AddCommand(newReviewDeferCommand(ctx))
	reviewCmd.AddCommand(newReviewEditCommand(ctx))
	reviewCmd.AddCommand(newReviewRestoreCommand(ctx))
	reviewCmd.AddCommand(newReviewPostedCommand(ctx))

	return reviewCmd
}

func reviewService(ctx *commandContext) (*review.Service, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	return buildReviewService(cfg, logging.NewNop())
}

func newReviewNextCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Show the oldest pending clip",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := reviewService(ctx)
			if err != nil {
				return err
			}
			task, err := svc.Next()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if task == nil {
				fmt.Fprintln(out, "No pending clips")
				return nil
			}
			printClipTask(out, task)
			return nil
		},
	}
}

func newReviewApproveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "approve <clip-id>",
		Short: "Approve a clip for publishing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := reviewService(ctx)
			if err != nil {
				return err
			}
			ok, err := svc.Approve(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("clip %s not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Approved %s\n", args[0])
			return nil
		},
	}
}

func newReviewRejectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reject <clip-id>",
		Short: "Reject a clip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := reviewService(ctx)
			if err != nil {
				return err
			}
			ok, err := svc.Reject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("clip %s not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Rejected %s\n", args[0])
			return nil
		},
	}
}

func newReviewDeferCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "defer <clip-id>",
		Short: "Skip a clip and keep it pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := reviewService(ctx)
			if err != nil {
				return err
			}
			ok, err := svc.Defer(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("clip %s not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deferred %s; it will resurface on the next pass\n", args[0])
			return nil
		},
	}
}

func newReviewEditCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <clip-id> <caption text>",
		Short: "Replace a clip's caption",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := reviewService(ctx)
			if err != nil {
				return err
			}
			ok, err := svc.Edit(args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("clip %s not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated caption for %s\n", args[0])
			return nil
		},
	}
}

func newReviewRestoreCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <clip-id>",
		Short: "Restore a clip's generated caption",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := reviewService(ctx)
			if err != nil {
				return err
			}
			ok, err := svc.Restore(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("clip %s not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Restored caption for %s\n", args[0])
			return nil
		},
	}
}

func newReviewPostedCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "posted <clip-id>",
		Short: "Record that an approved clip was published",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := reviewService(ctx)
			if err != nil {
				return err
			}
			ok, err := svc.MarkPosted(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("clip %s not found", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %s as posted\n", args[0])
			return nil
		},
	}
}

func printClipTask(out io.Writer, task *publishqueue.ClipTask) {
	fmt.Fprintf(out, "Clip:      %s\n", task.ID)
	fmt.Fprintf(out, "Creator:   %s\n", task.Creator)
	fmt.Fprintf(out, "Video:     %s (moment %s)\n", task.VideoID, formatMoment(task.MomentSec))
	fmt.Fprintf(out, "File:      %s\n", task.ClipPath)
	fmt.Fprintf(out, "Platforms: %s\n", strings.Join(task.Platforms, ", "))
	fmt.Fprintf(out, "Status:    %s\n", task.Status)
	if task.CaptionCurrent != "" {
		fmt.Fprintf(out, "Caption:   %s\n", task.CaptionCurrent)
	}
}
