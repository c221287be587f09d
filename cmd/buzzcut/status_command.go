package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"buzzcut/internal/preflight"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check external tools and environment readiness",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)

			for _, line := range renderSectionHeader("External Tools", colorize) {
				fmt.Fprintln(out, line)
			}
			for _, status := range preflight.CheckSystemDeps(cfg) {
				kind := statusOK
				if !status.Available {
					kind = statusError
					if status.Tool.Optional {
						kind = statusWarn
					}
				}
				fmt.Fprintln(out, renderStatusLine(status.Tool.Name, kind, status.Detail, colorize))
			}

			fmt.Fprintln(out)
			for _, line := range renderSectionHeader("Environment", colorize) {
				fmt.Fprintln(out, line)
			}
			failures := 0
			for _, result := range preflight.RunAll(cmd.Context(), cfg) {
				kind := statusOK
				if !result.Passed {
					kind = statusError
					failures++
				}
				fmt.Fprintln(out, renderStatusLine(result.Name, kind, result.Detail, colorize))
			}

			fmt.Fprintln(out)
			if failures > 0 {
				fmt.Fprintf(out, "%d checks failed; scanning will be skipped until they pass\n", failures)
				return nil
			}
			fmt.Fprintln(out, "Ready to scan")
			return nil
		},
	}
}
