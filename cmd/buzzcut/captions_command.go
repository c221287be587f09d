package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"buzzcut/internal/logging"
)

func newCaptionsCommand(ctx *commandContext) *cobra.Command {
	captionsCmd := &cobra.Command{
		Use:   "captions",
		Short: "Caption maintenance utilities",
	}

	captionsCmd.AddCommand(&cobra.Command{
		Use:   "update",
		Short: "Regenerate captions for every queued clip",
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

			updated, err := s.BackfillCaptions(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %d captions\n", updated)
			return nil
		},
	})

	return captionsCmd
}
