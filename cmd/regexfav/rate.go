package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/five82/regexfav/internal/community"
	"github.com/five82/regexfav/internal/favorites"
	"github.com/five82/regexfav/internal/logging"
)

func newRateCmd(g *globalFlags) *cobra.Command {
	var local bool
	cmd := &cobra.Command{
		Use:   "rate <id> <0-5>",
		Short: "Rate a pattern (0 clears the personal rating)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if !favorites.Persistable(id) {
				return fmt.Errorf("invalid pattern id %q", id)
			}
			v, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("rating %q is not a number", args[1])
			}

			store, cfg, closeLog, err := g.openStore()
			if err != nil {
				return err
			}
			defer closeLog()

			if err := store.SetRating(id, v); err != nil {
				return err
			}
			if local {
				return nil
			}
			client, err := community.NewClient(cfg.APIBase)
			if err != nil {
				return err
			}
			if err := client.Rate(cmd.Context(), id, v); err != nil {
				logger := logging.Component("cli")
				logger.Warn().Err(err).Str("id", id).Msg("rate request failed")
				return fmt.Errorf("saved locally, API rating failed: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&local, "local", false, "only store the rating locally")
	return cmd
}
