package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sarchlab/spikenet/report"
	"github.com/sarchlab/spikenet/rng"
)

var paramsSeed uint64

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Build the configured network and print its parameter table.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("seed") {
			cfg.Run.Seed = paramsSeed
		}

		net, _, err := buildNetwork(cfg, rng.New(cfg.Run.Seed), logger)
		if err != nil {
			return err
		}

		return report.WriteParams(cmd.OutOrStdout(), net)
	},
}

func init() {
	paramsCmd.Flags().Uint64Var(&paramsSeed, "seed", 0,
		"seed of the sampling source, overriding the configuration")

	rootCmd.AddCommand(paramsCmd)
}
