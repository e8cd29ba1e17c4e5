// Package cmd provides the command-line interface of spikenet.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/spikenet/config"
	"github.com/sarchlab/spikenet/logging"
)

var (
	configPath string
	envFile    string
	logLevel   string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "spikenet",
	Short: "spikenet simulates networks of spiking point-neurons.",
	Long: `spikenet builds a random network of Izhikevich neurons, drives it ` +
		`with noisy thalamic input and records the spikes and the ` +
		`trajectories of sampled neurons.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env",
		"file of SPIKENET_* variables loaded before the environment")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level: debug, info, warn or error")
}

// Execute adds all child commands to the root command and sets flags
// appropriately. Exit handlers registered with atexit run before the process
// ends.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func loadConfig(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath, envFile)
	if err != nil {
		return nil, nil, err
	}

	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())

	return cfg, logger, nil
}
