package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/automata/internal/config"
	"github.com/aretw0/automata/internal/logging"
	"github.com/spf13/cobra"
)

var (
	cfg    = config.Default()
	logger = logging.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "automata",
	Short: "Animate accessible and co-accessible state computations",
	Long: `automata replays, step by step, how the accessible and co-accessible states
of a finite automaton are computed, and prunes the automaton to the result.

Graphs are read from YAML or JSON files:

  alphabet: [a, b]
  states:
    - {id: S0, initial: true}
    - {id: S1, final: true}
  transitions:
    - {from: S0, to: S1, label: "a, b"}`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./"+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
}

// setup loads the config file, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	path, _ := cmd.Flags().GetString("config")
	required := path != ""
	if !required {
		path = config.DefaultFile
	}

	loaded, err := config.Load(path, required)
	if err != nil {
		return err
	}
	cfg = loaded

	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		cfg.LogFormat = v
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger = logging.New(level, logging.Format(cfg.LogFormat))
	slog.SetDefault(logger)
	logger.Debug("config loaded", "path", path, "frontier", cfg.Frontier, "interval", cfg.Interval)
	return nil
}
