package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jonathan/cardforge/internal/config"
)

var (
	configPath string
	verbose    bool

	// settings is the merged configuration: config file, then environment,
	// then defaults. Command flags are applied on top by each command.
	settings = config.Defaults()
	logger   = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "cardforge",
	Short: "Generate presentation cards from a markdown profile and a photo",
	Long: `cardforge parses a markdown profile, condenses each section with an optional
local text model (falling back to a deterministic policy), and draws a fixed-layout
card with the photo on the left and the summarized sections on the right.

Configuration can be loaded from a JSON or YAML file using --config.
CARDFORGE_MODEL, CARDFORGE_MODEL_ENDPOINT and CARDFORGE_TIMEOUT override it;
command-line flags override both.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (.json, .yaml or .yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

// setup loads settings and builds the logger before any command runs
func setup(_ *cobra.Command, _ []string) error {
	cfg, err := loadSettings(configPath, os.LookupEnv)
	if err != nil {
		return err
	}
	if verbose {
		cfg.Verbose = true
	}
	settings = cfg

	zapConfig := zap.NewProductionConfig()
	if settings.Verbose {
		zapConfig.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err = zapConfig.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// loadSettings merges the config file at path (optional), the environment
// and the defaults, and validates the result
func loadSettings(path string, lookup func(string) (string, bool)) (config.Config, error) {
	var cfg config.Config
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}

	cfg.ApplyEnv(lookup)
	merged := cfg.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}
