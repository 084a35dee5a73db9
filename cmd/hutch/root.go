// Root command for the hutch CLI.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hutch/internal/paths"
	"github.com/mesh-intelligence/hutch/pkg/hutch"
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// cfg holds the configuration loaded by PersistentPreRunE so all
// subcommands can use it.
var cfg config

// logger is the CLI-wide logger, configured from the config log level.
var logger zerolog.Logger

var rootCmd = &cobra.Command{
	Use:     "hutch",
	Short:   "Hutch is an embedded object box over a byte store",
	Long: `Hutch manages a tree of typed objects persisted in a fixed-size
byte store. Objects are addressed by id chains like 1/2/0 and their
definitions survive restarts.`,
	Version:      hutch.Version,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err = loadConfig(configDir)
		if err != nil {
			return err
		}

		logger = newLogger(cfg.LogLevel)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory (default: $(CWD)/.hutch-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(readCmd)
	rootCmd.AddCommand(writeCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(compactCmd)
}

// newLogger builds a console logger at the configured level. An
// unparseable level falls back to warn.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(lvl).
		With().Timestamp().Logger()
}

// resolveConfigDir returns the configuration directory following the
// precedence chain: --config-dir flag > HUTCH_CONFIG_DIR env > platform
// default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveDataDir returns the data directory following the precedence
// chain: --data-dir flag > config.yaml store_path dir > HUTCH_DATA_DIR
// env > default $(CWD)/.hutch-db.
func resolveDataDir() (string, error) {
	return paths.ResolveDataDir(flagDataDir, cfg.DataDir)
}
