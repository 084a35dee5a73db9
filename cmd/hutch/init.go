// Init command for the hutch CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize hutch configuration and storage",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return fmt.Errorf("init: %w", err)
		}

		// The config dir and default config.yaml already exist after
		// PersistentPreRunE; booting the box creates the store.
		_, closeFn, err := openBox()
		if err != nil {
			return fmt.Errorf("init: %w", err)
		}
		defer closeFn()

		dataDir, err := resolveDataDir()
		if err != nil {
			return fmt.Errorf("init: %w", err)
		}

		fmt.Println("Hutch initialized successfully")
		fmt.Println("  config:", configDir)
		fmt.Println("  data:  ", dataDir)
		fmt.Println("  store: ", cfg.Backend)
		return nil
	},
}
