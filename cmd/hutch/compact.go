// Compact command reclaims disposed space in the store.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hutch/pkg/box"
)

var compactCmd = &cobra.Command{
	Use:   "compact",
	Short: "Reclaim disposed definition blocks in the store",
	Long: `Compact rewrites the store so live definitions are contiguous at
the front and all disposed blocks are erased. It runs on the raw store,
without booting a box, so no live objects hold stale offsets.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, closeFn, err := openStore()
		if err != nil {
			return err
		}
		defer closeFn()

		if err := box.CompactStore(s); err != nil {
			return fmt.Errorf("compact: %w", err)
		}

		fmt.Println("Store compacted")
		return nil
	},
}
