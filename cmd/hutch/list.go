// List command enumerates the object tree.
package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [chain]",
	Short: "List objects under an id chain",
	Long: `List walks the subtree at the chain (default: the whole tree) and
prints every object in walk order: ascending ids, depth first. Logged
values include their current bytes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix := ""
		if len(args) == 1 {
			prefix = args[0]
		}
		chain, err := parseChainArg(prefix)
		if err != nil {
			return err
		}

		b, closeFn, err := openBox()
		if err != nil {
			return err
		}
		defer closeFn()

		entries, err := b.ListObjects(chain)
		if err != nil {
			return fmt.Errorf("list %s: %w", chain, err)
		}

		if flagJSON {
			return printJSON(entries)
		}
		for _, e := range entries {
			line := fmt.Sprintf("%-12s type=%-3d flags=%#02x", e.Chain, e.Type, uint8(e.Flags))
			if e.Data != nil {
				line += " data=" + hex.EncodeToString(e.Data)
			}
			fmt.Println(line)
		}
		return nil
	},
}
