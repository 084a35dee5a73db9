// Delete command removes an object and disposes its stored definition.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <chain>",
	Short: "Delete the object at an id chain",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		chain, err := parseChainArg(args[0])
		if err != nil {
			return err
		}

		b, closeFn, err := openBox()
		if err != nil {
			return err
		}
		defer closeFn()

		if err := b.DeleteObject(chain); err != nil {
			return fmt.Errorf("delete %s: %w", chain, err)
		}

		fmt.Printf("Deleted %s\n", chain)
		return nil
	},
}
