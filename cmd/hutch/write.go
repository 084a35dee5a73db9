// Write command replaces the state of a writable value object.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var writeCmd = &cobra.Command{
	Use:   "write <chain> <payload>",
	Short: "Write the value at an id chain",
	Long: `Write replaces the state of the writable value at the chain from
the hex payload. Persist-aware values also rewrite their stored
definition, so the new state survives a restart.

Example:
  hutch write 0/1 beef`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		chain, err := parseChainArg(args[0])
		if err != nil {
			return err
		}
		payload, err := parsePayload(args[1])
		if err != nil {
			return err
		}

		b, closeFn, err := openBox()
		if err != nil {
			return err
		}
		defer closeFn()

		if err := b.WriteObject(chain, payload); err != nil {
			return fmt.Errorf("write %s: %w", chain, err)
		}

		fmt.Printf("Wrote %d bytes to %s\n", len(payload), chain)
		return nil
	},
}
