// Create command builds and persists an object at an id chain.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hutch/pkg/object"
)

var createCmd = &cobra.Command{
	Use:   "create <chain> <type> [payload]",
	Short: "Create an object at an id chain",
	Long: `Create builds an object of the given type at the chain, persists
its definition, and links it under its parent container. Every ancestor
in the chain must already exist and the terminal slot must be free.

The payload is the type-specific definition, as hex bytes.

Stock types: 1 container, 2 persisted value, 3 ticks, 4 sysinfo

Example:
  hutch create 0 1 04          # container with 4 slots at /0
  hutch create 0/1 2 cafe      # two-byte persisted value at /0/1`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		chain, err := parseChainArg(args[0])
		if err != nil {
			return err
		}
		typ, err := strconv.ParseUint(args[1], 10, 8)
		if err != nil {
			return fmt.Errorf("invalid type %q (expected 0-255)", args[1])
		}
		var payload []byte
		if len(args) == 3 {
			if payload, err = parsePayload(args[2]); err != nil {
				return err
			}
		}

		b, closeFn, err := openBox()
		if err != nil {
			return err
		}
		defer closeFn()

		if err := b.CreateObject(chain, object.TypeID(typ), payload); err != nil {
			return fmt.Errorf("create %s: %w", chain, err)
		}

		fmt.Printf("Created %s (type %d)\n", chain, typ)
		return nil
	},
}
