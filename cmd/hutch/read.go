// Read command streams the state of a value object.
package main

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
)

var readCmd = &cobra.Command{
	Use:   "read <chain>",
	Short: "Read the value at an id chain",
	Long: `Read streams the current state of the value at the chain and prints
it as hex. With --json the chain and bytes are printed as a JSON object.`,
	Args: cobra.ExactArgs(1),
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

		var buf bytes.Buffer
		if err := b.ReadObject(chain, &buf); err != nil {
			return fmt.Errorf("read %s: %w", chain, err)
		}

		if flagJSON {
			return printJSON(map[string]string{
				"chain": chain.String(),
				"data":  hex.EncodeToString(buf.Bytes()),
			})
		}
		fmt.Println(hex.EncodeToString(buf.Bytes()))
		return nil
	},
}
