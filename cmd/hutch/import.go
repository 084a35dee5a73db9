// Import command replays a manifest into the box.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hutch/pkg/box"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a manifest, recreating its objects",
	Long: `Import replays the create commands recorded in a manifest file.
The manifest is CBOR by default, JSON with --json; "-" reads from
stdin. Slots already occupied in the box make the import fail.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error
		if args[0] == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("read manifest: %w", err)
		}

		var m *box.Manifest
		if flagJSON {
			m = &box.Manifest{}
			if err := json.Unmarshal(data, m); err != nil {
				return fmt.Errorf("decode manifest: %w", err)
			}
		} else {
			if m, err = box.UnmarshalManifest(data); err != nil {
				return err
			}
		}

		b, closeFn, err := openBox()
		if err != nil {
			return err
		}
		defer closeFn()

		if err := b.Import(m); err != nil {
			return err
		}

		fmt.Printf("Imported %d definitions\n", len(m.Entries))
		return nil
	},
}
