// Export command snapshots the box to a manifest file.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hutch/pkg/box"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export all live definitions to a manifest file",
	Long: `Export snapshots every live object definition to a CBOR manifest.
With --json the manifest is written as JSON instead; "-" writes to
stdout. Importing the manifest into an empty box reproduces the object
graph.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		b, closeFn, err := openBox()
		if err != nil {
			return err
		}
		defer closeFn()

		m, err := b.Export()
		if err != nil {
			return err
		}

		if flagJSON {
			if args[0] == "-" {
				return printJSON(m)
			}
			data, err := jsonManifest(m)
			if err != nil {
				return err
			}
			return writeManifestFile(args[0], data, len(m.Entries))
		}

		data, err := box.MarshalManifest(m)
		if err != nil {
			return fmt.Errorf("encode manifest: %w", err)
		}
		if args[0] == "-" {
			_, err := os.Stdout.Write(data)
			return err
		}
		return writeManifestFile(args[0], data, len(m.Entries))
	},
}

func jsonManifest(m *box.Manifest) ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode manifest: %w", err)
	}
	return data, nil
}

func writeManifestFile(path string, data []byte, entries int) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	fmt.Printf("Exported %d definitions to %s\n", entries, path)
	return nil
}
