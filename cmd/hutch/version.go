// Version command for the hutch CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hutch/pkg/hutch"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the hutch version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("hutch", hutch.Version)
	},
}
