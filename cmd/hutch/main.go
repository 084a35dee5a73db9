// Package main provides the hutch CLI: an embedded object box over a
// fixed-size byte store, addressed by id chains.
package main

import (
	"fmt"
	"os"

	"github.com/mesh-intelligence/hutch/pkg/box"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps a command error to its exit code: addressing and
// capability errors are user errors, store failures are system errors.
func exitCodeFor(err error) int {
	switch box.StatusOf(err) {
	case box.StatusOK:
		return exitSuccess
	case box.StatusStoreFull, box.StatusStoreError, box.StatusUnknownError:
		return exitSysError
	default:
		return exitUserError
	}
}
