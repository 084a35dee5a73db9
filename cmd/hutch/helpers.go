// Shared helpers for hutch CLI commands.
package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/hutch/pkg/blocks"
	"github.com/mesh-intelligence/hutch/pkg/box"
	"github.com/mesh-intelligence/hutch/pkg/eeprom"
	"github.com/mesh-intelligence/hutch/pkg/object"
	"github.com/mesh-intelligence/hutch/pkg/store"
)

// openStore resolves the data directory and opens the configured store
// backend. The caller must call the returned close function.
func openStore() (eeprom.Store, func() error, error) {
	noop := func() error { return nil }

	if cfg.Backend == "memory" {
		return store.NewMemory(eeprom.Offset(cfg.StoreSize)), noop, nil
	}

	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve data dir: %w", err)
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create data dir: %w", err)
	}
	path := filepath.Join(dataDir, cfg.StoreFile)

	var s eeprom.Store
	switch cfg.Backend {
	case "sqlite":
		s, err = store.OpenSQLite(path+".db", eeprom.Offset(cfg.StoreSize))
	default:
		s, err = store.OpenFile(path, eeprom.Offset(cfg.StoreSize))
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open %s store: %w", cfg.Backend, err)
	}

	closeFn := noop
	if c, ok := s.(io.Closer); ok {
		closeFn = c.Close
	}
	return s, closeFn, nil
}

// openBox opens the store and boots a box over it with the stock block
// types registered. The caller must call the returned close function.
func openBox() (*box.Box, func() error, error) {
	s, closeFn, err := openStore()
	if err != nil {
		return nil, nil, err
	}

	reg := box.NewRegistry()
	if err := blocks.Register(reg); err != nil {
		closeFn()
		return nil, nil, err
	}

	b, err := box.New(s, reg, box.WithLogger(logger))
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("boot box: %w", err)
	}
	return b, closeFn, nil
}

// parsePayload decodes a hex argument like "0102ff" into bytes. An
// empty argument is an empty payload.
func parsePayload(arg string) ([]byte, error) {
	if arg == "" {
		return nil, nil
	}
	data, err := hex.DecodeString(arg)
	if err != nil {
		return nil, fmt.Errorf("invalid payload %q (expected hex): %w", arg, err)
	}
	return data, nil
}

// parseChainArg parses an id chain argument like "1/2/0".
func parseChainArg(arg string) (object.Chain, error) {
	return object.ParseChain(arg)
}

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
