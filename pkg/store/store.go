// Package store provides the public constructors for the hutch byte
// store backends while keeping implementation details internal.
package store

import (
	"github.com/mesh-intelligence/hutch/internal/store"
	"github.com/mesh-intelligence/hutch/pkg/eeprom"
)

// NewMemory creates a volatile in-memory store, for tests and hosts
// without persistent storage.
func NewMemory(size eeprom.Offset) eeprom.Store {
	return store.NewMemory(size)
}

// OpenFile opens or creates a fixed-size image file store. The returned
// store also implements io.Closer.
//
// Example:
//
//	s, err := store.OpenFile(".hutch-db/hutch.img", 4096)
//	if err != nil { ... }
//	defer s.(io.Closer).Close()
func OpenFile(path string, size eeprom.Offset) (eeprom.Store, error) {
	return store.OpenFile(path, size)
}

// OpenSQLite opens or creates a SQLite-paged store. The returned store
// also implements io.Closer.
func OpenSQLite(path string, size eeprom.Offset) (eeprom.Store, error) {
	return store.OpenSQLite(path, size)
}
