// Package store implements the eeprom.Store backends: an in-memory
// store for tests and embedded hosts, a file-backed image for hosts
// with a filesystem, and a SQLite-paged store for hosts that already
// carry a database. Public constructors live in pkg/store.
package store

import (
	"sync"

	"github.com/mesh-intelligence/hutch/pkg/eeprom"
)

// Memory is a volatile byte store. All bytes start erased (0xFF).
type Memory struct {
	mu  sync.RWMutex
	buf []byte
}

// NewMemory creates a memory store with the given capacity.
func NewMemory(size eeprom.Offset) *Memory {
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = eeprom.Erased
	}
	return &Memory{buf: buf}
}

// ReadAt fills p from the buffer at off.
func (m *Memory) ReadAt(p []byte, off eeprom.Offset) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if off < 0 || int(off)+len(p) > len(m.buf) {
		return eeprom.ErrOutOfRange
	}
	copy(p, m.buf[off:])
	return nil
}

// WriteAt copies p into the buffer at off.
func (m *Memory) WriteAt(p []byte, off eeprom.Offset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if off < 0 || int(off)+len(p) > len(m.buf) {
		return eeprom.ErrOutOfRange
	}
	copy(m.buf[off:], p)
	return nil
}

// Size returns the capacity in bytes.
func (m *Memory) Size() eeprom.Offset {
	return eeprom.Offset(len(m.buf))
}
