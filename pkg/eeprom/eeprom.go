// Package eeprom defines the byte-addressable persistent store interface
// used to keep object definitions across power cycles. Backends live in
// internal/store; pkg/store exposes their constructors.
package eeprom

import "errors"

// Offset is a byte address within a Store. Unbound marks an object that
// has not yet been linked to its persisted definition.
type Offset int32

// Unbound is the "not yet bound to storage" offset.
const Unbound Offset = -1

// Erased is the value unwritten store bytes read back as. The journal
// relies on it to find the end of the persisted blocks.
const Erased byte = 0xFF

// Store operation errors.
var (
	ErrOutOfRange = errors.New("offset out of range")
	ErrClosed     = errors.New("store is closed")
)

// Store is a byte-addressable persistent store. Reads of bytes that were
// never written return Erased. Implementations are not required to make
// writes atomic; an interrupted write may leave a partial block behind.
type Store interface {
	// ReadAt fills p with the bytes starting at off.
	// Returns ErrOutOfRange if the range [off, off+len(p)) exceeds Size.
	ReadAt(p []byte, off Offset) error

	// WriteAt writes p starting at off.
	// Returns ErrOutOfRange if the range exceeds Size.
	WriteAt(p []byte, off Offset) error

	// Size returns the store capacity in bytes.
	Size() Offset
}

// ReadByte reads the single byte at off.
func ReadByte(s Store, off Offset) (byte, error) {
	var b [1]byte
	if err := s.ReadAt(b[:], off); err != nil {
		return 0, err
	}
	return b[0], nil
}

// WriteByte writes a single byte at off.
func WriteByte(s Store, off Offset, b byte) error {
	return s.WriteAt([]byte{b}, off)
}
