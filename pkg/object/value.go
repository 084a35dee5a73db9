package object

import (
	"io"

	"github.com/mesh-intelligence/hutch/pkg/eeprom"
)

// Value is an object exposing a byte-stream projection of its state.
// A plain Value is read-only over the wire; it may still mutate
// internally through Update.
type Value interface {
	Object

	// ReadTo streams the value's current state to w.
	ReadTo(w io.Writer) error

	// ReadSize returns the number of bytes ReadTo produces.
	ReadSize() int
}

// WritableValue is a value whose state can also be written from a
// stream.
type WritableValue interface {
	Value

	// WriteFrom replaces the value's state from r.
	WriteFrom(r io.Reader) error

	// WriteSize returns the number of bytes WriteFrom consumes.
	// Usually equal to ReadSize.
	WriteSize() int
}

// PersistAware is implemented by values bound to the store offset of
// their own definition payload, letting them locate and rewrite their
// defining bytes.
type PersistAware interface {
	// Offset returns the bound payload offset, or eeprom.Unbound.
	Offset() eeprom.Offset
}

// Anchor is the one-shot storage binding for persist-aware values.
// Embed it and the framework's single Rehydrated call fixes the offset
// for the lifetime of the instance.
type Anchor struct {
	off eeprom.Offset
}

// NewAnchor returns an unbound anchor. The zero Anchor is NOT unbound
// (offset zero is a valid address); always start from NewAnchor.
func NewAnchor() Anchor {
	return Anchor{off: eeprom.Unbound}
}

// Rehydrated binds the anchor to the definition payload offset. Only
// the first call takes effect; the framework never issues a second one.
func (a *Anchor) Rehydrated(off eeprom.Offset) {
	if a.off == eeprom.Unbound {
		a.off = off
	}
}

// Offset returns the bound offset, or eeprom.Unbound.
func (a *Anchor) Offset() eeprom.Offset { return a.off }

// StoredSize reads the persisted definition length: the length byte
// immediately precedes the bound offset.
func (a *Anchor) StoredSize(s eeprom.Store) (int, error) {
	if a.off == eeprom.Unbound {
		return 0, eeprom.ErrOutOfRange
	}
	b, err := eeprom.ReadByte(s, a.off-1)
	if err != nil {
		return 0, err
	}
	return int(b), nil
}
