package object

import (
	"io"

	"github.com/mesh-intelligence/hutch/pkg/eeprom"
)

// Definition carries the parameters for constructing an object: the
// byte stream holding its defining payload, the payload length, the
// application type tag, and references to the store and root container
// so a newly created object immediately knows its environment.
type Definition struct {
	// In provides the definition payload bytes.
	In io.Reader

	// Len is the payload length in bytes.
	Len uint8

	// Type selects the factory that builds the object.
	Type TypeID

	// Store is the persistent store backing the box.
	Store eeprom.Store

	// Root is the box's root container.
	Root Container

	read int
}

// Definer is implemented by objects whose construction fills in parts
// of the definition the creator left blank, such as a generated
// identity. The box persists DefinitionBytes in place of the creation
// payload, so a later rehydration rebuilds the object the factory
// actually produced.
type Definer interface {
	DefinitionBytes() []byte
}

// ReadPayload reads up to len(p) payload bytes, tracking how much of the
// definition has been consumed.
func (d *Definition) ReadPayload(p []byte) (int, error) {
	n, err := d.In.Read(p)
	d.read += n
	return n, err
}

// Payload reads the entire remaining definition payload.
func (d *Definition) Payload() ([]byte, error) {
	remaining := int(d.Len) - d.read
	if remaining <= 0 {
		return nil, nil
	}
	p := make([]byte, remaining)
	if _, err := io.ReadFull(d.In, p); err != nil {
		return nil, err
	}
	d.read += remaining
	return p, nil
}

// Spool drains any unread payload bytes. Factories that consume only
// part of the definition call this so the stream lands on the next
// block; calling it after a full read is a no-op.
func (d *Definition) Spool() error {
	remaining := int(d.Len) - d.read
	if remaining <= 0 {
		return nil
	}
	n, err := io.CopyN(io.Discard, d.In, int64(remaining))
	d.read += int(n)
	return err
}
