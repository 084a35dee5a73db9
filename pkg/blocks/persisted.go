package blocks

import (
	"fmt"
	"io"
	"time"

	"github.com/mesh-intelligence/hutch/pkg/eeprom"
	"github.com/mesh-intelligence/hutch/pkg/object"
)

// PersistedValue is a writable value whose state is exactly its
// definition payload. A stream write updates the in-memory bytes and,
// once the anchor is bound, rewrites the stored definition in place so
// the new state survives a restart. The size is fixed at creation.
type PersistedValue struct {
	object.Anchor
	store eeprom.Store
	data  []byte
}

// NewPersistedValue builds an unbound value of len(data) bytes backed
// by store. The framework binds the anchor when the definition block
// lands in storage.
func NewPersistedValue(store eeprom.Store, data []byte) *PersistedValue {
	return &PersistedValue{
		Anchor: object.NewAnchor(),
		store:  store,
		data:   append([]byte(nil), data...),
	}
}

func (v *PersistedValue) Flags() object.Flags {
	return object.FlagValue | object.FlagWritable
}

func (v *PersistedValue) TypeID() object.TypeID { return TypePersistedValue }
func (v *PersistedValue) Prepare() time.Duration { return 0 }
func (v *PersistedValue) Update() {}
func (v *PersistedValue) ReadSize() int { return len(v.data) }
func (v *PersistedValue) WriteSize() int { return len(v.data) }

func (v *PersistedValue) ReadTo(w io.Writer) error {
	_, err := w.Write(v.data)
	return err
}

// WriteFrom replaces the value's bytes from r and writes them through
// to the bound definition payload. An unbound value only updates in
// memory.
func (v *PersistedValue) WriteFrom(r io.Reader) error {
	next := make([]byte, len(v.data))
	if _, err := io.ReadFull(r, next); err != nil {
		return fmt.Errorf("persisted value write: %w", err)
	}
	if off := v.Offset(); off != eeprom.Unbound {
		if err := v.store.WriteAt(next, off); err != nil {
			return fmt.Errorf("persisted value store: %w", err)
		}
	}
	copy(v.data, next)
	return nil
}
