package blocks

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/hutch/pkg/box"
	"github.com/mesh-intelligence/hutch/pkg/object"
)

// Fixed type tags of the stock blocks. Application types should start
// above TypeSysInfo.
const (
	TypeContainer      object.TypeID = 1
	TypePersistedValue object.TypeID = 2
	TypeTicks          object.TypeID = 3
	TypeSysInfo        object.TypeID = 4
)

// Register wires every stock factory into reg.
func Register(reg *box.Registry) error {
	factories := map[object.TypeID]box.Factory{
		TypeContainer:      newContainer,
		TypePersistedValue: newPersistedValue,
		TypeTicks:          newTicks,
		TypeSysInfo:        newSysInfo,
	}
	for t, f := range factories {
		if err := reg.Register(t, f); err != nil {
			return fmt.Errorf("stock block %d: %w", t, err)
		}
	}
	return nil
}

// newContainer builds a growable container. Definition: [size], the
// initial slot count.
func newContainer(def *object.Definition) (object.Object, error) {
	var size [1]byte
	if _, err := def.ReadPayload(size[:]); err != nil {
		return nil, fmt.Errorf("container definition: %w", err)
	}
	if object.ID(size[0]) > object.MaxID {
		return nil, object.ErrInvalidID
	}
	c := object.NewGrowingContainer(object.ID(size[0]))
	c.Type = def.Type
	return c, def.Spool()
}

// newPersistedValue builds a value over the whole definition payload.
func newPersistedValue(def *object.Definition) (object.Object, error) {
	data, err := def.Payload()
	if err != nil {
		return nil, fmt.Errorf("persisted value definition: %w", err)
	}
	return NewPersistedValue(def.Store, data), nil
}

// newTicks ignores the payload; uptime starts at construction.
func newTicks(def *object.Definition) (object.Object, error) {
	return NewTicks(), def.Spool()
}

// newSysInfo recovers the identity from a 16-byte payload, or generates
// one for an empty definition.
func newSysInfo(def *object.Definition) (object.Object, error) {
	data, err := def.Payload()
	if err != nil {
		return nil, fmt.Errorf("sysinfo definition: %w", err)
	}
	if len(data) == 0 {
		return NewSysInfo(), nil
	}
	id, err := uuid.FromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("sysinfo definition: %w", err)
	}
	return NewSysInfoWithID(id), nil
}
