package object

import (
	"errors"
	"time"

	"github.com/mesh-intelligence/hutch/pkg/eeprom"
)

// TypeID is the application-defined type tag of an object. It is stable
// across restarts and selects the factory that reconstructs the object
// during rehydration. One byte in the persisted block.
type TypeID uint8

// ID addresses a slot within a container. Ids are unique within one
// container but may repeat across siblings; the id chain is the global
// address.
type ID int8

const (
	// InvalidID marks an unresolved or absent slot (0xFF on the wire).
	InvalidID ID = -1

	// MaxID is the largest addressable slot id. Keeping the high bit
	// free lets the chain encoding use it as a continuation marker.
	MaxID ID = 127

	// MaxDepth bounds container nesting. Resolution fails on chains
	// longer than this without reading past the bound.
	MaxDepth = 3
)

// Resolution and container errors.
var (
	ErrNotFound         = errors.New("object not found")
	ErrInvalidID        = errors.New("invalid id in chain")
	ErrEmptyChain       = errors.New("empty id chain")
	ErrChainTooDeep     = errors.New("id chain exceeds maximum depth")
	ErrNotContainer     = errors.New("object is not a container")
	ErrNotOpenContainer = errors.New("object is not an open container")
	ErrNotReadable      = errors.New("object is not readable")
	ErrNotWritable      = errors.New("object is not writable")
	ErrContainerFull    = errors.New("container has no free slot")
)

// Object is the base abstraction every block in the box implements.
// Capability flags substitute for dynamic type identity: callers test
// flags, then narrow to Container/Value via the matching interface.
type Object interface {
	// Flags returns the capability bitset for this object.
	Flags() Flags

	// TypeID returns the application type tag.
	TypeID() TypeID

	// Rehydrated notifies the object of the store offset holding its
	// definition payload. The framework calls it at most once per
	// instance, before the object is linked into a container.
	Rehydrated(off eeprom.Offset)

	// Prepare returns the delay the object needs before Update may be
	// called (for example a pending sensor conversion). The delay is
	// advisory; the scheduler honoring it lives outside the box.
	Prepare() time.Duration

	// Update refreshes the object's internal state. Called after the
	// Prepare delay has elapsed. Must return quickly and never block.
	Update()
}

// Base provides the default lifecycle behavior for object types that do
// not persist, prepare, or update. Embed it and implement Flags and
// TypeID on the concrete type.
type Base struct{}

// Rehydrated ignores the storage binding.
func (Base) Rehydrated(eeprom.Offset) {}

// Prepare reports the object is ready immediately.
func (Base) Prepare() time.Duration { return 0 }

// Update does nothing.
func (Base) Update() {}
