package object

import "io"

// Container is an object holding other objects at integer-indexed slots.
// An object obtained via Item is on loan: the caller must hand it back
// with ReturnItem once done, on success and error paths alike. The
// container does not enforce this; it trusts cooperative single-threaded
// callers.
type Container interface {
	Object

	// Item fetches the object at id, which may be nil.
	Item(id ID) Object

	// ReturnItem hands a previously fetched item back to the container.
	ReturnItem(id ID, item Object)

	// Size returns the slot upper bound: Item may be called with ids in
	// [0, Size).
	Size() ID
}

// OpenContainer is a container that accepts new objects.
type OpenContainer interface {
	Container

	// Add places item at the given slot. Returns false when the slot is
	// occupied, the id is out of range, and the container cannot grow.
	Add(id ID, item Object) bool

	// Next returns the first free slot id, or a negative id when full.
	Next() ID

	// Remove detaches the object at id. No-op when the slot is empty.
	Remove(id ID)
}

// destroy closes an object that is being discarded. Destruction is only
// meaningful for dynamically allocated objects that carry teardown state;
// those implement io.Closer.
func destroy(o Object) {
	if !IsDynamicallyAllocated(o) {
		return
	}
	if c, ok := o.(io.Closer); ok {
		_ = c.Close()
	}
}

// SlotContainer is the standard open container: a fixed array of slots
// addressed by id. The zero value is unusable; create one with
// NewSlotContainer or NewGrowingContainer.
type SlotContainer struct {
	Base

	// Type is reported by TypeID. Zero for framework-created containers.
	Type TypeID

	slots []Object
	grows bool
}

// NewSlotContainer creates a fixed-size container with the given number
// of slots.
func NewSlotContainer(size ID) *SlotContainer {
	if size < 0 {
		size = 0
	}
	return &SlotContainer{slots: make([]Object, size)}
}

// NewGrowingContainer creates a container that extends its slot array on
// demand, up to MaxID+1 slots.
func NewGrowingContainer(initial ID) *SlotContainer {
	c := NewSlotContainer(initial)
	c.grows = true
	return c
}

// Flags reports an open container.
func (c *SlotContainer) Flags() Flags {
	return FlagObject | FlagContainer | FlagOpenContainer
}

// TypeID returns the container's application type tag.
func (c *SlotContainer) TypeID() TypeID { return c.Type }

// Item returns the object at id, or nil when the slot is empty or out
// of range.
func (c *SlotContainer) Item(id ID) Object {
	if id < 0 || int(id) >= len(c.slots) {
		return nil
	}
	return c.slots[id]
}

// ReturnItem is a no-op: slot objects stay owned by the container.
func (c *SlotContainer) ReturnItem(ID, Object) {}

// Size returns the current slot count.
func (c *SlotContainer) Size() ID { return ID(len(c.slots)) }

// Add places item at id. The occupant of a taken slot is never altered.
func (c *SlotContainer) Add(id ID, item Object) bool {
	if id < 0 || id > MaxID || item == nil {
		return false
	}
	if int(id) >= len(c.slots) {
		if !c.grows {
			return false
		}
		grown := make([]Object, int(id)+1)
		copy(grown, c.slots)
		c.slots = grown
	}
	if c.slots[id] != nil {
		return false
	}
	c.slots[id] = item
	return true
}

// Next returns the first free slot, growing by one when allowed, or a
// negative id when no slot is available.
func (c *SlotContainer) Next() ID {
	for i, o := range c.slots {
		if o == nil {
			return ID(i)
		}
	}
	if c.grows && len(c.slots) <= int(MaxID) {
		return ID(len(c.slots))
	}
	return InvalidID
}

// Remove detaches and destroys the object at id. Destruction only
// applies to dynamically allocated objects.
func (c *SlotContainer) Remove(id ID) {
	if id < 0 || int(id) >= len(c.slots) || c.slots[id] == nil {
		return
	}
	o := c.slots[id]
	c.slots[id] = nil
	destroy(o)
}

// FactoryFunc manufactures the transient object served at a slot.
// Returning nil marks the slot empty.
type FactoryFunc func(id ID) Object

// FactoryContainer serves items manufactured on demand. Returned items
// are destroyed rather than released: each Item produces a fresh,
// caller-lifetime view.
type FactoryContainer struct {
	Base

	// Type is reported by TypeID.
	Type TypeID

	size    ID
	factory FactoryFunc
}

// NewFactoryContainer creates a factory container with size slots served
// by f.
func NewFactoryContainer(size ID, f FactoryFunc) *FactoryContainer {
	if size < 0 {
		size = 0
	}
	return &FactoryContainer{size: size, factory: f}
}

// Flags reports a closed container.
func (c *FactoryContainer) Flags() Flags { return FlagObject | FlagContainer }

// TypeID returns the container's application type tag.
func (c *FactoryContainer) TypeID() TypeID { return c.Type }

// Item manufactures the object for id.
func (c *FactoryContainer) Item(id ID) Object {
	if id < 0 || id >= c.size || c.factory == nil {
		return nil
	}
	return c.factory(id)
}

// ReturnItem destroys the manufactured item.
func (c *FactoryContainer) ReturnItem(_ ID, item Object) {
	destroy(item)
}

// Size returns the slot count.
func (c *FactoryContainer) Size() ID { return c.size }
