package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotContainerAdd(t *testing.T) {
	c := NewSlotContainer(3)
	v := newTestValue(1)

	assert.True(t, c.Add(0, v))
	assert.Same(t, Object(v), c.Item(0))

	// Occupied slot: add fails and the occupant is unaltered.
	other := newTestValue(2)
	assert.False(t, c.Add(0, other))
	assert.Same(t, Object(v), c.Item(0))

	// Out of range on a fixed-size container.
	assert.False(t, c.Add(3, other))
	assert.False(t, c.Add(InvalidID, other))
	assert.False(t, c.Add(1, nil))
}

func TestSlotContainerNext(t *testing.T) {
	c := NewSlotContainer(2)
	assert.Equal(t, ID(0), c.Next())
	require.True(t, c.Add(0, newTestValue(1)))
	assert.Equal(t, ID(1), c.Next())
	require.True(t, c.Add(1, newTestValue(1)))
	assert.Negative(t, int(c.Next()))
}

func TestSlotContainerRemove(t *testing.T) {
	closed := 0
	c := NewSlotContainer(2)
	require.True(t, c.Add(0, &closeCounter{closed: &closed}))

	c.Remove(0)
	assert.Nil(t, c.Item(0))
	assert.Equal(t, 1, closed, "dynamic object must be destroyed on remove")

	// Empty slot and out-of-range removes are no-ops.
	c.Remove(0)
	c.Remove(5)
	assert.Equal(t, 1, closed)
}

func TestSlotContainerRemoveStatic(t *testing.T) {
	closed := 0
	c := NewSlotContainer(1)
	require.True(t, c.Add(0, &closeCounter{flags: FlagStaticAllocated, closed: &closed}))

	c.Remove(0)
	assert.Nil(t, c.Item(0))
	assert.Equal(t, 0, closed, "static object must never be destroyed")
}

func TestGrowingContainer(t *testing.T) {
	c := NewGrowingContainer(0)
	assert.Equal(t, ID(0), c.Size())
	assert.Equal(t, ID(0), c.Next())

	require.True(t, c.Add(5, newTestValue(1)))
	assert.Equal(t, ID(6), c.Size())
	assert.Equal(t, ID(0), c.Next())

	// Ids below zero are rejected; growth tops out at MaxID.
	assert.False(t, c.Add(InvalidID, newTestValue(1)))
	require.True(t, c.Add(MaxID, newTestValue(1)))
	assert.NotNil(t, c.Item(MaxID))
	assert.Equal(t, ID(0), c.Next(), "holes below MaxID stay allocatable")
}

func TestSlotContainerItemBounds(t *testing.T) {
	c := NewSlotContainer(1)
	assert.Nil(t, c.Item(InvalidID))
	assert.Nil(t, c.Item(1))
	assert.Nil(t, c.Item(0))
}

// TestFactoryContainerDestroysOnReturn verifies the factory container
// destroys returned items while a plain container does not.
func TestFactoryContainerDestroysOnReturn(t *testing.T) {
	closed := 0
	fc := NewFactoryContainer(1, func(id ID) Object {
		return &closeCounter{closed: &closed}
	})

	item := fc.Item(0)
	require.NotNil(t, item)
	fc.ReturnItem(0, item)
	assert.Equal(t, 1, closed)

	// A plain container's ReturnItem releases without destroying.
	closed = 0
	sc := NewSlotContainer(1)
	cc := &closeCounter{closed: &closed}
	require.True(t, sc.Add(0, cc))
	got := sc.Item(0)
	sc.ReturnItem(0, got)
	assert.Equal(t, 0, closed)
	assert.Same(t, Object(cc), sc.Item(0))
}

func TestFactoryContainerBounds(t *testing.T) {
	fc := NewFactoryContainer(2, func(id ID) Object { return newTestValue(TypeID(id)) })
	assert.Nil(t, fc.Item(2))
	assert.Nil(t, fc.Item(InvalidID))
	assert.NotNil(t, fc.Item(1))
	assert.Nil(t, NewFactoryContainer(2, nil).Item(0))
}
