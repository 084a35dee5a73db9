package object

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// trackingContainer wraps a SlotContainer and counts checkouts so tests
// can verify every Item is matched by a ReturnItem.
type trackingContainer struct {
	*SlotContainer
	outstanding int
}

func (c *trackingContainer) Item(id ID) Object {
	o := c.SlotContainer.Item(id)
	if o != nil {
		c.outstanding++
	}
	return o
}

func (c *trackingContainer) ReturnItem(id ID, item Object) {
	c.outstanding--
	c.SlotContainer.ReturnItem(id, item)
}

// buildTree assembles root -> mid (id 1) -> leaf value (id 2), with a
// plain value at root id 0.
func buildTree(t *testing.T) (*trackingContainer, *trackingContainer, *testValue) {
	t.Helper()
	root := &trackingContainer{SlotContainer: NewSlotContainer(4)}
	mid := &trackingContainer{SlotContainer: NewSlotContainer(4)}
	leaf := newTestValue(7, 0xAB)
	require.True(t, root.Add(0, newTestValue(1, 0x01)))
	require.True(t, root.Add(1, mid))
	require.True(t, mid.Add(2, leaf))
	return root, mid, leaf
}

func TestLookup(t *testing.T) {
	root, mid, leaf := buildTree(t)

	loan, err := Lookup(root, Chain{1, 2})
	require.NoError(t, err)
	assert.Same(t, Object(leaf), loan.Object())
	assert.Equal(t, ID(2), loan.ID())
	loan.Release()

	// All intermediate checkouts must be balanced after release.
	assert.Equal(t, 0, root.outstanding)
	assert.Equal(t, 0, mid.outstanding)
}

func TestLookupEmptyChainResolvesStart(t *testing.T) {
	root, _, _ := buildTree(t)
	loan, err := Lookup(root, Chain{})
	require.NoError(t, err)
	assert.Same(t, Object(root), loan.Object())
	assert.Nil(t, loan.Parent())
	loan.Release() // no-op for a root loan
	assert.Equal(t, 0, root.outstanding)
}

func TestLookupFailures(t *testing.T) {
	root, _, _ := buildTree(t)
	tests := []struct {
		name    string
		chain   Chain
		wantErr error
	}{
		{"missing slot", Chain{3}, ErrNotFound},
		{"missing nested", Chain{1, 0}, ErrNotFound},
		{"through non-container", Chain{0, 1}, ErrNotContainer},
		{"invalid id aborts", Chain{InvalidID}, ErrInvalidID},
		{"invalid id mid-chain", Chain{1, InvalidID}, ErrInvalidID},
		{"too deep", Chain{1, 2, 3, 4}, ErrChainTooDeep},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Lookup(root, tt.chain)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 0, root.outstanding, "failed lookup leaked a checkout")
		})
	}
}

// TestLookupThenReturnLeavesContainerUnchanged checks a read-then-return
// cycle causes no observable mutation.
func TestLookupThenReturnLeavesContainerUnchanged(t *testing.T) {
	root, mid, leaf := buildTree(t)

	loan, err := Lookup(root, Chain{1, 2})
	require.NoError(t, err)
	loan.Release()

	again := mid.SlotContainer.Item(2)
	assert.Same(t, Object(leaf), again)
	assert.Equal(t, ID(4), root.Size())
}

func TestLoanReleaseIdempotent(t *testing.T) {
	root, mid, _ := buildTree(t)
	loan, err := Lookup(root, Chain{1, 2})
	require.NoError(t, err)
	loan.Release()
	loan.Release()
	assert.Equal(t, 0, mid.outstanding)

	var nilLoan *Loan
	nilLoan.Release() // must not panic
}

func TestLookupContainer(t *testing.T) {
	root, mid, _ := buildTree(t)

	loan, last, err := LookupContainer(root, Chain{1, 2})
	require.NoError(t, err)
	assert.Same(t, Object(mid), loan.Object())
	assert.Equal(t, ID(2), last)
	loan.Release()
	assert.Equal(t, 0, root.outstanding)

	// Terminal id on the root itself.
	loan, last, err = LookupContainer(root, Chain{0})
	require.NoError(t, err)
	assert.Same(t, Object(root), loan.Object())
	assert.Equal(t, ID(0), last)
	loan.Release()

	_, _, err = LookupContainer(root, Chain{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, _, err = LookupContainer(root, Chain{0, 0})
	assert.ErrorIs(t, err, ErrNotContainer)

	_, _, err = LookupContainer(root, Chain{1, InvalidID})
	assert.ErrorIs(t, err, ErrInvalidID)

	// Depth applies to the whole chain, terminal id included.
	_, _, err = LookupContainer(root, Chain{0, 1, 2, 3})
	assert.ErrorIs(t, err, ErrChainTooDeep)
	assert.Equal(t, 0, root.outstanding)
}

func TestLookupOpenContainer(t *testing.T) {
	root := NewSlotContainer(2)
	closed := NewFactoryContainer(2, func(id ID) Object { return newTestValue(1) })
	require.True(t, root.Add(0, closed))

	loan, last, err := LookupOpenContainer(root, Chain{1})
	require.NoError(t, err)
	assert.Equal(t, ID(1), last)
	loan.Release()

	// A factory container is not open.
	_, _, err = LookupOpenContainer(root, Chain{0, 0})
	assert.ErrorIs(t, err, ErrNotOpenContainer)

	_, _, err = LookupOpenContainer(root, Chain{0, 0, 0, 0})
	assert.ErrorIs(t, err, ErrChainTooDeep)
}

func TestFetchContained(t *testing.T) {
	root, _, _ := buildTree(t)
	v := FetchContained(root, 0)
	require.NotNil(t, v)
	root.ReturnItem(0, v)

	assert.Nil(t, FetchContained(root, 3))
	assert.Nil(t, FetchContained(root, InvalidID))
	assert.Nil(t, FetchContained(newTestValue(1), 0))
	assert.Nil(t, FetchContained(nil, 0))
	assert.Equal(t, 0, root.outstanding)
}
