package object

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefinitionPayload(t *testing.T) {
	d := &Definition{In: bytes.NewReader([]byte{1, 2, 3}), Len: 3, Type: 9}
	p, err := d.Payload()
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, p)

	// Fully read: nothing left, spool is a no-op.
	p, err = d.Payload()
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, d.Spool())
}

func TestDefinitionSpool(t *testing.T) {
	// The stream holds this definition plus the next block's bytes.
	r := bytes.NewReader([]byte{1, 2, 3, 0xEE, 0xEF})
	d := &Definition{In: r, Len: 3}

	var one [1]byte
	n, err := d.ReadPayload(one[:])
	require.NoError(t, err)
	require.Equal(t, 1, n)

	// Spool drains only the unread remainder of the definition.
	require.NoError(t, d.Spool())
	assert.Equal(t, 2, r.Len())
}
