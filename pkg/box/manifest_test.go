package box

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/hutch/pkg/object"
)

func TestManifestExport(t *testing.T) {
	b, _ := newTestBox(t)
	require.NoError(t, b.CreateObject(object.Chain{1}, typeContainer, []byte{4}))
	require.NoError(t, b.CreateObject(object.Chain{1, 2}, typeEcho, []byte{0xAA}))
	require.NoError(t, b.CreateObject(object.Chain{0}, typeEcho, []byte{0xBB}))
	require.NoError(t, b.DeleteObject(object.Chain{0}))

	m, err := b.Export()
	require.NoError(t, err)
	assert.Equal(t, ManifestVersion, m.Version)
	// Disposed definitions are left out; journal order is kept.
	require.Len(t, m.Entries, 2)
	assert.Equal(t, ManifestEntry{Chain: []int8{1}, Type: uint8(typeContainer), Data: []byte{4}}, m.Entries[0])
	assert.Equal(t, ManifestEntry{Chain: []int8{1, 2}, Type: uint8(typeEcho), Data: []byte{0xAA}}, m.Entries[1])
}

func TestManifestImportRoundTrip(t *testing.T) {
	src, _ := newTestBox(t)
	require.NoError(t, src.CreateObject(object.Chain{1}, typeContainer, []byte{4}))
	require.NoError(t, src.CreateObject(object.Chain{1, 2}, typeEcho, []byte{0xDE, 0xAD}))

	m, err := src.Export()
	require.NoError(t, err)

	data, err := MarshalManifest(m)
	require.NoError(t, err)
	decoded, err := UnmarshalManifest(data)
	require.NoError(t, err)

	dst, _ := newTestBox(t)
	require.NoError(t, dst.Import(decoded))

	var buf bytes.Buffer
	require.NoError(t, dst.ReadObject(object.Chain{1, 2}, &buf))
	assert.Equal(t, []byte{0xDE, 0xAD}, buf.Bytes())
}

func TestManifestCanonicalEncoding(t *testing.T) {
	b, _ := newTestBox(t)
	require.NoError(t, b.CreateObject(object.Chain{0}, typeEcho, []byte{1}))

	m1, err := b.Export()
	require.NoError(t, err)
	m2, err := b.Export()
	require.NoError(t, err)

	d1, err := MarshalManifest(m1)
	require.NoError(t, err)
	d2, err := MarshalManifest(m2)
	require.NoError(t, err)
	assert.Equal(t, d1, d2)
}

func TestManifestVersionMismatch(t *testing.T) {
	b, _ := newTestBox(t)
	err := b.Import(&Manifest{Version: ManifestVersion + 1})
	require.Error(t, err)
	assert.Equal(t, StatusStoreError, StatusOf(err))
}

func TestManifestExportEmpty(t *testing.T) {
	b, _ := newTestBox(t)
	m, err := b.Export()
	require.NoError(t, err)
	assert.Empty(t, m.Entries)

	data, err := MarshalManifest(m)
	require.NoError(t, err)
	decoded, err := UnmarshalManifest(data)
	require.NoError(t, err)
	assert.Equal(t, m, decoded)
}
