// Package integration exercises full box lifecycles over persistent
// store backends: boot, mutate, close, reopen, verify.
package integration

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/hutch/pkg/blocks"
	"github.com/mesh-intelligence/hutch/pkg/box"
	"github.com/mesh-intelligence/hutch/pkg/eeprom"
	"github.com/mesh-intelligence/hutch/pkg/store"
)

const storeSize eeprom.Offset = 1024

// backend opens a persistent store at path, creating it on first use.
type backend func(path string, size eeprom.Offset) (eeprom.Store, error)

// backends lists every persistent store implementation under test.
var backends = map[string]backend{
	"file":   store.OpenFile,
	"sqlite": store.OpenSQLite,
}

// env is one isolated store location plus the means to boot boxes over
// it repeatedly.
type env struct {
	t    *testing.T
	open backend
	path string
}

func newEnv(t *testing.T, name string) *env {
	t.Helper()
	return &env{
		t:    t,
		open: backends[name],
		path: filepath.Join(t.TempDir(), "hutch-store"),
	}
}

// boot opens the store and a box over it with stock blocks registered.
// The store is closed via t.Cleanup unless the test closes it earlier
// with the returned func.
func (e *env) boot() (*box.Box, func()) {
	e.t.Helper()
	s, err := e.open(e.path, storeSize)
	require.NoError(e.t, err)

	closed := false
	closeFn := func() {
		if closed {
			return
		}
		closed = true
		if c, ok := s.(io.Closer); ok {
			require.NoError(e.t, c.Close())
		}
	}
	e.t.Cleanup(closeFn)

	reg := box.NewRegistry()
	require.NoError(e.t, blocks.Register(reg))
	b, err := box.New(s, reg)
	require.NoError(e.t, err)
	return b, closeFn
}

// rawStore opens the store without booting a box, for offline
// operations like compaction.
func (e *env) rawStore() (eeprom.Store, func()) {
	e.t.Helper()
	s, err := e.open(e.path, storeSize)
	require.NoError(e.t, err)

	closed := false
	closeFn := func() {
		if closed {
			return
		}
		closed = true
		if c, ok := s.(io.Closer); ok {
			require.NoError(e.t, c.Close())
		}
	}
	e.t.Cleanup(closeFn)
	return s, closeFn
}
