package box

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/hutch/internal/store"
	"github.com/mesh-intelligence/hutch/pkg/eeprom"
	"github.com/mesh-intelligence/hutch/pkg/object"
)

// Test type tags.
const (
	typeEcho      object.TypeID = 5
	typeContainer object.TypeID = 6
	typeTicking   object.TypeID = 7
)

// echoValue is a writable value whose state is exactly its definition
// payload.
type echoValue struct {
	object.Anchor
	typ  object.TypeID
	data []byte
}

func (v *echoValue) Flags() object.Flags {
	return object.FlagValue | object.FlagWritable
}

func (v *echoValue) TypeID() object.TypeID { return v.typ }
func (v *echoValue) Prepare() time.Duration { return 0 }
func (v *echoValue) Update() {}
func (v *echoValue) ReadSize() int { return len(v.data) }
func (v *echoValue) WriteSize() int { return len(v.data) }

func (v *echoValue) ReadTo(w io.Writer) error {
	_, err := w.Write(v.data)
	return err
}

func (v *echoValue) WriteFrom(r io.Reader) error {
	return readFull(r, v.data)
}

func readFull(r io.Reader, p []byte) error {
	_, err := io.ReadFull(r, p)
	return err
}

// tickingValue counts Update calls and asks for a fixed prepare delay.
type tickingValue struct {
	object.Base
	delay   time.Duration
	updates int
}

func (v *tickingValue) Flags() object.Flags { return object.FlagValue | object.FlagHasState }
func (v *tickingValue) TypeID() object.TypeID { return typeTicking }
func (v *tickingValue) Prepare() time.Duration { return v.delay }
func (v *tickingValue) Update() { v.updates++ }
func (v *tickingValue) ReadTo(io.Writer) error { return nil }
func (v *tickingValue) ReadSize() int { return 0 }

// testRegistry registers the echo value and a growable sub-container.
func testRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	require.NoError(t, reg.Register(typeEcho, func(def *object.Definition) (object.Object, error) {
		data, err := def.Payload()
		if err != nil {
			return nil, err
		}
		v := &echoValue{Anchor: object.NewAnchor(), typ: def.Type, data: data}
		return v, nil
	}))
	require.NoError(t, reg.Register(typeContainer, func(def *object.Definition) (object.Object, error) {
		var size [1]byte
		if _, err := def.ReadPayload(size[:]); err != nil {
			return nil, err
		}
		c := object.NewSlotContainer(object.ID(size[0]))
		c.Type = def.Type
		return c, def.Spool()
	}))
	return reg
}

// newTestBox boots a box over a fresh memory store.
func newTestBox(t *testing.T) (*Box, eeprom.Store) {
	t.Helper()
	s := store.NewMemory(512)
	b, err := New(s, testRegistry(t))
	require.NoError(t, err)
	return b, s
}
