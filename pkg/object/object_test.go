package object

import (
	"io"

	"github.com/mesh-intelligence/hutch/pkg/eeprom"
)

// testValue is a minimal value block used across the package tests.
type testValue struct {
	Base
	flags Flags
	typ   TypeID
	data  []byte
}

func newTestValue(typ TypeID, data ...byte) *testValue {
	return &testValue{flags: FlagValue, typ: typ, data: data}
}

func (v *testValue) Flags() Flags { return v.flags }
func (v *testValue) TypeID() TypeID { return v.typ }

func (v *testValue) ReadTo(w io.Writer) error {
	_, err := w.Write(v.data)
	return err
}

func (v *testValue) ReadSize() int { return len(v.data) }

// closeCounter counts destructions so tests can observe destroy calls.
type closeCounter struct {
	Base
	flags  Flags
	closed *int
}

func (c *closeCounter) Flags() Flags { return c.flags }
func (c *closeCounter) TypeID() TypeID { return 0 }
func (c *closeCounter) Close() error { *c.closed++; return nil }
func (c *closeCounter) Rehydrated(eeprom.Offset) {}
