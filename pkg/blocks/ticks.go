package blocks

import (
	"encoding/binary"
	"io"
	"time"

	"github.com/mesh-intelligence/hutch/pkg/object"
)

// Ticks reports uptime. Update latches the milliseconds elapsed since
// construction; ReadTo streams the latched value as a big-endian
// uint32. The value is read-only over the wire; its state advances only
// through the update sweep, so readers within one sweep see one
// consistent timestamp.
type Ticks struct {
	object.Base
	now     func() time.Time
	started time.Time
	latched uint32
}

// NewTicks starts an uptime counter on the real clock.
func NewTicks() *Ticks {
	return NewTicksAt(time.Now)
}

// NewTicksAt starts an uptime counter on the given clock, for tests
// that need deterministic time.
func NewTicksAt(now func() time.Time) *Ticks {
	return &Ticks{now: now, started: now()}
}

func (v *Ticks) Flags() object.Flags {
	return object.FlagValue | object.FlagHasState
}

func (v *Ticks) TypeID() object.TypeID { return TypeTicks }
func (v *Ticks) ReadSize() int { return 4 }

// Update latches the current uptime in milliseconds. Uptime wraps at
// the uint32 boundary, roughly 49 days.
func (v *Ticks) Update() {
	v.latched = uint32(v.now().Sub(v.started) / time.Millisecond)
}

func (v *Ticks) ReadTo(w io.Writer) error {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v.latched)
	_, err := w.Write(buf[:])
	return err
}
