package blocks

import (
	"io"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/hutch/pkg/object"
)

// SysInfo exposes the device identity as a read-only 16-byte value. The
// block is statically allocated: removing it from a container never
// destroys it.
type SysInfo struct {
	object.Base
	id uuid.UUID
}

// NewSysInfo creates an identity block with a fresh random id.
func NewSysInfo() *SysInfo {
	return &SysInfo{id: uuid.New()}
}

// NewSysInfoWithID creates an identity block with a fixed id, used when
// the identity is recovered from a stored definition.
func NewSysInfoWithID(id uuid.UUID) *SysInfo {
	return &SysInfo{id: id}
}

func (v *SysInfo) Flags() object.Flags {
	return object.FlagValue | object.FlagStaticAllocated
}

func (v *SysInfo) TypeID() object.TypeID { return TypeSysInfo }
func (v *SysInfo) ReadSize() int { return 16 }

// ID returns the device identity.
func (v *SysInfo) ID() uuid.UUID { return v.id }

// DefinitionBytes returns the identity as the canonical definition
// payload, so an id generated at creation survives a restart.
func (v *SysInfo) DefinitionBytes() []byte { return v.id[:] }

func (v *SysInfo) ReadTo(w io.Writer) error {
	_, err := w.Write(v.id[:])
	return err
}
