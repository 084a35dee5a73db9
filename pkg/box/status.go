package box

import (
	"errors"

	"github.com/mesh-intelligence/hutch/pkg/eeprom"
	"github.com/mesh-intelligence/hutch/pkg/object"
)

// Status is the protocol-level result code of a command. Zero is
// success; failures are negative. The transport layer frames these
// bytes; a failed command never crashes the box.
type Status int8

const (
	StatusOK               Status = 0
	StatusUnknownError     Status = -1
	StatusObjectNotFound   Status = -2
	StatusInvalidID        Status = -3
	StatusChainTooDeep     Status = -4
	StatusNotContainer     Status = -5
	StatusNotOpenContainer Status = -6
	StatusNotReadable      Status = -7
	StatusNotWritable      Status = -8
	StatusContainerFull    Status = -9
	StatusUnknownType      Status = -10
	StatusStoreFull        Status = -11
	StatusStoreError       Status = -12
)

// Box-level errors. Resolution and capability errors come from
// pkg/object; these cover the registry and the journal.
var (
	ErrUnknownType        = errors.New("no factory registered for type")
	ErrDuplicateType      = errors.New("type already registered")
	ErrStoreFull          = errors.New("store has no room for the definition")
	ErrDefinitionTooLarge = errors.New("definition payload exceeds one length byte")
	ErrStoreCorrupt       = errors.New("persisted store is corrupt")
	ErrNotPersisted       = errors.New("no persisted block for chain")
)

// statusTable maps sentinel errors to protocol codes in match order.
var statusTable = []struct {
	err  error
	code Status
}{
	{object.ErrInvalidID, StatusInvalidID},
	{object.ErrEmptyChain, StatusInvalidID},
	{object.ErrChainTooDeep, StatusChainTooDeep},
	{object.ErrNotOpenContainer, StatusNotOpenContainer},
	{object.ErrNotContainer, StatusNotContainer},
	{object.ErrNotFound, StatusObjectNotFound},
	{object.ErrNotReadable, StatusNotReadable},
	{object.ErrNotWritable, StatusNotWritable},
	{object.ErrContainerFull, StatusContainerFull},
	{ErrUnknownType, StatusUnknownType},
	{ErrStoreFull, StatusStoreFull},
	{ErrDefinitionTooLarge, StatusStoreFull},
	{ErrNotPersisted, StatusObjectNotFound},
	{ErrStoreCorrupt, StatusStoreError},
	{eeprom.ErrOutOfRange, StatusStoreError},
	{eeprom.ErrClosed, StatusStoreError},
}

// StatusOf maps an error returned by a command to its protocol code.
// A nil error maps to StatusOK; unrecognized errors to
// StatusUnknownError.
func StatusOf(err error) Status {
	if err == nil {
		return StatusOK
	}
	for _, entry := range statusTable {
		if errors.Is(err, entry.err) {
			return entry.code
		}
	}
	return StatusUnknownError
}

// String names the status for logs.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusObjectNotFound:
		return "object-not-found"
	case StatusInvalidID:
		return "invalid-id"
	case StatusChainTooDeep:
		return "chain-too-deep"
	case StatusNotContainer:
		return "not-a-container"
	case StatusNotOpenContainer:
		return "not-an-open-container"
	case StatusNotReadable:
		return "object-not-readable"
	case StatusNotWritable:
		return "object-not-writable"
	case StatusContainerFull:
		return "container-full"
	case StatusUnknownType:
		return "unknown-type"
	case StatusStoreFull:
		return "store-full"
	case StatusStoreError:
		return "store-error"
	default:
		return "unknown-error"
	}
}
