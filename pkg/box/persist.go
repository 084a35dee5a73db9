package box

import (
	"bytes"
	"fmt"

	"github.com/mesh-intelligence/hutch/pkg/eeprom"
	"github.com/mesh-intelligence/hutch/pkg/object"
)

// Persisted block layout: one marker byte, the id chain in continuation
// encoding, one type byte, one length byte, then the definition payload.
// The object's bound offset points at the payload start, so the length
// byte immediately precedes it. An erased marker (0xFF) terminates the
// journal; a disposed marker keeps the block's shape so scans can skip
// it.
const (
	markerCreated  byte = 0x03
	markerDisposed byte = 0x01
)

// block describes one persisted definition found by a scan.
type block struct {
	start      eeprom.Offset
	chain      object.Chain
	typ        object.TypeID
	payloadOff eeprom.Offset
	length     uint8
	live       bool
}

// end returns the offset just past the block.
func (b block) end() eeprom.Offset {
	return b.payloadOff + eeprom.Offset(b.length)
}

// journal manages the persisted definition blocks in the store.
// Writes are not transactional: power loss mid-append leaves a torn
// block at the tail, which the next scan treats as free space.
type journal struct {
	store eeprom.Store
	tail  eeprom.Offset
}

func newJournal(s eeprom.Store) *journal {
	return &journal{store: s}
}

// storeReader adapts a Store to io.ByteReader for chain decoding.
type storeReader struct {
	store eeprom.Store
	off   eeprom.Offset
}

func (r *storeReader) ReadByte() (byte, error) {
	b, err := eeprom.ReadByte(r.store, r.off)
	if err != nil {
		return 0, err
	}
	r.off++
	return b, nil
}

// scan walks the journal from the start, invoking fn for every block
// (live and disposed) until the first erased marker or a torn block.
// It leaves tail at the first free offset. A malformed block is treated
// as the torn end of the journal and reported via the return value, not
// as an error: boot must finish with whatever precedes it.
func (j *journal) scan(fn func(block) error) (torn bool, err error) {
	size := j.store.Size()
	off := eeprom.Offset(0)
	for off < size {
		marker, err := eeprom.ReadByte(j.store, off)
		if err != nil {
			return false, err
		}
		if marker == eeprom.Erased {
			break
		}
		if marker != markerCreated && marker != markerDisposed {
			j.tail = off
			return true, nil
		}

		r := &storeReader{store: j.store, off: off + 1}
		chain, err := object.DecodeChain(r)
		if err != nil {
			j.tail = off
			return true, nil
		}
		typ, err := eeprom.ReadByte(j.store, r.off)
		if err != nil {
			j.tail = off
			return true, nil
		}
		length, err := eeprom.ReadByte(j.store, r.off+1)
		if err != nil {
			j.tail = off
			return true, nil
		}

		blk := block{
			start:      off,
			chain:      chain,
			typ:        object.TypeID(typ),
			payloadOff: r.off + 2,
			length:     length,
			live:       marker == markerCreated,
		}
		if blk.end() > size {
			j.tail = off
			return true, nil
		}
		if fn != nil {
			if err := fn(blk); err != nil {
				return false, err
			}
		}
		off = blk.end()
	}
	j.tail = off
	return false, nil
}

// append writes a created block for chain at the tail and returns the
// payload offset the new object must be bound to.
func (j *journal) append(chain object.Chain, typ object.TypeID, payload []byte) (eeprom.Offset, error) {
	if len(payload) > 0xFF {
		return eeprom.Unbound, ErrDefinitionTooLarge
	}
	enc, err := chain.Encode()
	if err != nil {
		return eeprom.Unbound, err
	}

	blk := make([]byte, 0, 1+len(enc)+2+len(payload))
	blk = append(blk, markerCreated)
	blk = append(blk, enc...)
	blk = append(blk, byte(typ), byte(len(payload)))
	blk = append(blk, payload...)

	if j.tail+eeprom.Offset(len(blk)) > j.store.Size() {
		return eeprom.Unbound, fmt.Errorf("append %d bytes at %d: %w", len(blk), j.tail, ErrStoreFull)
	}
	if err := j.store.WriteAt(blk, j.tail); err != nil {
		return eeprom.Unbound, err
	}
	payloadOff := j.tail + eeprom.Offset(1+len(enc)+2)
	j.tail += eeprom.Offset(len(blk))
	return payloadOff, nil
}

// find returns the live block persisted for chain, or ErrNotPersisted.
// When a chain was deleted and recreated, only the latest block is
// live.
func (j *journal) find(chain object.Chain) (block, error) {
	var found block
	var ok bool
	if _, err := j.scan(func(b block) error {
		if b.live && chainEqual(b.chain, chain) {
			found, ok = b, true
		}
		return nil
	}); err != nil {
		return block{}, err
	}
	if !ok {
		return block{}, fmt.Errorf("chain %s: %w", chain, ErrNotPersisted)
	}
	return found, nil
}

// dispose marks the live block for chain as disposed. The block keeps
// its shape; Compact reclaims the space offline.
func (j *journal) dispose(chain object.Chain) error {
	blk, err := j.find(chain)
	if err != nil {
		return err
	}
	return eeprom.WriteByte(j.store, blk.start, markerDisposed)
}

// payload reads a block's definition payload back from the store.
func (j *journal) payload(b block) ([]byte, error) {
	p := make([]byte, b.length)
	if err := j.store.ReadAt(p, b.payloadOff); err != nil {
		return nil, err
	}
	return p, nil
}

func chainEqual(a, b object.Chain) bool {
	return bytes.Equal(chainBytes(a), chainBytes(b))
}

func chainBytes(c object.Chain) []byte {
	out := make([]byte, len(c))
	for i, id := range c {
		out[i] = byte(id)
	}
	return out
}

// CompactStore rewrites the journal in s with disposed and torn blocks
// dropped. It is an offline operation: definition offsets move, and a
// live box cannot re-bind its objects (the binding is one-shot), so
// compact only between box lifetimes.
func CompactStore(s eeprom.Store) error {
	j := newJournal(s)

	type liveBlock struct {
		chain   object.Chain
		typ     object.TypeID
		payload []byte
	}
	var live []liveBlock
	if _, err := j.scan(func(b block) error {
		if !b.live {
			return nil
		}
		p, err := j.payload(b)
		if err != nil {
			return err
		}
		live = append(live, liveBlock{chain: b.chain, typ: b.typ, payload: p})
		return nil
	}); err != nil {
		return fmt.Errorf("compact scan: %w", err)
	}
	j.tail = 0
	for _, b := range live {
		if _, err := j.append(b.chain, b.typ, b.payload); err != nil {
			return fmt.Errorf("compact rewrite: %w", err)
		}
	}

	// Erase the whole free region so stale bytes (disposed blocks, a
	// torn tail) never come back as journal content.
	if size := s.Size(); size > j.tail {
		erased := make([]byte, size-j.tail)
		for i := range erased {
			erased[i] = eeprom.Erased
		}
		if err := s.WriteAt(erased, j.tail); err != nil {
			return fmt.Errorf("compact erase: %w", err)
		}
	}
	return nil
}
