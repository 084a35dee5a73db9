package box

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/mesh-intelligence/hutch/pkg/object"
)

// CreateObject builds an object of the given type at chain, persists
// its definition, and links it under its parent container. The slot
// must be free and every ancestor must already exist.
func (b *Box) CreateObject(chain object.Chain, typ object.TypeID, payload []byte) error {
	if err := chain.Validate(); err != nil {
		return err
	}
	loan, last, err := object.LookupOpenContainer(b.root, chain)
	if err != nil {
		return err
	}
	defer loan.Release()
	oc := loan.Object().(object.OpenContainer)

	if existing := oc.Item(last); existing != nil {
		oc.ReturnItem(last, existing)
		return fmt.Errorf("slot %s occupied: %w", chain, object.ErrContainerFull)
	}

	if len(payload) > 0xFF {
		return ErrDefinitionTooLarge
	}
	def := &object.Definition{
		In:    bytes.NewReader(payload),
		Len:   uint8(len(payload)),
		Type:  typ,
		Store: b.store,
		Root:  b.root,
	}
	obj, err := b.reg.Create(def)
	if err != nil {
		return err
	}

	// An object that materializes part of its own definition (an id
	// generated during construction) hands back the canonical bytes,
	// and those are what get persisted.
	if d, ok := obj.(object.Definer); ok {
		payload = d.DefinitionBytes()
		if len(payload) > 0xFF {
			return ErrDefinitionTooLarge
		}
	}

	payloadOff, err := b.journal.append(chain, typ, payload)
	if err != nil {
		return err
	}
	obj.Rehydrated(payloadOff)

	if !oc.Add(last, obj) {
		// Keep storage consistent with the tree.
		if derr := b.journal.dispose(chain); derr != nil {
			b.log.Error().Err(derr).Stringer("chain", chain).Msg("rollback dispose failed")
		}
		return fmt.Errorf("add at %s: %w", chain, object.ErrContainerFull)
	}
	b.log.Info().Stringer("chain", chain).Uint8("type", uint8(typ)).Msg("object created")
	return nil
}

// DeleteObject removes the object at chain from its container and
// marks its persisted block disposed. A chain that does not resolve
// leaves storage untouched.
func (b *Box) DeleteObject(chain object.Chain) error {
	if err := chain.Validate(); err != nil {
		return err
	}
	loan, last, err := object.LookupOpenContainer(b.root, chain)
	if err != nil {
		return err
	}
	defer loan.Release()
	oc := loan.Object().(object.OpenContainer)

	item := oc.Item(last)
	if item == nil {
		return fmt.Errorf("delete at %s: %w", chain, object.ErrNotFound)
	}
	oc.ReturnItem(last, item)
	oc.Remove(last)

	// Objects linked outside the command path (static blocks) have no
	// persisted block; their removal only touches the tree.
	if err := b.journal.dispose(chain); err != nil && !errors.Is(err, ErrNotPersisted) {
		return err
	}
	b.log.Info().Stringer("chain", chain).Msg("object deleted")
	return nil
}

// ReadObject streams the value at chain to w.
func (b *Box) ReadObject(chain object.Chain, w io.Writer) error {
	loan, err := object.Lookup(b.root, chain)
	if err != nil {
		return err
	}
	defer loan.Release()

	o := loan.Object()
	if !object.IsValue(o) {
		return fmt.Errorf("read at %s: %w", chain, object.ErrNotReadable)
	}
	return o.(object.Value).ReadTo(w)
}

// WriteObject replaces the state of the writable value at chain from
// payload. Persist-aware values rewrite their own stored definition
// through their anchor.
func (b *Box) WriteObject(chain object.Chain, payload []byte) error {
	loan, err := object.Lookup(b.root, chain)
	if err != nil {
		return err
	}
	defer loan.Release()

	o := loan.Object()
	if !object.IsWritable(o) {
		return fmt.Errorf("write at %s: %w", chain, object.ErrNotWritable)
	}
	if err := o.(object.WritableValue).WriteFrom(bytes.NewReader(payload)); err != nil {
		return err
	}
	b.log.Debug().Stringer("chain", chain).Int("bytes", len(payload)).Msg("object written")
	return nil
}

// ListEntry describes one object reported by ListObjects.
type ListEntry struct {
	Chain object.Chain  `json:"chain"`
	Type  object.TypeID `json:"type"`
	Flags object.Flags  `json:"flags"`
	Data  []byte        `json:"data,omitempty"`
}

// ListObjects walks the subtree at prefix and reports every descendant
// in walk order (ascending ids, depth first). Logged values include
// their streamed bytes. The entry for the subtree root itself is not
// reported; chains are absolute.
func (b *Box) ListObjects(prefix object.Chain) ([]ListEntry, error) {
	loan, err := object.Lookup(b.root, prefix)
	if err != nil {
		return nil, err
	}
	defer loan.Release()

	entries := []ListEntry{}
	var walkErr error
	object.WalkObject(loan.Object(), nil, func(o object.Object, chain object.Chain, enter bool) bool {
		if !enter || len(chain) == 0 {
			return false
		}
		entry := ListEntry{
			Chain: append(append(object.Chain{}, prefix...), chain...),
			Type:  o.TypeID(),
			Flags: o.Flags(),
		}
		if object.IsLoggedValue(o) {
			var buf bytes.Buffer
			if err := o.(object.Value).ReadTo(&buf); err != nil {
				walkErr = fmt.Errorf("list read at %s: %w", entry.Chain, err)
				return true
			}
			entry.Data = buf.Bytes()
		}
		entries = append(entries, entry)
		return false
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return entries, nil
}
