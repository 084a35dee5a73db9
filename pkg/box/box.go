package box

import (
	"bytes"
	"time"

	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/hutch/pkg/eeprom"
	"github.com/mesh-intelligence/hutch/pkg/object"
)

// defaultRootSize is the slot count of the root container when no
// option overrides it.
const defaultRootSize object.ID = 16

// Box owns the single root container, the persistent store, and the
// type registry. There is no ambient global: every resolution starts
// from the box's root. The box assumes one cooperative caller at a
// time, matching the checkout discipline of the object model.
type Box struct {
	root    *object.SlotContainer
	store   eeprom.Store
	reg     *Registry
	journal *journal
	log     zerolog.Logger
}

// Option configures a Box before boot.
type Option func(*Box)

// WithLogger sets the box logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(b *Box) { b.log = l }
}

// WithRootSize sets the root container's slot count.
func WithRootSize(n object.ID) Option {
	return func(b *Box) { b.root = object.NewSlotContainer(n) }
}

// New boots a box over the given store: it scans the journal and
// rehydrates every live definition back into an object linked under the
// root. Unknown types and unresolvable parent chains are logged and
// skipped so a box with stale blocks still boots.
func New(s eeprom.Store, reg *Registry, opts ...Option) (*Box, error) {
	b := &Box{
		root:  object.NewSlotContainer(defaultRootSize),
		store: s,
		reg:   reg,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.journal = newJournal(s)
	if err := b.rehydrate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Root returns the box's root container.
func (b *Box) Root() object.OpenContainer { return b.root }

// Store returns the persistent store backing the box.
func (b *Box) Store() eeprom.Store { return b.store }

// rehydrate replays every live journal block: construct via the
// registry, bind the storage offset, link under the parent chain.
func (b *Box) rehydrate() error {
	count := 0
	torn, err := b.journal.scan(func(blk block) error {
		if !blk.live {
			return nil
		}
		payload, err := b.journal.payload(blk)
		if err != nil {
			return err
		}
		def := &object.Definition{
			In:    bytes.NewReader(payload),
			Len:   blk.length,
			Type:  blk.typ,
			Store: b.store,
			Root:  b.root,
		}
		obj, err := b.reg.Create(def)
		if err != nil {
			b.log.Warn().Err(err).
				Stringer("chain", blk.chain).
				Uint8("type", uint8(blk.typ)).
				Msg("skipping stored definition")
			return nil
		}
		obj.Rehydrated(blk.payloadOff)

		loan, last, err := object.LookupOpenContainer(b.root, blk.chain)
		if err != nil {
			b.log.Warn().Err(err).
				Stringer("chain", blk.chain).
				Msg("stored definition has no parent container")
			return nil
		}
		defer loan.Release()
		if !loan.Object().(object.OpenContainer).Add(last, obj) {
			b.log.Warn().
				Stringer("chain", blk.chain).
				Msg("slot occupied during rehydration")
			return nil
		}
		count++
		return nil
	})
	if err != nil {
		return err
	}
	if torn {
		b.log.Warn().
			Int32("offset", int32(b.journal.tail)).
			Msg("torn block at journal tail; treating as free space")
	}
	b.log.Info().Int("objects", count).Msg("box rehydrated")
	return nil
}

// Prepare asks every object in the box for its update delay and returns
// the longest one. The delay is advisory; the caller's loop decides
// when to call Update.
func (b *Box) Prepare() time.Duration {
	var longest time.Duration
	object.WalkRoot(b.root, func(o object.Object, _ object.Chain, enter bool) bool {
		if enter {
			if d := o.Prepare(); d > longest {
				longest = d
			}
		}
		return false
	})
	return longest
}

// Update refreshes every object in the box. Call after the Prepare
// delay has elapsed; nothing enforces it.
func (b *Box) Update() {
	object.WalkRoot(b.root, func(o object.Object, _ object.Chain, enter bool) bool {
		if enter {
			o.Update()
		}
		return false
	})
}
