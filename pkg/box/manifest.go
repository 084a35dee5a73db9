package box

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/mesh-intelligence/hutch/pkg/object"
)

// ManifestVersion is bumped when the manifest layout changes.
const ManifestVersion uint8 = 1

// cborEncMode uses canonical options so equal manifests encode to equal
// bytes.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("box: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// ManifestEntry is one persisted definition: where it lives, what type
// it is, and its defining bytes.
type ManifestEntry struct {
	Chain []int8 `cbor:"chain" json:"chain"`
	Type  uint8  `cbor:"type" json:"type"`
	Data  []byte `cbor:"data" json:"data"`
}

// Manifest is a portable snapshot of every live definition in a box,
// in journal order. Importing it into an empty box reproduces the
// object graph.
type Manifest struct {
	Version uint8           `cbor:"version" json:"version"`
	Entries []ManifestEntry `cbor:"entries" json:"entries"`
}

// Export snapshots the box's live persisted definitions.
func (b *Box) Export() (*Manifest, error) {
	m := &Manifest{Version: ManifestVersion, Entries: []ManifestEntry{}}
	_, err := b.journal.scan(func(blk block) error {
		if !blk.live {
			return nil
		}
		payload, err := b.journal.payload(blk)
		if err != nil {
			return err
		}
		m.Entries = append(m.Entries, ManifestEntry{
			Chain: chainInts(blk.chain),
			Type:  uint8(blk.typ),
			Data:  payload,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	return m, nil
}

// Import replays the manifest's create commands into the box.
// Parents appear before children in journal order, so a straight replay
// reconstructs nested graphs.
func (b *Box) Import(m *Manifest) error {
	if m.Version != ManifestVersion {
		return fmt.Errorf("import manifest version %d: %w", m.Version, ErrStoreCorrupt)
	}
	for _, e := range m.Entries {
		chain := make(object.Chain, len(e.Chain))
		for i, id := range e.Chain {
			chain[i] = object.ID(id)
		}
		if err := b.CreateObject(chain, object.TypeID(e.Type), e.Data); err != nil {
			return fmt.Errorf("import %s: %w", chain, err)
		}
	}
	return nil
}

// MarshalManifest serializes a manifest to canonical CBOR bytes.
func MarshalManifest(m *Manifest) ([]byte, error) {
	return cborEncMode.Marshal(m)
}

// UnmarshalManifest deserializes a manifest from CBOR bytes.
func UnmarshalManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := cbor.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("unmarshal manifest: %w", err)
	}
	return &m, nil
}

func chainInts(c object.Chain) []int8 {
	out := make([]int8, len(c))
	for i, id := range c {
		out[i] = int8(id)
	}
	return out
}
