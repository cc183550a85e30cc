package treehash

import (
	"encoding/binary"
	"sort"

	"github.com/arthur-debert/dirsum/pkg/algo"
	"github.com/arthur-debert/dirsum/pkg/digest"
	"github.com/arthur-debert/dirsum/pkg/types"
)

// ChildTuple is one child's contribution to its directory's digest.
type ChildTuple struct {
	Name   string
	Type   types.EntryType
	Digest digest.Digest
}

// AggregateChildren computes a directory digest from its children.
//
// The children are sorted bytewise by name and each contributes, in
// order: its type tag byte, its name prefixed by a uvarint length, and
// its digest bytes prefixed by a uvarint length. An empty child list
// hashes the empty stream, so all empty directories share one digest
// per algorithm.
//
// Every child digest must come from alg; the engine guarantees this by
// construction and manifest recomputation checks it before calling.
func AggregateChildren(alg algo.Algorithm, children []ChildTuple) digest.Digest {
	sorted := make([]ChildTuple, len(children))
	copy(sorted, children)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Name < sorted[j].Name
	})

	h := alg.New()
	var lenBuf [binary.MaxVarintLen64]byte
	for _, c := range sorted {
		_, _ = h.Write([]byte{c.Type.Tag()})

		n := binary.PutUvarint(lenBuf[:], uint64(len(c.Name)))
		_, _ = h.Write(lenBuf[:n])
		_, _ = h.Write([]byte(c.Name))

		value := c.Digest.Value()
		n = binary.PutUvarint(lenBuf[:], uint64(len(value)))
		_, _ = h.Write(lenBuf[:n])
		_, _ = h.Write(value)
	}
	return digest.New(alg.Name(), h.Sum(nil))
}
