package treehash

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/arthur-debert/dirsum/pkg/digest"
	"github.com/arthur-debert/dirsum/pkg/types"
)

// Node lifecycle. A leaf jumps straight from discovered to hashed; a
// directory passes through the two intermediate states.
const (
	stateDiscovered int32 = iota
	stateChildrenPending
	stateChildrenReady
	stateHashed
)

// node is one tree entry during a run. Fields split into two groups:
// identity fields are written once at discovery time, before any task
// referencing the node is submitted; dig is written exactly once, by
// the worker that completes the node, and read by its parent's
// aggregation only after the pending counter has reached zero.
type node struct {
	name    string
	path    string // slash separated, relative to the root; "." for the root itself
	typ     types.EntryType
	size    int64
	modTime time.Time

	parent   int32 // arena index, -1 for the root
	children []int32

	pending atomic.Int32 // directories: children not yet hashed
	state   atomic.Int32
	dig     digest.Digest
}

// arena owns every node of a run. Nodes are addressed by the index
// returned from add; slice growth is guarded, the pointers themselves
// stay valid for the lifetime of the run.
type arena struct {
	mu    sync.RWMutex
	nodes []*node
}

func (a *arena) add(n *node) int32 {
	a.mu.Lock()
	idx := int32(len(a.nodes))
	a.nodes = append(a.nodes, n)
	a.mu.Unlock()
	return idx
}

func (a *arena) get(idx int32) *node {
	a.mu.RLock()
	n := a.nodes[idx]
	a.mu.RUnlock()
	return n
}

func (a *arena) len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.nodes)
}
