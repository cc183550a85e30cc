package treehash

import (
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/arthur-debert/dirsum/pkg/algo"
	"github.com/arthur-debert/dirsum/pkg/digest"
	"github.com/arthur-debert/dirsum/pkg/errors"
	"github.com/arthur-debert/dirsum/pkg/paths"
	"github.com/arthur-debert/dirsum/pkg/types"
	"github.com/rs/zerolog"
)

// run carries the shared state of one hashing run.
type run struct {
	fsys  types.FS
	root  string // scan root as given by the caller, in OS form
	alg   algo.Algorithm
	opts  Options
	pool  *Pool
	arena *arena
	stats *Stats
	excl  *paths.ExcludeMatcher
	log   zerolog.Logger

	// bufs recycles read buffers between leaf tasks.
	bufs sync.Pool

	// taskWG counts submitted tasks, including ones that ran inline.
	// Waiting on it after doneCh or abortCh settles means no task is
	// still running or queued.
	taskWG sync.WaitGroup

	aborted   atomic.Bool
	abortOnce sync.Once
	abortErr  error
	abortCh   chan struct{}

	// doneCh closes when the root node completes.
	doneCh chan struct{}

	errsMu sync.Mutex
	errs   []error
}

// spawn submits a task and keeps the in-flight accounting straight.
func (r *run) spawn(task func()) {
	r.taskWG.Add(1)
	r.pool.Submit(func() {
		defer r.taskWG.Done()
		task()
	})
}

// fail trips the fail-fast abort. The first error wins; later calls
// are no-ops.
func (r *run) fail(err error) {
	r.abortOnce.Do(func() {
		r.abortErr = err
		r.aborted.Store(true)
		close(r.abortCh)
	})
}

// record notes an error under the keep-going policy.
func (r *run) record(err error) {
	r.log.Warn().Err(err).Msg("continuing past error")
	r.errsMu.Lock()
	r.errs = append(r.errs, err)
	r.errsMu.Unlock()
}

// fullPath maps a slash-relative node path onto the caller's root.
func (r *run) fullPath(rel string) string {
	if rel == "." {
		return r.root
	}
	return filepath.Join(r.root, filepath.FromSlash(rel))
}

func childRelPath(parent, name string) string {
	if parent == "." {
		return name
	}
	return parent + "/" + name
}

// listDir discovers a directory's children and fans their tasks out.
func (r *run) listDir(idx int32, n *node) {
	if r.aborted.Load() {
		return
	}

	entries, err := r.fsys.ListEntries(r.fullPath(n.path))
	if err != nil {
		terr := errors.Traversal(n.path, err)
		if !r.opts.KeepGoing {
			r.fail(terr)
			return
		}
		// The whole subtree collapses into a sentinel digest.
		r.record(terr)
		r.finishNode(n, r.alg.Sentinel())
		return
	}

	var children []int32
	var fileBytes int64
	for _, e := range entries {
		rel := childRelPath(n.path, e.Name)
		if r.excl.Match(rel) {
			r.log.Trace().Str("path", rel).Msg("excluded")
			continue
		}
		if !e.Type.Valid() {
			if r.opts.SkipSpecial {
				r.log.Trace().Str("path", rel).Msg("skipping special file")
				continue
			}
			serr := errors.Newf(errors.ErrTraversal, "unsupported file type: %s", rel).
				WithDetail("path", rel)
			if !r.opts.KeepGoing {
				r.fail(serr)
				return
			}
			r.record(serr)
			continue
		}

		child := &node{
			name:    e.Name,
			path:    rel,
			typ:     e.Type,
			size:    e.Size,
			modTime: e.ModTime,
			parent:  idx,
		}
		children = append(children, r.arena.add(child))
		if e.Type == types.EntryFile {
			fileBytes += e.Size
		}
	}

	// The counter must be final before any child task can run, or a
	// fast child could decrement a number that is still growing.
	n.children = children
	n.pending.Store(int32(len(children)))
	n.state.Store(stateChildrenPending)
	r.stats.addTotal(int64(len(children)), fileBytes)

	if len(children) == 0 {
		r.finishNode(n, AggregateChildren(r.alg, nil))
		return
	}

	for _, ci := range children {
		ci := ci
		child := r.arena.get(ci)
		if child.typ == types.EntryDir {
			r.spawn(func() { r.listDir(ci, child) })
		} else {
			r.spawn(func() { r.hashLeaf(child) })
		}
	}
}

// hashLeaf digests a file or symlink node.
func (r *run) hashLeaf(n *node) {
	if r.aborted.Load() {
		return
	}

	var d digest.Digest
	var err error
	switch n.typ {
	case types.EntryFile:
		if prior, ok := r.reusePrior(n); ok {
			r.log.Trace().Str("path", n.path).Msg("reusing prior digest")
			r.stats.doneBytes(n.size)
			d = prior
			break
		}
		bufp := r.bufs.Get().(*[]byte)
		d, err = hashFile(r.fsys, r.alg, r.fullPath(n.path), *bufp, r.stats)
		r.bufs.Put(bufp)
	case types.EntrySymlink:
		d, err = hashSymlink(r.fsys, r.alg, r.fullPath(n.path))
	}

	if err != nil {
		lerr := errors.LeafUnreadable(n.path, err)
		if !r.opts.KeepGoing {
			r.fail(lerr)
			return
		}
		r.record(lerr)
		d = r.alg.Sentinel()
	}
	r.finishNode(n, d)
}

// reusePrior checks whether a file's digest can be taken from the
// previous manifest instead of rereading content.
func (r *run) reusePrior(n *node) (digest.Digest, bool) {
	if !r.opts.TrustModTime || len(r.opts.Prior) == 0 {
		return digest.Digest{}, false
	}
	p, ok := r.opts.Prior[n.path]
	if !ok {
		return digest.Digest{}, false
	}
	if p.Size != n.size || p.ModTime.IsZero() || !p.ModTime.Equal(n.modTime) {
		return digest.Digest{}, false
	}
	// Never resurrect a failure sentinel, and never mix algorithms.
	if p.Digest.Algorithm() != r.alg.Name() || p.Digest.Size() != r.alg.Size() || p.Digest.IsSentinel() {
		return digest.Digest{}, false
	}
	return p.Digest, true
}

// finishNode stores a node's digest and walks completion upward. When
// the node is the last unfinished child of its parent, the same worker
// aggregates the parent immediately and continues the loop there, so
// each directory is combined exactly once, by exactly one goroutine.
// The loop form keeps deep trees off the call stack.
func (r *run) finishNode(n *node, d digest.Digest) {
	for {
		n.dig = d
		n.state.Store(stateHashed)
		r.notify(n, d)
		r.stats.doneEntry()

		if n.parent < 0 {
			close(r.doneCh)
			return
		}
		parent := r.arena.get(n.parent)
		if parent.pending.Add(-1) != 0 {
			return
		}

		parent.state.Store(stateChildrenReady)
		tuples := make([]ChildTuple, 0, len(parent.children))
		for _, ci := range parent.children {
			c := r.arena.get(ci)
			tuples = append(tuples, ChildTuple{Name: c.name, Type: c.typ, Digest: c.dig})
		}
		n, d = parent, AggregateChildren(r.alg, tuples)
	}
}

func (r *run) notify(n *node, d digest.Digest) {
	if r.opts.Observer == nil {
		return
	}
	if n.typ == types.EntryDir {
		r.opts.Observer.DirDone(n.path, d)
	} else {
		r.opts.Observer.LeafDone(n.path, d)
	}
}
