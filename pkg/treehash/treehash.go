package treehash

import (
	"sort"
	"sync"

	"github.com/arthur-debert/dirsum/pkg/algo"
	"github.com/arthur-debert/dirsum/pkg/digest"
	"github.com/arthur-debert/dirsum/pkg/errors"
	"github.com/arthur-debert/dirsum/pkg/logging"
	"github.com/arthur-debert/dirsum/pkg/paths"
	"github.com/arthur-debert/dirsum/pkg/types"
)

// Result is what a completed run produced.
type Result struct {
	// Root is the hashed tree, children sorted by name. Digests are
	// hex encoded on the nodes; the root's digest is also available
	// as a value in Digest.
	Root *types.Node

	// Digest is the root digest.
	Digest digest.Digest

	// Stats is the final counter snapshot.
	Stats Snapshot

	// Errors lists what the keep-going policy recorded. Empty on a
	// clean run; always empty under fail-fast, which aborts instead.
	Errors []error
}

// Run hashes the tree rooted at root through fsys. The root may be a
// directory, a file, or a symlink; for leaf roots the result is a
// single-node tree.
//
// Under fail-fast (the default) the first error aborts the run and is
// returned. Under KeepGoing the error return covers only setup
// problems; per-path failures land in Result.Errors.
func Run(fsys types.FS, root string, opts Options) (*Result, error) {
	logger := logging.GetLogger("treehash")

	alg, err := algo.Lookup(opts.Algorithm)
	if err != nil {
		return nil, err
	}
	if opts.BlockSize <= 0 {
		opts.BlockSize = DefaultBlockSize
	}

	info, err := fsys.Lstat(root)
	if err != nil {
		return nil, errors.Traversal(".", err)
	}
	rootType := types.ClassifyMode(info.Mode())
	if !rootType.Valid() {
		return nil, errors.Newf(errors.ErrInvalidInput,
			"cannot hash special file: %s", root)
	}

	stats := opts.Stats
	if stats == nil {
		stats = NewStats()
	}
	pool := opts.Pool
	ownPool := false
	if pool == nil {
		pool = NewPool(opts.Jobs)
		ownPool = true
	}

	r := &run{
		fsys:    fsys,
		root:    root,
		alg:     alg,
		opts:    opts,
		pool:    pool,
		arena:   &arena{},
		stats:   stats,
		excl:    paths.NewExcludeMatcher(opts.Exclude),
		log:     logger,
		abortCh: make(chan struct{}),
		doneCh:  make(chan struct{}),
	}
	blockSize := opts.BlockSize
	r.bufs = sync.Pool{New: func() interface{} {
		b := make([]byte, blockSize)
		return &b
	}}

	done := logging.LogOperationStart(logger, "hash tree")
	defer done()

	rootNode := &node{
		name:    ".",
		path:    ".",
		typ:     rootType,
		size:    info.Size(),
		modTime: info.ModTime(),
		parent:  -1,
	}
	rootIdx := r.arena.add(rootNode)
	if rootType == types.EntryFile {
		stats.addTotal(1, info.Size())
	} else {
		stats.addTotal(1, 0)
	}

	if rootType == types.EntryDir {
		r.spawn(func() { r.listDir(rootIdx, rootNode) })
	} else {
		r.spawn(func() { r.hashLeaf(rootNode) })
	}

	select {
	case <-r.doneCh:
	case <-r.abortCh:
	}
	// Let queued tasks drain; after an abort they return immediately.
	r.taskWG.Wait()
	if ownPool {
		pool.Close()
	}

	if r.aborted.Load() {
		logger.Debug().Err(r.abortErr).Msg("run aborted")
		return nil, r.abortErr
	}

	result := &Result{
		Root:   r.buildTree(rootIdx),
		Digest: rootNode.dig,
		Stats:  stats.Snapshot(),
		Errors: r.errs,
	}
	logger.Info().
		Str("digest", result.Digest.String()).
		Int("entries", r.arena.len()).
		Int("errors", len(result.Errors)).
		Msg("tree hashed")
	return result, nil
}

// buildTree converts the arena into the output node form, sorting each
// directory's children by name. Iterative for the same reason the
// completion path is: tree depth must not become stack depth.
func (r *run) buildTree(rootIdx int32) *types.Node {
	out := r.exportNode(r.arena.get(rootIdx))

	type frame struct {
		idx int32
		out *types.Node
	}
	stack := []frame{{rootIdx, out}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := r.arena.get(f.idx)
		if n.typ != types.EntryDir || len(n.children) == 0 {
			continue
		}

		kids := make([]int32, len(n.children))
		copy(kids, n.children)
		sort.Slice(kids, func(i, j int) bool {
			return r.arena.get(kids[i]).name < r.arena.get(kids[j]).name
		})

		f.out.Children = make([]*types.Node, 0, len(kids))
		for _, ci := range kids {
			child := r.arena.get(ci)
			childOut := r.exportNode(child)
			f.out.Children = append(f.out.Children, childOut)
			if child.typ == types.EntryDir {
				stack = append(stack, frame{ci, childOut})
			}
		}
	}
	return out
}

func (r *run) exportNode(n *node) *types.Node {
	out := &types.Node{
		Name:   n.name,
		Type:   n.typ,
		Digest: n.dig.Hex(),
	}
	if n.typ == types.EntryFile {
		out.Size = n.size
		if !n.modTime.IsZero() {
			out.ModTimeNS = n.modTime.UnixNano()
		}
	}
	return out
}
