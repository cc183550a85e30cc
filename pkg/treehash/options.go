package treehash

import (
	"time"

	"github.com/arthur-debert/dirsum/pkg/digest"
	"github.com/arthur-debert/dirsum/pkg/types"
)

// DefaultBlockSize is the read chunk size used when Options.BlockSize
// is unset.
const DefaultBlockSize = 128 * 1024

// PriorLeaf is what a previous run recorded about a file, used by the
// TrustModTime shortcut to skip rereading unchanged content.
type PriorLeaf struct {
	Size    int64
	ModTime time.Time
	Digest  digest.Digest
}

// Options configures a hashing run. The zero value scans with the
// default algorithm, one worker per CPU, and the fail-fast policy.
type Options struct {
	// Algorithm names the registered hash to use; empty means the
	// default.
	Algorithm string

	// BlockSize is the file read chunk size in bytes; zero or less
	// means DefaultBlockSize.
	BlockSize int

	// Jobs is the worker count for a run-owned pool; zero or less
	// means one per CPU. Ignored when Pool is set.
	Jobs int

	// KeepGoing switches from fail-fast to the best-effort policy:
	// unreadable entries are recorded and replaced by sentinel digests
	// instead of aborting the run.
	KeepGoing bool

	// SkipSpecial silently skips sockets, devices, and pipes. When
	// false such entries are traversal errors.
	SkipSpecial bool

	// Exclude holds patterns for paths the scan should not descend
	// into. See paths.ExcludeMatcher for the pattern forms.
	Exclude []string

	// Observer, when set, receives one completion event per node.
	Observer types.Observer

	// Stats, when set, is the counter block the run updates; callers
	// poll it for progress. When nil the run keeps private counters.
	Stats *Stats

	// Pool, when set, is an externally owned worker pool. The run will
	// not close it. When nil the run creates and owns a pool of Jobs
	// workers.
	Pool *Pool

	// TrustModTime enables reusing digests from Prior for files whose
	// size and modification time are unchanged. Off by default; mtime
	// granularity is filesystem dependent, so this trades a little
	// certainty for a lot of speed.
	TrustModTime bool

	// Prior maps slash-relative paths to what the previous manifest
	// recorded for them. Only consulted when TrustModTime is set.
	Prior map[string]PriorLeaf
}
