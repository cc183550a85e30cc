// Package treehash computes content digests over directory trees.
//
// A file hashes by its byte content and a symlink by its target
// string. A directory hashes by a canonical encoding of its children's
// names, types, and digests. Children are sorted at combination time,
// so the resulting digests do not depend on enumeration order or on
// how many workers the run used.
//
// The engine walks the tree with a bounded worker pool. Directories
// carry a countdown of unfinished children; whichever worker finishes
// the last child of a directory combines that directory in the same
// call chain, so every digest is written exactly once and read only
// after the counter reaches zero. Nodes live in a flat arena addressed
// by index, and completion walks an explicit loop upward, keeping
// stack depth flat on arbitrarily deep trees.
//
// Two failure policies exist. The default aborts on the first error
// and returns it. With KeepGoing, errors are recorded per path, the
// affected entry's digest is replaced by the all-zero sentinel of the
// algorithm's size, and the run still produces a complete tree.
package treehash
