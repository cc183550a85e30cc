package types

import (
	"io"
	"io/fs"

	"github.com/arthur-debert/dirsum/pkg/digest"
)

// FS provides the filesystem operations the hashing engine needs.
// Implementations back it with the real OS, an afero filesystem, or an
// in-memory tree for tests.
//
// ListEntries carries no ordering guarantee. Callers must not depend
// on the order entries come back in; digests are made enumeration
// independent by sorting at combination time.
type FS interface {
	// Lstat describes a path without following symlinks.
	Lstat(path string) (fs.FileInfo, error)

	// ListEntries returns the children of a directory, in any order.
	ListEntries(path string) ([]DirEntry, error)

	// Open opens a file for streaming reads.
	Open(path string) (io.ReadCloser, error)

	// ReadLink returns the target string of a symlink.
	ReadLink(path string) (string, error)
}

// Observer receives completion events from a hashing run. Methods are
// called from worker goroutines and must be safe for concurrent use.
// Each node produces exactly one event, after its digest is final.
type Observer interface {
	// LeafDone reports a hashed file or symlink. The path is relative
	// to the scan root, slash separated.
	LeafDone(path string, d digest.Digest)

	// DirDone reports a directory whose children have all completed.
	DirDone(path string, d digest.Digest)
}
