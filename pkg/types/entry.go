package types

import (
	"io/fs"
	"time"
)

// EntryType classifies a filesystem object in a hashed tree.
type EntryType string

const (
	// EntryFile is a regular file hashed by content.
	EntryFile EntryType = "file"

	// EntryDir is a directory hashed over its children.
	EntryDir EntryType = "dir"

	// EntrySymlink is a symbolic link hashed by its target string.
	// Links are never followed.
	EntrySymlink EntryType = "symlink"

	// EntryOther covers sockets, devices, and pipes. Such entries never
	// appear in manifests; traversal either skips them or fails on them
	// depending on policy.
	EntryOther EntryType = "other"
)

// Tag returns the single byte that identifies this entry type in the
// canonical child encoding. Only the three manifest types have tags.
func (t EntryType) Tag() byte {
	switch t {
	case EntryFile:
		return 'F'
	case EntryDir:
		return 'D'
	case EntrySymlink:
		return 'L'
	}
	panic("types: no canonical tag for entry type " + string(t))
}

// Valid reports whether t is one of the three types a manifest may
// contain.
func (t EntryType) Valid() bool {
	switch t {
	case EntryFile, EntryDir, EntrySymlink:
		return true
	}
	return false
}

// ClassifyMode maps a file mode to an entry type. The symlink bit is
// checked before the directory bit so links to directories classify as
// links.
func ClassifyMode(mode fs.FileMode) EntryType {
	switch {
	case mode&fs.ModeSymlink != 0:
		return EntrySymlink
	case mode.IsDir():
		return EntryDir
	case mode.IsRegular():
		return EntryFile
	default:
		return EntryOther
	}
}

// DirEntry is one child of a listed directory.
type DirEntry struct {
	Name    string
	Type    EntryType
	Size    int64
	ModTime time.Time
}
