package types

import "sort"

// Node is one entry of a hashed tree as manifests record it. A file or
// symlink node carries only its digest; a directory node additionally
// carries its children, sorted by name.
//
// Digests are stored as lowercase hex. The algorithm is not repeated
// per node; the manifest header names it once for the whole tree.
type Node struct {
	Name      string    `json:"name"`
	Type      EntryType `json:"type"`
	Digest    string    `json:"digest"`
	Size      int64     `json:"size,omitempty"`
	ModTimeNS int64     `json:"mtime_ns,omitempty"`
	Children  []*Node   `json:"children,omitempty"`
}

// Child returns the child with the given name, or nil. It relies on
// Children being sorted by name.
func (n *Node) Child(name string) *Node {
	i := sort.Search(len(n.Children), func(i int) bool {
		return n.Children[i].Name >= name
	})
	if i < len(n.Children) && n.Children[i].Name == name {
		return n.Children[i]
	}
	return nil
}
