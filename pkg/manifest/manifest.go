// Package manifest persists hashed trees and compares them.
//
// A manifest is a snapshot: the algorithm name, a format version, and
// the node tree with one hex digest per entry. Loading a manifest never
// touches file content; leaf digests are trusted as stored, and
// directory digests can be rechecked against them with Validate.
package manifest

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/arthur-debert/dirsum/pkg/algo"
	"github.com/arthur-debert/dirsum/pkg/digest"
	"github.com/arthur-debert/dirsum/pkg/errors"
	"github.com/arthur-debert/dirsum/pkg/paths"
	"github.com/arthur-debert/dirsum/pkg/treehash"
	"github.com/arthur-debert/dirsum/pkg/types"
)

// Version is the manifest format version this package writes. Loading
// any other version fails rather than guessing at its layout.
const Version = 1

// Manifest is a persisted tree snapshot.
type Manifest struct {
	Algorithm   string      `json:"algorithm"`
	Version     int         `json:"version"`
	GeneratedAt time.Time   `json:"generated_at"`
	Root        *types.Node `json:"root"`
}

// New wraps a completed hashing result into a manifest stamped with the
// current time. Seconds granularity survives every container format.
func New(res *treehash.Result) *Manifest {
	return &Manifest{
		Algorithm:   res.Digest.Algorithm(),
		Version:     Version,
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Root:        res.Root,
	}
}

// RootDigest returns the root digest as a value.
func (m *Manifest) RootDigest() (digest.Digest, error) {
	return digest.ParseHex(m.Algorithm, m.Root.Digest)
}

// Leaves flattens the manifest's files into prior-digest records keyed
// by slash-relative path, the shape the engine's mtime-based reuse
// expects. Files with no recorded mtime are left out, which disables
// reuse for them. Directories and symlinks are never reused.
func (m *Manifest) Leaves() map[string]treehash.PriorLeaf {
	out := make(map[string]treehash.PriorLeaf)

	addFile := func(path string, n *types.Node) {
		if n.ModTimeNS == 0 {
			return
		}
		d, err := digest.ParseHex(m.Algorithm, n.Digest)
		if err != nil {
			return
		}
		out[path] = treehash.PriorLeaf{
			Size:    n.Size,
			ModTime: time.Unix(0, n.ModTimeNS),
			Digest:  d,
		}
	}

	if m.Root.Type == types.EntryFile {
		addFile(".", m.Root)
		return out
	}

	type frame struct {
		path string
		node *types.Node
	}
	stack := []frame{{"", m.Root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range f.node.Children {
			p := c.Name
			if f.path != "" {
				p = f.path + "/" + c.Name
			}
			switch c.Type {
			case types.EntryDir:
				stack = append(stack, frame{p, c})
			case types.EntryFile:
				addFile(p, c)
			}
		}
	}
	return out
}

// Validate checks the manifest's structure and then recomputes every
// directory digest from its children, confirming the stored tree is
// internally consistent. A manifest that validates reproduces the same
// root digest it was saved with.
func (m *Manifest) Validate() error {
	if err := m.checkStructure(); err != nil {
		return err
	}
	alg, err := algo.Lookup(m.Algorithm)
	if err != nil {
		return err
	}

	stack := []*types.Node{m.Root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.Type != types.EntryDir {
			continue
		}

		tuples := make([]treehash.ChildTuple, 0, len(n.Children))
		for _, c := range n.Children {
			d, err := digest.ParseHex(m.Algorithm, c.Digest)
			if err != nil {
				return errors.CorruptManifest(fmt.Sprintf("bad digest on %q: %v", c.Name, err))
			}
			tuples = append(tuples, treehash.ChildTuple{Name: c.Name, Type: c.Type, Digest: d})
			stack = append(stack, c)
		}
		if treehash.AggregateChildren(alg, tuples).Hex() != n.Digest {
			return errors.CorruptManifest(
				fmt.Sprintf("directory digest of %q does not match its children", n.Name))
		}
	}
	return nil
}

// checkStructure enforces the schema rules that do not need the
// algorithm: known node types, well-formed hex digests of a single
// consistent length, valid entry names, children only under
// directories, and children strictly sorted by name.
func (m *Manifest) checkStructure() error {
	if m.Version != Version {
		return errors.CorruptManifest(fmt.Sprintf("unsupported version %d", m.Version)).
			WithDetail("version", m.Version)
	}
	if m.Algorithm == "" {
		return errors.CorruptManifest("missing algorithm")
	}
	if m.Root == nil {
		return errors.CorruptManifest("missing root node")
	}
	if m.Root.Name != "." {
		return errors.CorruptManifest(fmt.Sprintf("root node must be named %q, got %q", ".", m.Root.Name))
	}

	digestLen := len(m.Root.Digest)

	type frame struct {
		path string
		node *types.Node
	}
	stack := []frame{{".", m.Root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := f.node

		if !n.Type.Valid() {
			return errors.CorruptManifest(fmt.Sprintf("invalid node type %q at %s", n.Type, f.path))
		}
		if len(n.Digest) == 0 || len(n.Digest) != digestLen {
			return errors.CorruptManifest(fmt.Sprintf("digest length mismatch at %s", f.path))
		}
		if _, err := hex.DecodeString(n.Digest); err != nil {
			return errors.CorruptManifest(fmt.Sprintf("digest at %s is not hex", f.path))
		}
		if n.Type != types.EntryDir {
			if len(n.Children) > 0 {
				return errors.CorruptManifest(fmt.Sprintf("%s %s has children", n.Type, f.path))
			}
			continue
		}

		prev := ""
		for i, c := range n.Children {
			if c == nil {
				return errors.CorruptManifest(fmt.Sprintf("null child under %s", f.path))
			}
			if err := paths.ValidateEntryName(c.Name); err != nil {
				return errors.CorruptManifest(fmt.Sprintf("bad entry name %q under %s", c.Name, f.path))
			}
			if i > 0 && c.Name <= prev {
				return errors.CorruptManifest(fmt.Sprintf("children of %s not sorted at %q", f.path, c.Name))
			}
			prev = c.Name

			p := c.Name
			if f.path != "." {
				p = f.path + "/" + c.Name
			}
			stack = append(stack, frame{p, c})
		}
	}
	return nil
}
