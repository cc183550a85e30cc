package manifest

import (
	"sort"

	"github.com/arthur-debert/dirsum/pkg/errors"
	"github.com/arthur-debert/dirsum/pkg/logging"
	"github.com/arthur-debert/dirsum/pkg/types"
)

// Report classifies what changed between two manifests. Paths are
// slash-relative to the root and sorted. An added or removed path
// stands for its whole subtree; descendants are not listed again.
type Report struct {
	Added   []string `json:"added" yaml:"added"`
	Removed []string `json:"removed" yaml:"removed"`
	Changed []string `json:"changed" yaml:"changed"`

	// PrunedSubtrees counts the directories whose comparison stopped
	// at an equal digest pair without descending.
	PrunedSubtrees int `json:"pruned_subtree_count" yaml:"pruned_subtree_count"`
}

// InSync reports whether the two trees were identical.
func (r *Report) InSync() bool {
	return len(r.Added) == 0 && len(r.Removed) == 0 && len(r.Changed) == 0
}

// Diff compares two manifests node by node from the root. Wherever the
// two directory digests are equal the whole subtree is pruned without
// descent; diffing a manifest against itself therefore prunes exactly
// once, at the root. Divergent digests force descent and classify the
// affected paths:
//
//   - present only in curr: Added
//   - present only in prev: Removed
//   - same name, different content or type: Changed
//
// A type change is Changed at that path; former or new children then
// have no counterpart and are classified against absence. Manifests
// built with different algorithms cannot be compared.
func Diff(prev, curr *Manifest) (*Report, error) {
	if prev.Algorithm != curr.Algorithm {
		return nil, errors.AlgorithmMismatch(prev.Algorithm, curr.Algorithm)
	}

	rep := &Report{
		Added:   []string{},
		Removed: []string{},
		Changed: []string{},
	}

	type frame struct {
		path       string
		prev, curr *types.Node
	}
	stack := []frame{{".", prev.Root, curr.Root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.prev.Type != f.curr.Type {
			rep.Changed = append(rep.Changed, f.path)
			for _, c := range f.prev.Children {
				rep.Removed = append(rep.Removed, childPath(f.path, c.Name))
			}
			for _, c := range f.curr.Children {
				rep.Added = append(rep.Added, childPath(f.path, c.Name))
			}
			continue
		}
		if f.prev.Digest == f.curr.Digest {
			if f.prev.Type == types.EntryDir {
				rep.PrunedSubtrees++
			}
			continue
		}
		if f.prev.Type != types.EntryDir {
			rep.Changed = append(rep.Changed, f.path)
			continue
		}

		// Both are directories with diverging digests: merge the two
		// sorted child lists.
		pc, cc := f.prev.Children, f.curr.Children
		i, j := 0, 0
		for i < len(pc) || j < len(cc) {
			switch {
			case j >= len(cc) || (i < len(pc) && pc[i].Name < cc[j].Name):
				rep.Removed = append(rep.Removed, childPath(f.path, pc[i].Name))
				i++
			case i >= len(pc) || pc[i].Name > cc[j].Name:
				rep.Added = append(rep.Added, childPath(f.path, cc[j].Name))
				j++
			default:
				stack = append(stack, frame{childPath(f.path, pc[i].Name), pc[i], cc[j]})
				i++
				j++
			}
		}
	}

	sort.Strings(rep.Added)
	sort.Strings(rep.Removed)
	sort.Strings(rep.Changed)

	logging.GetLogger("manifest").Debug().
		Int("added", len(rep.Added)).
		Int("removed", len(rep.Removed)).
		Int("changed", len(rep.Changed)).
		Int("pruned", rep.PrunedSubtrees).
		Msg("manifests compared")
	return rep, nil
}

func childPath(parent, name string) string {
	if parent == "." {
		return name
	}
	return parent + "/" + name
}
