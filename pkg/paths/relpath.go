package paths

import (
	"path"
	"strings"

	"github.com/arthur-debert/dirsum/pkg/errors"
)

// ValidateRelPath checks that p is a well formed slash-separated path
// relative to a tree root. It rejects:
// - empty paths
// - null bytes
// - absolute paths
// - paths that resolve to "." or escape the root via ".."
func ValidateRelPath(p string) error {
	if p == "" {
		return errors.New(errors.ErrPathInvalid, "path cannot be empty")
	}
	if strings.ContainsRune(p, 0) {
		return errors.New(errors.ErrPathInvalid, "path contains null byte")
	}
	if path.IsAbs(p) {
		return errors.Newf(errors.ErrPathInvalid, "absolute path not allowed: %s", p)
	}
	cleaned := path.Clean(p)
	if cleaned == "." {
		return errors.Newf(errors.ErrPathInvalid, "path resolves to current directory: %s", p)
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return errors.Newf(errors.ErrPathInvalid, "path escapes base directory: %s", p)
	}
	return nil
}

// CleanRelPath normalizes a relative path to the slash form used in
// manifests and reports.
func CleanRelPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = path.Clean(p)
	p = strings.TrimPrefix(p, "./")
	return p
}

// ValidateEntryName checks that name can be a single path segment in a
// hashed tree: non-empty, no separators, no null bytes, and not one of
// the reserved dot names.
func ValidateEntryName(name string) error {
	if name == "" {
		return errors.New(errors.ErrPathInvalid, "entry name cannot be empty")
	}
	if strings.ContainsRune(name, 0) {
		return errors.New(errors.ErrPathInvalid, "entry name contains null byte")
	}
	if strings.ContainsAny(name, "/\\") {
		return errors.Newf(errors.ErrPathInvalid, "entry name contains path separator: %s", name)
	}
	if name == "." || name == ".." {
		return errors.Newf(errors.ErrPathInvalid, "entry name cannot be %q", name)
	}
	return nil
}
