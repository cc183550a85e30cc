package errors

// Constructors for the error conditions the hashing engine and the
// manifest layer report. They keep the path and the involved algorithm
// names in Details so callers and tests can inspect them without
// parsing messages.

// LeafUnreadable reports a file or symlink whose content could not be
// read while hashing.
func LeafUnreadable(path string, err error) *DirsumError {
	return Wrapf(err, ErrLeafUnreadable, "cannot read %s", path).
		WithDetail("path", path)
}

// Traversal reports a directory whose entries could not be listed.
func Traversal(path string, err error) *DirsumError {
	return Wrapf(err, ErrTraversal, "cannot list %s", path).
		WithDetail("path", path)
}

// AlgorithmMismatch reports an operation that tried to combine digests
// produced by different algorithms.
func AlgorithmMismatch(want, got string) *DirsumError {
	return Newf(ErrAlgorithmMismatch, "algorithm mismatch: want %s, got %s", want, got).
		WithDetail("want", want).
		WithDetail("got", got)
}

// CorruptManifest reports a manifest that failed structural validation.
func CorruptManifest(reason string) *DirsumError {
	return Newf(ErrCorruptManifest, "corrupt manifest: %s", reason)
}
