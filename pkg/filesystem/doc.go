// Package filesystem provides filesystem implementations for dirsum.
//
// This package contains implementations of the types.FS interface the
// hashing engine reads trees through: the standard OS filesystem and
// an afero-backed one for embedding and tests.
package filesystem
