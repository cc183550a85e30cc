// Package digest provides the immutable digest value that identifies
// file content and directory structure throughout dirsum.
//
// A Digest pairs an algorithm name with the raw hash bytes. Values are
// copied on the way in and on the way out, so a Digest can be shared
// between goroutines and stored in manifests without aliasing concerns.
package digest

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
)

// Digest is an algorithm-qualified hash value. The zero value is the
// "no digest" state and reports IsZero() == true.
type Digest struct {
	algorithm string
	value     []byte
}

// New creates a Digest from an algorithm name and raw hash bytes.
// The byte slice is copied.
func New(algorithm string, value []byte) Digest {
	v := make([]byte, len(value))
	copy(v, value)
	return Digest{algorithm: algorithm, value: v}
}

// Sentinel returns the all-zero digest of the given size. It stands in
// for entries whose content could not be read, so that ancestors of a
// failed entry still combine to a deterministic value.
func Sentinel(algorithm string, size int) Digest {
	return Digest{algorithm: algorithm, value: make([]byte, size)}
}

// Algorithm returns the name of the algorithm that produced this digest.
func (d Digest) Algorithm() string {
	return d.algorithm
}

// Value returns a copy of the raw hash bytes.
func (d Digest) Value() []byte {
	v := make([]byte, len(d.value))
	copy(v, d.value)
	return v
}

// Size returns the length of the hash in bytes.
func (d Digest) Size() int {
	return len(d.value)
}

// Hex returns the lowercase hex encoding of the hash bytes.
func (d Digest) Hex() string {
	return hex.EncodeToString(d.value)
}

// String renders the digest as "algorithm:hex".
func (d Digest) String() string {
	return d.algorithm + ":" + d.Hex()
}

// IsZero reports whether d is the zero Digest (no value computed).
func (d Digest) IsZero() bool {
	return d.algorithm == "" && len(d.value) == 0
}

// IsSentinel reports whether every hash byte is zero. Sentinel digests
// mark entries that failed to hash under the keep-going policy.
func (d Digest) IsSentinel() bool {
	if len(d.value) == 0 {
		return false
	}
	for _, b := range d.value {
		if b != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether two digests have the same algorithm and the
// same hash bytes.
func (d Digest) Equal(other Digest) bool {
	return d.algorithm == other.algorithm && bytes.Equal(d.value, other.value)
}

// Parse decodes the "algorithm:hex" form produced by String.
func Parse(s string) (Digest, error) {
	algorithm, hexval, ok := strings.Cut(s, ":")
	if !ok {
		return Digest{}, fmt.Errorf("digest %q: missing algorithm separator", s)
	}
	return ParseHex(algorithm, hexval)
}

// ParseHex decodes a bare hex string into a Digest for the given
// algorithm.
func ParseHex(algorithm, hexval string) (Digest, error) {
	v, err := hex.DecodeString(hexval)
	if err != nil {
		return Digest{}, fmt.Errorf("digest %q: %w", hexval, err)
	}
	if len(v) == 0 {
		return Digest{}, fmt.Errorf("digest %q: empty value", hexval)
	}
	return Digest{algorithm: algorithm, value: v}, nil
}
