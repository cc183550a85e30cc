// Package algo is the registry of hash algorithms dirsum can run.
//
// Every algorithm produces fixed-size digests and is addressed by a
// short lowercase name. The set is closed at compile time; manifests
// name the algorithm so later runs can look it up again.
package algo

import (
	"crypto/md5"
	"crypto/sha256"
	"hash"
	"sort"
	"strings"

	"github.com/arthur-debert/dirsum/pkg/digest"
	"github.com/arthur-debert/dirsum/pkg/errors"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
)

// DefaultName is the algorithm used when none is configured.
const DefaultName = "blake3"

// Algorithm describes one registered hash function. The zero value is
// not usable; obtain instances through Lookup or Default.
type Algorithm struct {
	name    string
	size    int
	factory func() hash.Hash
}

// Name returns the registry name, e.g. "sha256".
func (a Algorithm) Name() string { return a.name }

// Size returns the digest length in bytes.
func (a Algorithm) Size() int { return a.size }

// New returns a fresh hash state. Each worker hashes with its own
// instance; states are never shared.
func (a Algorithm) New() hash.Hash { return a.factory() }

// Sentinel returns the all-zero digest of this algorithm's size.
func (a Algorithm) Sentinel() digest.Digest {
	return digest.Sentinel(a.name, a.size)
}

var registry = map[string]Algorithm{
	"md5": {
		name:    "md5",
		size:    md5.Size,
		factory: md5.New,
	},
	"sha256": {
		name:    "sha256",
		size:    sha256.Size,
		factory: sha256.New,
	},
	"blake2b": {
		name: "blake2b",
		size: blake2b.Size256,
		factory: func() hash.Hash {
			h, err := blake2b.New256(nil)
			if err != nil {
				// New256 only fails for oversized keys; we pass none.
				panic(err)
			}
			return h
		},
	},
	"blake3": {
		name:    "blake3",
		size:    32,
		factory: func() hash.Hash { return blake3.New() },
	},
}

// Lookup resolves an algorithm by name. The empty string resolves to
// the default.
func Lookup(name string) (Algorithm, error) {
	if name == "" {
		name = DefaultName
	}
	a, ok := registry[name]
	if !ok {
		return Algorithm{}, errors.Newf(errors.ErrAlgorithmUnknown,
			"no algorithm named %q (have: %s)", name, strings.Join(Names(), ", ")).
			WithDetail("name", name)
	}
	return a, nil
}

// Default returns the default algorithm.
func Default() Algorithm {
	return registry[DefaultName]
}

// Names lists the registered algorithm names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
