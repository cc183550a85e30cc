package treehash

import (
	"io"

	"github.com/arthur-debert/dirsum/pkg/algo"
	"github.com/arthur-debert/dirsum/pkg/digest"
	"github.com/arthur-debert/dirsum/pkg/types"
)

// hashFile streams a file through the algorithm in blockSize chunks.
// buf is the caller's scratch buffer; workers reuse buffers across
// files to keep allocation off the hot path. A zero-byte file yields
// the digest of the empty input.
func hashFile(fsys types.FS, alg algo.Algorithm, fullPath string, buf []byte, stats *Stats) (digest.Digest, error) {
	f, err := fsys.Open(fullPath)
	if err != nil {
		return digest.Digest{}, err
	}
	defer func() { _ = f.Close() }()

	h := alg.New()
	for {
		n, err := f.Read(buf)
		if n > 0 {
			_, _ = h.Write(buf[:n])
			stats.doneBytes(int64(n))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return digest.Digest{}, err
		}
	}
	return digest.New(alg.Name(), h.Sum(nil)), nil
}

// hashSymlink digests a symlink's identity: the symlink type tag
// followed by the raw target string. The target is never resolved, so
// a link and a copy of what it points to always differ, and a dangling
// link hashes fine.
func hashSymlink(fsys types.FS, alg algo.Algorithm, fullPath string) (digest.Digest, error) {
	target, err := fsys.ReadLink(fullPath)
	if err != nil {
		return digest.Digest{}, err
	}
	h := alg.New()
	_, _ = h.Write([]byte{types.EntrySymlink.Tag()})
	_, _ = h.Write([]byte(target))
	return digest.New(alg.Name(), h.Sum(nil)), nil
}
