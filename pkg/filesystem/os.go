package filesystem

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/arthur-debert/dirsum/pkg/types"
)

// osFS implements types.FS using the OS filesystem
type osFS struct{}

// NewOS creates a new OS filesystem implementation
func NewOS() types.FS {
	return &osFS{}
}

func (o *osFS) Lstat(name string) (fs.FileInfo, error) {
	return os.Lstat(name)
}

func (o *osFS) ListEntries(name string) ([]types.DirEntry, error) {
	dirEntries, err := os.ReadDir(name)
	if err != nil {
		return nil, err
	}

	entries := make([]types.DirEntry, 0, len(dirEntries))
	for _, de := range dirEntries {
		info, err := de.Info()
		if err != nil {
			// The entry vanished between readdir and lstat.
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		entries = append(entries, types.DirEntry{
			Name:    de.Name(),
			Type:    types.ClassifyMode(info.Mode()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return entries, nil
}

func (o *osFS) Open(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

func (o *osFS) ReadLink(name string) (string, error) {
	return os.Readlink(name)
}
