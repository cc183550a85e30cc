package filesystem

import (
	"io"
	"io/fs"

	"github.com/arthur-debert/dirsum/pkg/types"
	"github.com/spf13/afero"
)

// aferoFS implements types.FS using afero
type aferoFS struct {
	fs afero.Fs
}

// NewAferoFS creates a new afero filesystem implementation
func NewAferoFS(fs afero.Fs) types.FS {
	return &aferoFS{fs: fs}
}

func (a *aferoFS) Lstat(name string) (fs.FileInfo, error) {
	if lstater, ok := a.fs.(afero.Lstater); ok {
		info, _, err := lstater.LstatIfPossible(name)
		return info, err
	}
	// MemMapFs has no Lstat; Stat is sufficient there.
	return a.fs.Stat(name)
}

func (a *aferoFS) ListEntries(name string) ([]types.DirEntry, error) {
	infos, err := afero.ReadDir(a.fs, name)
	if err != nil {
		return nil, err
	}

	entries := make([]types.DirEntry, 0, len(infos))
	for _, info := range infos {
		entries = append(entries, types.DirEntry{
			Name:    info.Name(),
			Type:    types.ClassifyMode(info.Mode()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return entries, nil
}

func (a *aferoFS) Open(name string) (io.ReadCloser, error) {
	return a.fs.Open(name)
}

func (a *aferoFS) ReadLink(name string) (string, error) {
	if reader, ok := a.fs.(afero.LinkReader); ok {
		return reader.ReadlinkIfPossible(name)
	}
	// Fallback for filesystems without symlink support: a link is
	// simulated as a file whose content is the target.
	content, err := afero.ReadFile(a.fs, name)
	if err != nil {
		return "", err
	}
	return string(content), nil
}
