// Package testutil provides test infrastructure shared across packages,
// most importantly an in-memory types.FS with hostile enumeration order
// and error injection.
package testutil

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/arthur-debert/dirsum/pkg/types"
)

// MemoryFS implements types.FS with in-memory storage.
//
// Entries are added through the builder methods and then read through
// the types.FS interface. ListEntries returns children in a random
// order on every call; anything that depends on enumeration order
// will fail loudly under this filesystem, which is the point.
type MemoryFS struct {
	mu    sync.RWMutex
	files map[string]*fileNode

	// Error injection: reads of these paths fail.
	errorPaths map[string]error

	// opens counts Open calls per path, for tests that assert a file
	// was or was not reread.
	opens map[string]int
}

// fileNode represents a file, directory, symlink, or special file.
type fileNode struct {
	name     string
	mode     os.FileMode
	modTime  time.Time
	content  []byte
	isDir    bool
	isLink   bool
	linkDest string
	children map[string]*fileNode
}

// NewMemoryFS creates an in-memory filesystem containing only the
// root directory "/".
func NewMemoryFS() *MemoryFS {
	root := &fileNode{
		name:     "/",
		mode:     0755 | os.ModeDir,
		modTime:  time.Now(),
		isDir:    true,
		children: make(map[string]*fileNode),
	}
	return &MemoryFS{
		files:      map[string]*fileNode{"/": root},
		errorPaths: make(map[string]error),
		opens:      make(map[string]int),
	}
}

func (m *MemoryFS) normalizePath(path string) string {
	if !filepath.IsAbs(path) {
		path = "/" + path
	}
	return filepath.Clean(path)
}

func (m *MemoryFS) getNode(path string) (*fileNode, error) {
	path = m.normalizePath(path)

	if err, ok := m.errorPaths[path]; ok {
		return nil, err
	}

	node, exists := m.files[path]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	return node, nil
}

// AddFile creates a file with the given content, making parent
// directories as needed. It returns m for chaining.
func (m *MemoryFS) AddFile(path string, content []byte) *MemoryFS {
	return m.AddFileWithTime(path, content, time.Now())
}

// AddFileWithTime creates a file with an explicit modification time.
func (m *MemoryFS) AddFileWithTime(path string, content []byte, modTime time.Time) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = m.normalizePath(path)
	parent := m.mkdirAll(filepath.Dir(path))
	node := &fileNode{
		name:    filepath.Base(path),
		mode:    0644,
		modTime: modTime,
		content: append([]byte(nil), content...),
	}
	parent.children[node.name] = node
	m.files[path] = node
	return m
}

// AddDir creates a directory and any missing parents.
func (m *MemoryFS) AddDir(path string) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.mkdirAll(m.normalizePath(path))
	return m
}

// AddSymlink creates a symlink with the given target string. The
// target is stored verbatim; it does not need to exist.
func (m *MemoryFS) AddSymlink(path, target string) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = m.normalizePath(path)
	parent := m.mkdirAll(filepath.Dir(path))
	node := &fileNode{
		name:     filepath.Base(path),
		mode:     0777 | os.ModeSymlink,
		modTime:  time.Now(),
		isLink:   true,
		linkDest: target,
	}
	parent.children[node.name] = node
	m.files[path] = node
	return m
}

// AddSpecial creates an entry that is neither file, directory, nor
// symlink, for exercising the special-file policies.
func (m *MemoryFS) AddSpecial(path string) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = m.normalizePath(path)
	parent := m.mkdirAll(filepath.Dir(path))
	node := &fileNode{
		name:    filepath.Base(path),
		mode:    0644 | os.ModeSocket,
		modTime: time.Now(),
	}
	parent.children[node.name] = node
	m.files[path] = node
	return m
}

// WithError makes reads of path fail with err.
func (m *MemoryFS) WithError(path string, err error) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.errorPaths[m.normalizePath(path)] = err
	return m
}

// Touch changes a file's modification time without changing content.
func (m *MemoryFS) Touch(path string, modTime time.Time) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()

	if node, ok := m.files[m.normalizePath(path)]; ok {
		node.modTime = modTime
	}
	return m
}

// mkdirAll creates directories without locking; callers hold mu.
func (m *MemoryFS) mkdirAll(path string) *fileNode {
	path = m.normalizePath(path)
	if node, ok := m.files[path]; ok {
		return node
	}

	parent := m.mkdirAll(filepath.Dir(path))
	node := &fileNode{
		name:     filepath.Base(path),
		mode:     0755 | os.ModeDir,
		modTime:  time.Now(),
		isDir:    true,
		children: make(map[string]*fileNode),
	}
	parent.children[node.name] = node
	m.files[path] = node
	return node
}

// OpenCount reports how many times a path was opened for reading.
func (m *MemoryFS) OpenCount(path string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.opens[m.normalizePath(path)]
}

// Lstat implements types.FS.
func (m *MemoryFS) Lstat(name string) (fs.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, err := m.getNode(name)
	if err != nil {
		return nil, err
	}
	return &fileInfo{node: node, name: filepath.Base(m.normalizePath(name))}, nil
}

// ListEntries implements types.FS. The order of the returned entries
// is freshly shuffled on every call.
func (m *MemoryFS) ListEntries(name string) ([]types.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, err := m.getNode(name)
	if err != nil {
		return nil, err
	}
	if !node.isDir {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: errors.New("not a directory")}
	}

	entries := make([]types.DirEntry, 0, len(node.children))
	for childName, child := range node.children {
		entries = append(entries, types.DirEntry{
			Name:    childName,
			Type:    types.ClassifyMode(child.mode),
			Size:    int64(len(child.content)),
			ModTime: child.modTime,
		})
	}
	rand.Shuffle(len(entries), func(i, j int) {
		entries[i], entries[j] = entries[j], entries[i]
	})
	return entries, nil
}

// Open implements types.FS.
func (m *MemoryFS) Open(name string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.opens[m.normalizePath(name)]++

	node, err := m.getNode(name)
	if err != nil {
		return nil, err
	}
	if node.isDir {
		return nil, &fs.PathError{Op: "read", Path: name, Err: errors.New("is a directory")}
	}
	return io.NopCloser(bytes.NewReader(node.content)), nil
}

// ReadLink implements types.FS.
func (m *MemoryFS) ReadLink(name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, err := m.getNode(name)
	if err != nil {
		return "", err
	}
	if !node.isLink {
		return "", &fs.PathError{Op: "readlink", Path: name, Err: errors.New("not a symbolic link")}
	}
	return node.linkDest, nil
}

// fileInfo implements fs.FileInfo
type fileInfo struct {
	node *fileNode
	name string
}

func (fi *fileInfo) Name() string       { return fi.name }
func (fi *fileInfo) Size() int64        { return int64(len(fi.node.content)) }
func (fi *fileInfo) Mode() os.FileMode  { return fi.node.mode }
func (fi *fileInfo) ModTime() time.Time { return fi.node.modTime }
func (fi *fileInfo) IsDir() bool        { return fi.node.isDir }
func (fi *fileInfo) Sys() interface{}   { return fi.node }
