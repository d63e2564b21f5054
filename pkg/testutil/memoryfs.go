package testutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryFS implements types.FS with in-memory storage for tests
type MemoryFS struct {
	mu    sync.RWMutex
	files map[string]*fileNode

	// Error injection
	errorPaths map[string]error

	// Statistics
	readCount  int
	writeCount int
}

// fileNode represents a file or directory in memory
type fileNode struct {
	name    string
	mode    os.FileMode
	modTime time.Time
	content []byte
	isDir   bool
}

// NewMemoryFS creates a new in-memory filesystem with a root directory
func NewMemoryFS() *MemoryFS {
	root := &fileNode{
		name:    "/",
		mode:    0755 | os.ModeDir,
		modTime: time.Now(),
		isDir:   true,
	}

	return &MemoryFS{
		files:      map[string]*fileNode{"/": root},
		errorPaths: make(map[string]error),
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

// ReadFile reads the entire file content
func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	m.readCount++

	node, err := m.getNode(name)
	if err != nil {
		return nil, err
	}

	if node.isDir {
		return nil, &fs.PathError{Op: "read", Path: name, Err: errors.New("is a directory")}
	}

	// Return a copy to prevent mutation
	content := make([]byte, len(node.content))
	copy(content, node.content)
	return content, nil
}

// WriteFile writes data to a file, creating parent directories if necessary
func (m *MemoryFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.writeCount++

	path := m.normalizePath(name)

	if err, ok := m.errorPaths[path]; ok {
		return err
	}

	if err := m.mkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	node := &fileNode{
		name:    filepath.Base(path),
		mode:    perm,
		modTime: time.Now(),
		content: make([]byte, len(data)),
	}
	copy(node.content, data)

	m.files[path] = node
	return nil
}

// Stat returns file info
func (m *MemoryFS) Stat(name string) (os.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, err := m.getNode(name)
	if err != nil {
		return nil, err
	}

	return &fileInfo{node: node, name: filepath.Base(m.normalizePath(name))}, nil
}

// MkdirAll creates a directory and all necessary parents
func (m *MemoryFS) MkdirAll(path string, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.mkdirAll(path, perm)
}

func (m *MemoryFS) mkdirAll(path string, perm os.FileMode) error {
	path = m.normalizePath(path)

	if err, ok := m.errorPaths[path]; ok {
		return err
	}

	if node, exists := m.files[path]; exists {
		if !node.isDir {
			return &fs.PathError{Op: "mkdir", Path: path, Err: errors.New("file exists")}
		}
		return nil
	}

	parts := strings.Split(path, "/")
	current := "/"
	for _, part := range parts {
		if part == "" {
			continue
		}
		current = filepath.Join(current, part)
		if node, exists := m.files[current]; exists {
			if !node.isDir {
				return &fs.PathError{Op: "mkdir", Path: current, Err: errors.New("not a directory")}
			}
			continue
		}
		m.files[current] = &fileNode{
			name:    part,
			mode:    perm | os.ModeDir,
			modTime: time.Now(),
			isDir:   true,
		}
	}

	return nil
}

// ReadDir reads a directory and returns its sorted entries
func (m *MemoryFS) ReadDir(name string) ([]fs.DirEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	path := m.normalizePath(name)

	node, err := m.getNode(path)
	if err != nil {
		return nil, err
	}

	if !node.isDir {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: errors.New("not a directory")}
	}

	var entries []fs.DirEntry
	for p, child := range m.files {
		if filepath.Dir(p) == path && p != path {
			entries = append(entries, &dirEntry{
				name: filepath.Base(p),
				info: &fileInfo{node: child, name: filepath.Base(p)},
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries, nil
}

// Remove removes a file or empty directory
func (m *MemoryFS) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := m.normalizePath(name)

	node, err := m.getNode(path)
	if err != nil {
		return err
	}

	if node.isDir {
		for p := range m.files {
			if filepath.Dir(p) == path {
				return &fs.PathError{Op: "remove", Path: name, Err: errors.New("directory not empty")}
			}
		}
	}

	delete(m.files, path)
	return nil
}

// Rename moves a file to a new path
func (m *MemoryFS) Rename(oldpath, newpath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	from := m.normalizePath(oldpath)
	to := m.normalizePath(newpath)

	node, exists := m.files[from]
	if !exists {
		return &fs.PathError{Op: "rename", Path: oldpath, Err: fs.ErrNotExist}
	}

	if err := m.mkdirAll(filepath.Dir(to), 0755); err != nil {
		return err
	}

	delete(m.files, from)
	node.name = filepath.Base(to)
	m.files[to] = node
	return nil
}

// WithError configures the filesystem to return an error for a specific path
func (m *MemoryFS) WithError(path string, err error) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.errorPaths[m.normalizePath(path)] = err
	return m
}

// Stats returns filesystem operation statistics
func (m *MemoryFS) Stats() (reads, writes int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.readCount, m.writeCount
}

// fileInfo implements os.FileInfo
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

// dirEntry implements fs.DirEntry
type dirEntry struct {
	name string
	info os.FileInfo
}

func (de *dirEntry) Name() string               { return de.name }
func (de *dirEntry) IsDir() bool                { return de.info.IsDir() }
func (de *dirEntry) Type() os.FileMode          { return de.info.Mode().Type() }
func (de *dirEntry) Info() (os.FileInfo, error) { return de.info, nil }
