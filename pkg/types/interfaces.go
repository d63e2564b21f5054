package types

import (
	"io/fs"
)

// FS abstracts the filesystem operations scaffold needs. The core engine
// never calls OS primitives directly; everything is routed through an FS so
// dry-run and in-memory test implementations can stand in.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Other operations
	Remove(name string) error
	Rename(oldpath, newpath string) error
}

// CreateFileOptions control how CreateFile behaves
type CreateFileOptions struct {
	// Overwrite allows replacing an existing file
	Overwrite bool

	// Mode is the permission mode for the new file (0 means 0644)
	Mode fs.FileMode

	// Atomic writes via a temp file and rename so readers never observe
	// a partially written file
	Atomic bool
}
