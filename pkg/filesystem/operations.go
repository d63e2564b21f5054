package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/types"
)

// Exists reports whether a file or directory exists at path
func Exists(fsys types.FS, path string) bool {
	_, err := fsys.Stat(path)
	return err == nil
}

// CreateDirectory creates a directory and any missing parents
func CreateDirectory(fsys types.FS, path string, mode fs.FileMode) error {
	if mode == 0 {
		mode = 0755
	}
	if err := fsys.MkdirAll(path, mode); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create directory %s", path)
	}
	return nil
}

// CreateFile writes a file honoring the given options. Parent directories
// are created as needed. Without Overwrite an existing file is an error.
func CreateFile(fsys types.FS, path string, data []byte, opts types.CreateFileOptions) error {
	mode := opts.Mode
	if mode == 0 {
		mode = 0644
	}

	if !opts.Overwrite && Exists(fsys, path) {
		return errors.Newf(errors.ErrFileCreate, "file already exists: %s", path)
	}

	if err := fsys.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "cannot create parent directory for %s", path)
	}

	if opts.Atomic {
		return atomicWrite(fsys, path, data, mode)
	}

	if err := fsys.WriteFile(path, data, mode); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", path)
	}
	return nil
}

// atomicWrite writes to a temp file in the target directory then renames it
// into place, so readers never observe a partial file.
func atomicWrite(fsys types.FS, path string, data []byte, mode fs.FileMode) error {
	tmp := fmt.Sprintf("%s.tmp.%d", path, os.Getpid())
	if err := fsys.WriteFile(tmp, data, mode); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot write temp file for %s", path)
	}
	if err := fsys.Rename(tmp, path); err != nil {
		_ = fsys.Remove(tmp)
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot rename temp file into %s", path)
	}
	return nil
}

// ReadFile reads a file's full contents
func ReadFile(fsys types.FS, path string) ([]byte, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrFileNotFound, "file not found: %s", path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path)
	}
	return data, nil
}

// ResolvePath makes path absolute relative to base when it is not already
func ResolvePath(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}
