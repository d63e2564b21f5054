package filesystem

import (
	"io/fs"

	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/arthur-debert/scaffold/pkg/types"
)

// dryRunFS wraps another FS and logs mutating operations instead of
// performing them. Read operations pass through so validation still sees
// the real state of the world.
type dryRunFS struct {
	inner types.FS
}

// NewDryRun wraps fsys so that all writes become log statements
func NewDryRun(fsys types.FS) types.FS {
	return &dryRunFS{inner: fsys}
}

func (d *dryRunFS) Stat(name string) (fs.FileInfo, error) {
	return d.inner.Stat(name)
}

func (d *dryRunFS) ReadFile(name string) ([]byte, error) {
	return d.inner.ReadFile(name)
}

func (d *dryRunFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return d.inner.ReadDir(name)
}

func (d *dryRunFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	logger := logging.GetLogger("filesystem.dryrun")
	logger.Info().Str("path", name).Int("bytes", len(data)).Msg("would write file")
	return nil
}

func (d *dryRunFS) MkdirAll(path string, perm fs.FileMode) error {
	logger := logging.GetLogger("filesystem.dryrun")
	logger.Info().Str("path", path).Msg("would create directory")
	return nil
}

func (d *dryRunFS) Remove(name string) error {
	logger := logging.GetLogger("filesystem.dryrun")
	logger.Info().Str("path", name).Msg("would remove")
	return nil
}

func (d *dryRunFS) Rename(oldpath, newpath string) error {
	logger := logging.GetLogger("filesystem.dryrun")
	logger.Info().Str("from", oldpath).Str("to", newpath).Msg("would rename")
	return nil
}
