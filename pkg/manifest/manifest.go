// Package manifest persists per-project manifests: which templates were
// applied, with what variables, and the full history of mutating operations.
// One JSON document lives under each scaffolded project; in-process writers
// of the same document are serialized, writes are atomic, and the manifest
// is only persisted after all file-system work succeeded so a crash mid-write
// never leaves it inconsistent.
package manifest

import (
	"encoding/json"
	"os"
	"os/user"
	"time"

	"github.com/google/uuid"

	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/filesystem"
	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/arthur-debert/scaffold/pkg/types"
)

// Store reads and writes project manifests through the FS collaborator
type Store struct {
	fs types.FS
}

// NewStore creates a manifest store over the given filesystem
func NewStore(fs types.FS) *Store {
	return &Store{fs: fs}
}

// New creates a fresh manifest for a project, with an init history entry
func New(projectName, version string) *types.ProjectManifest {
	now := time.Now().UTC()
	return &types.ProjectManifest{
		ID:          uuid.NewString(),
		ProjectName: projectName,
		Version:     version,
		Variables:   make(map[string]string),
		History: []types.HistoryEntry{
			{
				ID:        uuid.NewString(),
				Timestamp: now,
				Action:    types.ActionInit,
				User:      CurrentUser(),
			},
		},
		Created: now,
		Updated: now,
	}
}

// Load reads and parses the manifest at path
func (s *Store) Load(path string) (*types.ProjectManifest, error) {
	data, err := s.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrManifestNotFound,
				"no manifest at %s; run init first", path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read manifest %s", path)
	}

	var m types.ProjectManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, errors.ErrManifestInvalid, "cannot parse manifest %s", path)
	}

	if m.Variables == nil {
		m.Variables = make(map[string]string)
	}

	return &m, nil
}

// Exists reports whether a manifest document exists at path
func (s *Store) Exists(path string) bool {
	return filesystem.Exists(s.fs, path)
}

// Save persists the manifest atomically. Writers of the same manifest path
// are serialized in-process; Updated is bumped as part of the save.
func (s *Store) Save(path string, m *types.ProjectManifest) error {
	logger := logging.GetLogger("manifest")

	filesystem.LockPath(path)
	defer filesystem.UnlockPath(path)

	m.Updated = time.Now().UTC()

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrManifestInvalid, "cannot serialize manifest")
	}

	if err := filesystem.CreateFile(s.fs, path, data, types.CreateFileOptions{
		Overwrite: true,
		Atomic:    true,
	}); err != nil {
		return err
	}

	logger.Debug().
		Str("path", path).
		Int("templates", len(m.Templates)).
		Int("history", len(m.History)).
		Msg("manifest saved")
	return nil
}

// CurrentUser returns the invoking user's name for history attribution
func CurrentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
