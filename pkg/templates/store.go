// Package templates implements the on-disk template store: one JSON
// definition per template keyed by its content hash, plus source file
// payloads under templates/<name>/files/. Definitions are immutable once
// written; editing one produces a new hash and therefore a new entity.
package templates

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/filesystem"
	"github.com/arthur-debert/scaffold/pkg/identifier"
	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/arthur-debert/scaffold/pkg/paths"
	"github.com/arthur-debert/scaffold/pkg/types"
)

// Store provides access to the workspace's template definitions
type Store struct {
	fs    types.FS
	paths paths.Paths
}

// NewStore creates a template store over the given filesystem and paths
func NewStore(fs types.FS, p paths.Paths) *Store {
	return &Store{fs: fs, paths: p}
}

// Load reads the template definition for a full content hash
func (s *Store) Load(hash string) (*types.Template, error) {
	data, err := s.fs.ReadFile(s.paths.TemplateDefinitionPath(hash))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrTemplateNotFound, "no template with hash %s", hash)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read template %s", hash)
	}

	var tmpl types.Template
	if err := json.Unmarshal(data, &tmpl); err != nil {
		return nil, errors.Wrapf(err, errors.ErrTemplateInvalid, "cannot parse template %s", hash)
	}

	return &tmpl, nil
}

// Save persists a template definition keyed by its hash. Saving never
// overwrites: the same hash implies the same content, and a differing
// content would have a differing hash.
func (s *Store) Save(tmpl *types.Template) error {
	logger := logging.GetLogger("templates")

	if !identifier.IsFullHash(tmpl.ID) {
		return errors.Newf(errors.ErrInvalidHash, "template has no valid content hash: %q", tmpl.ID)
	}

	path := s.paths.TemplateDefinitionPath(tmpl.ID)
	if filesystem.Exists(s.fs, path) {
		logger.Debug().Str("hash", tmpl.ID).Msg("template already stored")
		return nil
	}

	data, err := json.MarshalIndent(tmpl, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrTemplateInvalid, "cannot serialize template")
	}

	if err := filesystem.CreateFile(s.fs, path, data, types.CreateFileOptions{Atomic: true}); err != nil {
		return err
	}

	logger.Info().
		Str("hash", tmpl.ID).
		Str("name", tmpl.Name).
		Str("version", tmpl.Version).
		Msg("template stored")
	return nil
}

// ListHashes returns every stored template hash. This is the universe
// identifiers are resolved against.
func (s *Store) ListHashes() ([]string, error) {
	entries, err := s.fs.ReadDir(s.paths.TemplatesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot list templates")
	}

	var hashes []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".json")
		if name != entry.Name() && identifier.IsFullHash(name) {
			hashes = append(hashes, name)
		}
	}

	return hashes, nil
}

// LoadAll reads every stored template definition
func (s *Store) LoadAll() ([]*types.Template, error) {
	hashes, err := s.ListHashes()
	if err != nil {
		return nil, err
	}

	templates := make([]*types.Template, 0, len(hashes))
	for _, hash := range hashes {
		tmpl, err := s.Load(hash)
		if err != nil {
			return nil, err
		}
		templates = append(templates, tmpl)
	}

	return templates, nil
}

// ReadSourceFile reads a template file payload from the template's files
// directory. The source path is confined to that directory.
func (s *Store) ReadSourceFile(templateName, source string) ([]byte, error) {
	cleaned := filepath.Clean(source)
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return nil, errors.Newf(errors.ErrPathTraversal, "source path %q escapes the template files directory", source)
	}

	full := filepath.Join(s.paths.TemplateFilesDir(templateName), cleaned)
	return filesystem.ReadFile(s.fs, full)
}
