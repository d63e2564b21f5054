// Package identifier implements content addressing for templates: a
// deterministic hash over a template's meaningful fields, plus a persistent
// alias store so humans can refer to hashes by name. Identifiers are
// resolved from aliases, full hashes, or unique hash prefixes; ambiguous
// prefixes fail closed with the candidate list.
package identifier

import (
	"sort"
	"strings"

	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/filesystem"
	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/arthur-debert/scaffold/pkg/types"
)

// Short hash display lengths
const (
	ShortHashLength        = 8
	VerboseShortHashLength = 12
)

// Service provides content addressing and alias management over one alias
// store document. Construct one per workspace and pass it to callers that
// need it; there is no package-level singleton.
type Service struct {
	fs         types.FS
	storePath  string
	hasher     Hasher
	cache      *aliasCache
	shortLen   int
	verboseLen int
}

// NewService creates an identifier service persisting aliases at storePath.
// The hasher supplies entity-specific content extraction.
func NewService(fs types.FS, storePath string, hasher Hasher) *Service {
	return &Service{
		fs:         fs,
		storePath:  storePath,
		hasher:     hasher,
		shortLen:   ShortHashLength,
		verboseLen: VerboseShortHashLength,
	}
}

// WithDisplayLengths overrides the short-hash display lengths, typically
// from configuration
func (s *Service) WithDisplayLengths(short, verbose int) *Service {
	if short > 0 && short <= HashLength {
		s.shortLen = short
	}
	if verbose > 0 && verbose <= HashLength {
		s.verboseLen = verbose
	}
	return s
}

// ComputeHash computes the content hash for an entity using the service's
// hasher adapter.
func (s *Service) ComputeHash(entity interface{}) (string, error) {
	content, err := s.hasher.Content(entity)
	if err != nil {
		return "", err
	}
	return ComputeHash(content)
}

// Resolve maps an identifier (alias, full hash, or hash prefix) to a full
// hash from the available universe.
//
// Aliases win over hash syntax. An alias whose hash has vanished from the
// universe is orphaned: it is removed from the store and resolution falls
// through to not-found rather than returning a dangling hash. A prefix
// matching more than one hash is an error listing the candidates; resolution
// never silently picks one.
func (s *Service) Resolve(identifier string, available []string) (string, error) {
	logger := logging.GetLogger("identifier")

	if identifier == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty identifier")
	}

	if err := s.ensureLoaded(); err != nil {
		return "", err
	}

	universe := make(map[string]bool, len(available))
	for _, h := range available {
		universe[h] = true
	}

	// 1. Alias lookup
	if hash, ok := s.cache.reverse[identifier]; ok {
		if universe[hash] {
			return hash, nil
		}

		// Orphaned alias: the template it named no longer exists.
		logger.Warn().
			Str("alias", identifier).
			Str("hash", hash).
			Msg("removing orphaned alias")
		filesystem.LockPath(s.storePath)
		err := s.removeAliasLocked(identifier)
		filesystem.UnlockPath(s.storePath)
		if err != nil {
			return "", err
		}
		return "", errors.Newf(errors.ErrIdentifierNotFound, "no template found for %q", identifier)
	}

	// 2. Hash or prefix lookup
	if IsHashFragment(identifier) {
		if len(identifier) == HashLength {
			if universe[identifier] {
				return identifier, nil
			}
			return "", errors.Newf(errors.ErrIdentifierNotFound, "no template found for %q", identifier)
		}

		var matches []string
		for _, h := range available {
			if strings.HasPrefix(h, identifier) {
				matches = append(matches, h)
			}
		}
		sort.Strings(matches)

		switch len(matches) {
		case 0:
			return "", errors.Newf(errors.ErrIdentifierNotFound, "no template found for %q", identifier)
		case 1:
			return matches[0], nil
		default:
			shorts := make([]string, len(matches))
			for i, m := range matches {
				shorts[i] = s.ShortHash(m, false)
			}
			return "", errors.Newf(errors.ErrAmbiguousIdentifier,
				"identifier %q matches %d templates (%s); use a longer prefix or an alias",
				identifier, len(matches), strings.Join(shorts, ", ")).
				WithDetail("candidates", matches)
		}
	}

	// 3. Neither a known alias nor hash syntax
	return "", errors.Newf(errors.ErrIdentifierNotFound, "no template found for %q", identifier)
}

// RegisterAlias binds alias to hash. Registering an alias that already
// points at the same hash is a no-op; pointing it at a different hash is
// refused rather than silently rebinding.
func (s *Service) RegisterAlias(hash, alias string) error {
	if !IsFullHash(hash) {
		return errors.Newf(errors.ErrInvalidHash, "not a full content hash: %q", hash)
	}
	if !IsValidAlias(alias) {
		return errors.Newf(errors.ErrInvalidAlias,
			"invalid alias %q: only letters, digits, dash and underscore are allowed", alias)
	}

	filesystem.LockPath(s.storePath)
	defer filesystem.UnlockPath(s.storePath)

	// Reload before mutating to reduce lost updates across invocations
	if err := s.load(); err != nil {
		return err
	}

	if existing, ok := s.cache.reverse[alias]; ok {
		if existing == hash {
			return nil
		}
		return errors.Newf(errors.ErrAliasConflict,
			"alias %q already points to %s", alias, s.ShortHash(existing, false))
	}

	s.cache.forward[hash] = append(s.cache.forward[hash], alias)
	return s.save()
}

// RemoveAlias deletes an alias. Unknown aliases are an error: removal is an
// explicit operation, unlike the silent drop of orphans during resolution.
func (s *Service) RemoveAlias(alias string) error {
	filesystem.LockPath(s.storePath)
	defer filesystem.UnlockPath(s.storePath)

	if err := s.load(); err != nil {
		return err
	}

	if _, ok := s.cache.reverse[alias]; !ok {
		return errors.Newf(errors.ErrAliasNotFound, "alias %q is not registered", alias)
	}

	return s.removeAliasLocked(alias)
}

// removeAliasLocked removes alias from both directions and persists.
// Callers must hold the store lock or otherwise own the cache.
func (s *Service) removeAliasLocked(alias string) error {
	hash, ok := s.cache.reverse[alias]
	if !ok {
		return nil
	}

	aliases := s.cache.forward[hash]
	kept := aliases[:0]
	for _, a := range aliases {
		if a != alias {
			kept = append(kept, a)
		}
	}
	if len(kept) == 0 {
		delete(s.cache.forward, hash)
	} else {
		s.cache.forward[hash] = kept
	}

	return s.save()
}

// CleanupOrphans removes every alias whose hash is absent from the given
// universe and returns the removed aliases.
func (s *Service) CleanupOrphans(available []string) ([]string, error) {
	filesystem.LockPath(s.storePath)
	defer filesystem.UnlockPath(s.storePath)

	if err := s.load(); err != nil {
		return nil, err
	}

	universe := make(map[string]bool, len(available))
	for _, h := range available {
		universe[h] = true
	}

	var removed []string
	for hash, aliases := range s.cache.forward {
		if !universe[hash] {
			removed = append(removed, aliases...)
			delete(s.cache.forward, hash)
		}
	}

	if len(removed) == 0 {
		return nil, nil
	}

	sort.Strings(removed)
	if err := s.save(); err != nil {
		return nil, err
	}
	return removed, nil
}

// Aliases returns the aliases registered for a hash, in registration order
func (s *Service) Aliases(hash string) []string {
	if err := s.ensureLoaded(); err != nil {
		return nil
	}
	aliases := s.cache.forward[hash]
	out := make([]string, len(aliases))
	copy(out, aliases)
	return out
}

// AllAliases returns a copy of the full forward mapping
func (s *Service) AllAliases() map[string][]string {
	if err := s.ensureLoaded(); err != nil {
		return nil
	}
	out := make(map[string][]string, len(s.cache.forward))
	for hash, aliases := range s.cache.forward {
		copied := make([]string, len(aliases))
		copy(copied, aliases)
		out[hash] = copied
	}
	return out
}

// ShortHash formats a hash for display: a fixed-length prefix (longer in
// verbose mode) plus any known aliases in quotes.
func (s *Service) ShortHash(hash string, verbose bool) string {
	length := s.shortLen
	if verbose {
		length = s.verboseLen
	}
	if len(hash) < length {
		length = len(hash)
	}

	short := hash[:length]
	aliases := s.Aliases(hash)
	if len(aliases) == 0 {
		return short
	}

	quoted := make([]string, len(aliases))
	for i, a := range aliases {
		quoted[i] = `"` + a + `"`
	}
	return short + " (" + strings.Join(quoted, ", ") + ")"
}
