package identifier

import (
	"encoding/json"
	"os"
	"time"

	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/filesystem"
	"github.com/arthur-debert/scaffold/pkg/types"
)

// aliasStore is the persisted shape of the alias mapping document. Only the
// forward mapping is written; the reverse mapping is rebuilt after load so
// the two can never drift apart.
type aliasStore struct {
	Aliases map[string][]string `json:"aliases"`
	Updated time.Time           `json:"updated"`
}

// aliasCache holds the in-memory state of the alias store
type aliasCache struct {
	// forward maps hash -> aliases in registration order
	forward map[string][]string

	// reverse maps alias -> hash, always rebuilt from forward
	reverse map[string]string

	loaded bool
}

func newAliasCache() *aliasCache {
	return &aliasCache{
		forward: make(map[string][]string),
		reverse: make(map[string]string),
	}
}

// rebuild reconstructs the reverse mapping from the forward mapping
func (c *aliasCache) rebuild() {
	c.reverse = make(map[string]string, len(c.forward))
	for hash, aliases := range c.forward {
		for _, alias := range aliases {
			c.reverse[alias] = hash
		}
	}
}

// load reads the alias store document from disk into the cache. A missing
// store is an empty mapping, not an error.
func (s *Service) load() error {
	data, err := s.fs.ReadFile(s.storePath)
	if err != nil {
		if os.IsNotExist(err) {
			s.cache = newAliasCache()
			s.cache.loaded = true
			return nil
		}
		return errors.Wrapf(err, errors.ErrAliasStore, "cannot read alias store %s", s.storePath)
	}

	var store aliasStore
	if err := json.Unmarshal(data, &store); err != nil {
		return errors.Wrapf(err, errors.ErrAliasStore, "cannot parse alias store %s", s.storePath)
	}

	cache := newAliasCache()
	if store.Aliases != nil {
		cache.forward = store.Aliases
	}
	cache.rebuild()
	cache.loaded = true
	s.cache = cache
	return nil
}

// ensureLoaded lazily loads the store on first access
func (s *Service) ensureLoaded() error {
	if s.cache != nil && s.cache.loaded {
		return nil
	}
	return s.load()
}

// save persists the forward mapping. Writers of the same store path are
// serialized in-process; the write itself is atomic so a concurrent reader
// never sees a torn document.
func (s *Service) save() error {
	s.cache.rebuild()

	store := aliasStore{
		Aliases: s.cache.forward,
		Updated: time.Now().UTC(),
	}

	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrAliasStore, "cannot serialize alias store")
	}

	return filesystem.CreateFile(s.fs, s.storePath, data, types.CreateFileOptions{
		Overwrite: true,
		Atomic:    true,
	})
}
