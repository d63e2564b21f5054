package identifier

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/types"
)

// HashLength is the hex digest length of a full content hash
const HashLength = 64

var (
	hashPattern     = regexp.MustCompile(`^[0-9a-f]+$`)
	fullHashPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)
	aliasPattern    = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// Hasher extracts the hashable content from an entity. Each entity type
// that wants content addressing supplies one adapter; the service handles
// canonicalization and digesting uniformly.
type Hasher interface {
	// Content returns the subset of the entity's fields that participate
	// in its identity. Mutable bookkeeping (id, timestamps, aliases) must
	// be excluded.
	Content(entity interface{}) (interface{}, error)
}

// TemplateHasher is the Hasher adapter for template definitions
type TemplateHasher struct{}

// templateContent is the hashed field subset of a template. ID, Created,
// Updated and aliases never participate: two templates with the same
// meaningful content share an identity no matter when they were written.
type templateContent struct {
	Name        string                   `json:"name"`
	Version     string                   `json:"version"`
	Description string                   `json:"description"`
	RootFolder  string                   `json:"rootFolder"`
	Folders     []types.TemplateFolder   `json:"folders"`
	Files       []types.TemplateFile     `json:"files"`
	Variables   []types.TemplateVariable `json:"variables"`
	Rules       types.TemplateRules      `json:"rules"`
}

// Content implements Hasher for *types.Template and types.Template
func (TemplateHasher) Content(entity interface{}) (interface{}, error) {
	var tmpl types.Template
	switch v := entity.(type) {
	case *types.Template:
		tmpl = *v
	case types.Template:
		tmpl = v
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "cannot hash %T as a template", entity)
	}

	return templateContent{
		Name:        tmpl.Name,
		Version:     tmpl.Version,
		Description: tmpl.Description,
		RootFolder:  tmpl.RootFolder,
		Folders:     tmpl.Folders,
		Files:       tmpl.Files,
		Variables:   tmpl.Variables,
		Rules:       tmpl.Rules,
	}, nil
}

// canonicalJSON produces a byte-stable encoding of arbitrary content.
// Marshaling through an intermediate interface{} lets encoding/json sort
// map keys, so logically equal content hashes identically regardless of
// incidental key order.
func canonicalJSON(content interface{}) ([]byte, error) {
	raw, err := json.Marshal(content)
	if err != nil {
		return nil, err
	}

	var normalized interface{}
	if err := json.Unmarshal(raw, &normalized); err != nil {
		return nil, err
	}

	return json.Marshal(normalized)
}

// ComputeHash returns the 64-character hex SHA-256 digest of the canonical
// encoding of content.
func ComputeHash(content interface{}) (string, error) {
	canonical, err := canonicalJSON(content)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "cannot canonicalize content for hashing")
	}

	sum := sha256.Sum256(canonical)
	return fmt.Sprintf("%x", sum), nil
}

// IsFullHash reports whether s is a syntactically valid full-length hash
func IsFullHash(s string) bool {
	return fullHashPattern.MatchString(s)
}

// IsHashFragment reports whether s could be a hash or hash prefix
func IsHashFragment(s string) bool {
	return len(s) > 0 && len(s) <= HashLength && hashPattern.MatchString(s)
}

// IsValidAlias reports whether s is a well-formed alias: non-empty,
// letters/digits/dash/underscore only
func IsValidAlias(s string) bool {
	return aliasPattern.MatchString(s)
}
