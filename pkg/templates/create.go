package templates

import (
	"encoding/json"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/identifier"
	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/arthur-debert/scaffold/pkg/types"
)

var semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?(?:\+[0-9A-Za-z.-]+)?$`)

// definition is the authoring shape of a template. Authors write YAML or
// JSON without id/timestamps; those are computed at creation.
type definition struct {
	Name        string                   `json:"name" yaml:"name"`
	Version     string                   `json:"version" yaml:"version"`
	Description string                   `json:"description" yaml:"description"`
	RootFolder  string                   `json:"rootFolder" yaml:"rootFolder"`
	Folders     []types.TemplateFolder   `json:"folders" yaml:"folders"`
	Files       []types.TemplateFile     `json:"files" yaml:"files"`
	Variables   []types.TemplateVariable `json:"variables" yaml:"variables"`
	Rules       types.TemplateRules      `json:"rules" yaml:"rules"`
}

// Create builds a template from an authoring document, computes its content
// hash, and persists it to the store. The document format is chosen by file
// extension: .yaml/.yml or .json.
func (s *Store) Create(svc *identifier.Service, definitionPath string) (*types.Template, error) {
	logger := logging.GetLogger("templates.create")

	data, err := s.fs.ReadFile(definitionPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read definition %s", definitionPath)
	}

	var def definition
	switch filepath.Ext(definitionPath) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &def); err != nil {
			return nil, errors.Wrapf(err, errors.ErrTemplateInvalid, "cannot parse YAML definition %s", definitionPath)
		}
	case ".json":
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, errors.Wrapf(err, errors.ErrTemplateInvalid, "cannot parse JSON definition %s", definitionPath)
		}
	default:
		return nil, errors.Newf(errors.ErrInvalidInput,
			"unsupported definition format %q; use .yaml, .yml or .json", filepath.Ext(definitionPath))
	}

	tmpl, err := fromDefinition(def)
	if err != nil {
		return nil, err
	}

	hash, err := svc.ComputeHash(tmpl)
	if err != nil {
		return nil, err
	}
	tmpl.ID = hash

	if err := s.Save(tmpl); err != nil {
		return nil, err
	}

	logger.Info().
		Str("name", tmpl.Name).
		Str("hash", hash).
		Msg("template created")
	return tmpl, nil
}

// fromDefinition validates an authoring document and builds the immutable
// template, leaving ID empty for the caller to compute.
func fromDefinition(def definition) (*types.Template, error) {
	if def.Name == "" {
		return nil, errors.New(errors.ErrTemplateInvalid, "template name is required")
	}
	if !semverPattern.MatchString(def.Version) {
		return nil, errors.Newf(errors.ErrInvalidVersion, "invalid semantic version %q", def.Version)
	}
	if def.RootFolder == "" {
		return nil, errors.New(errors.ErrTemplateInvalid, "template rootFolder is required")
	}

	for _, f := range def.Files {
		if f.Path == "" {
			return nil, errors.New(errors.ErrTemplateInvalid, "file entry missing path")
		}
		if (f.Content == "") == (f.Source == "") {
			return nil, errors.Newf(errors.ErrTemplateInvalid,
				"file %q must set exactly one of content or source", f.Path)
		}
	}
	for _, f := range def.Folders {
		if f.Path == "" {
			return nil, errors.New(errors.ErrTemplateInvalid, "folder entry missing path")
		}
	}

	now := time.Now().UTC()
	return &types.Template{
		Name:        def.Name,
		Version:     def.Version,
		Description: def.Description,
		RootFolder:  def.RootFolder,
		Folders:     def.Folders,
		Files:       def.Files,
		Variables:   def.Variables,
		Rules:       def.Rules,
		Created:     now,
		Updated:     now,
	}, nil
}
