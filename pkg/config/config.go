// Package config loads scaffold's layered configuration. Values cascade from
// the embedded defaults through the global config file and the workspace
// config file to SCAFFOLD_* environment variables, later layers winning.
package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/paths"
	"github.com/arthur-debert/scaffold/pkg/substitute"
)

// EnvPrefix namespaces scaffold's environment overrides. A double underscore
// separates sections from keys so single underscores inside key names
// survive, e.g. SCAFFOLD_SUBSTITUTION__MAX_DEPTH.
const EnvPrefix = "SCAFFOLD_"

// Settings is scaffold's effective configuration
type Settings struct {
	Display      DisplaySettings      `koanf:"display" toml:"display"`
	Substitution SubstitutionSettings `koanf:"substitution" toml:"substitution"`
	Project      ProjectSettings      `koanf:"project" toml:"project"`
}

// DisplaySettings control how identifiers are shown
type DisplaySettings struct {
	ShortHashLength   int `koanf:"short_hash_length" toml:"short_hash_length"`
	VerboseHashLength int `koanf:"verbose_hash_length" toml:"verbose_hash_length"`
}

// SubstitutionSettings control the variable expansion engine
type SubstitutionSettings struct {
	EscapeMarker   string `koanf:"escape_marker" toml:"escape_marker"`
	MaxDepth       int    `koanf:"max_depth" toml:"max_depth"`
	ThrowOnMissing bool   `koanf:"throw_on_missing" toml:"throw_on_missing"`
}

// ProjectSettings hold defaults for newly initialized projects
type ProjectSettings struct {
	DefaultVersion string `koanf:"default_version" toml:"default_version"`
}

// SubstituteOptions converts the substitution settings into engine options
func (s *Settings) SubstituteOptions() substitute.Options {
	return substitute.Options{
		EscapeMarker:   s.Substitution.EscapeMarker,
		MaxDepth:       s.Substitution.MaxDepth,
		ThrowOnMissing: s.Substitution.ThrowOnMissing,
	}
}

// Load builds the effective settings for a workspace.
// Layers, lowest precedence first: embedded defaults, global config file,
// workspace config file, environment variables.
func Load(p paths.Paths) (*Settings, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "cannot parse built-in defaults")
	}

	for _, path := range []string{p.GlobalConfigPath(), p.WorkspaceConfigPath()} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot load config from %s", path)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envToKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "cannot load environment overrides")
	}

	var s Settings
	if err := k.Unmarshal("", &s); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "cannot unmarshal configuration")
	}

	return &s, nil
}

func envToKey(s string) string {
	return strings.ReplaceAll(
		strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}
