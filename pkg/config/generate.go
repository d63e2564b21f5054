package config

import (
	"strings"

	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/scaffold/pkg/errors"
)

// GenerateConfigContent returns a starter config file: the built-in defaults
// with every value commented out, so uncommenting a line overrides it.
func GenerateConfigContent() string {
	return commentOutConfigValues(GetDefaultsContent())
}

// GenerateCurrentConfig serializes the effective settings as a TOML document,
// useful for snapshotting a working configuration into a file.
func GenerateCurrentConfig(s *Settings) (string, error) {
	data, err := gotoml.Marshal(s)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrConfigParse, "cannot serialize settings")
	}
	return string(data), nil
}

// commentOutConfigValues comments out every assignment line while keeping
// comments, blank lines and section headers intact
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "", strings.HasPrefix(trimmed, "#"):
			result = append(result, line)
		case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			result = append(result, line)
		default:
			result = append(result, "# "+line)
		}
	}

	return strings.Join(result, "\n")
}
