package templates

import (
	_ "embed"

	"github.com/arthur-debert/scaffold/pkg/filesystem"
	"github.com/arthur-debert/scaffold/pkg/types"
)

//go:embed starter.yaml
var starterDefinition []byte

// StarterDefinition returns an example authoring document to copy and edit
func StarterDefinition() []byte {
	return starterDefinition
}

// WriteStarter writes the example authoring document to path. Existing
// files are not overwritten.
func (s *Store) WriteStarter(path string) error {
	return filesystem.CreateFile(s.fs, path, starterDefinition, types.CreateFileOptions{})
}
