package apply

import (
	"time"

	"github.com/google/uuid"

	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/arthur-debert/scaffold/pkg/manifest"
	"github.com/arthur-debert/scaffold/pkg/types"
)

// Remove soft-deletes an applied template: its manifest record flips to
// removed and a history entry is appended, but files already written stay
// on disk. The root folder becomes available for future applies.
func (a *Applier) Remove(projectDir string, m *types.ProjectManifest, hash string) (*types.AppliedTemplate, error) {
	logger := logging.GetLogger("apply")

	applied := m.FindActive(hash)
	if applied == nil {
		return nil, errors.Newf(errors.ErrNotApplied,
			"template %s is not active in this project", hash)
	}

	applied.Status = types.StatusRemoved

	m.History = append(m.History, types.HistoryEntry{
		ID:             uuid.NewString(),
		Timestamp:      time.Now().UTC(),
		Action:         types.ActionRemove,
		TemplateHashes: []string{hash},
		User:           manifest.CurrentUser(),
	})

	if err := a.manifests.Save(a.paths.ManifestPath(projectDir), m); err != nil {
		return nil, err
	}

	logger.Info().
		Str("template", applied.Name).
		Str("hash", hash).
		Msg("template removed")
	return applied, nil
}
