// Package apply orchestrates template application: it validates a batch of
// templates against a project manifest (root-folder conflicts, required
// variables), writes the templates' folders and files through the FS
// collaborator, and appends the audit records. Validation is side-effect
// free and runs entirely before the first write, so a rejected batch leaves
// both the file system and the manifest untouched. The manifest is persisted
// last: a crash mid-write can leave files unrecorded but never an
// inconsistent manifest.
package apply

import (
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/filesystem"
	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/arthur-debert/scaffold/pkg/manifest"
	"github.com/arthur-debert/scaffold/pkg/paths"
	"github.com/arthur-debert/scaffold/pkg/substitute"
	"github.com/arthur-debert/scaffold/pkg/templates"
	"github.com/arthur-debert/scaffold/pkg/types"
)

// KeepEmptyMarker is written into keep-empty folders so they survive in
// version control
const KeepEmptyMarker = ".gitkeep"

// Item pairs a resolved template with the identifier the caller actually
// used (alias, prefix, or full hash), kept for the audit trail.
type Item struct {
	Template *types.Template

	// Identifier is what the caller typed; recorded as the alias on the
	// applied-template record when it isn't hash syntax
	Identifier string
}

// Result reports what one apply batch did
type Result struct {
	Applied []types.AppliedTemplate
	Changes []types.ChangeRecord
}

// Applier applies template batches onto projects
type Applier struct {
	fs        types.FS
	store     *templates.Store
	manifests *manifest.Store
	paths     paths.Paths
	subOpts   substitute.Options
}

// New creates an Applier. The substitution options come from configuration
// and are shared by every expansion the applier performs.
func New(fsys types.FS, store *templates.Store, manifests *manifest.Store, p paths.Paths, subOpts substitute.Options) *Applier {
	return &Applier{
		fs:        fsys,
		store:     store,
		manifests: manifests,
		paths:     p,
		subOpts:   subOpts,
	}
}

// Apply runs one batch of templates against a project. Items are applied in
// declaration order; the whole batch is validated before the first write.
func (a *Applier) Apply(projectDir string, m *types.ProjectManifest, items []Item, vars map[string]string) (*Result, error) {
	logger := logging.GetLogger("apply")

	if len(items) == 0 {
		return nil, errors.New(errors.ErrInvalidInput, "no templates to apply")
	}

	// Step 1: merge incoming variables over the manifest's; incoming wins.
	merged := make(map[string]string, len(m.Variables)+len(vars))
	for k, v := range m.Variables {
		merged[k] = v
	}
	for k, v := range vars {
		merged[k] = v
	}

	// Steps 2-3: pure validation, no side effects.
	roots, err := a.validate(m, items, merged)
	if err != nil {
		return nil, err
	}

	// Step 4: write folders and files, per template, in order.
	result := &Result{}
	now := time.Now().UTC()

	for i, item := range items {
		tmpl := item.Template
		engine := substitute.New(bagFor(tmpl, merged), a.subOpts)

		changes, err := a.writeTemplate(projectDir, roots[i], tmpl, engine)
		if err != nil {
			return nil, err
		}
		result.Changes = append(result.Changes, changes...)

		applied := types.AppliedTemplate{
			TemplateHash: tmpl.ID,
			Name:         tmpl.Name,
			Version:      tmpl.Version,
			RootFolder:   roots[i],
			AppliedBy:    manifest.CurrentUser(),
			AppliedAt:    now,
			Status:       types.StatusActive,
		}
		if item.Identifier != "" && !identifierIsHashSyntax(item.Identifier) {
			applied.TemplateAlias = item.Identifier
		}
		result.Applied = append(result.Applied, applied)

		logger.Info().
			Str("template", tmpl.Name).
			Str("hash", tmpl.ID).
			Str("rootFolder", roots[i]).
			Msg("template applied")
	}

	// Step 5: record the batch in the manifest.
	m.Variables = merged
	m.Templates = append(m.Templates, result.Applied...)

	hashes := make([]string, len(items))
	for i, item := range items {
		hashes[i] = item.Template.ID
	}
	m.History = append(m.History, types.HistoryEntry{
		ID:             uuid.NewString(),
		Timestamp:      now,
		Action:         types.ActionApply,
		TemplateHashes: hashes,
		User:           manifest.CurrentUser(),
		Changes:        result.Changes,
	})

	// Step 6: persistence is the commit point.
	if err := a.manifests.Save(a.paths.ManifestPath(projectDir), m); err != nil {
		return nil, err
	}

	return result, nil
}

// validate performs steps 2 and 3: root-folder conflict detection against
// the manifest's active templates and within the batch, then required
// variable validation aggregated across all templates. Returns the
// substituted root folder per item.
func (a *Applier) validate(m *types.ProjectManifest, items []Item, merged map[string]string) ([]string, error) {
	activeRoots := m.ActiveRootFolders()
	batchRoots := make(map[string]string, len(items))
	roots := make([]string, len(items))

	for i, item := range items {
		tmpl := item.Template
		engine := substitute.New(bagFor(tmpl, merged), a.subOpts)

		root, err := engine.InPath(tmpl.RootFolder)
		if err != nil {
			return nil, err
		}
		roots[i] = root

		if owner, ok := activeRoots[root]; ok {
			return nil, errors.Newf(errors.ErrRootFolderConflict,
				"root folder %q is already used by active template %q", root, owner).
				WithDetail("rootFolder", root).
				WithDetail("templates", []string{owner, tmpl.Name})
		}
		if other, ok := batchRoots[root]; ok {
			return nil, errors.Newf(errors.ErrRootFolderConflict,
				"templates %q and %q both resolve root folder %q", other, tmpl.Name, root).
				WithDetail("rootFolder", root).
				WithDetail("templates", []string{other, tmpl.Name})
		}
		batchRoots[root] = tmpl.Name
	}

	var findings []substitute.ValidationResult
	for _, item := range items {
		findings = append(findings, substitute.ValidateRequired(item.Template, bagFor(item.Template, merged))...)
	}
	if len(findings) > 0 {
		msgs := make([]string, len(findings))
		for i, f := range findings {
			msgs[i] = f.Message
		}
		return nil, errors.Newf(errors.ErrMissingVariable,
			"missing required variable(s): %s", strings.Join(msgs, "; ")).
			WithDetail("findings", findings)
	}

	return roots, nil
}

// writeTemplate materializes one template under its substituted root folder
func (a *Applier) writeTemplate(projectDir, root string, tmpl *types.Template, engine *substitute.Engine) ([]types.ChangeRecord, error) {
	var changes []types.ChangeRecord

	rootPath := filepath.Join(projectDir, root)
	if err := filesystem.CreateDirectory(a.fs, rootPath, 0); err != nil {
		return nil, err
	}
	changes = append(changes, types.ChangeRecord{Type: "folder", Path: root, Operation: "create"})

	// Folders before files, in declaration order.
	for _, folder := range tmpl.Folders {
		relPath, err := engine.InPath(folder.Path)
		if err != nil {
			return nil, err
		}

		full := filepath.Join(rootPath, relPath)
		if err := filesystem.CreateDirectory(a.fs, full, parseMode(folder.Mode, 0755)); err != nil {
			return nil, err
		}

		if folder.KeepEmpty {
			marker := filepath.Join(full, KeepEmptyMarker)
			if err := filesystem.CreateFile(a.fs, marker, nil, types.CreateFileOptions{Overwrite: true}); err != nil {
				return nil, err
			}
		}

		changes = append(changes, types.ChangeRecord{
			Type:      "folder",
			Path:      filepath.Join(root, relPath),
			Operation: "create",
		})
	}

	for _, file := range tmpl.Files {
		relPath, err := engine.InPath(file.Path)
		if err != nil {
			return nil, err
		}

		body, err := a.fileBody(tmpl, file, engine)
		if err != nil {
			return nil, err
		}

		full := filepath.Join(rootPath, relPath)
		operation := "create"
		if filesystem.Exists(a.fs, full) {
			operation = "overwrite"
		}

		if err := filesystem.CreateFile(a.fs, full, body, types.CreateFileOptions{
			Overwrite: true,
			Mode:      parseMode(file.Mode, 0644),
		}); err != nil {
			return nil, err
		}

		changes = append(changes, types.ChangeRecord{
			Type:      "file",
			Path:      filepath.Join(root, relPath),
			Operation: operation,
		})
	}

	return changes, nil
}

// fileBody resolves a file's content: inline body or source payload, with
// substitution unless the file disables it.
func (a *Applier) fileBody(tmpl *types.Template, file types.TemplateFile, engine *substitute.Engine) ([]byte, error) {
	var raw string
	if file.Source != "" {
		data, err := a.store.ReadSourceFile(tmpl.Name, file.Source)
		if err != nil {
			return nil, err
		}
		raw = string(data)
	} else {
		raw = file.Content
	}

	if file.NoSubstitution {
		return []byte(raw), nil
	}

	expanded, err := engine.Substitute(raw)
	if err != nil {
		return nil, err
	}
	return []byte(expanded), nil
}

// bagFor builds a template's effective variable bag: declared defaults
// under the merged project/incoming variables. Defaults never leak across
// templates in a batch.
func bagFor(tmpl *types.Template, merged map[string]string) map[string]string {
	bag := make(map[string]string, len(merged)+len(tmpl.Variables))
	for _, v := range tmpl.Variables {
		if v.Default != "" {
			bag[v.Name] = v.Default
		}
	}
	for k, v := range merged {
		bag[k] = v
	}
	return bag
}

// identifierIsHashSyntax reports whether s looks like a hash or prefix
// rather than an alias
func identifierIsHashSyntax(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'f') {
			return false
		}
	}
	return true
}

func parseMode(mode string, fallback fs.FileMode) fs.FileMode {
	if mode == "" {
		return fallback
	}
	parsed, err := strconv.ParseUint(mode, 8, 32)
	if err != nil {
		return fallback
	}
	return fs.FileMode(parsed)
}
