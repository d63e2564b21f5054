package apply

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/manifest"
	"github.com/arthur-debert/scaffold/pkg/paths"
	"github.com/arthur-debert/scaffold/pkg/substitute"
	"github.com/arthur-debert/scaffold/pkg/templates"
	"github.com/arthur-debert/scaffold/pkg/testutil"
	"github.com/arthur-debert/scaffold/pkg/types"
)

const (
	hashAPI = "aaaa1111aaaa1111aaaa1111aaaa1111aaaa1111aaaa1111aaaa1111aaaa1111"
	hashDoc = "bbbb2222bbbb2222bbbb2222bbbb2222bbbb2222bbbb2222bbbb2222bbbb2222"
)

func newTestApplier(t *testing.T) (*Applier, *testutil.MemoryFS, *manifest.Store, paths.Paths) {
	t.Helper()

	fs := testutil.NewMemoryFS()
	p, err := paths.New("/ws")
	require.NoError(t, err)

	manifests := manifest.NewStore(fs)
	store := templates.NewStore(fs, p)
	applier := New(fs, store, manifests, p, substitute.Options{ThrowOnMissing: true})
	return applier, fs, manifests, p
}

func apiTemplate() *types.Template {
	return &types.Template{
		ID:         hashAPI,
		Name:       "python-fastapi",
		Version:    "1.0.0",
		RootFolder: "{{PROJECT_NAME|kebab-case}}",
		Folders: []types.TemplateFolder{
			{Path: "app"},
			{Path: "app/routers", KeepEmpty: true},
		},
		Files: []types.TemplateFile{
			{Path: "README.md", Content: "# {{PROJECT_NAME}}"},
			{Path: "app/main.py", Content: "PORT = {{PORT}}\n", Mode: "0644"},
		},
		Variables: []types.TemplateVariable{
			{Name: "PROJECT_NAME", Required: true},
			{Name: "PORT", Default: "8000"},
		},
	}
}

func docsTemplate() *types.Template {
	return &types.Template{
		ID:         hashDoc,
		Name:       "docs",
		Version:    "0.1.0",
		RootFolder: "docs",
		Files: []types.TemplateFile{
			{Path: "index.md", Content: "docs for {{PROJECT_NAME}}"},
		},
	}
}

func TestApplyWritesFilesAndRecords(t *testing.T) {
	applier, fs, manifests, p := newTestApplier(t)
	m := manifest.New("demo", "0.1.0")

	result, err := applier.Apply("/proj", m,
		[]Item{{Template: apiTemplate(), Identifier: "fastapi"}},
		map[string]string{"PROJECT_NAME": "My Service"})
	require.NoError(t, err)

	// Root folder went through kebab-case
	readme, err := fs.ReadFile("/proj/my-service/README.md")
	require.NoError(t, err)
	assert.Equal(t, "# My Service", string(readme))

	// Default used for the unset variable
	mainPy, err := fs.ReadFile("/proj/my-service/app/main.py")
	require.NoError(t, err)
	assert.Equal(t, "PORT = 8000\n", string(mainPy))

	// Keep-empty folder got its marker
	_, err = fs.Stat("/proj/my-service/app/routers/" + KeepEmptyMarker)
	require.NoError(t, err)

	require.Len(t, result.Applied, 1)
	applied := result.Applied[0]
	assert.Equal(t, hashAPI, applied.TemplateHash)
	assert.Equal(t, "fastapi", applied.TemplateAlias)
	assert.Equal(t, "my-service", applied.RootFolder)
	assert.Equal(t, types.StatusActive, applied.Status)

	// Manifest persisted with the applied record, the merged variables and
	// an apply history entry
	saved, err := manifests.Load(p.ManifestPath("/proj"))
	require.NoError(t, err)
	require.Len(t, saved.Templates, 1)
	assert.Equal(t, "My Service", saved.Variables["PROJECT_NAME"])
	require.Len(t, saved.History, 2)
	assert.Equal(t, types.ActionApply, saved.History[1].Action)
	assert.Equal(t, []string{hashAPI}, saved.History[1].TemplateHashes)
	assert.NotEmpty(t, saved.History[1].Changes)
}

func TestApplyHashIdentifierNotRecordedAsAlias(t *testing.T) {
	applier, _, _, _ := newTestApplier(t)
	m := manifest.New("demo", "0.1.0")

	result, err := applier.Apply("/proj", m,
		[]Item{{Template: apiTemplate(), Identifier: "aaaa1111"}},
		map[string]string{"PROJECT_NAME": "demo"})
	require.NoError(t, err)
	assert.Empty(t, result.Applied[0].TemplateAlias)
}

func TestApplyBatchDeclarationOrder(t *testing.T) {
	applier, fs, _, _ := newTestApplier(t)
	m := manifest.New("demo", "0.1.0")

	result, err := applier.Apply("/proj", m,
		[]Item{
			{Template: apiTemplate()},
			{Template: docsTemplate()},
		},
		map[string]string{"PROJECT_NAME": "demo"})
	require.NoError(t, err)

	require.Len(t, result.Applied, 2)
	assert.Equal(t, "python-fastapi", result.Applied[0].Name)
	assert.Equal(t, "docs", result.Applied[1].Name)

	index, err := fs.ReadFile("/proj/docs/index.md")
	require.NoError(t, err)
	assert.Equal(t, "docs for demo", string(index))

	// One history entry for the whole batch
	assert.Equal(t, []string{hashAPI, hashDoc}, m.History[1].TemplateHashes)
}

func TestApplyRootFolderConflictWithActiveTemplate(t *testing.T) {
	applier, fs, manifests, p := newTestApplier(t)
	m := manifest.New("demo", "0.1.0")

	_, err := applier.Apply("/proj", m,
		[]Item{{Template: docsTemplate()}},
		map[string]string{"PROJECT_NAME": "demo"})
	require.NoError(t, err)
	_, writesBefore := fs.Stats()

	other := docsTemplate()
	other.ID = hashAPI
	other.Name = "docs-v2"
	_, err = applier.Apply("/proj", m, []Item{{Template: other}}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRootFolderConflict))

	// Rejected batch wrote nothing, including the manifest
	_, writesAfter := fs.Stats()
	assert.Equal(t, writesBefore, writesAfter)
	saved, err := manifests.Load(p.ManifestPath("/proj"))
	require.NoError(t, err)
	assert.Len(t, saved.Templates, 1)
}

func TestApplyRootFolderConflictWithinBatch(t *testing.T) {
	applier, fs, _, _ := newTestApplier(t)
	m := manifest.New("demo", "0.1.0")

	a := docsTemplate()
	b := docsTemplate()
	b.ID = hashAPI
	b.Name = "docs-v2"

	_, err := applier.Apply("/proj", m,
		[]Item{{Template: a}, {Template: b}},
		map[string]string{"PROJECT_NAME": "demo"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRootFolderConflict))

	_, writes := fs.Stats()
	assert.Zero(t, writes)
}

func TestApplyMissingRequiredVariable(t *testing.T) {
	applier, fs, _, _ := newTestApplier(t)
	m := manifest.New("demo", "0.1.0")

	_, err := applier.Apply("/proj", m, []Item{{Template: apiTemplate()}}, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMissingVariable))

	_, writes := fs.Stats()
	assert.Zero(t, writes)
	assert.Empty(t, m.Templates)
}

func TestApplyManifestVariablesSatisfyRequirement(t *testing.T) {
	applier, _, _, _ := newTestApplier(t)
	m := manifest.New("demo", "0.1.0")
	m.Variables["PROJECT_NAME"] = "stored"

	result, err := applier.Apply("/proj", m, []Item{{Template: apiTemplate()}}, nil)
	require.NoError(t, err)
	assert.Equal(t, "stored", result.Applied[0].RootFolder)
}

func TestApplyIncomingOverridesManifestVariable(t *testing.T) {
	applier, _, _, _ := newTestApplier(t)
	m := manifest.New("demo", "0.1.0")
	m.Variables["PROJECT_NAME"] = "stored"

	result, err := applier.Apply("/proj", m,
		[]Item{{Template: apiTemplate()}},
		map[string]string{"PROJECT_NAME": "override"})
	require.NoError(t, err)
	assert.Equal(t, "override", result.Applied[0].RootFolder)
	assert.Equal(t, "override", m.Variables["PROJECT_NAME"])
}

func TestApplyNoSubstitutionFile(t *testing.T) {
	applier, fs, _, _ := newTestApplier(t)
	m := manifest.New("demo", "0.1.0")

	tmpl := docsTemplate()
	tmpl.Files = []types.TemplateFile{
		{Path: "raw.tmpl", Content: "{{PROJECT_NAME}}", NoSubstitution: true},
	}

	_, err := applier.Apply("/proj", m, []Item{{Template: tmpl}},
		map[string]string{"PROJECT_NAME": "demo"})
	require.NoError(t, err)

	raw, err := fs.ReadFile("/proj/docs/raw.tmpl")
	require.NoError(t, err)
	assert.Equal(t, "{{PROJECT_NAME}}", string(raw))
}

func TestApplyFileFromSource(t *testing.T) {
	applier, fs, _, _ := newTestApplier(t)
	m := manifest.New("demo", "0.1.0")

	require.NoError(t, fs.WriteFile(
		"/ws/.scaffold/templates/docs/files/guide.md",
		[]byte("welcome to {{PROJECT_NAME}}"), 0644))

	tmpl := docsTemplate()
	tmpl.Files = []types.TemplateFile{{Path: "guide.md", Source: "guide.md"}}

	_, err := applier.Apply("/proj", m, []Item{{Template: tmpl}},
		map[string]string{"PROJECT_NAME": "demo"})
	require.NoError(t, err)

	guide, err := fs.ReadFile("/proj/docs/guide.md")
	require.NoError(t, err)
	assert.Equal(t, "welcome to demo", string(guide))
}

func TestApplyPathTraversalRejected(t *testing.T) {
	applier, _, _, _ := newTestApplier(t)
	m := manifest.New("demo", "0.1.0")

	tmpl := docsTemplate()
	tmpl.Files = []types.TemplateFile{
		{Path: "{{TARGET}}", Content: "x"},
	}

	_, err := applier.Apply("/proj", m, []Item{{Template: tmpl}},
		map[string]string{"PROJECT_NAME": "demo", "TARGET": "../escape.txt"})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPathTraversal))
}

func TestApplyEmptyBatch(t *testing.T) {
	applier, _, _, _ := newTestApplier(t)
	m := manifest.New("demo", "0.1.0")

	_, err := applier.Apply("/proj", m, nil, nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestRemoveFlipsStatusAndFreesRoot(t *testing.T) {
	applier, _, manifests, p := newTestApplier(t)
	m := manifest.New("demo", "0.1.0")

	_, err := applier.Apply("/proj", m,
		[]Item{{Template: docsTemplate()}},
		map[string]string{"PROJECT_NAME": "demo"})
	require.NoError(t, err)

	removed, err := applier.Remove("/proj", m, hashDoc)
	require.NoError(t, err)
	assert.Equal(t, types.StatusRemoved, removed.Status)

	saved, err := manifests.Load(p.ManifestPath("/proj"))
	require.NoError(t, err)
	require.Len(t, saved.Templates, 1)
	assert.Equal(t, types.StatusRemoved, saved.Templates[0].Status)
	assert.Equal(t, types.ActionRemove, saved.History[len(saved.History)-1].Action)

	// Root folder is free again
	_, err = applier.Apply("/proj", m,
		[]Item{{Template: docsTemplate()}},
		map[string]string{"PROJECT_NAME": "demo"})
	require.NoError(t, err)
}

func TestRemoveUnknownTemplate(t *testing.T) {
	applier, _, _, _ := newTestApplier(t)
	m := manifest.New("demo", "0.1.0")

	_, err := applier.Remove("/proj", m, hashDoc)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotApplied))
}
