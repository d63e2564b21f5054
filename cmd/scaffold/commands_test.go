package scaffold

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/scaffold/pkg/paths"
)

// runCommand executes the CLI with the given args and captures stdout
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func testWorkspace(t *testing.T) (ws, proj string) {
	t.Helper()

	ws = t.TempDir()
	proj = t.TempDir()
	// Keep global config out of the cascade
	t.Setenv(paths.EnvConfigDir, filepath.Join(ws, "no-config"))
	return ws, proj
}

const definitionYAML = `
name: python-fastapi
version: 1.0.0
description: FastAPI service skeleton
rootFolder: "{{PROJECT_NAME|kebab-case}}"
folders:
  - path: app
files:
  - path: README.md
    content: "# {{PROJECT_NAME}}"
variables:
  - name: PROJECT_NAME
    required: true
`

func createDefinition(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "api.yaml")
	require.NoError(t, os.WriteFile(path, []byte(definitionYAML), 0644))
	return path
}

func TestEndToEndApplyFlow(t *testing.T) {
	ws, proj := testWorkspace(t)
	def := createDefinition(t, t.TempDir())

	out, err := runCommand(t, "init", proj, "--name", "demo", "--workspace", ws)
	require.NoError(t, err)
	assert.Contains(t, out, "Initialized")

	out, err = runCommand(t, "template", "create", def, "--alias", "fastapi", "--workspace", ws)
	require.NoError(t, err)
	assert.Contains(t, out, "python-fastapi")

	out, err = runCommand(t, "apply", "fastapi",
		"--workspace", ws, "--project", proj, "--var", "PROJECT_NAME=My Service")
	require.NoError(t, err)
	assert.Contains(t, out, "Applied")

	readme, err := os.ReadFile(filepath.Join(proj, "my-service", "README.md"))
	require.NoError(t, err)
	assert.Equal(t, "# My Service", string(readme))

	out, err = runCommand(t, "status", "--workspace", ws, "--project", proj)
	require.NoError(t, err)
	assert.Contains(t, out, "demo")
	assert.Contains(t, out, "python-fastapi")

	out, err = runCommand(t, "remove", "fastapi", "--workspace", ws, "--project", proj)
	require.NoError(t, err)
	assert.Contains(t, out, "Removed")
}

func TestInitTwiceFails(t *testing.T) {
	ws, proj := testWorkspace(t)

	_, err := runCommand(t, "init", proj, "--workspace", ws)
	require.NoError(t, err)

	_, err = runCommand(t, "init", proj, "--workspace", ws)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already initialized")
}

func TestApplyMissingRequiredVariableFails(t *testing.T) {
	ws, proj := testWorkspace(t)
	def := createDefinition(t, t.TempDir())

	_, err := runCommand(t, "init", proj, "--workspace", ws)
	require.NoError(t, err)
	_, err = runCommand(t, "template", "create", def, "--alias", "fastapi", "--workspace", ws)
	require.NoError(t, err)

	_, err = runCommand(t, "apply", "fastapi", "--workspace", ws, "--project", proj)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROJECT_NAME")
}

func TestApplyUnknownIdentifierFails(t *testing.T) {
	ws, proj := testWorkspace(t)

	_, err := runCommand(t, "init", proj, "--workspace", ws)
	require.NoError(t, err)

	_, err = runCommand(t, "apply", "nope", "--workspace", ws, "--project", proj)
	require.Error(t, err)
}

func TestAliasLifecycle(t *testing.T) {
	ws, _ := testWorkspace(t)
	def := createDefinition(t, t.TempDir())

	_, err := runCommand(t, "template", "create", def, "--alias", "api", "--workspace", ws)
	require.NoError(t, err)

	// A second alias can be added through the first one
	_, err = runCommand(t, "alias", "add", "api", "fastapi", "--workspace", ws)
	require.NoError(t, err)

	out, err := runCommand(t, "alias", "list", "--workspace", ws)
	require.NoError(t, err)
	assert.Contains(t, out, "api")
	assert.Contains(t, out, "fastapi")

	_, err = runCommand(t, "alias", "rm", "fastapi", "--workspace", ws)
	require.NoError(t, err)

	// Removing it again is an error
	_, err = runCommand(t, "alias", "rm", "fastapi", "--workspace", ws)
	require.Error(t, err)

	out, err = runCommand(t, "template", "list", "--workspace", ws)
	require.NoError(t, err)
	assert.Contains(t, out, "python-fastapi")

	// Template names are not identifiers
	_, err = runCommand(t, "alias", "add", "python-fastapi", "x", "--workspace", ws)
	require.Error(t, err)
}

func TestVarFileParsing(t *testing.T) {
	ws, proj := testWorkspace(t)
	def := createDefinition(t, t.TempDir())

	_, err := runCommand(t, "init", proj, "--workspace", ws)
	require.NoError(t, err)
	_, err = runCommand(t, "template", "create", def, "--alias", "fastapi", "--workspace", ws)
	require.NoError(t, err)

	varFile := filepath.Join(t.TempDir(), "vars.yaml")
	require.NoError(t, os.WriteFile(varFile, []byte("PROJECT_NAME: from-file\n"), 0644))

	_, err = runCommand(t, "apply", "fastapi",
		"--workspace", ws, "--project", proj, "--var-file", varFile)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(proj, "from-file", "README.md"))
	require.NoError(t, err)
}

func TestTemplateInitStarterRoundTrips(t *testing.T) {
	ws, _ := testWorkspace(t)
	starter := filepath.Join(t.TempDir(), "starter.yaml")

	_, err := runCommand(t, "template", "init", starter, "--workspace", ws)
	require.NoError(t, err)

	// The starter definition must itself be importable
	out, err := runCommand(t, "template", "create", starter, "--workspace", ws)
	require.NoError(t, err)
	assert.Contains(t, out, "python-fastapi")

	// Starter never clobbers an existing file
	_, err = runCommand(t, "template", "init", starter, "--workspace", ws)
	require.Error(t, err)
}

func TestGenConfigPrints(t *testing.T) {
	ws, _ := testWorkspace(t)

	out, err := runCommand(t, "gen-config", "--workspace", ws)
	require.NoError(t, err)
	assert.Contains(t, out, "[substitution]")
	assert.Contains(t, out, "# max_depth = 10")
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "scaffold version")
}

func TestHelpTopics(t *testing.T) {
	out, err := runCommand(t, "help", "topics")
	// The topics list goes to stdout via fmt; the command itself must succeed
	require.NoError(t, err)
	_ = out
}
