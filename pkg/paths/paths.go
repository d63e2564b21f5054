// Package paths provides centralized path handling for scaffold.
// It implements XDG Base Directory specification compliance and
// provides a consistent API for all path operations in the codebase.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/scaffold/pkg/errors"
)

// Environment variable names
const (
	// EnvWorkspace is the primary environment variable for the workspace location
	EnvWorkspace = "SCAFFOLD_WORKSPACE"

	// EnvConfigDir overrides the XDG config directory for scaffold
	EnvConfigDir = "SCAFFOLD_CONFIG_DIR"

	// EnvDataDir overrides the XDG data directory for scaffold
	EnvDataDir = "SCAFFOLD_DATA_DIR"
)

// Default directories and files
// IMPORTANT: These constants define scaffold's on-disk store structure and
// are NOT user-configurable. They must remain consistent across installations
// so workspaces stay portable.
const (
	// ScaffoldDirName is the directory name for scaffold-specific files
	ScaffoldDirName = ".scaffold"

	// TemplatesDir is the subdirectory holding template definitions
	TemplatesDir = "templates"

	// TemplateFilesDir is the subdirectory of a template holding file payloads
	TemplateFilesDir = "files"

	// AliasStoreFile is the JSON document holding hash -> alias mappings
	AliasStoreFile = "aliases.json"

	// ManifestFile is the per-project manifest document
	ManifestFile = "manifest.json"

	// ConfigFile is the workspace/global configuration file name
	ConfigFile = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "scaffold.log"
)

// Paths provides centralized path management for scaffold
type Paths interface {
	// WorkspaceRoot is the directory whose .scaffold store holds templates
	WorkspaceRoot() string

	// ScaffoldDir is <workspace>/.scaffold
	ScaffoldDir() string

	// TemplatesDir is <workspace>/.scaffold/templates
	TemplatesDir() string

	// TemplateDefinitionPath is the JSON document for a template hash
	TemplateDefinitionPath(hash string) string

	// TemplateFilesDir is where a named template's source payloads live
	TemplateFilesDir(templateName string) string

	// AliasStorePath is the workspace's alias store document
	AliasStorePath() string

	// ManifestPath is the manifest document inside a project directory
	ManifestPath(projectDir string) string

	// GlobalConfigPath is the XDG-level configuration file
	GlobalConfigPath() string

	// WorkspaceConfigPath is the workspace-level configuration file
	WorkspaceConfigPath() string

	// LogFilePath is the XDG state log file
	LogFilePath() string
}

type paths struct {
	workspaceRoot string
	configDir     string
}

// New creates a Paths instance rooted at the given workspace directory.
// An empty workspaceRoot falls back to SCAFFOLD_WORKSPACE, then the
// current working directory.
func New(workspaceRoot string) (Paths, error) {
	root := workspaceRoot
	if root == "" {
		root = os.Getenv(EnvWorkspace)
	}
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "cannot determine working directory")
		}
		root = cwd
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid workspace root %s", root)
	}

	configDir := os.Getenv(EnvConfigDir)
	if configDir == "" {
		configDir = filepath.Join(xdg.ConfigHome, "scaffold")
	}

	return &paths{
		workspaceRoot: abs,
		configDir:     configDir,
	}, nil
}

func (p *paths) WorkspaceRoot() string {
	return p.workspaceRoot
}

func (p *paths) ScaffoldDir() string {
	return filepath.Join(p.workspaceRoot, ScaffoldDirName)
}

func (p *paths) TemplatesDir() string {
	return filepath.Join(p.ScaffoldDir(), TemplatesDir)
}

func (p *paths) TemplateDefinitionPath(hash string) string {
	return filepath.Join(p.TemplatesDir(), hash+".json")
}

func (p *paths) TemplateFilesDir(templateName string) string {
	return filepath.Join(p.TemplatesDir(), templateName, TemplateFilesDir)
}

func (p *paths) AliasStorePath() string {
	return filepath.Join(p.ScaffoldDir(), AliasStoreFile)
}

func (p *paths) ManifestPath(projectDir string) string {
	return filepath.Join(projectDir, ScaffoldDirName, ManifestFile)
}

func (p *paths) GlobalConfigPath() string {
	return filepath.Join(p.configDir, ConfigFile)
}

func (p *paths) WorkspaceConfigPath() string {
	return filepath.Join(p.ScaffoldDir(), ConfigFile)
}

func (p *paths) LogFilePath() string {
	return filepath.Join(xdg.StateHome, "scaffold", LogFileName)
}
