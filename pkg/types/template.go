package types

import "time"

// Template is an immutable template definition. Its ID is a content hash
// computed over the hashed fields (everything except ID, Created, Updated);
// changing any hashed field yields a new template identity.
type Template struct {
	// ID is the 64-character hex SHA-256 content hash
	ID string `json:"id"`

	// Name is the human-readable template name
	Name string `json:"name"`

	// Version is a semantic version string (e.g. "1.2.0")
	Version string `json:"version"`

	// Description explains what the template scaffolds
	Description string `json:"description,omitempty"`

	// RootFolder is the project-relative root the template is placed under.
	// It may contain {{variable}} placeholders.
	RootFolder string `json:"rootFolder"`

	// Folders are the directories the template creates, relative to RootFolder
	Folders []TemplateFolder `json:"folders,omitempty"`

	// Files are the files the template creates, relative to RootFolder
	Files []TemplateFile `json:"files,omitempty"`

	// Variables declares the template's placeholder variables
	Variables []TemplateVariable `json:"variables,omitempty"`

	// Rules control strictness and extra-file policy during checks
	Rules TemplateRules `json:"rules,omitempty"`

	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

// TemplateFolder is a single directory entry in a template
type TemplateFolder struct {
	// Path is relative to the template's root folder, placeholder-substitutable
	Path string `json:"path" yaml:"path"`

	// Mode is an optional permission mode (e.g. "0755")
	Mode string `json:"mode,omitempty" yaml:"mode,omitempty"`

	// KeepEmpty writes a marker file so the folder survives empty
	KeepEmpty bool `json:"keepEmpty,omitempty" yaml:"keepEmpty,omitempty"`
}

// TemplateFile is a single file entry in a template. Exactly one of Content
// and Source should be set: Content is an inline body, Source references a
// file under the template's storage location.
type TemplateFile struct {
	// Path is relative to the template's root folder, placeholder-substitutable
	Path string `json:"path" yaml:"path"`

	// Content is the inline file body
	Content string `json:"content,omitempty" yaml:"content,omitempty"`

	// Source is a template-storage-relative path to the file body
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// Mode is an optional permission mode (e.g. "0644")
	Mode string `json:"mode,omitempty" yaml:"mode,omitempty"`

	// NoSubstitution disables placeholder expansion for this file's body
	NoSubstitution bool `json:"noSubstitution,omitempty" yaml:"noSubstitution,omitempty"`
}

// TemplateVariable declares one placeholder variable of a template
type TemplateVariable struct {
	Name string `json:"name" yaml:"name"`

	// Required variables must be supplied before the template can be applied
	Required bool `json:"required,omitempty" yaml:"required,omitempty"`

	// Default is used when no explicit value is supplied
	Default string `json:"default,omitempty" yaml:"default,omitempty"`

	// Type is an optional hint (string, number, boolean) for tooling
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// TemplateRules control validation behavior for a template
type TemplateRules struct {
	// Strict makes check operations treat deviations as errors
	Strict bool `json:"strict,omitempty" yaml:"strict,omitempty"`

	// AllowExtraFiles permits files not declared by the template
	AllowExtraFiles bool `json:"allowExtraFiles,omitempty" yaml:"allowExtraFiles,omitempty"`

	// AllowExtraFolders permits folders not declared by the template
	AllowExtraFolders bool `json:"allowExtraFolders,omitempty" yaml:"allowExtraFolders,omitempty"`

	// ExcludePatterns are glob patterns ignored during checks
	ExcludePatterns []string `json:"excludePatterns,omitempty" yaml:"excludePatterns,omitempty"`
}
