package types

import "time"

// Applied template status values
const (
	// StatusActive marks an applied template currently present in the project
	StatusActive = "active"

	// StatusRemoved marks an applied template that was soft-deleted; the
	// record stays in the manifest so history remains auditable
	StatusRemoved = "removed"
)

// History actions recorded in manifest history entries
const (
	ActionApply  = "apply"
	ActionRemove = "remove"
	ActionInit   = "init"
)

// ProjectManifest records everything scaffold has done to one project
type ProjectManifest struct {
	// ID is a stable unique identifier for the project
	ID string `json:"id"`

	// ProjectName is the human-readable project name
	ProjectName string `json:"projectName"`

	// Version is the project's own semantic version
	Version string `json:"version"`

	// Variables holds the merged variable values across all applied templates
	Variables map[string]string `json:"variables,omitempty"`

	// Templates records every template instantiation, including removed ones
	Templates []AppliedTemplate `json:"templates,omitempty"`

	// History is the append-only audit log
	History []HistoryEntry `json:"history,omitempty"`

	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

// AppliedTemplate describes one template instantiation in a project
type AppliedTemplate struct {
	// TemplateHash is the full content hash of the applied template
	TemplateHash string `json:"templateHash"`

	// TemplateAlias is the alias the caller actually used at apply time,
	// empty if they used a hash or prefix
	TemplateAlias string `json:"templateAlias,omitempty"`

	Name    string `json:"name"`
	Version string `json:"version"`

	// RootFolder is the fully substituted root folder the template occupies
	RootFolder string `json:"rootFolder"`

	AppliedBy string    `json:"appliedBy,omitempty"`
	AppliedAt time.Time `json:"appliedAt"`

	// Status is StatusActive or StatusRemoved
	Status string `json:"status"`

	// Conflicts records conflicts detected but overridden (reserved)
	Conflicts []string `json:"conflicts,omitempty"`
}

// HistoryEntry summarizes one mutating operation on a project
type HistoryEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`

	// Action is one of the Action* constants
	Action string `json:"action"`

	// TemplateHashes lists every template involved in the operation
	TemplateHashes []string `json:"templateHashes,omitempty"`

	User string `json:"user,omitempty"`

	// Changes records the individual file-system level changes
	Changes []ChangeRecord `json:"changes,omitempty"`
}

// ChangeRecord is a single file or folder change inside a history entry
type ChangeRecord struct {
	// Type is "folder" or "file"
	Type string `json:"type"`

	// Path is project-relative
	Path string `json:"path"`

	// Operation is "create" or "overwrite"
	Operation string `json:"operation"`
}

// ActiveRootFolders returns the resolved root folders of all active applied
// templates, keyed by folder with the owning template name as value.
func (m *ProjectManifest) ActiveRootFolders() map[string]string {
	roots := make(map[string]string)
	for _, at := range m.Templates {
		if at.Status == StatusActive {
			roots[at.RootFolder] = at.Name
		}
	}
	return roots
}

// FindActive returns the active applied template with the given hash, or nil
func (m *ProjectManifest) FindActive(hash string) *AppliedTemplate {
	for i := range m.Templates {
		if m.Templates[i].TemplateHash == hash && m.Templates[i].Status == StatusActive {
			return &m.Templates[i]
		}
	}
	return nil
}
