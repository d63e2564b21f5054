package scaffold

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "A content-addressed project scaffolding tool"
	MsgInitShort       = "Initialize a project for scaffolding"
	MsgApplyShort      = "Apply templates to a project"
	MsgRemoveShort     = "Remove an applied template from a project"
	MsgStatusShort     = "Show which templates a project uses"
	MsgTemplateShort   = "Manage the template store"
	MsgTemplateList    = "List stored templates"
	MsgTemplateShow    = "Show a template's definition"
	MsgTemplateCreate  = "Create a template from a definition file"
	MsgTemplateInit    = "Write a starter template definition to edit"
	MsgAliasShort      = "Manage template aliases"
	MsgAliasAdd        = "Register an alias for a template"
	MsgAliasRm         = "Remove an alias"
	MsgAliasList       = "List all registered aliases"
	MsgAliasCleanup    = "Remove aliases whose templates no longer exist"
	MsgGenConfigShort  = "Generate a starter configuration file"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Flag descriptions
	MsgFlagVerbose   = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun    = "Preview changes without writing anything"
	MsgFlagWorkspace = "Workspace directory holding the template store (default: $SCAFFOLD_WORKSPACE or cwd)"
	MsgFlagProject   = "Project directory to operate on (default: cwd)"
	MsgFlagVar       = "Variable assignment NAME=value (repeatable)"
	MsgFlagVarFile   = "YAML file of variable assignments"
	MsgFlagName      = "Project name recorded in the manifest"
	MsgFlagVersion   = "Project version recorded in the manifest"
	MsgFlagWrite     = "Write the config file instead of printing it"
	MsgFlagVerbosity = "Show longer hash prefixes"

	// Status messages
	MsgDryRunNotice = "\nDRY RUN MODE - No changes were made"
)

// Long messages
const (
	MsgRootLong = `scaffold manages project templates addressed by the hash of their content.

Templates are stored once per unique content, referred to by full hash,
unique hash prefix, or human-readable alias, and applied to projects with
variable substitution. Every application is recorded in the project's
manifest, giving a complete audit trail.`

	MsgApplyLong = `Apply one or more templates to a project.

Templates are identified by alias, full content hash, or a unique hash
prefix. The whole batch is validated before anything is written: a root
folder conflict or a missing required variable rejects the batch without
touching the project.`

	MsgApplyExample = `  scaffold apply fastapi --var PROJECT_NAME=billing
  scaffold apply a1b2c3d4 docs --project ./billing --var-file vars.yaml`

	MsgTemplateCreateExample = `  scaffold template create api.yaml
  scaffold template create service.json`
)
