// Package scaffold wires the CLI: command tree, flag parsing, and the
// shared environment (paths, config, stores) commands operate through.
package scaffold

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/scaffold/internal/version"
	"github.com/arthur-debert/scaffold/pkg/apply"
	"github.com/arthur-debert/scaffold/pkg/cobrax/topics"
	"github.com/arthur-debert/scaffold/pkg/config"
	"github.com/arthur-debert/scaffold/pkg/filesystem"
	"github.com/arthur-debert/scaffold/pkg/identifier"
	"github.com/arthur-debert/scaffold/pkg/logging"
	"github.com/arthur-debert/scaffold/pkg/manifest"
	"github.com/arthur-debert/scaffold/pkg/paths"
	"github.com/arthur-debert/scaffold/pkg/templates"
	"github.com/arthur-debert/scaffold/pkg/types"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity int
		workspace string
		dryRun    bool
	)

	rootCmd := &cobra.Command{
		Use:     "scaffold",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&workspace, "workspace", "", MsgFlagWorkspace)
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)

	// Disable automatic help command (replaced by the topics help)
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddGroup(&cobra.Group{ID: "project", Title: "PROJECT COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "store", Title: "STORE COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.AddCommand(newInitCmd(&workspace, &dryRun))
	rootCmd.AddCommand(newApplyCmd(&workspace, &dryRun))
	rootCmd.AddCommand(newRemoveCmd(&workspace, &dryRun))
	rootCmd.AddCommand(newStatusCmd(&workspace))
	rootCmd.AddCommand(newTemplateCmd(&workspace, &dryRun))
	rootCmd.AddCommand(newAliasCmd(&workspace, &dryRun))
	rootCmd.AddCommand(newGenConfigCmd(&workspace))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	if err := topics.Initialize(rootCmd, topicsFS(), topics.Options{
		Extensions: []string{".txt", ".md"},
		Renderer:   topics.NewGlamourRenderer(),
	}); err != nil {
		log.Warn().Err(err).Msg("help topics unavailable")
	}

	return rootCmd
}

// cliEnv bundles the collaborators every command needs. One is built per
// invocation from the persistent flags.
type cliEnv struct {
	fs          types.FS
	paths       paths.Paths
	settings    *config.Settings
	identifiers *identifier.Service
	templates   *templates.Store
	manifests   *manifest.Store
	applier     *apply.Applier
}

func newEnv(workspace string, dryRun bool) (*cliEnv, error) {
	p, err := paths.New(workspace)
	if err != nil {
		return nil, err
	}

	settings, err := config.Load(p)
	if err != nil {
		return nil, err
	}

	fs := filesystem.NewOS()
	if dryRun {
		fs = filesystem.NewDryRun(fs)
	}

	svc := identifier.NewService(fs, p.AliasStorePath(), identifier.TemplateHasher{}).
		WithDisplayLengths(settings.Display.ShortHashLength, settings.Display.VerboseHashLength)
	store := templates.NewStore(fs, p)
	manifests := manifest.NewStore(fs)
	applier := apply.New(fs, store, manifests, p, settings.SubstituteOptions())

	return &cliEnv{
		fs:          fs,
		paths:       p,
		settings:    settings,
		identifiers: svc,
		templates:   store,
		manifests:   manifests,
		applier:     applier,
	}, nil
}

// resolveTemplate maps one user-supplied identifier to its stored template
func (e *cliEnv) resolveTemplate(id string) (*types.Template, error) {
	available, err := e.templates.ListHashes()
	if err != nil {
		return nil, err
	}

	hash, err := e.identifiers.Resolve(id, available)
	if err != nil {
		return nil, err
	}

	return e.templates.Load(hash)
}
