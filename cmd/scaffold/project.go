package scaffold

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/scaffold/pkg/apply"
	"github.com/arthur-debert/scaffold/pkg/errors"
	"github.com/arthur-debert/scaffold/pkg/manifest"
	"github.com/arthur-debert/scaffold/pkg/output/styles"
	"github.com/arthur-debert/scaffold/pkg/types"
)

func newInitCmd(workspace *string, dryRun *bool) *cobra.Command {
	var (
		name    string
		version string
	)

	cmd := &cobra.Command{
		Use:     "init [project-dir]",
		Short:   MsgInitShort,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "project",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(*workspace, *dryRun)
			if err != nil {
				return err
			}

			projectDir := "."
			if len(args) == 1 {
				projectDir = args[0]
			}
			projectDir, err = filepath.Abs(projectDir)
			if err != nil {
				return err
			}

			manifestPath := env.paths.ManifestPath(projectDir)
			if env.manifests.Exists(manifestPath) {
				return errors.Newf(errors.ErrManifestExists,
					"project %s is already initialized", projectDir)
			}

			if name == "" {
				name = filepath.Base(projectDir)
			}
			if version == "" {
				version = env.settings.Project.DefaultVersion
			}

			m := manifest.New(name, version)
			if err := env.manifests.Save(manifestPath, m); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s project %q (version %s)\n",
				styles.GetStyle("Success").Render("Initialized"), name, version)
			if *dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), MsgDryRunNotice)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", MsgFlagName)
	cmd.Flags().StringVar(&version, "version", "", MsgFlagVersion)
	return cmd
}

func newApplyCmd(workspace *string, dryRun *bool) *cobra.Command {
	var (
		projectDir string
		varFlags   []string
		varFile    string
	)

	cmd := &cobra.Command{
		Use:     "apply <identifier>...",
		Short:   MsgApplyShort,
		Long:    MsgApplyLong,
		Example: MsgApplyExample,
		Args:    cobra.MinimumNArgs(1),
		GroupID: "project",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(*workspace, *dryRun)
			if err != nil {
				return err
			}

			dir, err := filepath.Abs(projectDir)
			if err != nil {
				return err
			}

			m, err := env.manifests.Load(env.paths.ManifestPath(dir))
			if err != nil {
				return err
			}

			vars, err := collectVars(env.fs, varFlags, varFile)
			if err != nil {
				return err
			}

			items := make([]apply.Item, 0, len(args))
			for _, id := range args {
				tmpl, err := env.resolveTemplate(id)
				if err != nil {
					return err
				}
				items = append(items, apply.Item{Template: tmpl, Identifier: id})
			}

			result, err := env.applier.Apply(dir, m, items, vars)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, applied := range result.Applied {
				fmt.Fprintf(out, "%s %s %s -> %s\n",
					styles.GetStyle("Success").Render("Applied"),
					styles.GetStyle("TemplateName").Render(applied.Name),
					styles.GetStyle("Hash").Render(env.identifiers.ShortHash(applied.TemplateHash, false)),
					styles.GetStyle("Path").Render(applied.RootFolder))
			}
			fmt.Fprintf(out, "%d change(s) recorded\n", len(result.Changes))
			if *dryRun {
				fmt.Fprintln(out, MsgDryRunNotice)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&projectDir, "project", ".", MsgFlagProject)
	cmd.Flags().StringArrayVar(&varFlags, "var", nil, MsgFlagVar)
	cmd.Flags().StringVar(&varFile, "var-file", "", MsgFlagVarFile)
	return cmd
}

func newRemoveCmd(workspace *string, dryRun *bool) *cobra.Command {
	var projectDir string

	cmd := &cobra.Command{
		Use:     "remove <identifier>",
		Short:   MsgRemoveShort,
		Args:    cobra.ExactArgs(1),
		GroupID: "project",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(*workspace, *dryRun)
			if err != nil {
				return err
			}

			dir, err := filepath.Abs(projectDir)
			if err != nil {
				return err
			}

			m, err := env.manifests.Load(env.paths.ManifestPath(dir))
			if err != nil {
				return err
			}

			hash, err := resolveInProject(env, m, args[0])
			if err != nil {
				return err
			}

			removed, err := env.applier.Remove(dir, m, hash)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s; its files were left in place\n",
				styles.GetStyle("Success").Render("Removed"),
				styles.GetStyle("TemplateName").Render(removed.Name))
			if *dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), MsgDryRunNotice)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&projectDir, "project", ".", MsgFlagProject)
	return cmd
}

func newStatusCmd(workspace *string) *cobra.Command {
	var (
		projectDir string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Args:    cobra.NoArgs,
		GroupID: "project",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(*workspace, false)
			if err != nil {
				return err
			}

			dir, err := filepath.Abs(projectDir)
			if err != nil {
				return err
			}

			m, err := env.manifests.Load(env.paths.ManifestPath(dir))
			if err != nil {
				return err
			}

			printStatus(cmd, env, m, verbose)
			return nil
		},
	}

	cmd.Flags().StringVar(&projectDir, "project", ".", MsgFlagProject)
	cmd.Flags().BoolVar(&verbose, "long", false, MsgFlagVerbosity)
	return cmd
}

func printStatus(cmd *cobra.Command, env *cliEnv, m *types.ProjectManifest, verbose bool) {
	out := cmd.OutOrStdout()
	label := func(s string) string { return styles.GetStyle("Label").Render(s) }

	fmt.Fprintln(out, styles.GetStyle("Header").Render(m.ProjectName))
	fmt.Fprintf(out, "%s %s\n", label("Version"), m.Version)
	fmt.Fprintf(out, "%s %s\n", label("Created"), m.Created.Format("2006-01-02 15:04"))

	if len(m.Templates) == 0 {
		fmt.Fprintln(out, styles.GetStyle("Muted").Render("No templates applied."))
		return
	}

	fmt.Fprintf(out, "\n%s\n", label("Templates"))
	for _, at := range m.Templates {
		marker := styles.GetStyle("Success").Render("active ")
		if at.Status == types.StatusRemoved {
			marker = styles.GetStyle("Muted").Render("removed")
		}
		fmt.Fprintf(out, "  %s %s %s @ %s\n",
			marker,
			styles.GetStyle("TemplateName").Render(at.Name),
			styles.GetStyle("Hash").Render(env.identifiers.ShortHash(at.TemplateHash, verbose)),
			styles.GetStyle("Path").Render(at.RootFolder))
	}

	if len(m.Variables) > 0 {
		fmt.Fprintf(out, "\n%s\n", label("Variables"))
		names := make([]string, 0, len(m.Variables))
		for name := range m.Variables {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(out, "  %s = %s\n", name, m.Variables[name])
		}
	}

	fmt.Fprintf(out, "\n%s %d entries\n", label("History"), len(m.History))
}

// resolveInProject resolves an identifier against the union of the store and
// the project's applied templates, so a template deleted from the store can
// still be addressed for removal.
func resolveInProject(env *cliEnv, m *types.ProjectManifest, id string) (string, error) {
	available, err := env.templates.ListHashes()
	if err != nil {
		return "", err
	}
	seen := make(map[string]bool, len(available))
	for _, h := range available {
		seen[h] = true
	}
	for _, at := range m.Templates {
		if !seen[at.TemplateHash] {
			available = append(available, at.TemplateHash)
			seen[at.TemplateHash] = true
		}
	}

	return env.identifiers.Resolve(id, available)
}

// collectVars merges --var-file assignments with --var flags, flags winning
func collectVars(fs types.FS, varFlags []string, varFile string) (map[string]string, error) {
	vars := make(map[string]string)

	if varFile != "" {
		data, err := fs.ReadFile(varFile)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot read var file %s", varFile)
		}
		if err := yaml.Unmarshal(data, &vars); err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "cannot parse var file %s", varFile)
		}
	}

	for _, assignment := range varFlags {
		name, value, found := strings.Cut(assignment, "=")
		if !found || name == "" {
			return nil, errors.Newf(errors.ErrInvalidInput,
				"invalid variable assignment %q; expected NAME=value", assignment)
		}
		vars[name] = value
	}

	return vars, nil
}
