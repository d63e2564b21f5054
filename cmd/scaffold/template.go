package scaffold

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/scaffold/pkg/output/styles"
	"github.com/arthur-debert/scaffold/pkg/types"
)

func newTemplateCmd(workspace *string, dryRun *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Short:   MsgTemplateShort,
		GroupID: "store",
	}

	cmd.AddCommand(newTemplateListCmd(workspace))
	cmd.AddCommand(newTemplateShowCmd(workspace))
	cmd.AddCommand(newTemplateCreateCmd(workspace, dryRun))
	cmd.AddCommand(newTemplateInitCmd(workspace, dryRun))
	return cmd
}

func newTemplateInitCmd(workspace *string, dryRun *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "init [file]",
		Short: MsgTemplateInit,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(*workspace, *dryRun)
			if err != nil {
				return err
			}

			path := "template.yaml"
			if len(args) == 1 {
				path = args[0]
			}

			if err := env.templates.WriteStarter(path); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s starter definition %s; edit it and run 'scaffold template create %s'\n",
				styles.GetStyle("Success").Render("Wrote"),
				styles.GetStyle("Path").Render(path), path)
			if *dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), MsgDryRunNotice)
			}
			return nil
		},
	}
}

func newTemplateListCmd(workspace *string) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: MsgTemplateList,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(*workspace, false)
			if err != nil {
				return err
			}

			all, err := env.templates.LoadAll()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(all) == 0 {
				fmt.Fprintln(out, styles.GetStyle("Muted").Render("No templates stored."))
				return nil
			}

			sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
			for _, tmpl := range all {
				fmt.Fprintf(out, "%s %s %s\n",
					styles.GetStyle("TemplateName").Render(tmpl.Name),
					tmpl.Version,
					styles.GetStyle("Hash").Render(env.identifiers.ShortHash(tmpl.ID, verbose)))
				if tmpl.Description != "" {
					fmt.Fprintf(out, "  %s\n", styles.GetStyle("Muted").Render(tmpl.Description))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&verbose, "long", false, MsgFlagVerbosity)
	return cmd
}

func newTemplateShowCmd(workspace *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <identifier>",
		Short: MsgTemplateShow,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(*workspace, false)
			if err != nil {
				return err
			}

			tmpl, err := env.resolveTemplate(args[0])
			if err != nil {
				return err
			}

			printTemplate(cmd, env, tmpl)
			return nil
		},
	}

	return cmd
}

func printTemplate(cmd *cobra.Command, env *cliEnv, tmpl *types.Template) {
	out := cmd.OutOrStdout()
	label := func(s string) string { return styles.GetStyle("Label").Render(s) }

	fmt.Fprintln(out, styles.GetStyle("Header").Render(tmpl.Name))
	fmt.Fprintf(out, "%s %s\n", label("Hash"), tmpl.ID)
	fmt.Fprintf(out, "%s %s\n", label("Version"), tmpl.Version)
	if tmpl.Description != "" {
		fmt.Fprintf(out, "%s %s\n", label("Description"), tmpl.Description)
	}
	fmt.Fprintf(out, "%s %s\n", label("Root folder"), tmpl.RootFolder)

	if aliases := env.identifiers.Aliases(tmpl.ID); len(aliases) > 0 {
		fmt.Fprintf(out, "%s", label("Aliases"))
		for _, a := range aliases {
			fmt.Fprintf(out, " %s", styles.GetStyle("Alias").Render(a))
		}
		fmt.Fprintln(out)
	}

	if len(tmpl.Folders) > 0 {
		fmt.Fprintf(out, "\n%s\n", label("Folders"))
		for _, folder := range tmpl.Folders {
			suffix := ""
			if folder.KeepEmpty {
				suffix = styles.GetStyle("Muted").Render(" (kept when empty)")
			}
			fmt.Fprintf(out, "  %s%s\n", folder.Path, suffix)
		}
	}

	if len(tmpl.Files) > 0 {
		fmt.Fprintf(out, "\n%s\n", label("Files"))
		for _, file := range tmpl.Files {
			origin := "inline"
			if file.Source != "" {
				origin = "source: " + file.Source
			}
			fmt.Fprintf(out, "  %s %s\n", file.Path,
				styles.GetStyle("Muted").Render("("+origin+")"))
		}
	}

	if len(tmpl.Variables) > 0 {
		fmt.Fprintf(out, "\n%s\n", label("Variables"))
		for _, v := range tmpl.Variables {
			attrs := ""
			if v.Required {
				attrs = styles.GetStyle("Warning").Render(" required")
			}
			if v.Default != "" {
				attrs += styles.GetStyle("Muted").Render(" default=" + v.Default)
			}
			fmt.Fprintf(out, "  %s%s\n", v.Name, attrs)
		}
	}
}

func newTemplateCreateCmd(workspace *string, dryRun *bool) *cobra.Command {
	var alias string

	cmd := &cobra.Command{
		Use:     "create <definition-file>",
		Short:   MsgTemplateCreate,
		Example: MsgTemplateCreateExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(*workspace, *dryRun)
			if err != nil {
				return err
			}

			tmpl, err := env.templates.Create(env.identifiers, args[0])
			if err != nil {
				return err
			}

			if alias != "" {
				if err := env.identifiers.RegisterAlias(tmpl.ID, alias); err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s as %s\n",
				styles.GetStyle("Success").Render("Stored"),
				styles.GetStyle("TemplateName").Render(tmpl.Name),
				styles.GetStyle("Hash").Render(env.identifiers.ShortHash(tmpl.ID, true)))
			if *dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), MsgDryRunNotice)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&alias, "alias", "", "Alias to register for the new template")
	return cmd
}
