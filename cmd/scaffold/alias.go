package scaffold

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/scaffold/pkg/output/styles"
)

func newAliasCmd(workspace *string, dryRun *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "alias",
		Short:   MsgAliasShort,
		GroupID: "store",
	}

	cmd.AddCommand(newAliasAddCmd(workspace, dryRun))
	cmd.AddCommand(newAliasRmCmd(workspace, dryRun))
	cmd.AddCommand(newAliasListCmd(workspace))
	cmd.AddCommand(newAliasCleanupCmd(workspace, dryRun))
	return cmd
}

func newAliasAddCmd(workspace *string, dryRun *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "add <identifier> <alias>",
		Short: MsgAliasAdd,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(*workspace, *dryRun)
			if err != nil {
				return err
			}

			tmpl, err := env.resolveTemplate(args[0])
			if err != nil {
				return err
			}

			if err := env.identifiers.RegisterAlias(tmpl.ID, args[1]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s -> %s\n",
				styles.GetStyle("Success").Render("Registered"),
				styles.GetStyle("Alias").Render(args[1]),
				styles.GetStyle("Hash").Render(env.identifiers.ShortHash(tmpl.ID, false)))
			return nil
		},
	}
}

func newAliasRmCmd(workspace *string, dryRun *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <alias>",
		Short: MsgAliasRm,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(*workspace, *dryRun)
			if err != nil {
				return err
			}

			if err := env.identifiers.RemoveAlias(args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s alias %s\n",
				styles.GetStyle("Success").Render("Removed"),
				styles.GetStyle("Alias").Render(args[0]))
			return nil
		},
	}
}

func newAliasListCmd(workspace *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: MsgAliasList,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(*workspace, false)
			if err != nil {
				return err
			}

			all := env.identifiers.AllAliases()
			out := cmd.OutOrStdout()
			if len(all) == 0 {
				fmt.Fprintln(out, styles.GetStyle("Muted").Render("No aliases registered."))
				return nil
			}

			hashes := make([]string, 0, len(all))
			for hash := range all {
				hashes = append(hashes, hash)
			}
			sort.Strings(hashes)

			for _, hash := range hashes {
				aliases := all[hash]
				styled := make([]string, len(aliases))
				for i, a := range aliases {
					styled[i] = styles.GetStyle("Alias").Render(a)
				}
				fmt.Fprintf(out, "%s  %s\n",
					styles.GetStyle("Hash").Render(hash[:12]),
					strings.Join(styled, ", "))
			}
			return nil
		},
	}
}

func newAliasCleanupCmd(workspace *string, dryRun *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: MsgAliasCleanup,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(*workspace, *dryRun)
			if err != nil {
				return err
			}

			available, err := env.templates.ListHashes()
			if err != nil {
				return err
			}

			removed, err := env.identifiers.CleanupOrphans(available)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(removed) == 0 {
				fmt.Fprintln(out, "No orphaned aliases found.")
				return nil
			}
			for _, alias := range removed {
				fmt.Fprintf(out, "%s orphaned alias %s\n",
					styles.GetStyle("Success").Render("Removed"),
					styles.GetStyle("Alias").Render(alias))
			}
			if *dryRun {
				fmt.Fprintln(out, MsgDryRunNotice)
			}
			return nil
		},
	}
}
