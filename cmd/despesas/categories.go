package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"despesas/internal/cli"
	"despesas/internal/services"
)

func categoriesCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"categorias"},
		Short:   "Manage the category list",
		Long: `Manage the list of categories offered when recording an expense.

Renaming or removing a category does not change the expenses that already
use it. Categories are addressed by the index shown by "categories list".

The list is kept only for the current run unless PERSIST_CATEGORIES=true.
Without it every command starts from the seed list (CATEGORIES), so a
category added here is gone by the next command and "add -c" rejects it.`,
	}

	cmd.AddCommand(categoriesListCmd(opts))
	cmd.AddCommand(categoriesAddCmd(opts))
	cmd.AddCommand(categoriesRenameCmd(opts))
	cmd.AddCommand(categoriesRemoveCmd(opts))

	return cmd
}

func categoriesListCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List categories with their index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer opts.closeApp(ctx, app)

			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderCategories(app.Ledger.Categories()))
			return nil
		},
	}
}

func categoriesAddCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer opts.closeApp(ctx, app)

			name := strings.Join(args, " ")
			added, err := app.Ledger.AddCategory(ctx, name)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !added {
				fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Categoria %q vazia ou já existente.", name)))
				return nil
			}
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Categoria %q adicionada", strings.TrimSpace(name))))
			return nil
		},
	}
}

func categoriesRenameCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <index> [new-name]",
		Short: "Rename the category at index",
		Long: `Rename the category at index. Without a new name the command asks for
one, pre-filled with the current name.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			app, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer opts.closeApp(ctx, app)

			var prompt services.Prompt = cli.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout()).Prompt
			if len(args) > 1 {
				prompt = services.Fixed(strings.Join(args[1:], " "))
			}
			renamed, err := app.Ledger.RenameCategory(ctx, index, prompt)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !renamed {
				fmt.Fprintln(out, cli.SubtleStyle.Render("Nenhuma categoria foi renomeada."))
				return nil
			}
			fmt.Fprintln(out, cli.FormatSuccess("Categoria renomeada"))
			fmt.Fprintln(out, cli.RenderCategories(app.Ledger.Categories()))
			return nil
		},
	}
}

func categoriesRemoveCmd(opts *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:     "remove <index>",
		Aliases: []string{"rm"},
		Short:   "Remove the category at index",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			app, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer opts.closeApp(ctx, app)

			var confirm services.Confirm = cli.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout()).Confirm
			if force {
				confirm = services.Always
			}
			removed, err := app.Ledger.RemoveCategory(ctx, index, confirm)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !removed {
				fmt.Fprintln(out, cli.SubtleStyle.Render("Nada foi excluído."))
				return nil
			}
			fmt.Fprintln(out, cli.FormatSuccess("Categoria excluída"))
			fmt.Fprintln(out, cli.RenderCategories(app.Ledger.Categories()))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")
	return cmd
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid category index %q: %w", s, err)
	}
	return i, nil
}
