package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"despesas/internal/cli"
	"despesas/internal/core"
	"despesas/internal/services"
)

// draftFlags are the expense fields accepted on the command line. Fields
// not given are asked for interactively.
type draftFlags struct {
	description string
	amount      string
	payer       string
	category    string
}

func (f *draftFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "what the money was spent on")
	cmd.Flags().StringVarP(&f.amount, "amount", "a", "", "amount, e.g. 25.50 or 25,50")
	cmd.Flags().StringVarP(&f.payer, "payer", "p", "", "who paid")
	cmd.Flags().StringVarP(&f.category, "category", "c", "", "expense category")
}

// fill completes d from the flags that were set and asks for the rest.
// When editing, questions are pre-filled with the current values.
func (f *draftFlags) fill(cmd *cobra.Command, term *cli.Terminal, d core.Draft, editing bool) core.Draft {
	fields := []struct {
		flag     string
		question string
		value    string
		target   *string
	}{
		{"description", "Descrição:", f.description, &d.Description},
		{"amount", "Valor:", f.amount, &d.AmountText},
		{"payer", "Quem pagou:", f.payer, &d.Payer},
		{"category", "Categoria:", f.category, &d.Category},
	}
	for _, field := range fields {
		if cmd.Flags().Changed(field.flag) {
			*field.target = field.value
			continue
		}
		if editing {
			if v, ok := term.Prompt(field.question, *field.target); ok {
				*field.target = v
			}
			continue
		}
		if v, ok := term.Ask(field.question); ok {
			*field.target = v
		}
	}
	return d
}

func addCmd(opts *rootOptions) *cobra.Command {
	var flags draftFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new expense",
		Example: `  despesas add -d Almoço -a 25,50 -p Luiz -c Alimentação
  despesas add            # asks for each field`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer opts.closeApp(ctx, app)

			term := cli.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout())
			d := flags.fill(cmd, term, core.Draft{}, false)
			e, err := app.Ledger.SubmitDraft(ctx, d, nil)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Despesa %d registrada: %s %s", e.ID, e.Description, cli.FormatMoney(e.Amount))))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func editCmd(opts *rootOptions) *cobra.Command {
	var flags draftFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an expense",
		Long: `Edit an expense in place. The id never changes.

Fields given as flags replace the current values; the others are asked for,
pre-filled with what is stored. Press enter to keep a value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			app, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer opts.closeApp(ctx, app)

			current, err := app.Ledger.RequestEdit(id)
			if err != nil {
				return err
			}
			term := cli.NewTerminal(cmd.InOrStdin(), cmd.OutOrStdout())
			d := flags.fill(cmd, term, current, true)
			e, err := app.Ledger.SubmitDraft(ctx, d, &id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Despesa %d atualizada: %s %s", e.ID, e.Description, cli.FormatMoney(e.Amount))))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func deleteCmd(opts *rootOptions) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			app, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer opts.closeApp(ctx, app)

			out := cmd.OutOrStdout()
			if e, err := app.Ledger.Expense(id); err == nil {
				fmt.Fprintln(out, cli.RenderExpenses([]core.Expense{e}))
			}

			var confirm services.Confirm = cli.NewTerminal(cmd.InOrStdin(), out).Confirm
			if force {
				confirm = services.Always
			}
			removed, err := app.Ledger.RequestDelete(ctx, id, confirm)
			if err != nil {
				return err
			}
			if removed {
				fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Despesa %d excluída", id)))
			} else {
				fmt.Fprintln(out, cli.SubtleStyle.Render("Nada foi excluído."))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip the confirmation prompt")
	return cmd
}

func listCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List expenses in the order they were recorded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer opts.closeApp(ctx, app)

			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderExpenses(app.Ledger.Expenses()))
			return nil
		},
	}
}

func reportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show the total, the amount paid by each person and the sum per category",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := opts.open(ctx)
			if err != nil {
				return err
			}
			defer opts.closeApp(ctx, app)

			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderReport(app.Ledger.Report()))
			return nil
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid expense id %q: %w", s, err)
	}
	return id, nil
}
