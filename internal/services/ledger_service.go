package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"despesas/internal/categories"
	"despesas/internal/core"
	"despesas/internal/ledger"
)

// Questions asked before destructive or interactive category actions.
const (
	ConfirmDeleteExpense  = "Tem certeza que deseja excluir esta despesa?"
	ConfirmDeleteCategory = "Deseja realmente excluir essa categoria?"
	PromptRenameCategory  = "Novo nome da categoria:"
)

// Confirm asks the user a yes/no question.
type Confirm func(question string) bool

// Prompt asks the user for a value, pre-filled with current. ok is false
// when the user cancelled.
type Prompt func(question, current string) (value string, ok bool)

// Ledger is the single entry point the CLI and HTTP layers use. It runs the
// validation gate before touching a store and asks for confirmation before
// anything is removed.
type Ledger struct {
	expenses   *ledger.Store
	categories *categories.Store
	rules      core.Rules
	logger     *slog.Logger
}

func NewLedger(expenses *ledger.Store, cats *categories.Store, payers []string, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{
		expenses:   expenses,
		categories: cats,
		rules:      core.Rules{Payers: slices.Clone(payers)},
		logger:     logger,
	}
}

// SubmitDraft validates the draft and creates an expense, or updates the one
// with editingID when it is set. A new expense must use a listed category;
// an edit may also keep the category the expense already had, even if that
// category was renamed or removed since.
func (l *Ledger) SubmitDraft(ctx context.Context, d core.Draft, editingID *int64) (core.Expense, error) {
	entry, err := core.ValidateDraft(d, l.rules)
	if err != nil {
		l.logger.DebugContext(ctx, "Draft rejected", "error", err)
		return core.Expense{}, err
	}

	if editingID == nil {
		if !l.categories.Contains(entry.Category) {
			return core.Expense{}, core.NewValidationError(core.FieldCategory, core.ErrUnknownCategory)
		}
		return l.expenses.Add(ctx, entry)
	}

	current, ok := l.expenses.Get(*editingID)
	if !ok {
		return core.Expense{}, fmt.Errorf("update expense %d: %w", *editingID, ledger.ErrNotFound)
	}
	if entry.Category != current.Category && !l.categories.Contains(entry.Category) {
		return core.Expense{}, core.NewValidationError(core.FieldCategory, core.ErrUnknownCategory)
	}
	return l.expenses.Update(ctx, *editingID, entry)
}

// RequestEdit returns the draft used to pre-fill the edit form.
func (l *Ledger) RequestEdit(id int64) (core.Draft, error) {
	e, ok := l.expenses.Get(id)
	if !ok {
		return core.Draft{}, fmt.Errorf("edit expense %d: %w", id, ledger.ErrNotFound)
	}
	return e.Draft(), nil
}

// Expense returns one expense by id.
func (l *Ledger) Expense(id int64) (core.Expense, error) {
	e, ok := l.expenses.Get(id)
	if !ok {
		return core.Expense{}, fmt.Errorf("expense %d: %w", id, ledger.ErrNotFound)
	}
	return e, nil
}

// RequestDelete removes the expense once confirm agrees. It reports whether
// something was removed; declining or a missing id both return false.
func (l *Ledger) RequestDelete(ctx context.Context, id int64, confirm Confirm) (bool, error) {
	if confirm == nil || !confirm(ConfirmDeleteExpense) {
		l.logger.DebugContext(ctx, "Expense deletion declined", "id", id)
		return false, nil
	}
	return l.expenses.Delete(ctx, id)
}

func (l *Ledger) AddCategory(ctx context.Context, name string) (bool, error) {
	return l.categories.Add(ctx, name)
}

// RenameCategory asks prompt for the new name of the category at index.
// Expenses keep the old name.
func (l *Ledger) RenameCategory(ctx context.Context, index int, prompt Prompt) (bool, error) {
	current, ok := l.categories.At(index)
	if !ok || prompt == nil {
		return false, nil
	}
	name, ok := prompt(PromptRenameCategory, current)
	if !ok {
		return false, nil
	}
	return l.categories.RenameAt(ctx, index, name)
}

// RemoveCategory removes the category at index once confirm agrees.
// Expenses that use it are left untouched.
func (l *Ledger) RemoveCategory(ctx context.Context, index int, confirm Confirm) (bool, error) {
	if _, ok := l.categories.At(index); !ok {
		return false, nil
	}
	if confirm == nil || !confirm(ConfirmDeleteCategory) {
		return false, nil
	}
	return l.categories.RemoveAt(ctx, index)
}

func (l *Ledger) Expenses() []core.Expense {
	return l.expenses.List()
}

func (l *Ledger) Categories() []string {
	return l.categories.List()
}

func (l *Ledger) Payers() []string {
	return slices.Clone(l.rules.Payers)
}

// Report recomputes the totals from the current expenses.
func (l *Ledger) Report() core.Report {
	return core.Summarize(l.expenses.List(), l.rules.Payers)
}

// IsNotFound reports whether err means the targeted expense does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ledger.ErrNotFound)
}

// Always and Never are fixed answers for callers that confirm up front.
func Always(string) bool { return true }
func Never(string) bool  { return false }

// Fixed returns a prompt that always answers name.
func Fixed(name string) Prompt {
	return func(string, string) (string, bool) { return name, true }
}
