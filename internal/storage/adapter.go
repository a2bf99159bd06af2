package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"despesas/internal/core"
)

const (
	DefaultExpenseKey  = "despesas"
	DefaultCategoryKey = "categorias"
)

// expenseRecord is the stored shape of an expense.
type expenseRecord struct {
	ID        int64       `json:"id"`
	Descricao string      `json:"descricao"`
	Valor     json.Number `json:"valor"`
	QuemPagou string      `json:"quemPagou"`
	Categoria string      `json:"categoria"`
}

// ExpenseAdapter loads and saves the whole expense collection under one key.
type ExpenseAdapter struct {
	slot Slot
	key  string
}

func NewExpenseAdapter(slot Slot, key string) *ExpenseAdapter {
	if key == "" {
		key = DefaultExpenseKey
	}
	return &ExpenseAdapter{slot: slot, key: key}
}

// Load returns the stored collection. Missing or malformed data yields an
// empty collection; the problem is logged and never returned.
func (a *ExpenseAdapter) Load(ctx context.Context) []core.Expense {
	raw, err := a.slot.Get(ctx, a.key)
	if errors.Is(err, ErrNotFound) {
		return []core.Expense{}
	}
	if err != nil {
		slog.WarnContext(ctx, "Failed to read stored expenses, starting empty", "key", a.key, "error", err)
		return []core.Expense{}
	}
	expenses, skipped, err := DecodeExpenses(raw)
	if err != nil {
		slog.WarnContext(ctx, "Stored expenses are malformed, starting empty", "key", a.key, "error", err)
		return []core.Expense{}
	}
	if skipped > 0 {
		slog.WarnContext(ctx, "Dropped invalid stored expenses", "key", a.key, "skipped", skipped)
	}
	return expenses
}

// Save overwrites the key with the full collection.
func (a *ExpenseAdapter) Save(ctx context.Context, expenses []core.Expense) error {
	raw, err := EncodeExpenses(expenses)
	if err != nil {
		return err
	}
	if err := a.slot.Put(ctx, a.key, raw); err != nil {
		return fmt.Errorf("save expenses: %w", err)
	}
	return nil
}

// EncodeExpenses renders the collection as a JSON array, keeping its order.
func EncodeExpenses(expenses []core.Expense) ([]byte, error) {
	records := make([]expenseRecord, len(expenses))
	for i, e := range expenses {
		records[i] = expenseRecord{
			ID:        e.ID,
			Descricao: e.Description,
			Valor:     json.Number(e.Amount.Decimal().String()),
			QuemPagou: e.Payer,
			Categoria: e.Category,
		}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode expenses: %w", err)
	}
	return raw, nil
}

// DecodeExpenses parses a stored collection. A JSON null decodes to an empty
// collection. Records that break the expense invariants, such as a missing or
// out of range valor, are left out and counted in skipped.
func DecodeExpenses(raw []byte) (expenses []core.Expense, skipped int, err error) {
	var records []expenseRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, 0, fmt.Errorf("decode expenses: %w", err)
	}
	expenses = make([]core.Expense, 0, len(records))
	for _, r := range records {
		e := core.Expense{
			ID:          r.ID,
			Description: r.Descricao,
			Payer:       r.QuemPagou,
			Category:    r.Categoria,
		}
		d, err := decimal.NewFromString(r.Valor.String())
		if err != nil {
			skipped++
			continue
		}
		amount, ok := core.MoneyFromDecimal(d)
		if !ok {
			skipped++
			continue
		}
		e.Amount = amount
		if e.Validate() != nil {
			skipped++
			continue
		}
		expenses = append(expenses, e)
	}
	return expenses, skipped, nil
}

// CategoryAdapter persists the category list. It is only wired when category
// persistence is enabled in the configuration.
type CategoryAdapter struct {
	slot Slot
	key  string
}

func NewCategoryAdapter(slot Slot, key string) *CategoryAdapter {
	if key == "" {
		key = DefaultCategoryKey
	}
	return &CategoryAdapter{slot: slot, key: key}
}

// Load returns the stored list, or ok=false when nothing usable is stored.
func (a *CategoryAdapter) Load(ctx context.Context) (names []string, ok bool) {
	raw, err := a.slot.Get(ctx, a.key)
	if errors.Is(err, ErrNotFound) {
		return nil, false
	}
	if err != nil {
		slog.WarnContext(ctx, "Failed to read stored categories, using seed list", "key", a.key, "error", err)
		return nil, false
	}
	if err := json.Unmarshal(raw, &names); err != nil || names == nil {
		slog.WarnContext(ctx, "Stored categories are malformed, using seed list", "key", a.key, "error", err)
		return nil, false
	}
	return names, true
}

func (a *CategoryAdapter) Save(ctx context.Context, names []string) error {
	if names == nil {
		names = []string{}
	}
	raw, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("encode categories: %w", err)
	}
	if err := a.slot.Put(ctx, a.key, raw); err != nil {
		return fmt.Errorf("save categories: %w", err)
	}
	return nil
}
