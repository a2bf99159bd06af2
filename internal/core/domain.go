package core

import (
	"errors"
	"slices"
)

type (
	Money struct {
		Cents int64
	}

	// Expense is one recorded spending event. ID never changes after creation.
	Expense struct {
		ID          int64
		Description string
		Amount      Money
		Payer       string
		Category    string
	}

	// Entry carries the fields of an expense that passed the validation gate.
	// Stores accept entries, never raw drafts.
	Entry struct {
		Description string
		Amount      Money
		Payer       string
		Category    string
	}

	// Draft is an unvalidated candidate expense as collected from a form or command line.
	Draft struct {
		Description string
		AmountText  string
		Payer       string
		Category    string
	}

	// Rules holds the closed configuration the validation gate checks drafts against.
	Rules struct {
		Payers []string
	}
)

// DefaultPayers are the participants of the reference deployment.
var DefaultPayers = []string{"Luiz", "Michely"}

// DefaultCategories is the seed list every session starts from.
var DefaultCategories = []string{"Alimentação", "Hospedagem", "Lazer", "Transporte"}

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptyPayer       = errors.New("empty payer")
	ErrUnknownPayer     = errors.New("unknown payer")
	ErrEmptyCategory    = errors.New("empty category")
	ErrUnknownCategory  = errors.New("unknown category")
)

// Validate checks that the amount is positive and at most MaxAmountCents.
func (m Money) Validate() error {
	if m.Cents <= 0 || m.Cents > MaxAmountCents {
		return ErrInvalidAmount
	}
	return nil
}

// Validate checks the invariants of a stored expense. It is looser than the draft
// gate: the payer and category only need to be non-empty.
func (e Expense) Validate() error {
	if e.Description == "" {
		return ErrEmptyDescription
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if e.Payer == "" {
		return ErrEmptyPayer
	}
	if e.Category == "" {
		return ErrEmptyCategory
	}
	return nil
}

// Entry returns the mutable fields of the expense.
func (e Expense) Entry() Entry {
	return Entry{
		Description: e.Description,
		Amount:      e.Amount,
		Payer:       e.Payer,
		Category:    e.Category,
	}
}

// WithEntry returns a copy of the expense with every field but ID replaced.
func (e Expense) WithEntry(en Entry) Expense {
	return Expense{
		ID:          e.ID,
		Description: en.Description,
		Amount:      en.Amount,
		Payer:       en.Payer,
		Category:    en.Category,
	}
}

// Draft renders the expense back into form fields, as used to pre-fill an edit.
func (e Expense) Draft() Draft {
	return Draft{
		Description: e.Description,
		AmountText:  e.Amount.String(),
		Payer:       e.Payer,
		Category:    e.Category,
	}
}

// HasPayer reports whether name is one of the configured payers.
// An empty payer list accepts any name.
func (r Rules) HasPayer(name string) bool {
	if len(r.Payers) == 0 {
		return true
	}
	return slices.Contains(r.Payers, name)
}
