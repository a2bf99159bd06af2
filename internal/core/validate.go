package core

import "fmt"

// Field names reported by ValidationError.
const (
	FieldDescription = "description"
	FieldAmount      = "amount"
	FieldPayer       = "payer"
	FieldCategory    = "category"
)

// User-facing rejection messages, one per gate rule.
const (
	MsgDescription = "Preencha o campo Descrição."
	MsgAmount      = "Preencha o campo Valor corretamente."
	MsgPayer       = "Escolha quem pagou."
	MsgCategory    = "Escolha uma categoria."
)

// ValidationError reports the first rule a draft violated.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// NewValidationError builds the rejection for field with its fixed message.
func NewValidationError(field string, err error) *ValidationError {
	msg := ""
	switch field {
	case FieldDescription:
		msg = MsgDescription
	case FieldAmount:
		msg = MsgAmount
	case FieldPayer:
		msg = MsgPayer
	case FieldCategory:
		msg = MsgCategory
	}
	return &ValidationError{Field: field, Message: msg, Err: err}
}

// ValidateDraft runs the gate rules in order and stops at the first failure.
// The description is checked for emptiness only, without trimming.
func ValidateDraft(d Draft, rules Rules) (Entry, error) {
	if d.Description == "" {
		return Entry{}, NewValidationError(FieldDescription, ErrEmptyDescription)
	}
	amount, err := ParseAmount(d.AmountText)
	if err != nil {
		return Entry{}, NewValidationError(FieldAmount, err)
	}
	if d.Payer == "" {
		return Entry{}, NewValidationError(FieldPayer, ErrEmptyPayer)
	}
	if !rules.HasPayer(d.Payer) {
		return Entry{}, NewValidationError(FieldPayer, ErrUnknownPayer)
	}
	if d.Category == "" {
		return Entry{}, NewValidationError(FieldCategory, ErrEmptyCategory)
	}
	return Entry{
		Description: d.Description,
		Amount:      amount,
		Payer:       d.Payer,
		Category:    d.Category,
	}, nil
}
