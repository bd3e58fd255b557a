package errs

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ConflictError reports an operation that clashes with the stored state:
// re-invoicing, double salary payment, concurrent modification.
type ConflictError struct {
	Entity string
	ID     string
	Reason string
}

func NewConflictError(entity, id, reason string) *ConflictError {
	return &ConflictError{Entity: entity, ID: id, Reason: reason}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s %s: %s", ErrConflict, e.Entity, e.ID, e.Reason)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// AmountMismatchError reports a settlement whose entered amount does not match
// the expected total. Difference is Entered - Expected.
type AmountMismatchError struct {
	Currency   string
	Expected   decimal.Decimal
	Entered    decimal.Decimal
	Difference decimal.Decimal
}

func NewAmountMismatchError(currency string, expected, entered decimal.Decimal) *AmountMismatchError {
	return &AmountMismatchError{
		Currency:   currency,
		Expected:   expected,
		Entered:    entered,
		Difference: entered.Sub(expected),
	}
}

func (e *AmountMismatchError) Error() string {
	direction := "over"
	if e.Difference.IsNegative() {
		direction = "short"
	}
	return fmt.Sprintf("reconciliation %s by %s %s (expected %s, entered %s)",
		direction, e.Currency, e.Difference.Abs().StringFixed(2),
		e.Expected.StringFixed(2), e.Entered.StringFixed(2))
}

func (e *AmountMismatchError) Unwrap() error {
	return ErrConflict
}
