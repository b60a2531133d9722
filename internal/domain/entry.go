package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind identifies what created the debt.
type EntryKind string

const (
	EntryKindWage    EntryKind = "wage"
	EntryKindInvoice EntryKind = "invoice"
)

// Valid reports whether the kind is one of the known entry kinds.
func (k EntryKind) Valid() bool {
	return k == EntryKindWage || k == EntryKindInvoice
}

// Entry is a unit of debt created at one point in time: a wage earned by a
// worker, or a sales invoice billed to a client. Entries are append-only;
// only the payments applied against them ever grow.
type Entry struct {
	EntryDate      time.Time
	CreatedAt      time.Time
	ID             string
	DebtorID       string
	Kind           EntryKind
	Notes          string
	GrossAmount    decimal.Decimal
	PaidAtCreation decimal.Decimal
}

// Validate validates a new entry.
func (e *Entry) Validate() error {
	if !e.Kind.Valid() {
		return ErrInvalidKind
	}

	if e.GrossAmount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if e.PaidAtCreation.IsNegative() || e.PaidAtCreation.GreaterThan(e.GrossAmount) {
		return ErrInvalidAmount
	}

	return nil
}
