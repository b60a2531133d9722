package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtorKind distinguishes the two ledgers sharing the settlement flow.
type DebtorKind string

const (
	DebtorKindWorker DebtorKind = "worker"
	DebtorKindClient DebtorKind = "client"
)

// Valid reports whether the kind is one of the known debtor kinds.
func (k DebtorKind) Valid() bool {
	return k == DebtorKindWorker || k == DebtorKindClient
}

// Debtor is a worker or client who owes money tracked by entries.
//
// Outstanding mirrors the sum of open entry balances. It is a read-through
// cache: every transaction that touches the debtor's entries or payments
// recomputes it before commit, and reconciliation asserts it against the
// entry/payment sum.
type Debtor struct {
	CreatedAt   time.Time
	UpdatedAt   time.Time
	ID          string
	Kind        DebtorKind
	Name        string
	Phone       string
	Outstanding decimal.Decimal
	Version     int64
}
