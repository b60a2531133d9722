package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMode is how the money changed hands.
type PaymentMode string

const (
	PaymentModeCash         PaymentMode = "cash"
	PaymentModeUPI          PaymentMode = "upi"
	PaymentModeCheque       PaymentMode = "cheque"
	PaymentModeBankTransfer PaymentMode = "bank_transfer"
)

// Valid reports whether the mode is one of the known payment modes.
func (m PaymentMode) Valid() bool {
	switch m {
	case PaymentModeCash, PaymentModeUPI, PaymentModeCheque, PaymentModeBankTransfer:
		return true
	}

	return false
}

// Payment is money applied against exactly one entry. Payments are created
// only by the settlement flow and are immutable afterwards; corrections are
// new records, never edits.
type Payment struct {
	PaymentDate time.Time
	CreatedAt   time.Time
	ID          string
	EntryID     string
	DebtorID    string
	Mode        PaymentMode
	PartnerRef  string
	Notes       string
	Amount      decimal.Decimal
}

// Validate validates a payment record.
func (p *Payment) Validate() error {
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if !p.Mode.Valid() {
		return ErrInvalidPaymentMode
	}

	return nil
}
