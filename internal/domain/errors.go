package domain

import "errors"

var (
	// Debtor errors
	ErrDebtorNotFound = errors.New("debtor not found")
	ErrInvalidKind    = errors.New("invalid kind")

	// Entry errors
	ErrEntryNotFound = errors.New("entry not found")

	// Settlement errors
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidPaymentMode = errors.New("invalid payment mode")
	ErrExceedsOutstanding = errors.New("amount exceeds outstanding balance")
	ErrNothingToSettle    = errors.New("no outstanding balance to settle")
	ErrDataInconsistency  = errors.New("recorded payments exceed amount owed")
)
