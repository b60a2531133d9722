package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidDebtorName = errors.New("invalid debtor name")
	ErrInvalidPhone      = errors.New("invalid phone number")
	ErrAmountTooLarge    = errors.New("amount exceeds maximum allowed")
	ErrNotesTooLong      = errors.New("notes exceed length limit")
)

// Validation constants
const (
	MaxDebtorNameLength = 255
	MaxNotesLength      = 1024
	MaxEntryAmount      = "100000000" // 10 crore
)

var phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9\- ]{6,14}$`)

// ValidateDebtorName validates a debtor name.
func ValidateDebtorName(name string) error {
	name = strings.TrimSpace(name)

	if name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidDebtorName)
	}

	if len(name) > MaxDebtorNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidDebtorName, MaxDebtorNameLength)
	}

	return nil
}

// ValidatePhone validates a phone number. Empty is allowed; not every worker
// in the book has one on record.
func ValidatePhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil
	}

	if !phoneRegex.MatchString(phone) {
		return ErrInvalidPhone
	}

	return nil
}

// ValidateEntryAmount validates a gross entry amount against book limits.
func ValidateEntryAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxEntryAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxEntryAmount)
	}

	return nil
}

// ValidateNotes validates free-text notes length.
func ValidateNotes(notes string) error {
	if len(notes) > MaxNotesLength {
		return fmt.Errorf("%w: limit is %d bytes", ErrNotesTooLong, MaxNotesLength)
	}

	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int, error) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset, nil
}
