package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mpatel/khata/internal/domain"
	"github.com/mpatel/khata/internal/usecase"
)

// CreateDebtorRequest represents a request to create a debtor.
type CreateDebtorRequest struct {
	Kind  string `json:"kind"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateDebtorRequest) ToUseCaseInput() usecase.CreateDebtorInput {
	return usecase.CreateDebtorInput{
		Kind:  domain.DebtorKind(r.Kind),
		Name:  r.Name,
		Phone: r.Phone,
	}
}

// CreateEntryRequest represents a request to record a wage or invoice entry.
// Amounts come in as strings so the client controls the exact decimal value.
type CreateEntryRequest struct {
	Kind           string     `json:"kind,omitempty"`
	EntryDate      *time.Time `json:"entry_date,omitempty"`
	GrossAmount    string     `json:"gross_amount"`
	PaidAtCreation string     `json:"paid_at_creation,omitempty"`
	PartnerRef     string     `json:"partner_ref,omitempty"`
	Notes          string     `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateEntryRequest) ToUseCaseInput(debtorID string) (usecase.CreateEntryInput, error) {
	gross, err := decimal.NewFromString(r.GrossAmount)
	if err != nil {
		return usecase.CreateEntryInput{}, err
	}

	paid := decimal.Zero
	if r.PaidAtCreation != "" {
		paid, err = decimal.NewFromString(r.PaidAtCreation)
		if err != nil {
			return usecase.CreateEntryInput{}, err
		}
	}

	input := usecase.CreateEntryInput{
		DebtorID:       debtorID,
		Kind:           domain.EntryKind(r.Kind),
		GrossAmount:    gross,
		PaidAtCreation: paid,
		PartnerRef:     r.PartnerRef,
		Notes:          r.Notes,
	}

	if r.EntryDate != nil {
		input.EntryDate = *r.EntryDate
	}

	return input, nil
}

// SettleRequest represents a request to settle an amount against a debtor's
// open entries.
type SettleRequest struct {
	Amount      string     `json:"amount"`
	Mode        string     `json:"mode"`
	PaymentDate *time.Time `json:"payment_date,omitempty"`
	PartnerRef  string     `json:"partner_ref,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *SettleRequest) ToUseCaseInput(debtorID string) (usecase.SettleInput, error) {
	amount, err := decimal.NewFromString(r.Amount)
	if err != nil {
		return usecase.SettleInput{}, err
	}

	input := usecase.SettleInput{
		DebtorID:   debtorID,
		Amount:     amount,
		Mode:       domain.PaymentMode(r.Mode),
		PartnerRef: r.PartnerRef,
		Notes:      r.Notes,
	}

	if r.PaymentDate != nil {
		input.PaymentDate = *r.PaymentDate
	}

	return input, nil
}

// FullClearRequest represents a request to clear a debtor's entire
// outstanding balance.
type FullClearRequest struct {
	Mode        string     `json:"mode"`
	PaymentDate *time.Time `json:"payment_date,omitempty"`
	PartnerRef  string     `json:"partner_ref,omitempty"`
	Notes       string     `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *FullClearRequest) ToUseCaseInput(debtorID string) usecase.FullClearInput {
	input := usecase.FullClearInput{
		DebtorID:   debtorID,
		Mode:       domain.PaymentMode(r.Mode),
		PartnerRef: r.PartnerRef,
		Notes:      r.Notes,
	}

	if r.PaymentDate != nil {
		input.PaymentDate = *r.PaymentDate
	}

	return input
}
