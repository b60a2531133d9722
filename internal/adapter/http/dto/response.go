package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mpatel/khata/internal/domain"
)

// DebtorResponse represents a debtor in API responses.
type DebtorResponse struct {
	ID          string          `json:"id"`
	Kind        string          `json:"kind"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone,omitempty"`
	Outstanding decimal.Decimal `json:"outstanding"`
	Version     int64           `json:"version"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// DebtorFromDomain converts a domain debtor to a response.
func DebtorFromDomain(d *domain.Debtor) *DebtorResponse {
	return &DebtorResponse{
		ID:          d.ID,
		Kind:        string(d.Kind),
		Name:        d.Name,
		Phone:       d.Phone,
		Outstanding: d.Outstanding,
		Version:     d.Version,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// DebtorsFromDomain converts domain debtors to responses.
func DebtorsFromDomain(debtors []*domain.Debtor) []*DebtorResponse {
	result := make([]*DebtorResponse, len(debtors))
	for i, d := range debtors {
		result[i] = DebtorFromDomain(d)
	}
	return result
}

// ListDebtorsResponse wraps a debtor listing.
type ListDebtorsResponse struct {
	Debtors []*DebtorResponse `json:"debtors"`
	Total   int64             `json:"total"`
}

// EntryResponse represents an entry in API responses.
type EntryResponse struct {
	ID             string          `json:"id"`
	DebtorID       string          `json:"debtor_id"`
	Kind           string          `json:"kind"`
	EntryDate      time.Time       `json:"entry_date"`
	GrossAmount    decimal.Decimal `json:"gross_amount"`
	PaidAtCreation decimal.Decimal `json:"paid_at_creation"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:             e.ID,
		DebtorID:       e.DebtorID,
		Kind:           string(e.Kind),
		EntryDate:      e.EntryDate,
		GrossAmount:    e.GrossAmount,
		PaidAtCreation: e.PaidAtCreation,
		Notes:          e.Notes,
		CreatedAt:      e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// PaymentResponse represents a payment in API responses.
type PaymentResponse struct {
	ID          string          `json:"id"`
	EntryID     string          `json:"entry_id"`
	DebtorID    string          `json:"debtor_id"`
	PaymentDate time.Time       `json:"payment_date"`
	Amount      decimal.Decimal `json:"amount"`
	Mode        string          `json:"mode"`
	PartnerRef  string          `json:"partner_ref,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// PaymentFromDomain converts a domain payment to a response.
func PaymentFromDomain(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:          p.ID,
		EntryID:     p.EntryID,
		DebtorID:    p.DebtorID,
		PaymentDate: p.PaymentDate,
		Amount:      p.Amount,
		Mode:        string(p.Mode),
		PartnerRef:  p.PartnerRef,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
	}
}

// PaymentsFromDomain converts domain payments to responses.
func PaymentsFromDomain(payments []*domain.Payment) []*PaymentResponse {
	result := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		result[i] = PaymentFromDomain(p)
	}
	return result
}

// SettlementResponse represents the outcome of a settlement.
type SettlementResponse struct {
	Debtor      *DebtorResponse    `json:"debtor"`
	Payments    []*PaymentResponse `json:"payments"`
	Settled     decimal.Decimal    `json:"settled"`
	Outstanding decimal.Decimal    `json:"outstanding"`
}

// CashbookEntryResponse represents a cashbook entry in API responses.
type CashbookEntryResponse struct {
	ID              string          `json:"id"`
	TransactionDate time.Time       `json:"transaction_date"`
	Direction       string          `json:"direction"`
	Category        string          `json:"category"`
	Amount          decimal.Decimal `json:"amount"`
	PartnerRef      string          `json:"partner_ref,omitempty"`
	Description     string          `json:"description"`
	CreatedAt       time.Time       `json:"created_at"`
}

// CashbookEntriesFromDomain converts domain cashbook entries to responses.
func CashbookEntriesFromDomain(entries []*domain.CashbookEntry) []*CashbookEntryResponse {
	result := make([]*CashbookEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = &CashbookEntryResponse{
			ID:              e.ID,
			TransactionDate: e.TransactionDate,
			Direction:       e.Direction,
			Category:        e.Category,
			Amount:          e.Amount,
			PartnerRef:      e.PartnerRef,
			Description:     e.Description,
			CreatedAt:       e.CreatedAt,
		}
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
