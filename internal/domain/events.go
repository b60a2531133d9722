package domain

import "time"

// Event types
const (
	EventTypeSettlementRecorded = "settlement.recorded"
	EventTypeEntryCreated       = "entry.created"
)

// Aggregate types
const (
	AggregateTypeDebtor = "debtor"
	AggregateTypeEntry  = "entry"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// SettlementRecordedEvent payload
type SettlementRecordedEvent struct {
	DebtorID     string `json:"debtor_id"`
	DebtorKind   string `json:"debtor_kind"`
	Amount       string `json:"amount"`
	Outstanding  string `json:"outstanding"`
	PaymentCount int    `json:"payment_count"`
	PaymentDate  string `json:"payment_date"`
}

// EntryCreatedEvent payload
type EntryCreatedEvent struct {
	EntryID        string `json:"entry_id"`
	DebtorID       string `json:"debtor_id"`
	Kind           string `json:"kind"`
	GrossAmount    string `json:"gross_amount"`
	PaidAtCreation string `json:"paid_at_creation"`
	EntryDate      string `json:"entry_date"`
}
