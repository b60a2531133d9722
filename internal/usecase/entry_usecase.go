package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mpatel/khata/internal/domain"
	"github.com/mpatel/khata/internal/infrastructure/metrics"
)

// EntryUseCase handles creation and retrieval of debt entries.
type EntryUseCase struct {
	txManager    TransactionManager
	debtorRepo   DebtorRepository
	entryRepo    EntryRepository
	paymentRepo  PaymentRepository
	cashbookRepo CashbookRepository
	outboxRepo   OutboxRepository
	idGen        IDGenerator
	cache        Cache
	metrics      *metrics.Metrics
}

// WithMetrics attaches Prometheus metrics. Safe to skip in tests.
func (uc *EntryUseCase) WithMetrics(m *metrics.Metrics) *EntryUseCase {
	uc.metrics = m
	return uc
}

// NewEntryUseCase creates a new EntryUseCase. cache is optional.
func NewEntryUseCase(
	txManager TransactionManager,
	debtorRepo DebtorRepository,
	entryRepo EntryRepository,
	paymentRepo PaymentRepository,
	cashbookRepo CashbookRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	cache Cache,
) *EntryUseCase {
	return &EntryUseCase{
		txManager:    txManager,
		debtorRepo:   debtorRepo,
		entryRepo:    entryRepo,
		paymentRepo:  paymentRepo,
		cashbookRepo: cashbookRepo,
		outboxRepo:   outboxRepo,
		idGen:        idGen,
		cache:        cache,
	}
}

// CreateEntryInput represents input for creating a wage or invoice entry.
type CreateEntryInput struct {
	EntryDate      time.Time
	DebtorID       string
	Kind           domain.EntryKind
	Notes          string
	PartnerRef     string
	GrossAmount    decimal.Decimal
	PaidAtCreation decimal.Decimal
}

// CreateEntry records a new unit of debt. Any amount paid on the spot is
// reflected in the cashbook and in the debtor's cached outstanding, all in
// one transaction.
func (uc *EntryUseCase) CreateEntry(ctx context.Context, input CreateEntryInput) (*domain.Entry, error) {
	if input.Kind != "" && !input.Kind.Valid() {
		return nil, domain.ErrInvalidKind
	}

	if err := domain.ValidateEntryAmount(input.GrossAmount); err != nil {
		return nil, err
	}

	if err := domain.ValidateNotes(input.Notes); err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	debtor, err := uc.debtorRepo.GetByIDForUpdate(txCtx, tx, input.DebtorID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	entryDate := input.EntryDate
	if entryDate.IsZero() {
		entryDate = now
	}

	entry := &domain.Entry{
		ID:             uc.idGen.Generate(),
		DebtorID:       debtor.ID,
		Kind:           entryKindFor(debtor, input.Kind),
		EntryDate:      entryDate,
		GrossAmount:    input.GrossAmount,
		PaidAtCreation: input.PaidAtCreation,
		Notes:          input.Notes,
		CreatedAt:      now,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	if err := uc.entryRepo.Create(txCtx, tx, entry); err != nil {
		return nil, err
	}

	newOutstanding := debtor.Outstanding.Add(entry.GrossAmount).Sub(entry.PaidAtCreation)
	if err := uc.debtorRepo.UpdateOutstanding(txCtx, tx, debtor.ID, newOutstanding, now); err != nil {
		return nil, err
	}

	// Money that changed hands at creation goes in the cashbook right away.
	if entry.PaidAtCreation.GreaterThan(decimal.Zero) {
		if err := uc.cashbookRepo.Create(txCtx, tx, cashbookForEntry(uc.idGen.Generate(), debtor, entry, input.PartnerRef, now)); err != nil {
			return nil, err
		}
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   entry.ID,
		AggregateType: domain.AggregateTypeEntry,
		EventType:     domain.EventTypeEntryCreated,
		Payload: map[string]any{
			"entry_id":         entry.ID,
			"debtor_id":        entry.DebtorID,
			"kind":             string(entry.Kind),
			"gross_amount":     entry.GrossAmount.String(),
			"paid_at_creation": entry.PaidAtCreation.String(),
			"entry_date":       entry.EntryDate.Format(time.RFC3339),
		},
		CreatedAt: now,
		Published: false,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, outstandingDebtorKey(debtor.ID))
		_ = uc.cache.Delete(ctx, outstandingKindKey(debtor.Kind))
	}

	if uc.metrics != nil {
		uc.metrics.EntriesCreated.WithLabelValues(string(entry.Kind)).Inc()
		uc.metrics.EntryAmount.Observe(entry.GrossAmount.InexactFloat64())
	}

	return entry, nil
}

// GetEntry retrieves an entry by ID.
func (uc *EntryUseCase) GetEntry(ctx context.Context, id string) (*domain.Entry, error) {
	return uc.entryRepo.GetByID(ctx, id)
}

// ListEntriesByDebtor lists all entries for a debtor.
func (uc *EntryUseCase) ListEntriesByDebtor(ctx context.Context, debtorID string) ([]*domain.Entry, error) {
	return uc.entryRepo.ListByDebtor(ctx, debtorID)
}

// ListPaymentsByEntry lists the payment history of one entry.
func (uc *EntryUseCase) ListPaymentsByEntry(ctx context.Context, entryID string) ([]*domain.Payment, error) {
	if _, err := uc.entryRepo.GetByID(ctx, entryID); err != nil {
		return nil, err
	}

	return uc.paymentRepo.ListByEntry(ctx, entryID)
}

// ListPaymentsByDebtor lists all payments recorded against a debtor.
func (uc *EntryUseCase) ListPaymentsByDebtor(ctx context.Context, debtorID string) ([]*domain.Payment, error) {
	return uc.paymentRepo.ListByDebtor(ctx, debtorID)
}

// entryKindFor defaults the entry kind from the debtor kind when the caller
// leaves it unset.
func entryKindFor(debtor *domain.Debtor, kind domain.EntryKind) domain.EntryKind {
	if kind != "" {
		return kind
	}

	if debtor.Kind == domain.DebtorKindWorker {
		return domain.EntryKindWage
	}

	return domain.EntryKindInvoice
}

func cashbookForEntry(id string, debtor *domain.Debtor, entry *domain.Entry, partnerRef string, now time.Time) *domain.CashbookEntry {
	direction := domain.CashbookIncome
	verb := "received from"

	if debtor.Kind == domain.DebtorKindWorker {
		direction = domain.CashbookExpense
		verb = "paid to"
	}

	return &domain.CashbookEntry{
		ID:              id,
		TransactionDate: entry.EntryDate,
		Direction:       direction,
		Category:        domain.CashbookCategoryEntryCreation,
		Amount:          entry.PaidAtCreation,
		PartnerRef:      partnerRef,
		Description:     fmt.Sprintf("%s on %s entry %s %s", direction, entry.Kind, verb, debtor.Name),
		CreatedAt:       now,
	}
}
