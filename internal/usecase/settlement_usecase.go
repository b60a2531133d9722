package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mpatel/khata/internal/domain"
	"github.com/mpatel/khata/internal/infrastructure/metrics"
)

// SettlementUseCase applies payments to a debtor's open entries oldest-first
// and persists everything the settlement touches in one transaction.
type SettlementUseCase struct {
	txManager    TransactionManager
	debtorRepo   DebtorRepository
	entryRepo    EntryRepository
	paymentRepo  PaymentRepository
	cashbookRepo CashbookRepository
	outboxRepo   OutboxRepository
	idGen        IDGenerator
	retrier      Retrier
	cache        Cache
	metrics      *metrics.Metrics
}

// NewSettlementUseCase creates a new SettlementUseCase. retrier and cache are
// optional.
func NewSettlementUseCase(
	txManager TransactionManager,
	debtorRepo DebtorRepository,
	entryRepo EntryRepository,
	paymentRepo PaymentRepository,
	cashbookRepo CashbookRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
	cache Cache,
) *SettlementUseCase {
	return &SettlementUseCase{
		txManager:    txManager,
		debtorRepo:   debtorRepo,
		entryRepo:    entryRepo,
		paymentRepo:  paymentRepo,
		cashbookRepo: cashbookRepo,
		outboxRepo:   outboxRepo,
		idGen:        idGen,
		retrier:      retrier,
		cache:        cache,
	}
}

// WithMetrics attaches Prometheus metrics. Safe to skip in tests.
func (uc *SettlementUseCase) WithMetrics(m *metrics.Metrics) *SettlementUseCase {
	uc.metrics = m
	return uc
}

// SettleInput represents input for settling an amount against a debtor.
type SettleInput struct {
	PaymentDate time.Time
	DebtorID    string
	Mode        domain.PaymentMode
	PartnerRef  string
	Notes       string
	Amount      decimal.Decimal
}

// FullClearInput represents input for clearing a debtor's whole outstanding.
type FullClearInput struct {
	PaymentDate time.Time
	DebtorID    string
	Mode        domain.PaymentMode
	PartnerRef  string
	Notes       string
}

// SettlementResult is the outcome of a settlement.
type SettlementResult struct {
	Debtor      *domain.Debtor
	Payments    []*domain.Payment
	Settled     decimal.Decimal
	Outstanding decimal.Decimal
}

// Settle applies input.Amount to the debtor's open entries oldest-first.
// The payment must not exceed the debtor's total outstanding.
func (uc *SettlementUseCase) Settle(ctx context.Context, input SettleInput) (*SettlementResult, error) {
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}

	if !input.Mode.Valid() {
		return nil, domain.ErrInvalidPaymentMode
	}

	if err := domain.ValidateNotes(input.Notes); err != nil {
		return nil, err
	}

	start := time.Now()

	result, err := uc.run(ctx, input.DebtorID, func(txCtx context.Context, tx Transaction, debtor *domain.Debtor) (*SettlementResult, error) {
		return uc.settleLocked(txCtx, tx, debtor, input.Amount, paymentMeta{
			date:       input.PaymentDate,
			mode:       input.Mode,
			partnerRef: input.PartnerRef,
			notes:      input.Notes,
		})
	})

	if uc.metrics != nil {
		if err != nil {
			uc.metrics.SettlementErrors.WithLabelValues(errorType(err)).Inc()
		} else {
			uc.metrics.SettlementsRecorded.Inc()
			uc.metrics.SettlementAmount.Observe(result.Settled.InexactFloat64())
			uc.metrics.PaymentsPerSettle.Observe(float64(len(result.Payments)))
			uc.metrics.SettlementDuration.Observe(time.Since(start).Seconds())
		}
	}

	return result, err
}

func errorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrExceedsOutstanding):
		return "exceeds_outstanding"
	case errors.Is(err, domain.ErrNothingToSettle):
		return "nothing_to_settle"
	case errors.Is(err, domain.ErrDebtorNotFound):
		return "debtor_not_found"
	case errors.Is(err, domain.ErrDataInconsistency):
		return "data_inconsistency"
	default:
		return "other"
	}
}

// FullClear settles the debtor's entire outstanding balance in one call.
func (uc *SettlementUseCase) FullClear(ctx context.Context, input FullClearInput) (*SettlementResult, error) {
	if !input.Mode.Valid() {
		return nil, domain.ErrInvalidPaymentMode
	}

	if err := domain.ValidateNotes(input.Notes); err != nil {
		return nil, err
	}

	notes := input.Notes
	if notes == "" {
		notes = "full outstanding cleared"
	}

	result, err := uc.run(ctx, input.DebtorID, func(txCtx context.Context, tx Transaction, debtor *domain.Debtor) (*SettlementResult, error) {
		return uc.settleLocked(txCtx, tx, debtor, decimal.Decimal{}, paymentMeta{
			date:       input.PaymentDate,
			mode:       input.Mode,
			partnerRef: input.PartnerRef,
			notes:      notes,
			fullClear:  true,
		})
	})

	if uc.metrics != nil {
		if err != nil {
			uc.metrics.SettlementErrors.WithLabelValues(errorType(err)).Inc()
		} else {
			uc.metrics.FullClears.Inc()
			uc.metrics.SettlementsRecorded.Inc()
			uc.metrics.SettlementAmount.Observe(result.Settled.InexactFloat64())
		}
	}

	return result, err
}

type paymentMeta struct {
	date       time.Time
	mode       domain.PaymentMode
	partnerRef string
	notes      string
	fullClear  bool
}

// run wraps one settlement attempt in a transaction, retrying the whole
// attempt on transient database failures. A retry re-reads the debtor's
// state, so a concurrent settlement that commits first is observed instead of
// clobbered.
func (uc *SettlementUseCase) run(
	ctx context.Context,
	debtorID string,
	fn func(txCtx context.Context, tx Transaction, debtor *domain.Debtor) (*SettlementResult, error),
) (*SettlementResult, error) {
	var result *SettlementResult

	attempt := func() error {
		txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
		defer cancel()

		tx, err := uc.txManager.Begin(txCtx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(txCtx) }()

		// Row lock serializes concurrent settlements against the same debtor.
		debtor, err := uc.debtorRepo.GetByIDForUpdate(txCtx, tx, debtorID)
		if err != nil {
			return err
		}

		r, err := fn(txCtx, tx, debtor)
		if err != nil {
			return err
		}

		if err := tx.Commit(txCtx); err != nil {
			return err
		}

		result = r

		return nil
	}

	var err error
	if uc.retrier != nil {
		err = uc.retrier.Retry(ctx, attempt)
	} else {
		err = attempt()
	}

	if err != nil {
		return nil, err
	}

	uc.invalidateOutstanding(ctx, result.Debtor)

	return result, nil
}

func (uc *SettlementUseCase) settleLocked(
	txCtx context.Context,
	tx Transaction,
	debtor *domain.Debtor,
	amount decimal.Decimal,
	meta paymentMeta,
) (*SettlementResult, error) {
	entries, err := uc.entryRepo.ListByDebtorTx(txCtx, tx, debtor.ID)
	if err != nil {
		return nil, err
	}

	payments, err := uc.paymentRepo.ListByDebtorTx(txCtx, tx, debtor.ID)
	if err != nil {
		return nil, err
	}

	open, err := domain.OpenEntries(entries, groupByEntry(payments))
	if err != nil {
		return nil, err
	}

	total := domain.TotalOutstanding(open)

	if meta.fullClear {
		if total.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrNothingToSettle
		}

		amount = total
	}

	allocations, err := domain.Allocate(open, amount)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	paymentDate := meta.date
	if paymentDate.IsZero() {
		paymentDate = now
	}

	created := make([]*domain.Payment, 0, len(allocations))
	for _, alloc := range allocations {
		created = append(created, &domain.Payment{
			ID:          uc.idGen.Generate(),
			EntryID:     alloc.Entry.ID,
			DebtorID:    debtor.ID,
			PaymentDate: paymentDate,
			Amount:      alloc.Amount,
			Mode:        meta.mode,
			PartnerRef:  meta.partnerRef,
			Notes:       meta.notes,
			CreatedAt:   now,
		})
	}

	if err := uc.paymentRepo.CreateBatch(txCtx, tx, created); err != nil {
		return nil, err
	}

	// Recompute the cached aggregate inside the same transaction; it is never
	// trusted as ground truth on its own.
	newOutstanding := total.Sub(amount)
	if err := uc.debtorRepo.UpdateOutstanding(txCtx, tx, debtor.ID, newOutstanding, now); err != nil {
		return nil, err
	}

	if err := uc.cashbookRepo.Create(txCtx, tx, cashbookForSettlement(uc.idGen.Generate(), debtor, amount, paymentDate, meta, now)); err != nil {
		return nil, err
	}

	event := &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   debtor.ID,
		AggregateType: domain.AggregateTypeDebtor,
		EventType:     domain.EventTypeSettlementRecorded,
		Payload: map[string]any{
			"debtor_id":     debtor.ID,
			"debtor_kind":   string(debtor.Kind),
			"amount":        amount.String(),
			"outstanding":   newOutstanding.String(),
			"payment_count": len(created),
			"payment_date":  paymentDate.Format(time.RFC3339),
		},
		CreatedAt: now,
		Published: false,
	}
	if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
		return nil, err
	}

	debtor.Outstanding = newOutstanding
	debtor.UpdatedAt = now
	debtor.Version++

	return &SettlementResult{
		Debtor:      debtor,
		Payments:    created,
		Settled:     amount,
		Outstanding: newOutstanding,
	}, nil
}

func (uc *SettlementUseCase) invalidateOutstanding(ctx context.Context, debtor *domain.Debtor) {
	if uc.cache == nil {
		return
	}

	// Best effort; a stale summary only survives until its TTL.
	_ = uc.cache.Delete(ctx, outstandingDebtorKey(debtor.ID))
	_ = uc.cache.Delete(ctx, outstandingKindKey(debtor.Kind))
}

func cashbookForSettlement(
	id string,
	debtor *domain.Debtor,
	amount decimal.Decimal,
	paymentDate time.Time,
	meta paymentMeta,
	now time.Time,
) *domain.CashbookEntry {
	direction := domain.CashbookIncome
	category := domain.CashbookCategorySalesPayment
	verb := "received from"

	if debtor.Kind == domain.DebtorKindWorker {
		direction = domain.CashbookExpense
		category = domain.CashbookCategoryWagePayment
		verb = "paid to"
	}

	description := fmt.Sprintf("payment %s %s (%s)", verb, debtor.Name, meta.mode)
	if meta.notes != "" {
		description += " - " + meta.notes
	}

	return &domain.CashbookEntry{
		ID:              id,
		TransactionDate: paymentDate,
		Direction:       direction,
		Category:        category,
		Amount:          amount,
		PartnerRef:      meta.partnerRef,
		Description:     description,
		CreatedAt:       now,
	}
}

func groupByEntry(payments []*domain.Payment) map[string][]*domain.Payment {
	grouped := make(map[string][]*domain.Payment, len(payments))
	for _, p := range payments {
		grouped[p.EntryID] = append(grouped[p.EntryID], p)
	}

	return grouped
}

func outstandingDebtorKey(debtorID string) string {
	return "outstanding:debtor:" + debtorID
}

func outstandingKindKey(kind domain.DebtorKind) string {
	return "outstanding:kind:" + string(kind)
}
