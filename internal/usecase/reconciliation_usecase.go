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

// ReconciliationUseCase asserts that each debtor's cached outstanding matches
// the amount recomputed from entries and payments.
type ReconciliationUseCase struct {
	debtorRepo  DebtorRepository
	entryRepo   EntryRepository
	paymentRepo PaymentRepository
	metrics     *metrics.Metrics
}

// NewReconciliationUseCase creates a new reconciliation use case
func NewReconciliationUseCase(
	debtorRepo DebtorRepository,
	entryRepo EntryRepository,
	paymentRepo PaymentRepository,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		debtorRepo:  debtorRepo,
		entryRepo:   entryRepo,
		paymentRepo: paymentRepo,
	}
}

// WithMetrics attaches Prometheus metrics. Safe to skip in tests.
func (uc *ReconciliationUseCase) WithMetrics(m *metrics.Metrics) *ReconciliationUseCase {
	uc.metrics = m
	return uc
}

// ReconciliationResult represents the result of a reconciliation check
type ReconciliationResult struct {
	CheckedAt           time.Time       `json:"checked_at"`
	DebtorID            string          `json:"debtor_id"`
	Name                string          `json:"name"`
	Anomaly             string          `json:"anomaly,omitempty"`
	RecordedOutstanding decimal.Decimal `json:"recorded_outstanding"`
	ComputedOutstanding decimal.Decimal `json:"computed_outstanding"`
	Difference          decimal.Decimal `json:"difference"`
	IsReconciled        bool            `json:"is_reconciled"`
}

// ReconcileDebtor recomputes a debtor's outstanding from the ledger and
// compares it with the cached aggregate. A per-entry overpayment is reported
// as an anomaly instead of failing the whole run, so the book can be flagged
// for manual correction.
func (uc *ReconciliationUseCase) ReconcileDebtor(ctx context.Context, debtorID string) (*ReconciliationResult, error) {
	debtor, err := uc.debtorRepo.GetByID(ctx, debtorID)
	if err != nil {
		return nil, err
	}

	entries, err := uc.entryRepo.ListByDebtor(ctx, debtorID)
	if err != nil {
		return nil, err
	}

	payments, err := uc.paymentRepo.ListByDebtor(ctx, debtorID)
	if err != nil {
		return nil, err
	}

	result := &ReconciliationResult{
		DebtorID:            debtor.ID,
		Name:                debtor.Name,
		RecordedOutstanding: debtor.Outstanding,
		CheckedAt:           time.Now().UTC(),
	}

	open, err := domain.OpenEntries(entries, groupByEntry(payments))
	if err != nil {
		if errors.Is(err, domain.ErrDataInconsistency) {
			result.Anomaly = err.Error()
			return result, nil
		}

		return nil, err
	}

	result.ComputedOutstanding = domain.TotalOutstanding(open)
	result.Difference = result.RecordedOutstanding.Sub(result.ComputedOutstanding)
	result.IsReconciled = result.Difference.IsZero()

	return result, nil
}

// ReconciliationReport represents a full reconciliation report
type ReconciliationReport struct {
	CheckedAt         time.Time               `json:"checked_at"`
	Discrepancies     []*ReconciliationResult `json:"discrepancies"`
	TotalDebtors      int                     `json:"total_debtors"`
	ReconciledDebtors int                     `json:"reconciled_debtors"`
}

// ReconcileAll reconciles every debtor in the book.
func (uc *ReconciliationUseCase) ReconcileAll(ctx context.Context) (*ReconciliationReport, error) {
	report := &ReconciliationReport{
		Discrepancies: make([]*ReconciliationResult, 0),
		CheckedAt:     time.Now().UTC(),
	}

	for _, kind := range []domain.DebtorKind{domain.DebtorKindWorker, domain.DebtorKindClient} {
		debtors, err := listAllDebtors(ctx, uc.debtorRepo, kind)
		if err != nil {
			return nil, err
		}

		for _, debtor := range debtors {
			result, err := uc.ReconcileDebtor(ctx, debtor.ID)
			if err != nil {
				return nil, fmt.Errorf("failed to reconcile debtor %s: %w", debtor.ID, err)
			}

			report.TotalDebtors++

			if result.IsReconciled && result.Anomaly == "" {
				report.ReconciledDebtors++
			} else {
				report.Discrepancies = append(report.Discrepancies, result)

				if uc.metrics != nil {
					uc.metrics.ReconciliationDrift.WithLabelValues(string(debtor.Kind)).Inc()
				}
			}
		}
	}

	if uc.metrics != nil {
		uc.metrics.ReconciliationRuns.Inc()
	}

	return report, nil
}
