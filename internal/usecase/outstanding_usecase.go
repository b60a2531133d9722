package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mpatel/khata/internal/domain"
	"github.com/mpatel/khata/internal/infrastructure/metrics"
)

// OutstandingUseCase computes per-debtor and per-kind outstanding views from
// the full entry/payment set.
type OutstandingUseCase struct {
	debtorRepo  DebtorRepository
	entryRepo   EntryRepository
	paymentRepo PaymentRepository
	cache       Cache
	cacheTTL    time.Duration
	metrics     *metrics.Metrics
}

// NewOutstandingUseCase creates a new OutstandingUseCase. cache is optional.
func NewOutstandingUseCase(
	debtorRepo DebtorRepository,
	entryRepo EntryRepository,
	paymentRepo PaymentRepository,
	cache Cache,
) *OutstandingUseCase {
	return &OutstandingUseCase{
		debtorRepo:  debtorRepo,
		entryRepo:   entryRepo,
		paymentRepo: paymentRepo,
		cache:       cache,
		cacheTTL:    OutstandingCacheTTL,
	}
}

// WithCacheTTL overrides how long computed summaries may be served from
// cache.
func (uc *OutstandingUseCase) WithCacheTTL(ttl time.Duration) *OutstandingUseCase {
	if ttl > 0 {
		uc.cacheTTL = ttl
	}
	return uc
}

// WithMetrics attaches Prometheus metrics. Safe to skip in tests.
func (uc *OutstandingUseCase) WithMetrics(m *metrics.Metrics) *OutstandingUseCase {
	uc.metrics = m
	return uc
}

// OpenEntryView is one entry with its outstanding state.
type OpenEntryView struct {
	EntryDate      time.Time       `json:"entry_date"`
	EntryID        string          `json:"entry_id"`
	Kind           string          `json:"kind"`
	Notes          string          `json:"notes,omitempty"`
	GrossAmount    decimal.Decimal `json:"gross_amount"`
	PaidAtCreation decimal.Decimal `json:"paid_at_creation"`
	PaidLater      decimal.Decimal `json:"paid_later"`
	Outstanding    decimal.Decimal `json:"outstanding"`
}

// DebtorOutstanding is the aggregated view of what one debtor owes.
type DebtorOutstanding struct {
	CheckedAt   time.Time       `json:"checked_at"`
	DebtorID    string          `json:"debtor_id"`
	Kind        string          `json:"kind"`
	Name        string          `json:"name"`
	Phone       string          `json:"phone,omitempty"`
	OpenEntries []OpenEntryView `json:"open_entries"`
	TotalBilled decimal.Decimal `json:"total_billed"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// GetDebtorOutstanding recomputes a debtor's outstanding from the complete
// entry/payment set. Results may be served from cache until the next
// settlement or entry invalidates them.
func (uc *OutstandingUseCase) GetDebtorOutstanding(ctx context.Context, debtorID string) (*DebtorOutstanding, error) {
	if cached := uc.fromCache(ctx, outstandingDebtorKey(debtorID), "debtor"); cached != nil {
		var result DebtorOutstanding
		if err := json.Unmarshal(cached, &result); err == nil {
			return &result, nil
		}
	}

	debtor, err := uc.debtorRepo.GetByID(ctx, debtorID)
	if err != nil {
		return nil, err
	}

	result, err := uc.computeOutstanding(ctx, debtor)
	if err != nil {
		return nil, err
	}

	uc.toCache(ctx, outstandingDebtorKey(debtorID), result)

	return result, nil
}

// ListDebtorsWithOutstanding returns every debtor of the given kind that
// still owes money, with their open entries.
func (uc *OutstandingUseCase) ListDebtorsWithOutstanding(ctx context.Context, kind domain.DebtorKind) ([]*DebtorOutstanding, error) {
	if !kind.Valid() {
		return nil, domain.ErrInvalidKind
	}

	if cached := uc.fromCache(ctx, outstandingKindKey(kind), "kind"); cached != nil {
		var results []*DebtorOutstanding
		if err := json.Unmarshal(cached, &results); err == nil {
			return results, nil
		}
	}

	debtors, err := listAllDebtors(ctx, uc.debtorRepo, kind)
	if err != nil {
		return nil, err
	}

	kindTotal := decimal.Zero

	results := make([]*DebtorOutstanding, 0, len(debtors))
	for _, debtor := range debtors {
		result, err := uc.computeOutstanding(ctx, debtor)
		if err != nil {
			return nil, err
		}

		if result.Outstanding.GreaterThan(decimal.Zero) {
			results = append(results, result)
			kindTotal = kindTotal.Add(result.Outstanding)
		}
	}

	if uc.metrics != nil {
		uc.metrics.OutstandingTotal.WithLabelValues(string(kind)).Set(kindTotal.InexactFloat64())
	}

	uc.toCache(ctx, outstandingKindKey(kind), results)

	return results, nil
}

func (uc *OutstandingUseCase) computeOutstanding(ctx context.Context, debtor *domain.Debtor) (*DebtorOutstanding, error) {
	entries, err := uc.entryRepo.ListByDebtor(ctx, debtor.ID)
	if err != nil {
		return nil, err
	}

	payments, err := uc.paymentRepo.ListByDebtor(ctx, debtor.ID)
	if err != nil {
		return nil, err
	}

	open, err := domain.OpenEntries(entries, groupByEntry(payments))
	if err != nil {
		return nil, err
	}

	totalBilled := decimal.Zero
	totalPaid := decimal.Zero

	views := make([]OpenEntryView, 0, len(open))
	for _, oe := range open {
		totalBilled = totalBilled.Add(oe.Entry.GrossAmount)
		totalPaid = totalPaid.Add(oe.Entry.PaidAtCreation).Add(oe.PaidLater)

		if oe.Outstanding.GreaterThan(decimal.Zero) {
			views = append(views, OpenEntryView{
				EntryID:        oe.Entry.ID,
				EntryDate:      oe.Entry.EntryDate,
				Kind:           string(oe.Entry.Kind),
				Notes:          oe.Entry.Notes,
				GrossAmount:    oe.Entry.GrossAmount,
				PaidAtCreation: oe.Entry.PaidAtCreation,
				PaidLater:      oe.PaidLater,
				Outstanding:    oe.Outstanding,
			})
		}
	}

	return &DebtorOutstanding{
		DebtorID:    debtor.ID,
		Kind:        string(debtor.Kind),
		Name:        debtor.Name,
		Phone:       debtor.Phone,
		OpenEntries: views,
		TotalBilled: totalBilled,
		TotalPaid:   totalPaid,
		Outstanding: totalBilled.Sub(totalPaid),
		CheckedAt:   time.Now().UTC(),
	}, nil
}

func (uc *OutstandingUseCase) fromCache(ctx context.Context, key, keyType string) []byte {
	if uc.cache == nil {
		return nil
	}

	data, err := uc.cache.Get(ctx, key)
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.CacheMisses.WithLabelValues(keyType).Inc()
		}
		return nil
	}

	if uc.metrics != nil {
		uc.metrics.CacheHits.WithLabelValues(keyType).Inc()
	}

	return data
}

func (uc *OutstandingUseCase) toCache(ctx context.Context, key string, value any) {
	if uc.cache == nil {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	_ = uc.cache.Set(ctx, key, data, uc.cacheTTL)
}

// listAllDebtors pages through the debtor repository until exhaustion, so
// books larger than one page are never silently truncated.
func listAllDebtors(ctx context.Context, repo DebtorRepository, kind domain.DebtorKind) ([]*domain.Debtor, error) {
	const pageSize = 1000

	var all []*domain.Debtor
	for offset := 0; ; offset += pageSize {
		page, err := repo.List(ctx, kind, pageSize, offset)
		if err != nil {
			return nil, err
		}

		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}
	}
}
