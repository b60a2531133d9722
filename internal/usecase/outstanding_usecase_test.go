package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mpatel/khata/internal/domain"
	"github.com/mpatel/khata/internal/usecase"
	"github.com/mpatel/khata/internal/usecase/mocks"
)

type outstandingFixture struct {
	debtorRepo  *mocks.MockDebtorRepository
	entryRepo   *mocks.MockEntryRepository
	paymentRepo *mocks.MockPaymentRepository
	cache       *mocks.MockCache
	uc          *usecase.OutstandingUseCase
}

func newOutstandingFixture() *outstandingFixture {
	f := &outstandingFixture{
		debtorRepo:  mocks.NewMockDebtorRepository(),
		entryRepo:   mocks.NewMockEntryRepository(),
		paymentRepo: mocks.NewMockPaymentRepository(),
		cache:       mocks.NewMockCache(),
	}

	f.uc = usecase.NewOutstandingUseCase(f.debtorRepo, f.entryRepo, f.paymentRepo, f.cache)

	return f
}

func (f *outstandingFixture) seed(t *testing.T) {
	t.Helper()

	ctx := context.Background()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	_ = f.debtorRepo.Create(ctx, &domain.Debtor{
		ID:          "worker-1",
		Kind:        domain.DebtorKindWorker,
		Name:        "Ramesh",
		Outstanding: decimal.NewFromInt(130),
	})

	_ = f.entryRepo.Create(ctx, nil, &domain.Entry{
		ID: "entry-1", DebtorID: "worker-1", Kind: domain.EntryKindWage,
		EntryDate: base, GrossAmount: decimal.NewFromInt(100), PaidAtCreation: decimal.NewFromInt(20),
	})
	_ = f.entryRepo.Create(ctx, nil, &domain.Entry{
		ID: "entry-2", DebtorID: "worker-1", Kind: domain.EntryKindWage,
		EntryDate: base.AddDate(0, 0, 1), GrossAmount: decimal.NewFromInt(80),
	})

	_ = f.paymentRepo.CreateBatch(ctx, nil, []*domain.Payment{
		{ID: "p-1", EntryID: "entry-1", DebtorID: "worker-1", Amount: decimal.NewFromInt(30)},
	})
}

func TestOutstandingUseCase_GetDebtorOutstanding(t *testing.T) {
	f := newOutstandingFixture()
	f.seed(t)

	result, err := f.uc.GetDebtorOutstanding(context.Background(), "worker-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Outstanding.Equal(decimal.NewFromInt(130)) {
		t.Errorf("expected outstanding 130, got %s", result.Outstanding)
	}

	if !result.TotalBilled.Equal(decimal.NewFromInt(180)) {
		t.Errorf("expected total billed 180, got %s", result.TotalBilled)
	}

	if !result.TotalPaid.Equal(decimal.NewFromInt(50)) {
		t.Errorf("expected total paid 50, got %s", result.TotalPaid)
	}

	if len(result.OpenEntries) != 2 {
		t.Fatalf("expected 2 open entries, got %d", len(result.OpenEntries))
	}

	// Oldest first.
	if result.OpenEntries[0].EntryID != "entry-1" || !result.OpenEntries[0].Outstanding.Equal(decimal.NewFromInt(50)) {
		t.Errorf("unexpected first open entry: %+v", result.OpenEntries[0])
	}
}

func TestOutstandingUseCase_GetDebtorOutstanding_ServedFromCache(t *testing.T) {
	f := newOutstandingFixture()
	f.seed(t)

	first, err := f.uc.GetDebtorOutstanding(context.Background(), "worker-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Repository reads after caching would change the answer; the cached view
	// must win until invalidated.
	f.entryRepo.ListByDebtorFunc = func(ctx context.Context, debtorID string) ([]*domain.Entry, error) {
		t.Fatal("expected cached result, repository was queried")
		return nil, nil
	}

	second, err := f.uc.GetDebtorOutstanding(context.Background(), "worker-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !second.Outstanding.Equal(first.Outstanding) {
		t.Errorf("cached outstanding %s differs from computed %s", second.Outstanding, first.Outstanding)
	}
}

func TestOutstandingUseCase_ListDebtorsWithOutstanding(t *testing.T) {
	f := newOutstandingFixture()
	f.seed(t)

	ctx := context.Background()

	// A fully settled worker must not appear in the list.
	_ = f.debtorRepo.Create(ctx, &domain.Debtor{
		ID:   "worker-2",
		Kind: domain.DebtorKindWorker,
		Name: "Suresh",
	})
	_ = f.entryRepo.Create(ctx, nil, &domain.Entry{
		ID: "entry-3", DebtorID: "worker-2", Kind: domain.EntryKindWage,
		EntryDate: time.Now(), GrossAmount: decimal.NewFromInt(60), PaidAtCreation: decimal.NewFromInt(60),
	})

	results, err := f.uc.ListDebtorsWithOutstanding(ctx, domain.DebtorKindWorker)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 1 || results[0].DebtorID != "worker-1" {
		t.Fatalf("expected only worker-1 to owe, got %+v", results)
	}
}

func TestOutstandingUseCase_ListDebtorsWithOutstanding_InvalidKind(t *testing.T) {
	f := newOutstandingFixture()

	if _, err := f.uc.ListDebtorsWithOutstanding(context.Background(), "vendor"); err != domain.ErrInvalidKind {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

func TestOutstandingUseCase_ListDebtorsWithOutstanding_PagesThroughLargeBooks(t *testing.T) {
	f := newOutstandingFixture()
	ctx := context.Background()

	// A full first page must not end the listing; the debtor on the
	// second page still owes money and has to show up.
	firstPage := make([]*domain.Debtor, 1000)
	for i := range firstPage {
		firstPage[i] = &domain.Debtor{
			ID:   "worker-bulk",
			Kind: domain.DebtorKindWorker,
			Name: "Bulk",
		}
	}
	overflow := &domain.Debtor{
		ID:   "worker-overflow",
		Kind: domain.DebtorKindWorker,
		Name: "Suresh",
	}

	var offsets []int
	f.debtorRepo.ListFunc = func(ctx context.Context, kind domain.DebtorKind, limit, offset int) ([]*domain.Debtor, error) {
		offsets = append(offsets, offset)
		if offset == 0 {
			return firstPage, nil
		}
		return []*domain.Debtor{overflow}, nil
	}

	_ = f.entryRepo.Create(ctx, nil, &domain.Entry{
		ID: "entry-overflow", DebtorID: "worker-overflow", Kind: domain.EntryKindWage,
		EntryDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), GrossAmount: decimal.NewFromInt(50),
	})

	results, err := f.uc.ListDebtorsWithOutstanding(ctx, domain.DebtorKindWorker)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(offsets) != 2 || offsets[0] != 0 || offsets[1] != 1000 {
		t.Fatalf("expected listing to page through offsets [0 1000], got %v", offsets)
	}

	found := false
	for _, r := range results {
		if r.DebtorID == "worker-overflow" {
			found = true
		}
	}
	if !found {
		t.Fatal("expected the debtor beyond the first page to be included")
	}
}
