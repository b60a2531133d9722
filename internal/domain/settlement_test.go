package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func openEntry(id string, date time.Time, outstanding string) OpenEntry {
	out := decimal.RequireFromString(outstanding)

	return OpenEntry{
		Entry: &Entry{
			ID:          id,
			EntryDate:   date,
			GrossAmount: out,
		},
		Outstanding: out,
	}
}

func TestOpenEntries_SortsOldestFirst(t *testing.T) {
	t1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.AddDate(0, 0, 5)
	t3 := t1.AddDate(0, 0, 9)

	entries := []*Entry{
		{ID: "e3", EntryDate: t3, GrossAmount: decimal.NewFromInt(30)},
		{ID: "e1", EntryDate: t1, GrossAmount: decimal.NewFromInt(100)},
		{ID: "e2", EntryDate: t2, GrossAmount: decimal.NewFromInt(50)},
	}

	open, err := OpenEntries(entries, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"e1", "e2", "e3"}
	for i, oe := range open {
		if oe.Entry.ID != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], oe.Entry.ID)
		}
	}
}

func TestOpenEntries_TieBreaksOnID(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	entries := []*Entry{
		{ID: "b", EntryDate: day, GrossAmount: decimal.NewFromInt(10)},
		{ID: "a", EntryDate: day, GrossAmount: decimal.NewFromInt(10)},
	}

	open, err := OpenEntries(entries, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if open[0].Entry.ID != "a" || open[1].Entry.ID != "b" {
		t.Errorf("expected deterministic ID tie-break, got [%s %s]", open[0].Entry.ID, open[1].Entry.ID)
	}
}

func TestOpenEntries_ComputesOutstanding(t *testing.T) {
	e := &Entry{
		ID:             "e1",
		EntryDate:      time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		GrossAmount:    decimal.RequireFromString("500.00"),
		PaidAtCreation: decimal.RequireFromString("100.00"),
	}

	payments := map[string][]*Payment{
		"e1": {
			{EntryID: "e1", Amount: decimal.RequireFromString("150.00")},
			{EntryID: "e1", Amount: decimal.RequireFromString("50.00")},
		},
	}

	open, err := OpenEntries([]*Entry{e}, payments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !open[0].Outstanding.Equal(decimal.RequireFromString("200.00")) {
		t.Errorf("expected outstanding 200.00, got %s", open[0].Outstanding)
	}

	if !open[0].PaidLater.Equal(decimal.RequireFromString("200.00")) {
		t.Errorf("expected paid later 200.00, got %s", open[0].PaidLater)
	}
}

func TestOpenEntries_Idempotent(t *testing.T) {
	entries := []*Entry{
		{ID: "e1", EntryDate: time.Now(), GrossAmount: decimal.NewFromInt(75), PaidAtCreation: decimal.NewFromInt(25)},
	}
	payments := map[string][]*Payment{
		"e1": {{EntryID: "e1", Amount: decimal.NewFromInt(10)}},
	}

	first, err := OpenEntries(entries, payments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := OpenEntries(entries, payments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !first[0].Outstanding.Equal(second[0].Outstanding) {
		t.Errorf("aggregation drifted: %s vs %s", first[0].Outstanding, second[0].Outstanding)
	}
}

func TestOpenEntries_RejectsOverpaidEntry(t *testing.T) {
	entries := []*Entry{
		{ID: "e1", EntryDate: time.Now(), GrossAmount: decimal.NewFromInt(50)},
	}
	payments := map[string][]*Payment{
		"e1": {{EntryID: "e1", Amount: decimal.NewFromInt(60)}},
	}

	_, err := OpenEntries(entries, payments)
	if !errors.Is(err, ErrDataInconsistency) {
		t.Fatalf("expected ErrDataInconsistency, got %v", err)
	}
}

func TestAllocate_OldestFirst(t *testing.T) {
	t1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	open := []OpenEntry{
		openEntry("e1", t1, "100"),
		openEntry("e2", t1.AddDate(0, 0, 1), "50"),
		openEntry("e3", t1.AddDate(0, 0, 2), "30"),
	}

	allocations, err := Allocate(open, decimal.NewFromInt(120))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(allocations) != 2 {
		t.Fatalf("expected 2 allocations, got %d", len(allocations))
	}

	if allocations[0].Entry.ID != "e1" || !allocations[0].Amount.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected 100 against e1, got %s against %s", allocations[0].Amount, allocations[0].Entry.ID)
	}

	if allocations[1].Entry.ID != "e2" || !allocations[1].Amount.Equal(decimal.NewFromInt(20)) {
		t.Errorf("expected 20 against e2, got %s against %s", allocations[1].Amount, allocations[1].Entry.ID)
	}
}

func TestAllocate_SplitsAcrossManyEntries(t *testing.T) {
	t1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	open := []OpenEntry{
		openEntry("e1", t1, "40"),
		openEntry("e2", t1.AddDate(0, 0, 1), "40"),
		openEntry("e3", t1.AddDate(0, 0, 2), "40"),
	}

	allocations, err := Allocate(open, decimal.NewFromInt(100))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"40", "40", "20"}
	if len(allocations) != len(want) {
		t.Fatalf("expected %d allocations, got %d", len(want), len(allocations))
	}

	for i, w := range want {
		if !allocations[i].Amount.Equal(decimal.RequireFromString(w)) {
			t.Errorf("allocation %d: expected %s, got %s", i, w, allocations[i].Amount)
		}
	}
}

func TestAllocate_Conservation(t *testing.T) {
	t1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	open := []OpenEntry{
		openEntry("e1", t1, "33.10"),
		openEntry("e2", t1.AddDate(0, 0, 1), "0.07"),
		openEntry("e3", t1.AddDate(0, 0, 2), "120.95"),
	}

	amount := decimal.RequireFromString("94.33")

	allocations, err := Allocate(open, amount)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sum := decimal.Zero
	for _, a := range allocations {
		sum = sum.Add(a.Amount)
	}

	if !sum.Equal(amount) {
		t.Errorf("conservation violated: allocated %s of %s", sum, amount)
	}
}

func TestAllocate_DecimalExactness(t *testing.T) {
	t1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	open := []OpenEntry{
		openEntry("e1", t1, "20.00"),
		openEntry("e2", t1.AddDate(0, 0, 1), "20.00"),
	}

	allocations, err := Allocate(open, decimal.RequireFromString("33.33"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !allocations[0].Amount.Equal(decimal.RequireFromString("20.00")) {
		t.Errorf("expected first allocation 20.00, got %s", allocations[0].Amount)
	}

	if !allocations[1].Amount.Equal(decimal.RequireFromString("13.33")) {
		t.Errorf("expected second allocation 13.33, got %s", allocations[1].Amount)
	}
}

func TestAllocate_RejectsNonPositiveAmount(t *testing.T) {
	open := []OpenEntry{openEntry("e1", time.Now(), "40")}

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		allocations, err := Allocate(open, amount)
		if !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("amount %s: expected ErrInvalidAmount, got %v", amount, err)
		}

		if allocations != nil {
			t.Errorf("amount %s: expected no allocations, got %d", amount, len(allocations))
		}
	}
}

func TestAllocate_RejectsOverAllocation(t *testing.T) {
	t1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	open := []OpenEntry{
		openEntry("e1", t1, "40"),
		openEntry("e2", t1.AddDate(0, 0, 1), "40"),
	}

	allocations, err := Allocate(open, decimal.NewFromInt(90))
	if !errors.Is(err, ErrExceedsOutstanding) {
		t.Fatalf("expected ErrExceedsOutstanding, got %v", err)
	}

	if allocations != nil {
		t.Errorf("expected no allocations on rejection, got %d", len(allocations))
	}
}

func TestAllocate_SkipsSettledEntries(t *testing.T) {
	t1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	open := []OpenEntry{
		openEntry("e1", t1, "0"),
		openEntry("e2", t1.AddDate(0, 0, 1), "50"),
	}

	allocations, err := Allocate(open, decimal.NewFromInt(25))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(allocations) != 1 || allocations[0].Entry.ID != "e2" {
		t.Fatalf("expected single allocation against e2, got %+v", allocations)
	}
}

func TestTotalOutstanding(t *testing.T) {
	t1 := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	open := []OpenEntry{
		openEntry("e1", t1, "10.50"),
		openEntry("e2", t1, "0.25"),
	}

	if got := TotalOutstanding(open); !got.Equal(decimal.RequireFromString("10.75")) {
		t.Errorf("expected 10.75, got %s", got)
	}
}
