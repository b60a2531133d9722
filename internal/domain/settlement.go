package domain

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// OpenEntry is an entry annotated with its current outstanding balance.
type OpenEntry struct {
	Entry       *Entry
	PaidLater   decimal.Decimal
	Outstanding decimal.Decimal
}

// OpenEntries computes the outstanding balance of every entry from the
// payments applied to it and returns the result sorted oldest-first by entry
// date, tie-broken on entry ID. This ordering is the contract Allocate
// depends on.
//
// Entries with zero outstanding are kept so callers can report full history;
// a negative computed outstanding means more was recorded against an entry
// than it was ever worth and fails with ErrDataInconsistency rather than
// propagating a negative balance.
func OpenEntries(entries []*Entry, paymentsByEntry map[string][]*Payment) ([]OpenEntry, error) {
	open := make([]OpenEntry, 0, len(entries))

	for _, e := range entries {
		paidLater := decimal.Zero
		for _, p := range paymentsByEntry[e.ID] {
			paidLater = paidLater.Add(p.Amount)
		}

		outstanding := e.GrossAmount.Sub(e.PaidAtCreation).Sub(paidLater)
		if outstanding.IsNegative() {
			return nil, fmt.Errorf("%w: entry %s outstanding %s", ErrDataInconsistency, e.ID, outstanding)
		}

		open = append(open, OpenEntry{
			Entry:       e,
			PaidLater:   paidLater,
			Outstanding: outstanding,
		})
	}

	sort.Slice(open, func(i, j int) bool {
		di, dj := open[i].Entry.EntryDate, open[j].Entry.EntryDate
		if di.Equal(dj) {
			return open[i].Entry.ID < open[j].Entry.ID
		}

		return di.Before(dj)
	})

	return open, nil
}

// TotalOutstanding sums the outstanding balances of open entries.
func TotalOutstanding(open []OpenEntry) decimal.Decimal {
	total := decimal.Zero
	for _, oe := range open {
		total = total.Add(oe.Outstanding)
	}

	return total
}

// Allocation is one slice of a payment applied to one entry.
type Allocation struct {
	Entry  *Entry
	Amount decimal.Decimal
}

// Allocate applies a single payment amount across open entries oldest-first,
// splitting it as needed. The entries must already be in the order produced
// by OpenEntries. Each entry is visited at most once and the conservation law
// sum(allocations) == amount holds exactly.
//
// Fails with ErrInvalidAmount when amount is zero or negative, and with
// ErrExceedsOutstanding when amount is greater than the total outstanding.
// In both cases no allocations are emitted.
func Allocate(open []OpenEntry, amount decimal.Decimal) ([]Allocation, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	if amount.GreaterThan(TotalOutstanding(open)) {
		return nil, fmt.Errorf("%w: requested %s", ErrExceedsOutstanding, amount)
	}

	var allocations []Allocation

	remaining := amount
	for _, oe := range open {
		if remaining.IsZero() {
			break
		}

		if oe.Outstanding.LessThanOrEqual(decimal.Zero) {
			continue
		}

		take := decimal.Min(remaining, oe.Outstanding)
		allocations = append(allocations, Allocation{Entry: oe.Entry, Amount: take})
		remaining = remaining.Sub(take)
	}

	return allocations, nil
}
