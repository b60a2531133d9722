package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mpatel/khata/internal/domain"
	"github.com/mpatel/khata/internal/infrastructure/postgres/generated"
	"github.com/mpatel/khata/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new entry within a transaction.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	_, err := queries.CreateEntry(ctx, generated.CreateEntryParams{
		ID:             entry.ID,
		DebtorID:       entry.DebtorID,
		Kind:           string(entry.Kind),
		EntryDate:      timeToPgTimestamptz(entry.EntryDate),
		GrossAmount:    decimalToNumeric(entry.GrossAmount),
		PaidAtCreation: decimalToNumeric(entry.PaidAtCreation),
		Notes:          stringToPgText(entry.Notes),
		CreatedAt:      timeToPgTimestamptz(entry.CreatedAt),
	})

	return err
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	row, err := r.queries.GetEntryByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return rowToEntry(row), nil
}

// ListByDebtor lists all entries for a debtor, oldest first.
func (r *EntryRepository) ListByDebtor(ctx context.Context, debtorID string) ([]*domain.Entry, error) {
	rows, err := r.queries.ListEntriesByDebtor(ctx, debtorID)
	if err != nil {
		return nil, err
	}

	return rowsToEntries(rows), nil
}

// ListByDebtorTx lists all entries for a debtor inside a transaction, so the
// read respects the debtor's row lock.
func (r *EntryRepository) ListByDebtorTx(ctx context.Context, tx usecase.Transaction, debtorID string) ([]*domain.Entry, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	rows, err := queries.ListEntriesByDebtor(ctx, debtorID)
	if err != nil {
		return nil, err
	}

	return rowsToEntries(rows), nil
}

func rowsToEntries(rows []generated.Entry) []*domain.Entry {
	entries := make([]*domain.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToEntry(row))
	}

	return entries
}

func rowToEntry(row generated.Entry) *domain.Entry {
	return &domain.Entry{
		ID:             row.ID,
		DebtorID:       row.DebtorID,
		Kind:           domain.EntryKind(row.Kind),
		EntryDate:      row.EntryDate.Time,
		GrossAmount:    numericToDecimal(row.GrossAmount),
		PaidAtCreation: numericToDecimal(row.PaidAtCreation),
		Notes:          row.Notes.String,
		CreatedAt:      row.CreatedAt.Time,
	}
}
