package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mpatel/khata/internal/domain"
	"github.com/mpatel/khata/internal/infrastructure/postgres/generated"
	"github.com/mpatel/khata/internal/usecase"
)

// CashbookRepository implements usecase.CashbookRepository.
type CashbookRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewCashbookRepository creates a new CashbookRepository.
func NewCashbookRepository(pool *pgxpool.Pool) *CashbookRepository {
	return &CashbookRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create writes a cashbook entry within a transaction.
func (r *CashbookRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.CashbookEntry) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	_, err := queries.CreateCashbookEntry(ctx, generated.CreateCashbookEntryParams{
		ID:              entry.ID,
		TransactionDate: timeToPgTimestamptz(entry.TransactionDate),
		Direction:       entry.Direction,
		Category:        entry.Category,
		Amount:          decimalToNumeric(entry.Amount),
		PartnerRef:      stringToPgText(entry.PartnerRef),
		Description:     entry.Description,
		CreatedAt:       timeToPgTimestamptz(entry.CreatedAt),
	})

	return err
}

// List lists cashbook entries in a date range, newest first.
func (r *CashbookRepository) List(ctx context.Context, from, to time.Time, limit, offset int) ([]*domain.CashbookEntry, error) {
	rows, err := r.queries.ListCashbookEntries(ctx, generated.ListCashbookEntriesParams{
		FromDate: timeToPgTimestamptz(from),
		ToDate:   timeToPgTimestamptz(to),
		Limit:    int32(limit),
		Offset:   int32(offset),
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.CashbookEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, &domain.CashbookEntry{
			ID:              row.ID,
			TransactionDate: row.TransactionDate.Time,
			Direction:       row.Direction,
			Category:        row.Category,
			Amount:          numericToDecimal(row.Amount),
			PartnerRef:      row.PartnerRef.String,
			Description:     row.Description,
			CreatedAt:       row.CreatedAt.Time,
		})
	}

	return entries, nil
}
