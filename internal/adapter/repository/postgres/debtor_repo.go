package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/mpatel/khata/internal/domain"
	"github.com/mpatel/khata/internal/infrastructure/postgres/generated"
	"github.com/mpatel/khata/internal/usecase"
)

// DebtorRepository implements usecase.DebtorRepository.
type DebtorRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewDebtorRepository creates a new DebtorRepository.
func NewDebtorRepository(pool *pgxpool.Pool) *DebtorRepository {
	return &DebtorRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create creates a new debtor.
func (r *DebtorRepository) Create(ctx context.Context, debtor *domain.Debtor) error {
	_, err := r.queries.CreateDebtor(ctx, generated.CreateDebtorParams{
		ID:          debtor.ID,
		Kind:        string(debtor.Kind),
		Name:        debtor.Name,
		Phone:       stringToPgText(debtor.Phone),
		Outstanding: decimalToNumeric(debtor.Outstanding),
		Version:     debtor.Version,
		CreatedAt:   timeToPgTimestamptz(debtor.CreatedAt),
		UpdatedAt:   timeToPgTimestamptz(debtor.UpdatedAt),
	})

	return err
}

// GetByID retrieves a debtor by ID.
func (r *DebtorRepository) GetByID(ctx context.Context, id string) (*domain.Debtor, error) {
	row, err := r.queries.GetDebtorByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDebtorNotFound
		}

		return nil, err
	}

	return rowToDebtor(row), nil
}

// GetByIDForUpdate retrieves a debtor by ID with a FOR UPDATE lock.
func (r *DebtorRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Debtor, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	row, err := queries.GetDebtorByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDebtorNotFound
		}

		return nil, err
	}

	return rowToDebtor(row), nil
}

// UpdateOutstanding updates the cached outstanding of a debtor.
func (r *DebtorRepository) UpdateOutstanding(ctx context.Context, tx usecase.Transaction, id string, outstanding decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.UpdateDebtorOutstanding(ctx, generated.UpdateDebtorOutstandingParams{
		ID:          id,
		Outstanding: decimalToNumeric(outstanding),
		UpdatedAt:   timeToPgTimestamptz(updatedAt),
	})
}

// List lists debtors of one kind with pagination.
func (r *DebtorRepository) List(ctx context.Context, kind domain.DebtorKind, limit, offset int) ([]*domain.Debtor, error) {
	rows, err := r.queries.ListDebtors(ctx, generated.ListDebtorsParams{
		Kind:   string(kind),
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	debtors := make([]*domain.Debtor, 0, len(rows))
	for _, row := range rows {
		debtors = append(debtors, rowToDebtor(row))
	}

	return debtors, nil
}

func rowToDebtor(row generated.Debtor) *domain.Debtor {
	return &domain.Debtor{
		ID:          row.ID,
		Kind:        domain.DebtorKind(row.Kind),
		Name:        row.Name,
		Phone:       row.Phone.String,
		Outstanding: numericToDecimal(row.Outstanding),
		Version:     row.Version,
		CreatedAt:   row.CreatedAt.Time,
		UpdatedAt:   row.UpdatedAt.Time,
	}
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func stringToPgText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}

	return pgtype.Text{String: s, Valid: true}
}
