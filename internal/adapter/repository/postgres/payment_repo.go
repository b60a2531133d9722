package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mpatel/khata/internal/domain"
	"github.com/mpatel/khata/internal/infrastructure/postgres/generated"
	"github.com/mpatel/khata/internal/usecase"
)

// PaymentRepository implements usecase.PaymentRepository.
type PaymentRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewPaymentRepository creates a new PaymentRepository.
func NewPaymentRepository(pool *pgxpool.Pool) *PaymentRepository {
	return &PaymentRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// CreateBatch persists every allocation of one settlement within a
// transaction. All rows commit or none do.
func (r *PaymentRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, payments []*domain.Payment) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	for _, payment := range payments {
		_, err := queries.CreatePayment(ctx, generated.CreatePaymentParams{
			ID:          payment.ID,
			EntryID:     payment.EntryID,
			DebtorID:    payment.DebtorID,
			PaymentDate: timeToPgTimestamptz(payment.PaymentDate),
			Amount:      decimalToNumeric(payment.Amount),
			Mode:        string(payment.Mode),
			PartnerRef:  stringToPgText(payment.PartnerRef),
			Notes:       stringToPgText(payment.Notes),
			CreatedAt:   timeToPgTimestamptz(payment.CreatedAt),
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// ListByEntry lists payments made against one entry.
func (r *PaymentRepository) ListByEntry(ctx context.Context, entryID string) ([]*domain.Payment, error) {
	rows, err := r.queries.ListPaymentsByEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	return rowsToPayments(rows), nil
}

// ListByDebtor lists all payments recorded against a debtor.
func (r *PaymentRepository) ListByDebtor(ctx context.Context, debtorID string) ([]*domain.Payment, error) {
	rows, err := r.queries.ListPaymentsByDebtor(ctx, debtorID)
	if err != nil {
		return nil, err
	}

	return rowsToPayments(rows), nil
}

// ListByDebtorTx lists all payments for a debtor inside a transaction.
func (r *PaymentRepository) ListByDebtorTx(ctx context.Context, tx usecase.Transaction, debtorID string) ([]*domain.Payment, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	rows, err := queries.ListPaymentsByDebtor(ctx, debtorID)
	if err != nil {
		return nil, err
	}

	return rowsToPayments(rows), nil
}

func rowsToPayments(rows []generated.Payment) []*domain.Payment {
	payments := make([]*domain.Payment, 0, len(rows))
	for _, row := range rows {
		payments = append(payments, rowToPayment(row))
	}

	return payments
}

func rowToPayment(row generated.Payment) *domain.Payment {
	return &domain.Payment{
		ID:          row.ID,
		EntryID:     row.EntryID,
		DebtorID:    row.DebtorID,
		PaymentDate: row.PaymentDate.Time,
		Amount:      numericToDecimal(row.Amount),
		Mode:        domain.PaymentMode(row.Mode),
		PartnerRef:  row.PartnerRef.String,
		Notes:       row.Notes.String,
		CreatedAt:   row.CreatedAt.Time,
	}
}
