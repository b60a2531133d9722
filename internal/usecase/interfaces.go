package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mpatel/khata/internal/domain"
)

// DebtorRepository defines data access for debtors.
type DebtorRepository interface {
	Create(ctx context.Context, debtor *domain.Debtor) error
	GetByID(ctx context.Context, id string) (*domain.Debtor, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Debtor, error)
	UpdateOutstanding(ctx context.Context, tx Transaction, id string, outstanding decimal.Decimal, updatedAt time.Time) error
	List(ctx context.Context, kind domain.DebtorKind, limit, offset int) ([]*domain.Debtor, error)
}

// EntryRepository defines data access for entries.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.Entry) error
	GetByID(ctx context.Context, id string) (*domain.Entry, error)
	ListByDebtor(ctx context.Context, debtorID string) ([]*domain.Entry, error)
	ListByDebtorTx(ctx context.Context, tx Transaction, debtorID string) ([]*domain.Entry, error)
}

// PaymentRepository defines data access for payments.
type PaymentRepository interface {
	CreateBatch(ctx context.Context, tx Transaction, payments []*domain.Payment) error
	ListByEntry(ctx context.Context, entryID string) ([]*domain.Payment, error)
	ListByDebtor(ctx context.Context, debtorID string) ([]*domain.Payment, error)
	ListByDebtorTx(ctx context.Context, tx Transaction, debtorID string) ([]*domain.Payment, error)
}

// CashbookRepository defines data access for the firm cashbook.
type CashbookRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.CashbookEntry) error
	List(ctx context.Context, from, to time.Time, limit, offset int) ([]*domain.CashbookEntry, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
