package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// OutstandingCacheTTL is how long a debtor outstanding summary may be
	// served from cache before rereading the ledger
	OutstandingCacheTTL = 5 * time.Minute
)
