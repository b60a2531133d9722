package mocks

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mpatel/khata/internal/domain"
	"github.com/mpatel/khata/internal/usecase"
)

// ErrCacheMiss is returned by MockCache for absent keys.
var ErrCacheMiss = errors.New("cache miss")

// MockDebtorRepository is a mock implementation of DebtorRepository.
type MockDebtorRepository struct {
	mu      sync.RWMutex
	debtors map[string]*domain.Debtor

	CreateFunc            func(ctx context.Context, debtor *domain.Debtor) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Debtor, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Debtor, error)
	UpdateOutstandingFunc func(ctx context.Context, tx usecase.Transaction, id string, outstanding decimal.Decimal, updatedAt time.Time) error
	ListFunc              func(ctx context.Context, kind domain.DebtorKind, limit, offset int) ([]*domain.Debtor, error)
}

func NewMockDebtorRepository() *MockDebtorRepository {
	return &MockDebtorRepository{
		debtors: make(map[string]*domain.Debtor),
	}
}

func (m *MockDebtorRepository) Create(ctx context.Context, debtor *domain.Debtor) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, debtor)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.debtors[debtor.ID] = debtor
	return nil
}

func (m *MockDebtorRepository) GetByID(ctx context.Context, id string) (*domain.Debtor, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.debtors[id]; ok {
		return d, nil
	}
	return nil, domain.ErrDebtorNotFound
}

func (m *MockDebtorRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Debtor, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockDebtorRepository) UpdateOutstanding(ctx context.Context, tx usecase.Transaction, id string, outstanding decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateOutstandingFunc != nil {
		return m.UpdateOutstandingFunc(ctx, tx, id, outstanding, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if d, ok := m.debtors[id]; ok {
		d.Outstanding = outstanding
		d.UpdatedAt = updatedAt
		return nil
	}
	return domain.ErrDebtorNotFound
}

func (m *MockDebtorRepository) List(ctx context.Context, kind domain.DebtorKind, limit, offset int) ([]*domain.Debtor, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, kind, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var debtors []*domain.Debtor
	for _, d := range m.debtors {
		if kind == "" || d.Kind == kind {
			debtors = append(debtors, d)
		}
	}
	return debtors, nil
}

// MockEntryRepository is a mock implementation of EntryRepository.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries map[string]*domain.Entry

	CreateFunc         func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error
	GetByIDFunc        func(ctx context.Context, id string) (*domain.Entry, error)
	ListByDebtorFunc   func(ctx context.Context, debtorID string) ([]*domain.Entry, error)
	ListByDebtorTxFunc func(ctx context.Context, tx usecase.Transaction, debtorID string) ([]*domain.Entry, error)
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{
		entries: make(map[string]*domain.Entry),
	}
}

func (m *MockEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[entry.ID] = entry
	return nil
}

func (m *MockEntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.entries[id]; ok {
		return e, nil
	}
	return nil, domain.ErrEntryNotFound
}

func (m *MockEntryRepository) ListByDebtor(ctx context.Context, debtorID string) ([]*domain.Entry, error) {
	if m.ListByDebtorFunc != nil {
		return m.ListByDebtorFunc(ctx, debtorID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var entries []*domain.Entry
	for _, e := range m.entries {
		if e.DebtorID == debtorID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *MockEntryRepository) ListByDebtorTx(ctx context.Context, tx usecase.Transaction, debtorID string) ([]*domain.Entry, error) {
	if m.ListByDebtorTxFunc != nil {
		return m.ListByDebtorTxFunc(ctx, tx, debtorID)
	}
	return m.ListByDebtor(ctx, debtorID)
}

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mu       sync.RWMutex
	payments []*domain.Payment

	CreateBatchFunc    func(ctx context.Context, tx usecase.Transaction, payments []*domain.Payment) error
	ListByEntryFunc    func(ctx context.Context, entryID string) ([]*domain.Payment, error)
	ListByDebtorFunc   func(ctx context.Context, debtorID string) ([]*domain.Payment, error)
	ListByDebtorTxFunc func(ctx context.Context, tx usecase.Transaction, debtorID string) ([]*domain.Payment, error)
}

func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{}
}

func (m *MockPaymentRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, payments []*domain.Payment) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, tx, payments)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments = append(m.payments, payments...)
	return nil
}

func (m *MockPaymentRepository) ListByEntry(ctx context.Context, entryID string) ([]*domain.Payment, error) {
	if m.ListByEntryFunc != nil {
		return m.ListByEntryFunc(ctx, entryID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var payments []*domain.Payment
	for _, p := range m.payments {
		if p.EntryID == entryID {
			payments = append(payments, p)
		}
	}
	return payments, nil
}

func (m *MockPaymentRepository) ListByDebtor(ctx context.Context, debtorID string) ([]*domain.Payment, error) {
	if m.ListByDebtorFunc != nil {
		return m.ListByDebtorFunc(ctx, debtorID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var payments []*domain.Payment
	for _, p := range m.payments {
		if p.DebtorID == debtorID {
			payments = append(payments, p)
		}
	}
	return payments, nil
}

func (m *MockPaymentRepository) ListByDebtorTx(ctx context.Context, tx usecase.Transaction, debtorID string) ([]*domain.Payment, error) {
	if m.ListByDebtorTxFunc != nil {
		return m.ListByDebtorTxFunc(ctx, tx, debtorID)
	}
	return m.ListByDebtor(ctx, debtorID)
}

// MockCashbookRepository is a mock implementation of CashbookRepository.
type MockCashbookRepository struct {
	mu      sync.RWMutex
	entries []*domain.CashbookEntry

	CreateFunc func(ctx context.Context, tx usecase.Transaction, entry *domain.CashbookEntry) error
	ListFunc   func(ctx context.Context, from, to time.Time, limit, offset int) ([]*domain.CashbookEntry, error)
}

func NewMockCashbookRepository() *MockCashbookRepository {
	return &MockCashbookRepository{}
}

func (m *MockCashbookRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.CashbookEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockCashbookRepository) List(ctx context.Context, from, to time.Time, limit, offset int) ([]*domain.CashbookEntry, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, from, to, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.entries, nil
}

// Entries returns all cashbook entries captured by the default behavior.
func (m *MockCashbookRepository) Entries() []*domain.CashbookEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.entries
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*domain.OutboxEvent

	CreateFunc         func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
	GetUnpublishedFunc func(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublishedFunc  func(ctx context.Context, id string, publishedAt time.Time) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if m.GetUnpublishedFunc != nil {
		return m.GetUnpublishedFunc(ctx, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var unpublished []*domain.OutboxEvent
	for _, e := range m.events {
		if !e.Published {
			unpublished = append(unpublished, e)
		}
		if len(unpublished) == limit {
			break
		}
	}
	return unpublished, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	if m.MarkPublishedFunc != nil {
		return m.MarkPublishedFunc(ctx, id, publishedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
			return nil
		}
	}
	return nil
}

// Events returns all outbox events captured by the default behavior.
func (m *MockOutboxRepository) Events() []*domain.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.events
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func NewMockTransaction() *MockTransaction {
	return &MockTransaction{}
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	if !m.Committed {
		m.RolledBack = true
	}
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	LastTx *MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.LastTx = NewMockTransaction()
	return m.LastTx, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "id-" + string(rune('0'+m.counter%10)) + "-" + time.Now().Format("150405.000000")
}

// MockRetrier is a mock implementation of Retrier that invokes the operation
// once without retrying.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}
	return operation()
}

// MockCache is an in-memory mock implementation of Cache.
type MockCache struct {
	mu    sync.RWMutex
	items map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error
}

func NewMockCache() *MockCache {
	return &MockCache{
		items: make(map[string][]byte),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.items[key]; ok {
		return v, nil
	}
	return nil, ErrCacheMiss
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}
