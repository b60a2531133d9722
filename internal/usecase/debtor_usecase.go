package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mpatel/khata/internal/domain"
	"github.com/mpatel/khata/internal/infrastructure/metrics"
)

// DebtorUseCase handles debtor master-data logic.
type DebtorUseCase struct {
	debtorRepo DebtorRepository
	idGen      IDGenerator
	metrics    *metrics.Metrics
}

// NewDebtorUseCase creates a new DebtorUseCase.
func NewDebtorUseCase(debtorRepo DebtorRepository, idGen IDGenerator) *DebtorUseCase {
	return &DebtorUseCase{
		debtorRepo: debtorRepo,
		idGen:      idGen,
	}
}

// WithMetrics attaches Prometheus metrics. Safe to skip in tests.
func (uc *DebtorUseCase) WithMetrics(m *metrics.Metrics) *DebtorUseCase {
	uc.metrics = m
	return uc
}

// CreateDebtorInput represents input for creating a debtor.
type CreateDebtorInput struct {
	Kind  domain.DebtorKind
	Name  string
	Phone string
}

// CreateDebtor creates a new debtor with zero outstanding.
func (uc *DebtorUseCase) CreateDebtor(ctx context.Context, input CreateDebtorInput) (*domain.Debtor, error) {
	if !input.Kind.Valid() {
		return nil, domain.ErrInvalidKind
	}

	if err := domain.ValidateDebtorName(input.Name); err != nil {
		return nil, err
	}

	if err := domain.ValidatePhone(input.Phone); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	debtor := &domain.Debtor{
		ID:          uc.idGen.Generate(),
		Kind:        input.Kind,
		Name:        strings.TrimSpace(input.Name),
		Phone:       strings.TrimSpace(input.Phone),
		Outstanding: decimal.Zero,
		Version:     0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := uc.debtorRepo.Create(ctx, debtor); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.DebtorsCreated.WithLabelValues(string(debtor.Kind)).Inc()
	}

	return debtor, nil
}

// GetDebtor retrieves a debtor by ID.
func (uc *DebtorUseCase) GetDebtor(ctx context.Context, id string) (*domain.Debtor, error) {
	return uc.debtorRepo.GetByID(ctx, id)
}

// ListDebtorsInput represents input for listing debtors.
type ListDebtorsInput struct {
	Kind   domain.DebtorKind
	Limit  int
	Offset int
}

// ListDebtors lists debtors, optionally filtered by kind.
func (uc *DebtorUseCase) ListDebtors(ctx context.Context, input ListDebtorsInput) ([]*domain.Debtor, error) {
	if input.Kind != "" && !input.Kind.Valid() {
		return nil, domain.ErrInvalidKind
	}

	limit, offset, err := domain.ValidatePagination(input.Limit, input.Offset)
	if err != nil {
		return nil, err
	}

	return uc.debtorRepo.List(ctx, input.Kind, limit, offset)
}
