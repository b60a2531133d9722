package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"

	"github.com/mpatel/khata/internal/adapter/http/handler"
	apimiddleware "github.com/mpatel/khata/internal/adapter/http/middleware"
	"github.com/mpatel/khata/internal/domain"
	"github.com/mpatel/khata/internal/usecase"
	"github.com/mpatel/khata/internal/usecase/mocks"
)

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_MetricsEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RateLimiterBlocksExcessRequests(t *testing.T) {
	rl := apimiddleware.NewRateLimiter(1, 1)
	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.RateLimiter = rl
	}))

	req1 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req1.RemoteAddr = "1.2.3.4:1234"
	rec1 := httptest.NewRecorder()
	router.ServeHTTP(rec1, req1)
	if rec1.Code != http.StatusOK {
		t.Fatalf("expected first request to succeed, got %d", rec1.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/health", nil)
	req2.RemoteAddr = "1.2.3.4:1234"
	rec2 := httptest.NewRecorder()
	router.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to be throttled, got %d", rec2.Code)
	}
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockIdempotencyStore(ctrl)
	store.EXPECT().
		CheckAndSet(gomock.Any(), "key-123", gomock.Nil(), gomock.Any()).
		Return(false, nil, nil)
	store.EXPECT().
		Update(gomock.Any(), "key-123", gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	router := NewRouter(newRouterConfig(func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
	}))

	body := `{"kind":"worker","name":"Ramesh Kumar"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/debtors/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apimiddleware.IdempotencyKeyHeader, "key-123")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
}

func TestNewRouter_RegistersKeyRoutes(t *testing.T) {
	router := NewRouter(newRouterConfig())

	chiRoutes, ok := router.(chi.Router)
	if !ok {
		t.Fatal("router does not implement chi.Routes")
	}

	seen := map[string]bool{}
	if err := chi.Walk(chiRoutes, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		seen[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("walk failed: %v", err)
	}

	expected := []string{
		"GET /health",
		"GET /ready",
		"POST /api/v1/debtors/",
		"GET /api/v1/debtors/",
		"GET /api/v1/debtors/{id}",
		"POST /api/v1/debtors/{id}/entries",
		"GET /api/v1/debtors/{id}/outstanding",
		"POST /api/v1/debtors/{id}/settlements",
		"POST /api/v1/debtors/{id}/settlements/clear",
		"GET /api/v1/entries/{id}/payments",
		"GET /api/v1/outstanding",
		"GET /api/v1/cashbook",
		"GET /api/v1/reconciliation/",
		"GET /api/v1/reconciliation/{id}",
	}

	for _, route := range expected {
		if !seen[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}

func newRouterConfig(opts ...func(*RouterConfig)) RouterConfig {
	txManager := mocks.NewMockTransactionManager()
	debtorRepo := mocks.NewMockDebtorRepository()
	entryRepo := mocks.NewMockEntryRepository()
	paymentRepo := mocks.NewMockPaymentRepository()
	cashbookRepo := mocks.NewMockCashbookRepository()
	outboxRepo := mocks.NewMockOutboxRepository()
	idGen := mocks.NewMockIDGenerator()

	entryUC := usecase.NewEntryUseCase(txManager, debtorRepo, entryRepo, paymentRepo, cashbookRepo, outboxRepo, idGen, nil)
	outstandingUC := usecase.NewOutstandingUseCase(debtorRepo, entryRepo, paymentRepo, nil)
	reconciliationUC := usecase.NewReconciliationUseCase(debtorRepo, entryRepo, paymentRepo)

	cfg := RouterConfig{
		DebtorHandler:         handler.NewDebtorHandler(&stubDebtorService{}),
		EntryHandler:          handler.NewEntryHandler(entryUC),
		SettlementHandler:     handler.NewSettlementHandler(&stubSettlementService{}),
		OutstandingHandler:    handler.NewOutstandingHandler(outstandingUC),
		CashbookHandler:       handler.NewCashbookHandler(cashbookRepo),
		ReconciliationHandler: handler.NewReconciliationHandler(reconciliationUC),
		HealthHandler:         &handler.HealthHandler{},
		Logger:                zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

type stubDebtorService struct{}

func (stubDebtorService) CreateDebtor(ctx context.Context, input usecase.CreateDebtorInput) (*domain.Debtor, error) {
	return &domain.Debtor{ID: "debtor"}, nil
}

func (stubDebtorService) GetDebtor(ctx context.Context, id string) (*domain.Debtor, error) {
	return &domain.Debtor{ID: id}, nil
}

func (stubDebtorService) ListDebtors(ctx context.Context, input usecase.ListDebtorsInput) ([]*domain.Debtor, error) {
	return []*domain.Debtor{}, nil
}

type stubSettlementService struct{}

func (stubSettlementService) Settle(ctx context.Context, input usecase.SettleInput) (*usecase.SettlementResult, error) {
	return &usecase.SettlementResult{Debtor: &domain.Debtor{ID: input.DebtorID}}, nil
}

func (stubSettlementService) FullClear(ctx context.Context, input usecase.FullClearInput) (*usecase.SettlementResult, error) {
	return &usecase.SettlementResult{Debtor: &domain.Debtor{ID: input.DebtorID}}, nil
}

